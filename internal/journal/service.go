package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cleared-dev/bookkeeper/internal/accounts"
	"github.com/cleared-dev/bookkeeper/internal/model"
	"github.com/cleared-dev/bookkeeper/internal/store"
)

var (
	ErrDuplicateExercise = errors.New("exercise already exists")
	ErrExerciseNotFound  = errors.New("exercise not found")
)

// Service owns the loaded book and applies user requests to it.
type Service struct {
	repo      store.Repository
	company   string
	rules     model.ClosingRules
	logger    *zap.Logger
	exercises []*model.Exercise
}

// NewService creates a book Service. New exercises belong to company and
// close with rules.
func NewService(repo store.Repository, company string, rules model.ClosingRules, logger *zap.Logger) *Service {
	return &Service{repo: repo, company: company, rules: rules, logger: logger}
}

// Open loads the book from the repository.
func (s *Service) Open(ctx context.Context) error {
	exercises, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading book: %w", err)
	}
	s.exercises = exercises
	return nil
}

// Save writes the whole book to the repository.
func (s *Service) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.exercises); err != nil {
		return fmt.Errorf("saving book: %w", err)
	}
	return nil
}

// Exercises returns the exercises in creation order.
func (s *Service) Exercises() []*model.Exercise {
	return slices.Clone(s.exercises)
}

// Exercise looks up an exercise by name.
func (s *Service) Exercise(name string) (*model.Exercise, error) {
	for _, e := range s.exercises {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrExerciseNotFound, name)
}

// NewExercise opens a new, empty exercise.
func (s *Service) NewExercise(name string) (*model.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{{Field: "name", Message: "is empty"}}
	}
	if _, err := s.Exercise(name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateExercise, name)
	}

	e := model.NewExercise(s.company, name, model.WithClosingRules(s.rules))
	s.exercises = append(s.exercises, e)
	s.logger.Info("created exercise", zap.String("exercise", name), zap.String("id", e.ID()))
	return e, nil
}

// AddAccount validates a raw account ID and name and opens the account.
func (s *Service) AddAccount(exercise, rawID, name string) (int, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return 0, err
	}
	accountID, name, err := ValidateAccountParams(rawID, name)
	if err != nil {
		return 0, err
	}
	if err := e.AddAccount(accountID, name); err != nil {
		return 0, fmt.Errorf("adding account %d: %w", accountID, err)
	}
	s.logger.Info("added account", zap.String("exercise", exercise), zap.Int("account", accountID))
	return accountID, nil
}

// ImportChart opens every account of chart. Nothing is added unless every
// account is new and routable.
func (s *Service) ImportChart(exercise string, chart *accounts.Chart) (int, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return 0, err
	}
	if e.Closed() {
		return 0, fmt.Errorf("importing accounts: %w", model.ErrExerciseClosed)
	}
	for _, a := range chart.All() {
		if e.HasAccount(a.ID) {
			return 0, fmt.Errorf("importing account %d: %w", a.ID, model.ErrDuplicateAccount)
		}
	}
	for _, a := range chart.All() {
		if err := e.AddAccount(a.ID, a.Name); err != nil {
			return 0, fmt.Errorf("importing account %d: %w", a.ID, err)
		}
	}
	s.logger.Info("imported accounts", zap.String("exercise", exercise), zap.Int("count", len(chart.All())))
	return len(chart.All()), nil
}

// AddPolicyParams holds raw user input for one policy.
type AddPolicyParams struct {
	Description   string
	CreditAmount  string
	CreditAccount string
	DebitAmount   string
	DebitAccount  string
}

// AddPolicy validates raw input, builds the next policy of the exercise and
// records it.
func (s *Service) AddPolicy(exercise string, params AddPolicyParams) (*model.Policy, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return nil, err
	}
	in, err := ValidatePolicyParams(params)
	if err != nil {
		return nil, err
	}

	p := model.NewDraftPolicy(e.NextPolicyInvoice(), in.Description)
	if err := p.SetCredit(model.Credit(in.CreditAccount, in.CreditAmount)); err != nil {
		return nil, fmt.Errorf("credit: %w", err)
	}
	if err := p.SetDebit(model.Debit(in.DebitAccount, in.DebitAmount)); err != nil {
		return nil, fmt.Errorf("debit: %w", err)
	}
	if err := e.RecordPolicy(p); err != nil {
		return nil, fmt.Errorf("recording policy: %w", err)
	}
	s.logger.Info("recorded policy",
		zap.String("exercise", exercise),
		zap.Int("invoice", p.Invoice()),
		zap.String("amount", in.CreditAmount.StringFixed(2)))
	return p, nil
}

// PlanClose returns the closing policies without applying them.
func (s *Service) PlanClose(exercise string) (*model.ClosingSummary, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return nil, err
	}
	return e.PlanClose()
}

// Close closes the books of an exercise.
func (s *Service) Close(exercise string) (*model.ClosingSummary, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return nil, err
	}
	sum, err := e.CloseBook()
	if err != nil {
		return nil, fmt.Errorf("closing %q: %w", exercise, err)
	}
	s.logger.Info("closed exercise",
		zap.String("exercise", exercise),
		zap.String("pre_tax_income", sum.PreTaxIncome.StringFixed(2)),
		zap.String("income_tax", sum.IncomeTax.StringFixed(2)),
		zap.Int("policies", len(sum.Policies)))
	return sum, nil
}

// ExportPolicies writes the policy log of an exercise as CSV.
func (s *Service) ExportPolicies(exercise string, w io.Writer) error {
	e, err := s.Exercise(exercise)
	if err != nil {
		return err
	}
	var legs []Leg
	for _, p := range e.Policies() {
		legs = append(legs, PolicyLegs(e.Name(), p)...)
	}
	return WriteLegs(w, legs)
}

// ImportPolicies reads a policy log and records every entry after the
// existing policies. The whole file is validated before anything is
// recorded.
func (s *Service) ImportPolicies(exercise string, r io.Reader) (int, error) {
	e, err := s.Exercise(exercise)
	if err != nil {
		return 0, err
	}
	if e.Closed() {
		return 0, fmt.Errorf("importing policies: %w", model.ErrExerciseClosed)
	}

	legs, err := ReadLegs(r)
	if err != nil {
		return 0, err
	}
	if verrs := ValidateLegs(legs, e); len(verrs) > 0 {
		return 0, ValidationErrors(verrs)
	}
	policies, err := BuildPolicies(legs, e.NextPolicyInvoice())
	if err != nil {
		return 0, err
	}
	for _, p := range policies {
		if err := e.RecordPolicy(p); err != nil {
			return 0, fmt.Errorf("recording policy %d: %w", p.Invoice(), err)
		}
	}
	s.logger.Info("imported policies", zap.String("exercise", exercise), zap.Int("count", len(policies)))
	return len(policies), nil
}
