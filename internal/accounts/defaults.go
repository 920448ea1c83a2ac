package accounts

// DefaultChart returns the starter chart of accounts for a new exercise.
// 200100 and 300100 stay free for the closing accounts.
func DefaultChart() []Entry {
	return []Entry{
		{ID: 100100, Name: "Cash"},
		{ID: 100200, Name: "Accounts Receivable"},
		{ID: 100300, Name: "Inventory"},
		{ID: 200200, Name: "Accounts Payable"},
		{ID: 300200, Name: "Owner's Capital"},
		{ID: 400100, Name: "Sales"},
		{ID: 400200, Name: "Service Revenue"},
		{ID: 500100, Name: "Rent"},
		{ID: 500200, Name: "Salaries"},
		{ID: 500300, Name: "Utilities"},
	}
}
