package domain

// Budget status tags returned by POST /api/budget/check
const (
	BudgetStatusOK       = "ok"
	BudgetStatusWarning  = "warning"
	BudgetStatusExceeded = "exceeded"
)

// BudgetCheckRequest is the body of POST /api/budget/check
type BudgetCheckRequest struct {
	Budget float64 `json:"budget"`
}

// BudgetStatus is the server-computed spend summary for a budget
type BudgetStatus struct {
	Budget         float64 `json:"budget"`
	TotalSpent     float64 `json:"total_spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
}

// Exceeded reports whether the server classified the spend as over budget
func (s BudgetStatus) Exceeded() bool {
	return s.Status == BudgetStatusExceeded
}

// Warning reports whether the server classified the spend as near the budget
func (s BudgetStatus) Warning() bool {
	return s.Status == BudgetStatusWarning
}
