package domain

// ScoreBreakdown is the result of a full scoring pass.
type ScoreBreakdown struct {
	Engagement  int `json:"engagement"`
	Savings     int `json:"savings"`
	Salary      int `json:"salary"`
	DebtRecency int `json:"debtRecency"`
	DebtAmount  int `json:"debtAmount"`
	Score       int `json:"score"`
}
