package service

import "time"

const (
	MaxScore = 100

	// Engagement logistic curve.
	EngagementSlope = 0.5

	// A credit is assumed to be repaid in 300 monthly installments (25 years)
	// and an installment should not exceed 30% of the salary.
	InstallmentCount = 300
	SalaryShare      = 0.3

	// A debt counts against the client once it is more than this overdue.
	OverdueGrace = 30 * 24 * time.Hour

	DebtDaysDecay   = 0.001
	DebtAmountDecay = 0.0000001

	EngagementWeight  = 0.1
	SavingsWeight     = 0.3
	SalaryWeight      = 0.3
	DebtRecencyWeight = 0.1
	DebtAmountWeight  = 0.2

	// A client with a message older than this needs a follow-up.
	FollowUpAfter = 7 * 24 * time.Hour

	DefaultCreditAmount = 10_000_000
	DefaultBaseAmount   = 10_000_000

	MaxMessagesPerClient = 10_000
	MaxDebtsPerClient    = 1_000
)
