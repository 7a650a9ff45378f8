package service

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"credit-score/domain"
)

// The float64(...) conversions around products below keep the compiler from
// fusing them into FMA instructions, so results match on every GOARCH.

// MessagesScore grows with the number of client-authored messages along a
// logistic curve. No client messages scores 0.
func MessagesScore(messages []domain.Message) int {
	n := lo.CountBy(messages, func(m domain.Message) bool {
		return m.Role == domain.RoleClient
	})
	if n == 0 {
		return 0
	}

	score := MaxScore / (1 + math.Exp(float64(-EngagementSlope*float64(n-1))))
	return int(math.Floor(score))
}

// SavingsScore compares savings against the required down payment.
func SavingsScore(savings, baseAmount int64) (int, error) {
	if baseAmount <= 0 {
		return 0, fmt.Errorf("%w: base amount must be positive, got %d", domain.ErrInvalidParameter, baseAmount)
	}

	factor := math.Min(1, float64(savings)/float64(baseAmount))
	return int(math.Floor(float64(MaxScore * factor))), nil
}

// SalaryScore compares 30% of the salary against the monthly installment
// of the requested credit.
func SalaryScore(salary, creditAmount int64) (int, error) {
	if creditAmount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive, got %d", domain.ErrInvalidParameter, creditAmount)
	}

	quota := float64(creditAmount) / InstallmentCount
	factor := math.Min(1, float64(float64(salary)*SalaryShare)/quota)
	return int(math.Floor(float64(MaxScore * factor))), nil
}

// DebtsDateScore decays with the total number of days the client's debts
// are overdue.
func DebtsDateScore(debts []domain.Debt, now time.Time) int {
	overdueDays := lo.SumBy(overdueDebts(debts, now), func(d domain.Debt) int64 {
		return int64(now.Sub(d.DueDate) / (24 * time.Hour))
	})

	score := MaxScore / math.Exp(float64(DebtDaysDecay*float64(overdueDays)))
	return int(math.Floor(score))
}

// DebtsAmountScore decays with the total amount of overdue debt. The total
// is summed as float64 so very large debts saturate to 0 instead of
// wrapping around.
func DebtsAmountScore(debts []domain.Debt, now time.Time) int {
	overdueAmount := lo.SumBy(overdueDebts(debts, now), func(d domain.Debt) float64 {
		return float64(d.Amount)
	})

	score := MaxScore / math.Exp(float64(DebtAmountDecay*overdueAmount))
	return int(math.Floor(score))
}

func overdueDebts(debts []domain.Debt, now time.Time) []domain.Debt {
	return lo.Filter(debts, func(d domain.Debt, _ int) bool {
		return now.Sub(d.DueDate) > OverdueGrace
	})
}

// Evaluate runs every sub-score and combines them. It fails without a
// partial result when either amount is not positive.
func Evaluate(client domain.Client, creditAmount, baseAmount int64, now time.Time) (domain.ScoreBreakdown, error) {
	savings, err := SavingsScore(client.Savings, baseAmount)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	salary, err := SalaryScore(client.Salary, creditAmount)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}

	b := domain.ScoreBreakdown{
		Engagement:  MessagesScore(client.Messages),
		Savings:     savings,
		Salary:      salary,
		DebtRecency: DebtsDateScore(client.Debts, now),
		DebtAmount:  DebtsAmountScore(client.Debts, now),
	}

	// Summed left to right, in the same order as the weights are declared.
	total := float64(float64(b.Engagement) * EngagementWeight)
	total += float64(float64(b.Savings) * SavingsWeight)
	total += float64(float64(b.Salary) * SalaryWeight)
	total += float64(float64(b.DebtRecency) * DebtRecencyWeight)
	total += float64(float64(b.DebtAmount) * DebtAmountWeight)
	b.Score = int(math.Floor(total))

	return b, nil
}

// ComputeScore returns the composite 0-100 credit score of client.
func ComputeScore(client domain.Client, creditAmount, baseAmount int64, now time.Time) (int, error) {
	b, err := Evaluate(client, creditAmount, baseAmount, now)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// NeedsFollowUp reports whether any message, from either role, is older
// than FollowUpAfter. It stops at the first such message.
func NeedsFollowUp(client domain.Client, now time.Time) bool {
	for _, m := range client.Messages {
		if now.Sub(m.SentAt) > FollowUpAfter {
			return true
		}
	}
	return false
}
