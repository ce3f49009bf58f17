package budget

import "math"

type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// warningThreshold is the share of the budget at which spending starts to
// count as close to the limit.
const warningThreshold = 0.8

// Evaluation describes how spending relates to a budget amount.
type Evaluation struct {
	Status          Status
	RemainingAmount float64
	PercentageUsed  float64
}

// Classify evaluates spending against a budget amount. Spending over the
// amount is "over" only when strictly greater; spending exactly at the limit
// is still "warning". A zero budget with zero spending is "good" and uses 0%.
func Classify(budgetAmount, spentAmount float64) Evaluation {
	evaluation := Evaluation{
		Status:          StatusGood,
		RemainingAmount: budgetAmount - spentAmount,
	}
	if budgetAmount > 0 {
		evaluation.PercentageUsed = math.Round(spentAmount / budgetAmount * 100)
	}

	switch {
	case spentAmount > budgetAmount:
		evaluation.Status = StatusOver
	case budgetAmount > 0 && spentAmount >= budgetAmount*warningThreshold:
		evaluation.Status = StatusWarning
	}
	return evaluation
}
