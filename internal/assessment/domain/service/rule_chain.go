package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// ---------------------------------------------------------------------------
// RuleChain – ordered assessment rules
// ---------------------------------------------------------------------------

// ErrInvalidApplication flags an application that violates the intake
// contract (non-positive income or installment count) and therefore cannot
// be evaluated.
var ErrInvalidApplication = errors.New("invalid application data")

// RuleInput bundles everything a rule may inspect.
type RuleInput struct {
	Application events.LoanApplicationReceived
	Bureau      model.BureauScore
	AntiFraud   model.AntiFraudScore
}

// Rejection is a rule's verdict when it decides to reject the application.
type Rejection struct {
	Reason string
}

// Rule is a pure assessment check: it inspects the input and either accepts
// (nil, nil), rejects with a reason, or fails on invalid input.
type Rule struct {
	Name     string
	Evaluate func(in RuleInput) (*Rejection, error)
}

// RuleChain folds an ordered list of rules over an assessment result,
// stopping at the first rejection. Rule order is part of the product
// configuration, not an implementation detail.
type RuleChain struct {
	rules []Rule
}

// NewRuleChain builds a chain from the given rules, evaluated in order.
func NewRuleChain(rules ...Rule) *RuleChain {
	return &RuleChain{rules: rules}
}

// Run evaluates the chain against the input, mutating the result. Later
// rules are skipped as soon as the result is REJECTED.
func (c *RuleChain) Run(in RuleInput, result *model.AssessmentResult) error {
	for _, rule := range c.rules {
		if result.IsRejected() {
			return nil
		}
		rejection, err := rule.Evaluate(in)
		if err != nil {
			return fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		if rejection != nil {
			result.Reject(rejection.Reason)
		}
	}
	return nil
}

// DefaultRules returns the production rule order: bureau score floor,
// payment history, debt-to-income ratio, anti-fraud.
func DefaultRules() []Rule {
	return []Rule{
		BureauScoreRule(),
		PaymentHistoryRule(),
		DebtToIncomeRatioRule(),
		AntiFraudRule(),
	}
}

// minimumBureauScore is the floor below which applications are rejected
// outright.
const minimumBureauScore = 300

// BureauScoreRule rejects applications whose bureau score is below the
// minimum threshold.
func BureauScoreRule() Rule {
	return Rule{
		Name: "bureau-score-floor",
		Evaluate: func(in RuleInput) (*Rejection, error) {
			if in.Bureau.Score < minimumBureauScore {
				return &Rejection{
					Reason: fmt.Sprintf("Credit score below minimum (score: %d).", in.Bureau.Score),
				}, nil
			}
			return nil, nil
		},
	}
}

// PaymentHistoryRule rejects applicants with installments more than 60 days
// overdue.
func PaymentHistoryRule() Rule {
	return Rule{
		Name: "payment-history",
		Evaluate: func(in RuleInput) (*Rejection, error) {
			if in.Bureau.PaymentHistory.IsSeverelyDelinquent() {
				return &Rejection{
					Reason: "Payment history shows significant overdue installments.",
				}, nil
			}
			return nil, nil
		},
	}
}

var (
	maxDTIRatioStrict   = decimal.RequireFromString("0.30")
	maxDTIRatioFlexible = decimal.RequireFromString("0.40")
	oneHundred          = decimal.NewFromInt(100)
)

// DebtToIncomeRatioRule rejects applications whose estimated installment
// plus existing monthly debt exceeds the allowed share of monthly income.
// Both thresholds reject; they differ only in the reject reason.
func DebtToIncomeRatioRule() Rule {
	return Rule{
		Name: "debt-to-income",
		Evaluate: func(in RuleInput) (*Rejection, error) {
			app := in.Application
			if app.NumberOfInstallments <= 0 {
				return nil, fmt.Errorf("%w: number of installments must be positive, got %d",
					ErrInvalidApplication, app.NumberOfInstallments)
			}
			if !app.MonthlyIncome.IsPositive() {
				return nil, fmt.Errorf("%w: monthly income must be positive, got %s",
					ErrInvalidApplication, app.MonthlyIncome)
			}

			installments := decimal.NewFromInt(int64(app.NumberOfInstallments))
			estimatedInstallment := app.AmountRequested.DivRound(installments, 2)
			totalMonthlyDebt := estimatedInstallment.Add(in.Bureau.MonthlyDebts)
			dti := totalMonthlyDebt.DivRound(app.MonthlyIncome, 4)

			debtRatio := dti.Mul(oneHundred).Round(2)
			switch {
			case dti.GreaterThan(maxDTIRatioFlexible):
				return &Rejection{
					Reason: fmt.Sprintf("Debt-to-income ratio (%s%%) above the allowed maximum.", debtRatio.StringFixed(2)),
				}, nil
			case dti.GreaterThan(maxDTIRatioStrict):
				return &Rejection{
					Reason: fmt.Sprintf("Debt-to-income ratio (%s%%) requires attention.", debtRatio.StringFixed(2)),
				}, nil
			}
			return nil, nil
		},
	}
}

// highFraudScoreThreshold is the fraud score at or above which applications
// are rejected regardless of the provider's recommendation.
const highFraudScoreThreshold = 700

// AntiFraudRule rejects applications the anti-fraud provider scores or
// recommends against.
func AntiFraudRule() Rule {
	return Rule{
		Name: "anti-fraud",
		Evaluate: func(in RuleInput) (*Rejection, error) {
			score := in.AntiFraud
			if score.FraudScore >= highFraudScoreThreshold {
				return &Rejection{
					Reason: fmt.Sprintf("Anti-fraud score (%d) indicates high fraud risk. Recommendation: %s.",
						score.FraudScore, score.Recommendation),
				}, nil
			}
			if score.Recommendation.IsReject() {
				return &Rejection{
					Reason: fmt.Sprintf("Anti-fraud recommendation is rejection. Score: %d.", score.FraudScore),
				}, nil
			}
			return nil, nil
		},
	}
}
