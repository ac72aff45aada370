package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/service"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/valueobject"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// --- Test fixtures ---

func cleanInput() service.RuleInput {
	return service.RuleInput{
		Application: events.LoanApplicationReceived{
			ApplicationID:        "app-1",
			CPF:                  "12345678901",
			AmountRequested:      decimal.RequireFromString("12000.00"),
			NumberOfInstallments: 12,
			MonthlyIncome:        decimal.RequireFromString("10000.00"),
		},
		Bureau: model.BureauScore{
			CPF:            "12345678901",
			Score:          650,
			PaymentHistory: valueobject.PaymentHistoryGood,
			MonthlyDebts:   decimal.Zero,
		},
		AntiFraud: model.AntiFraudScore{
			ApplicationID:  "app-1",
			FraudScore:     100,
			Recommendation: valueobject.FraudRecommendationAccept,
		},
	}
}

func freshResult(in service.RuleInput) *model.AssessmentResult {
	return model.NewAssessmentResult(in.Application.ApplicationID, in.Application.CPF, in.Bureau.Score)
}

func runChain(t *testing.T, in service.RuleInput) *model.AssessmentResult {
	t.Helper()
	result := freshResult(in)
	chain := service.NewRuleChain(service.DefaultRules()...)
	require.NoError(t, chain.Run(in, result))
	return result
}

// --- Tests ---

func TestBureauScoreRule(t *testing.T) {
	t.Run("rejects score below the minimum", func(t *testing.T) {
		in := cleanInput()
		in.Bureau.Score = 299

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Credit score below minimum (score: 299).", result.Justification())
	})

	t.Run("accepts score at the minimum", func(t *testing.T) {
		in := cleanInput()
		in.Bureau.Score = 300

		result := runChain(t, in)

		assert.False(t, result.IsRejected())
	})
}

func TestPaymentHistoryRule(t *testing.T) {
	t.Run("rejects severely delinquent history", func(t *testing.T) {
		in := cleanInput()
		in.Bureau.PaymentHistory = valueobject.PaymentHistoryPoorOverdue60Day

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Payment history shows significant overdue installments.", result.Justification())
	})

	t.Run("lets an unknown provider category through", func(t *testing.T) {
		in := cleanInput()
		in.Bureau.PaymentHistory = valueobject.NewPaymentHistory("SOMEWHAT_LATE")

		result := runChain(t, in)

		assert.False(t, result.IsRejected())
	})
}

func TestDebtToIncomeRatioRule(t *testing.T) {
	t.Run("rejects above the hard threshold", func(t *testing.T) {
		in := cleanInput()
		// 24000/12 = 2000 estimated + 2500 existing = 4500 on 10000 income: 45%.
		in.Application.AmountRequested = decimal.RequireFromString("24000.00")
		in.Bureau.MonthlyDebts = decimal.RequireFromString("2500.00")

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Debt-to-income ratio (45.00%) above the allowed maximum.", result.Justification())
	})

	t.Run("rejects between the soft and hard thresholds", func(t *testing.T) {
		in := cleanInput()
		// 12000/12 = 1000 estimated + 2500 existing = 3500 on 10000 income: 35%.
		in.Bureau.MonthlyDebts = decimal.RequireFromString("2500.00")

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Debt-to-income ratio (35.00%) requires attention.", result.Justification())
	})

	t.Run("accepts at the soft threshold", func(t *testing.T) {
		in := cleanInput()
		// 1000 estimated + 2000 existing = 3000 on 10000 income: exactly 30%.
		in.Bureau.MonthlyDebts = decimal.RequireFromString("2000.00")

		result := runChain(t, in)

		assert.False(t, result.IsRejected())
	})

	t.Run("errors on non-positive installment count", func(t *testing.T) {
		in := cleanInput()
		in.Application.NumberOfInstallments = 0

		chain := service.NewRuleChain(service.DefaultRules()...)
		err := chain.Run(in, freshResult(in))

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidApplication)
	})

	t.Run("errors on non-positive income", func(t *testing.T) {
		in := cleanInput()
		in.Application.MonthlyIncome = decimal.Zero

		chain := service.NewRuleChain(service.DefaultRules()...)
		err := chain.Run(in, freshResult(in))

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidApplication)
	})
}

func TestAntiFraudRule(t *testing.T) {
	t.Run("rejects at the fraud score threshold regardless of recommendation", func(t *testing.T) {
		in := cleanInput()
		in.AntiFraud.FraudScore = 700
		in.AntiFraud.Recommendation = valueobject.FraudRecommendationAccept

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Anti-fraud score (700) indicates high fraud risk. Recommendation: ACCEPT.", result.Justification())
	})

	t.Run("rejects on REJECT recommendation below the threshold", func(t *testing.T) {
		in := cleanInput()
		in.AntiFraud.FraudScore = 699
		in.AntiFraud.Recommendation = valueobject.FraudRecommendationReject

		result := runChain(t, in)

		assert.True(t, result.IsRejected())
		assert.Equal(t, "Anti-fraud recommendation is rejection. Score: 699.", result.Justification())
	})

	t.Run("accepts manual review recommendation with a low score", func(t *testing.T) {
		in := cleanInput()
		in.AntiFraud.FraudScore = 400
		in.AntiFraud.Recommendation = valueobject.FraudRecommendationManualReview

		result := runChain(t, in)

		assert.False(t, result.IsRejected())
	})
}

func TestRuleChain_StopsAtFirstRejection(t *testing.T) {
	in := cleanInput()
	in.Bureau.Score = 250
	in.Bureau.PaymentHistory = valueobject.PaymentHistoryPoorOverdue60Day

	result := runChain(t, in)

	assert.True(t, result.IsRejected())
	// Only the first rule's reason: later rules never ran.
	assert.Equal(t, "Credit score below minimum (score: 250).", result.Justification())
}

func TestRuleChain_CleanApplicationStaysApproved(t *testing.T) {
	result := runChain(t, cleanInput())

	assert.False(t, result.IsRejected())
	assert.True(t, result.Status().Equal(valueobject.AssessmentStatusApproved))
	assert.Empty(t, result.Justification())
}
