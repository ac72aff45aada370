package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavodinniz/loan-flow/internal/assessment/application/usecase"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/service"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/valueobject"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// --- Mock implementations ---

type mockBureauGateway struct {
	fetchCalls int
	score      model.BureauScore
	err        error
}

func (m *mockBureauGateway) FetchScore(_ context.Context, _ string) (model.BureauScore, error) {
	m.fetchCalls++
	if m.err != nil {
		return model.BureauScore{}, m.err
	}
	return m.score, nil
}

type mockAntiFraudGateway struct {
	score model.AntiFraudScore
	err   error
}

func (m *mockAntiFraudGateway) CheckFraud(_ context.Context, _ events.LoanApplicationReceived) (model.AntiFraudScore, error) {
	if m.err != nil {
		return model.AntiFraudScore{}, m.err
	}
	return m.score, nil
}

type mockScoreCache struct {
	cached   *model.BureauScore
	getErr   error
	setErr   error
	setCalls int
}

func (m *mockScoreCache) Get(_ context.Context, _ string) (model.BureauScore, bool, error) {
	if m.getErr != nil {
		return model.BureauScore{}, false, m.getErr
	}
	if m.cached != nil {
		return *m.cached, true, nil
	}
	return model.BureauScore{}, false, nil
}

func (m *mockScoreCache) Set(_ context.Context, _ string, _ model.BureauScore) error {
	m.setCalls++
	return m.setErr
}

type mockEventPublisher struct {
	published  []events.CreditAssessmentCompleted
	publishErr error
}

func (m *mockEventPublisher) PublishAssessmentCompleted(_ context.Context, evt events.CreditAssessmentCompleted) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evt)
	return nil
}

// --- Test fixtures ---

func testApplication() events.LoanApplicationReceived {
	return events.LoanApplicationReceived{
		ApplicationID:        "app-1",
		CPF:                  "12345678901",
		AmountRequested:      decimal.RequireFromString("5000.00"),
		NumberOfInstallments: 12,
		MonthlyIncome:        decimal.RequireFromString("10000.00"),
	}
}

func goodBureauScore() model.BureauScore {
	return model.BureauScore{
		CPF:            "12345678901",
		Score:          900,
		PaymentHistory: valueobject.PaymentHistoryExcellent,
		MonthlyDebts:   decimal.Zero,
	}
}

func cleanAntiFraudScore() model.AntiFraudScore {
	return model.AntiFraudScore{
		ApplicationID:  "app-1",
		FraudScore:     50,
		Recommendation: valueobject.FraudRecommendationAccept,
	}
}

func newAssessCredit(bureau *mockBureauGateway, antiFraud *mockAntiFraudGateway, cache *mockScoreCache, publisher *mockEventPublisher) *usecase.AssessCredit {
	return usecase.NewAssessCredit(
		bureau,
		antiFraud,
		cache,
		publisher,
		service.NewRuleChain(service.DefaultRules()...),
		service.DefaultTiers(),
		testLogger(),
	)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- Tests ---

func TestAssessCredit_Execute(t *testing.T) {
	t.Run("approves a strong applicant and publishes terms", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		require.Len(t, publisher.published, 1)
		evt := publisher.published[0]
		assert.Equal(t, "app-1", evt.ApplicationID)
		assert.Equal(t, "APPROVED", evt.FinalAssessmentStatus)
		require.NotNil(t, evt.CreditScoreUsed)
		assert.Equal(t, 900, *evt.CreditScoreUsed)
		require.NotNil(t, evt.ApprovedLimit)
		assert.True(t, evt.ApprovedLimit.Equal(decimal.RequireFromString("5000.00")))
		require.NotNil(t, evt.InterestRateApplied)
		assert.True(t, evt.InterestRateApplied.Equal(decimal.RequireFromString("0.08")))
		assert.NotEmpty(t, evt.EventID)
	})

	t.Run("serves the bureau score from cache without a remote call", func(t *testing.T) {
		cached := goodBureauScore()
		bureau := &mockBureauGateway{err: errors.New("bureau must not be called")}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{cached: &cached}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		assert.Zero(t, bureau.fetchCalls)
		assert.Zero(t, cache.setCalls)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, "APPROVED", publisher.published[0].FinalAssessmentStatus)
	})

	t.Run("falls through to the bureau when the cache errors", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{getErr: errors.New("redis down")}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		assert.Equal(t, 1, bureau.fetchCalls)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, "APPROVED", publisher.published[0].FinalAssessmentStatus)
	})

	t.Run("caches the score after a remote fetch", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("publishes FAILED without scores when the bureau is unreachable", func(t *testing.T) {
		bureau := &mockBureauGateway{err: errors.New("connection refused")}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		require.Len(t, publisher.published, 1)
		evt := publisher.published[0]
		assert.Equal(t, "FAILED", evt.FinalAssessmentStatus)
		assert.Contains(t, evt.Justification, "Failed to retrieve bureau score")
		assert.Nil(t, evt.CreditScoreUsed)
		assert.Nil(t, evt.AntiFraudScoreUsed)
		assert.Nil(t, evt.ApprovedLimit)
	})

	t.Run("publishes FAILED when the anti-fraud check errors", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{err: errors.New("timeout")}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		require.Len(t, publisher.published, 1)
		evt := publisher.published[0]
		assert.Equal(t, "FAILED", evt.FinalAssessmentStatus)
		assert.Contains(t, evt.Justification, "Failed to retrieve anti-fraud score")
	})

	t.Run("returns an error for invalid application data", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		app := testApplication()
		app.NumberOfInstallments = 0

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		err := uc.Execute(context.Background(), app)

		assert.ErrorIs(t, err, service.ErrInvalidApplication)
		assert.Empty(t, publisher.published)
	})

	t.Run("returns the publish error so the message is redelivered", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{publishErr: errors.New("kafka unavailable")}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		err := uc.Execute(context.Background(), testApplication())

		require.Error(t, err)
	})

	t.Run("reprocessing yields an identical outcome", func(t *testing.T) {
		bureau := &mockBureauGateway{score: goodBureauScore()}
		antiFraud := &mockAntiFraudGateway{score: cleanAntiFraudScore()}
		cache := &mockScoreCache{}
		publisher := &mockEventPublisher{}

		uc := newAssessCredit(bureau, antiFraud, cache, publisher)
		require.NoError(t, uc.Execute(context.Background(), testApplication()))
		require.NoError(t, uc.Execute(context.Background(), testApplication()))

		require.Len(t, publisher.published, 2)
		first, second := publisher.published[0], publisher.published[1]
		// Identical apart from the per-publication envelope.
		first.Envelope = events.Envelope{}
		second.Envelope = events.Envelope{}
		assert.Equal(t, first, second)
	})
}
