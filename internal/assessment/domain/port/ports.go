package port

import (
	"context"
	"errors"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// ErrScoreNotFound signals the bureau has no record for the applicant.
var ErrScoreNotFound = errors.New("bureau score not found")

// BureauGateway fetches creditworthiness scores from the external bureau.
type BureauGateway interface {
	FetchScore(ctx context.Context, cpf string) (model.BureauScore, error)
}

// AntiFraudGateway runs the external fraud check for an application.
type AntiFraudGateway interface {
	CheckFraud(ctx context.Context, app events.LoanApplicationReceived) (model.AntiFraudScore, error)
}

// ScoreCache is the best-effort cache in front of the bureau. Get returns
// (zero, false, nil) on a miss; errors mean the cache itself is unavailable
// and callers fall through to the remote fetch.
type ScoreCache interface {
	Get(ctx context.Context, cpf string) (model.BureauScore, bool, error)
	Set(ctx context.Context, cpf string, score model.BureauScore) error
}

// EventPublisher publishes assessment outcomes to downstream consumers.
type EventPublisher interface {
	PublishAssessmentCompleted(ctx context.Context, evt events.CreditAssessmentCompleted) error
}
