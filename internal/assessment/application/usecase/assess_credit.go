package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/port"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/service"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// AssessCredit orchestrates one credit assessment: score fetching (with
// cache-aside on the bureau side), the rule chain, risk tiering, and the
// completion event. It is deterministic for fixed external scores, so
// redelivered intake events are safe to reprocess.
type AssessCredit struct {
	bureau    port.BureauGateway
	antiFraud port.AntiFraudGateway
	cache     port.ScoreCache
	publisher port.EventPublisher
	chain     *service.RuleChain
	tiers     []service.RiskTier
	logger    *slog.Logger
}

// NewAssessCredit wires dependencies. The rule chain and tier registry are
// built once at startup and passed in; there is no runtime discovery.
func NewAssessCredit(
	bureau port.BureauGateway,
	antiFraud port.AntiFraudGateway,
	cache port.ScoreCache,
	publisher port.EventPublisher,
	chain *service.RuleChain,
	tiers []service.RiskTier,
	logger *slog.Logger,
) *AssessCredit {
	return &AssessCredit{
		bureau:    bureau,
		antiFraud: antiFraud,
		cache:     cache,
		publisher: publisher,
		chain:     chain,
		tiers:     tiers,
		logger:    logger,
	}
}

// Execute runs the assessment for one received application.
//
// External score failures do not error out: they produce a FAILED
// completion event and stop the pipeline for this application. Errors are
// returned only for invalid input (intake contract violations) and for
// configuration faults, which must abort processing rather than guess.
func (uc *AssessCredit) Execute(ctx context.Context, app events.LoanApplicationReceived) error {
	uc.logger.InfoContext(ctx, "starting credit assessment", "application_id", app.ApplicationID)

	bureauScore, ok, err := uc.fetchBureauScore(ctx, app)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	antiFraudScore, err := uc.antiFraud.CheckFraud(ctx, app)
	if err != nil {
		uc.logger.WarnContext(ctx, "anti-fraud check failed, assessment cannot proceed",
			"application_id", app.ApplicationID, "error", err)
		return uc.publishFailed(ctx, app, "Failed to retrieve anti-fraud score: "+err.Error())
	}

	result := model.NewAssessmentResult(app.ApplicationID, app.CPF, bureauScore.Score)

	in := service.RuleInput{Application: app, Bureau: bureauScore, AntiFraud: antiFraudScore}
	if err := uc.chain.Run(in, result); err != nil {
		return fmt.Errorf("rule chain for application %s: %w", app.ApplicationID, err)
	}

	if !result.IsRejected() {
		tier, err := service.SelectTier(uc.tiers, bureauScore.Score)
		if err != nil {
			// Configuration fault: abort rather than guess a tier.
			return fmt.Errorf("application %s: %w", app.ApplicationID, err)
		}
		tier.Assess(app, bureauScore, result)
	}

	uc.logger.InfoContext(ctx, "credit assessment finished",
		"application_id", app.ApplicationID,
		"status", result.Status().String(),
		"justification", result.Justification(),
	)

	evt := completedEvent(result, &bureauScore, &antiFraudScore)
	if err := uc.publisher.PublishAssessmentCompleted(ctx, evt); err != nil {
		return fmt.Errorf("publish assessment completed for %s: %w", app.ApplicationID, err)
	}
	return nil
}

// fetchBureauScore resolves the bureau score cache-aside. The cache is best
// effort: read and write failures are logged and otherwise ignored. A remote
// failure or missing record publishes a FAILED event and returns ok=false.
func (uc *AssessCredit) fetchBureauScore(ctx context.Context, app events.LoanApplicationReceived) (model.BureauScore, bool, error) {
	cached, hit, err := uc.cache.Get(ctx, app.CPF)
	if err != nil {
		uc.logger.WarnContext(ctx, "bureau score cache read failed, falling through to remote",
			"application_id", app.ApplicationID, "error", err)
	} else if hit {
		uc.logger.DebugContext(ctx, "bureau score served from cache", "application_id", app.ApplicationID)
		return cached, true, nil
	}

	score, err := uc.bureau.FetchScore(ctx, app.CPF)
	if err != nil {
		uc.logger.WarnContext(ctx, "bureau score fetch failed, assessment cannot proceed",
			"application_id", app.ApplicationID, "error", err)
		pubErr := uc.publishFailed(ctx, app, "Failed to retrieve bureau score: "+err.Error())
		return model.BureauScore{}, false, pubErr
	}

	if err := uc.cache.Set(ctx, app.CPF, score); err != nil {
		uc.logger.WarnContext(ctx, "bureau score cache write failed",
			"application_id", app.ApplicationID, "error", err)
	}
	return score, true, nil
}

func (uc *AssessCredit) publishFailed(ctx context.Context, app events.LoanApplicationReceived, justification string) error {
	result := model.NewFailedAssessment(app.ApplicationID, app.CPF, justification)
	evt := completedEvent(result, nil, nil)
	if err := uc.publisher.PublishAssessmentCompleted(ctx, evt); err != nil {
		return fmt.Errorf("publish failed assessment for %s: %w", app.ApplicationID, err)
	}
	return nil
}

// completedEvent maps a result (and, when available, the external scores
// used) onto the wire event. Scores are carried for audit.
func completedEvent(result *model.AssessmentResult, bureau *model.BureauScore, antiFraud *model.AntiFraudScore) events.CreditAssessmentCompleted {
	evt := events.CreditAssessmentCompleted{
		Envelope:              events.NewEnvelope(),
		ApplicationID:         result.ApplicationID(),
		CPF:                   result.CPF(),
		FinalAssessmentStatus: result.Status().String(),
		Justification:         result.Justification(),
	}
	if bureau != nil {
		score := bureau.Score
		evt.CreditScoreUsed = &score
		limit := result.RecommendedLimit()
		rate := result.RecommendedInterestRate()
		evt.ApprovedLimit = &limit
		evt.InterestRateApplied = &rate
	}
	if antiFraud != nil {
		score := antiFraud.FraudScore
		evt.AntiFraudScoreUsed = &score
	}
	return evt
}
