package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
)

// SweepResult reports how many rescoring jobs a sweep queued.
type SweepResult struct {
	SweepID string `json:"sweep_id"`
	Queued  int    `json:"queued"`
	// Skipped counts jobs already in flight from an earlier sweep.
	Skipped int `json:"skipped"`
}

// EnqueueSweep queues a rescoring job for every lead, a churn assessment for
// every account and a conversion prediction for every trial account.
func (s *Service) EnqueueSweep(ctx context.Context) (SweepResult, error) {
	const op = "rescore"

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return SweepResult{}, apperr.Unavailable(op, "rescoring workers are not running")
	}

	jobs, err := s.sweepJobs(ctx)
	if err != nil {
		return SweepResult{}, apperr.Wrap(apperr.KindInternal, op, err)
	}

	res := SweepResult{SweepID: uuid.NewString()}
	now := s.now().UTC()
	for _, j := range jobs {
		j.ID = uuid.NewString()
		j.SweepID = res.SweepID
		j.EnqueuedAt = now

		key := j.Key()
		if s.deduper.SeenAndRecord(ctx, key) {
			res.Skipped++
			continue
		}
		if !s.queue.Enqueue(ctx, j) {
			s.deduper.Unrecord(ctx, key)
			s.logger.Warn(ctx, "rescore sweep stopped early",
				logger.String("sweep_id", res.SweepID),
				logger.Int("queued", res.Queued),
				logger.Int("remaining", len(jobs)-res.Queued-res.Skipped),
			)
			return res, apperr.Unavailable(op, fmt.Sprintf("rescoring queue rejected job after %d of %d", res.Queued, len(jobs)))
		}
		res.Queued++
	}

	s.logger.Info(ctx, "rescore sweep queued",
		logger.String("sweep_id", res.SweepID),
		logger.Int("queued", res.Queued),
		logger.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (s *Service) sweepJobs(ctx context.Context) ([]model.Job, error) {
	leads, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	jobs := make([]model.Job, 0, len(leads)+len(accounts))
	for _, l := range leads {
		jobs = append(jobs, model.Job{Kind: model.JobScoreLead, EntityID: l.ID})
	}
	for _, a := range accounts {
		jobs = append(jobs, model.Job{Kind: model.JobAssessChurn, EntityID: a.ID})
		if a.IsTrial() {
			jobs = append(jobs, model.Job{Kind: model.JobPredictConversion, EntityID: a.ID})
		}
	}
	return jobs, nil
}

// Process runs one rescoring job. It implements worker.Processor.
func (s *Service) Process(ctx context.Context, j model.Job) error {
	defer s.deduper.Unrecord(context.WithoutCancel(ctx), j.Key())

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	var err error
	switch j.Kind {
	case model.JobScoreLead:
		_, err = s.ScoreLeadByID(ctx, j.EntityID)
	case model.JobAssessChurn:
		_, err = s.AssessChurnRisk(ctx, j.EntityID)
	case model.JobPredictConversion:
		_, err = s.PredictConversion(ctx, j.EntityID)
	default:
		err = fmt.Errorf("unknown job kind %q", j.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", j.Kind, j.EntityID, err)
	}
	s.logger.Debug(ctx, "rescored",
		logger.String("sweep_id", j.SweepID),
		logger.String("kind", string(j.Kind)),
		logger.String("entity_id", j.EntityID),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
