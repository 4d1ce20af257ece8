package service

import (
	"context"
	"time"

	"github.com/okian/revintel/pkg/metrics"
)

// Stats is a point-in-time summary of the service.
type Stats struct {
	ModelVersion   string  `json:"model_version"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Predictions    int     `json:"predictions_logged"`
	RankedLeads    int     `json:"ranked_leads"`
	QueueDepth     int     `json:"queue_depth"`
	InFlightJobs   int64   `json:"in_flight_jobs"`
	Workers        int     `json:"workers"`
	WorkersRunning bool    `json:"workers_running"`
}

// Stats reports log size, ranking size and rescoring backlog.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	n, err := s.log.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	metrics.UpdateLogSize(n)

	st := Stats{
		ModelVersion:  s.engine.ModelVersion(),
		UptimeSeconds: s.now().Sub(s.startedAt).Round(time.Second).Seconds(),
		Predictions:   n,
		RankedLeads:   s.ranking.Count(ctx),
		Workers:       s.workerCount,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.started {
		st.WorkersRunning = true
		st.QueueDepth = s.queue.Len(ctx)
		st.InFlightJobs = s.deduper.Size()
	}
	return st, nil
}
