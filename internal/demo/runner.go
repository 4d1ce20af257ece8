package demo

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/health"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/logger"
)

// Run executes the demo against cfg.BaseURL and writes a report to out.
func Run(ctx context.Context, cfg Config, log logger.Logger, out io.Writer) (Summary, error) {
	start := time.Now()
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting revintel demo",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Int("topN", cfg.TopN),
	)

	// Step 1: Check service health
	if err := client.Get(ctx, "/healthz", nil); err != nil {
		return Summary{}, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Load the CRM
	var (
		leads    []model.Lead
		accounts []model.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.Get(gctx, "/v1/leads", &leads) })
	g.Go(func() error { return client.Get(gctx, "/v1/accounts", &accounts) })
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("crm retrieval failed: %w", err)
	}
	log.Info(ctx, "crm loaded", logger.Int("leads", len(leads)), logger.Int("accounts", len(accounts)))

	// Step 3: Score everything concurrently
	sum, best, err := scoreAll(ctx, client, cfg, log, leads, accounts)
	if err != nil {
		return sum, fmt.Errorf("scoring failed: %w", err)
	}

	// Step 4: Check the lead ranking
	if err := client.Get(ctx, "/v1/leads/top?limit="+strconv.Itoa(cfg.TopN), &sum.Top); err != nil {
		return sum, fmt.Errorf("top leads retrieval failed: %w", err)
	}
	if err := verifyRanking(sum.Top, best); err != nil {
		return sum, fmt.Errorf("ranking verification failed: %w", err)
	}

	// Step 5: Model health
	var rep health.Report
	if err := client.Get(ctx, "/v1/model/health", &rep); err != nil {
		return sum, fmt.Errorf("model health failed: %w", err)
	}
	sum.HealthStatus = string(rep.Status)
	sum.Volume = rep.Volume
	sum.Duration = time.Since(start)

	writeReport(out, sum)
	return sum, nil
}

// scoreAll scores leads, assesses churn for every account and predicts
// conversion for trial accounts. It returns the best lead score seen.
func scoreAll(ctx context.Context, client *Client, cfg Config, log logger.Logger, leads []model.Lead, accounts []model.Account) (Summary, int, error) {
	sum := Summary{Tiers: map[string]map[string]int{}}
	best := -1

	var mu sync.Mutex
	record := func(res scoring.Result, err error, counter *int) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			sum.Failed++
			log.Warn(ctx, "request failed", logger.Error(err))
			return
		}
		*counter++
		t := string(res.Type)
		if sum.Tiers[t] == nil {
			sum.Tiers[t] = map[string]int{}
		}
		sum.Tiers[t][res.Tier]++
		if res.Type == model.PredictionLeadScore && res.Score > best {
			best = res.Score
		}
		if cfg.Verbose {
			log.Info(ctx, "scored",
				logger.String("type", t),
				logger.String("subject", res.Subject),
				logger.Int("score", res.Score),
				logger.String("tier", res.Tier),
			)
		}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, l := range leads {
		g.Go(func() error {
			var res scoring.Result
			err := client.Post(gctx, "/v1/leads/score", service.ScoreLeadRequest{LeadID: l.ID}, &res)
			record(res, err, &sum.LeadsScored)
			return gctx.Err()
		})
	}
	for _, a := range accounts {
		g.Go(func() error {
			var res scoring.Result
			err := client.Get(gctx, "/v1/accounts/"+a.ID+"/churn", &res)
			record(res, err, &sum.AccountsAssessed)
			return gctx.Err()
		})
		if !a.IsTrial() {
			continue
		}
		g.Go(func() error {
			var res scoring.Result
			err := client.Get(gctx, "/v1/accounts/"+a.ID+"/conversion", &res)
			record(res, err, &sum.TrialsPredicted)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return sum, best, err
	}
	return sum, best, nil
}

func writeReport(out io.Writer, sum Summary) {
	fmt.Fprintf(out, "Revenue intelligence demo finished in %s\n", sum.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "  leads scored:       %d\n", sum.LeadsScored)
	fmt.Fprintf(out, "  accounts assessed:  %d\n", sum.AccountsAssessed)
	fmt.Fprintf(out, "  trials predicted:   %d\n", sum.TrialsPredicted)
	fmt.Fprintf(out, "  failed requests:    %d\n", sum.Failed)
	for _, t := range model.PredictionTypes {
		if tiers, ok := sum.Tiers[string(t)]; ok {
			fmt.Fprintf(out, "  %-20s%v\n", string(t)+":", tiers)
		}
	}
	fmt.Fprintf(out, "  model health:       %s (%d predictions in window)\n", sum.HealthStatus, sum.Volume)
	fmt.Fprintf(out, "\nTop %d leads\n", len(sum.Top))
	for _, r := range sum.Top {
		fmt.Fprintf(out, "  %3d  %-35s %3d  %s\n", r.Rank, r.Company, r.Score, r.Tier)
	}
}
