package simtrials

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/perceptlab/syntrial/internal/adapters/submit"
	"github.com/perceptlab/syntrial/internal/domain/engine"
	"github.com/perceptlab/syntrial/pkg/logger"
)

// Runner configuration constants.
const (
	ingestSettleDelay    = 2 * time.Second
	consistentShare      = 0.7 // share of simulated participants with stable associations
	percentageMultiplier = 100
)

// sessionRecord tracks one completed simulated session for verification.
type sessionRecord struct {
	ParticipantID string `json:"participant_id"`
	SessionID     string `json:"session_id"`
	Trials        int    `json:"trials"`
}

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting trial simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("participants", config.Participants),
		logger.String("testType", config.TestType),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Drive sessions concurrently
	records, err := runSessions(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("session run failed: %w", err)
	}

	// Step 3: Let the ingest pipeline settle
	logger.Get().Info(ctx, "waiting for batches to be ingested")
	time.Sleep(ingestSettleDelay)

	// Step 4: Verify stored results
	if err := verifyResults(ctx, client, config, records, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 5: Save session records to file
	if err := saveRecordsToFile(ctx, config, records); err != nil {
		logger.Get().Warn(ctx, "failed to save session records", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != 200 {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runSessions drives all simulated participants through full sessions
// using a bounded worker pool.
func runSessions(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]sessionRecord, error) {
	var (
		started   int64
		completed int64
		failed    int64
		trials    int64
	)

	participantChan := make(chan string, config.Workers*2)
	recordChan := make(chan sessionRecord, config.Participants)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for participantID := range participantChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&started, 1)
				record, err := driveSession(ctx, client, config, participantID)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Error(ctx, "session failed",
						logger.String("participantID", participantID),
						logger.Error(err))
					continue
				}
				atomic.AddInt64(&completed, 1)
				atomic.AddInt64(&trials, int64(record.Trials))
				recordChan <- record

				if config.Verbose {
					logger.Get().Info(ctx, "session completed",
						logger.String("participantID", participantID),
						logger.String("sessionID", record.SessionID),
						logger.Int("trials", record.Trials))
				}
			}
		}()
	}

	go func() {
		defer close(participantChan)
		for i := 0; i < config.Participants; i++ {
			select {
			case <-ctx.Done():
				return
			case participantChan <- "sim-" + uuid.New().String():
			}
		}
	}()

	wg.Wait()
	close(recordChan)

	records := make([]sessionRecord, 0, config.Participants)
	for record := range recordChan {
		records = append(records, record)
	}

	stats.SessionsStarted = int(atomic.LoadInt64(&started))
	stats.SessionsCompleted = int(atomic.LoadInt64(&completed))
	stats.SessionsFailed = int(atomic.LoadInt64(&failed))
	stats.TrialsAnswered = int(atomic.LoadInt64(&trials))

	logger.Get().Info(ctx, "session run finished",
		logger.Int("completed", stats.SessionsCompleted),
		logger.Int("failed", stats.SessionsFailed),
		logger.Int("trials", stats.TrialsAnswered))

	return records, nil
}

// simClock feeds sampled reaction times into the engine so that stored
// batches carry a plausible distribution instead of sub-millisecond wall
// time.
type simClock struct {
	r       *responder
	elapsed int64
}

func (c *simClock) Start()           { c.elapsed = c.r.reactionTimeMS() }
func (c *simClock) ElapsedMS() int64 { return c.elapsed }

// driveSession runs one participant through a complete session: plan
// request, practice pass, testing pass, and batch submission via the
// engine's submitter.
func driveSession(ctx context.Context, client *HTTPClient, config *Config, participantID string) (sessionRecord, error) {
	plan, err := startSession(ctx, client, config.BaseURL, participantID, config.TestType)
	if err != nil {
		return sessionRecord{}, err
	}

	r := newResponder(getRandomFloat() < consistentShare)
	eng := engine.New(plan.Testing,
		engine.WithPracticeDeck(plan.Practice),
		engine.WithSessionID(plan.SessionID),
		engine.WithParticipant(participantID),
		engine.WithTestType(plan.TestType),
		engine.WithClock(&simClock{r: r}),
		engine.WithSubmitter(submit.NewHTTPSubmitter(config.BaseURL)),
	)

	if err := eng.Start(ctx); err != nil {
		return sessionRecord{}, err
	}

	answered := 0
	for {
		entry, ok := eng.Current()
		if !ok {
			break
		}

		if p, hasColor := r.pick(entry.Stimulus); hasColor {
			eng.Pick(p)
			eng.ToggleLock()
		} else {
			eng.ToggleNoExperience()
		}

		outcome, err := eng.Advance(ctx)
		if err != nil {
			return sessionRecord{}, fmt.Errorf("advance failed on trial %d: %w", answered+1, err)
		}
		if !outcome.Accepted {
			return sessionRecord{}, fmt.Errorf("advance rejected on trial %d", answered+1)
		}
		answered++
		if outcome.Completed {
			break
		}
	}

	if eng.Phase() != engine.PhaseDone {
		return sessionRecord{}, fmt.Errorf("session ended in phase %s", eng.Phase())
	}

	return sessionRecord{
		ParticipantID: participantID,
		SessionID:     plan.SessionID,
		Trials:        len(plan.Testing),
	}, nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, sessionsPerSecond float64

	if stats.SessionsStarted > 0 {
		successRate = float64(stats.SessionsCompleted) / float64(stats.SessionsStarted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		sessionsPerSecond = float64(stats.SessionsCompleted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sessionsStarted", stats.SessionsStarted),
		logger.Int("sessionsCompleted", stats.SessionsCompleted),
		logger.Int("sessionsFailed", stats.SessionsFailed),
		logger.Int("trialsAnswered", stats.TrialsAnswered),
		logger.Int("batchesVerified", stats.BatchesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("sessionsPerSecond", sessionsPerSecond))
}
