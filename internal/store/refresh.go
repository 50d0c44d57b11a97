package store

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/petalhealth/content-service/internal/events"
	"github.com/petalhealth/content-service/internal/fetcher"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

// ResourceResult describes the outcome of one resource within a refresh.
type ResourceResult struct {
	Resource models.Resource `json:"resource"`
	Count    int             `json:"count"`
	Error    string          `json:"error,omitempty"`
}

// Result summarizes a completed refresh cycle.
type Result struct {
	Skipped     bool             `json:"skipped"`
	Results     []ResourceResult `json:"results,omitempty"`
	CompletedAt time.Time        `json:"completed_at,omitzero"`
}

// Succeeded reports whether every resource in the cycle was replaced.
func (r Result) Succeeded() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return false
		}
	}
	return !r.Skipped
}

// fetched carries the fan-in of one refresh cycle.
type fetched struct {
	topics      []models.Topic
	questions   []models.Question
	pathways    []models.PathwayStep
	infertility []models.InfertilityInfo
	resources   []models.SupportResource

	errs map[models.Resource]error
}

// Refresh fetches every configured resource, replacing each collection whose
// fetch succeeded and keeping the previous value for each that failed. One
// refresh runs at a time; a concurrent call returns ErrRefreshInFlight. When
// remote data is disabled no network call is made and collections are left
// untouched.
func (s *Store) Refresh(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.refresh.IsLoading {
		s.mu.Unlock()
		return Result{}, ErrRefreshInFlight
	}
	if !s.useRemote {
		s.status = models.ConnectionStatus{
			State:     models.StateOffline,
			Message:   "remote data disabled",
			CheckedAt: time.Now().UTC(),
		}
		s.mu.Unlock()
		s.log.Info("Refresh skipped, remote data disabled")
		return Result{Skipped: true}, nil
	}
	s.refresh.IsLoading = true
	s.mu.Unlock()

	s.log.Info("Refresh started")
	batch := s.fetchAll(ctx)
	result := s.apply(ctx, batch)

	s.publishRefreshEvent(result)
	s.log.Info("Refresh completed",
		logger.Bool("all_succeeded", result.Succeeded()),
		logger.Time("completed_at", result.CompletedAt),
	)
	return result, nil
}

// fetchAll fans out one fetch per resource and collects per-resource results.
// Resources are independent; one may succeed while another fails.
func (s *Store) fetchAll(ctx context.Context) fetched {
	batch := fetched{errs: make(map[models.Resource]error)}

	var (
		topicsErr, questionsErr, pathwaysErr, infertilityErr, resourcesErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		batch.topics, topicsErr = s.source.FetchTopics(gctx)
		return nil
	})
	g.Go(func() error {
		batch.questions, questionsErr = s.source.FetchQuestions(gctx)
		return nil
	})
	g.Go(func() error {
		batch.pathways, pathwaysErr = s.source.FetchPathways(gctx)
		return nil
	})
	g.Go(func() error {
		batch.infertility, infertilityErr = s.source.FetchInfertility(gctx)
		return nil
	})
	g.Go(func() error {
		batch.resources, resourcesErr = s.source.FetchResources(gctx)
		return nil
	})
	_ = g.Wait() // workers never return errors; failures are per-resource

	if topicsErr != nil {
		batch.errs[models.ResourceTopics] = topicsErr
	}
	if questionsErr != nil {
		batch.errs[models.ResourceQuestions] = questionsErr
	}
	if pathwaysErr != nil {
		batch.errs[models.ResourcePathways] = pathwaysErr
	}
	if infertilityErr != nil {
		batch.errs[models.ResourceInfertility] = infertilityErr
	}
	if resourcesErr != nil {
		batch.errs[models.ResourceResources] = resourcesErr
	}
	return batch
}

// apply is the single-writer step: it replaces successfully fetched
// collections, records the first failure in the connection status, and stamps
// the refresh completion regardless of partial failures.
func (s *Store) apply(ctx context.Context, batch fetched) Result {
	now := time.Now().UTC()
	result := Result{CompletedAt: now}

	s.mu.Lock()
	for _, res := range models.AllResources() {
		if err, failed := batch.errs[res]; failed {
			result.Results = append(result.Results, ResourceResult{
				Resource: res,
				Count:    s.countLocked(res),
				Error:    statusMessage(err),
			})
			continue
		}
		switch res {
		case models.ResourceTopics:
			s.topics = batch.topics
		case models.ResourceQuestions:
			s.questions = batch.questions
		case models.ResourcePathways:
			s.pathways = batch.pathways
		case models.ResourceInfertility:
			s.infertility = batch.infertility
		case models.ResourceResources:
			s.resources = batch.resources
		}
		result.Results = append(result.Results, ResourceResult{
			Resource: res,
			Count:    s.countLocked(res),
		})
	}

	s.status = statusFor(batch, now)
	s.refresh.IsLoading = false
	s.refresh.LastUpdate = &now
	s.mu.Unlock()

	s.persist(ctx, batch, now)
	return result
}

func (s *Store) countLocked(res models.Resource) int {
	switch res {
	case models.ResourceTopics:
		return len(s.topics)
	case models.ResourceQuestions:
		return len(s.questions)
	case models.ResourcePathways:
		return len(s.pathways)
	case models.ResourceInfertility:
		return len(s.infertility)
	case models.ResourceResources:
		return len(s.resources)
	}
	return 0
}

// persist writes the successfully fetched batches to the snapshot cache.
// Cache failures are logged, never surfaced: the in-memory state is already
// correct.
func (s *Store) persist(ctx context.Context, batch fetched, completedAt time.Time) {
	if s.snapshots == nil {
		return
	}
	save := func(res models.Resource, records any) {
		if _, failed := batch.errs[res]; failed {
			return
		}
		if err := s.snapshots.Save(ctx, res, records); err != nil {
			s.log.Warn("Failed to persist snapshot",
				logger.String("resource", res.String()),
				logger.Error(err),
			)
		}
	}
	save(models.ResourceTopics, batch.topics)
	save(models.ResourceQuestions, batch.questions)
	save(models.ResourcePathways, batch.pathways)
	save(models.ResourceInfertility, batch.infertility)
	save(models.ResourceResources, batch.resources)

	if err := s.snapshots.SetLastUpdate(ctx, completedAt); err != nil {
		s.log.Warn("Failed to persist last update", logger.Error(err))
	}
}

func (s *Store) publishRefreshEvent(result Result) {
	if s.publisher == nil {
		return
	}
	payload := events.RefreshPayload{}
	for _, res := range result.Results {
		if res.Error != "" {
			payload.Failed = append(payload.Failed, res.Resource.String())
			if payload.Message == "" {
				payload.Message = res.Error
			}
		} else {
			payload.Succeeded = append(payload.Succeeded, res.Resource.String())
		}
	}
	eventType := events.RefreshCompleted
	if len(payload.Failed) > 0 {
		eventType = events.RefreshFailed
	}
	s.publisher.PublishAsync(events.Event{
		EventType: eventType,
		Payload:   payload,
	})
}

// statusFor derives the connection status from a refresh outcome: connected
// when everything succeeded, error with the first failure message otherwise.
func statusFor(batch fetched, now time.Time) models.ConnectionStatus {
	for _, res := range models.AllResources() {
		if err, failed := batch.errs[res]; failed {
			return models.ConnectionStatus{
				State:     models.StateError,
				Message:   statusMessage(err),
				CheckedAt: now,
			}
		}
	}
	return models.ConnectionStatus{State: models.StateConnected, CheckedAt: now}
}

// statusMessage prefers the fetcher's human-readable message (e.g. "HTTP
// 500") over the full wrapped error chain.
func statusMessage(err error) string {
	if fe, ok := fetcher.AsError(err); ok {
		return fe.Message
	}
	return err.Error()
}
