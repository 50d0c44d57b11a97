// Package store owns the in-memory content collections served to clients.
// Collections are seeded from bundled data, optionally hydrated from the
// snapshot cache, and replaced per-resource by remote refreshes. All writes
// are serialized through the store; reads never block behind a refresh.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/petalhealth/content-service/internal/bundled"
	"github.com/petalhealth/content-service/internal/cache"
	"github.com/petalhealth/content-service/internal/events"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

// ErrRefreshInFlight is returned when Refresh is called while a previous
// refresh has not completed. Callers retry after the current cycle finishes.
var ErrRefreshInFlight = errors.New("a refresh is already in flight")

// Store is the single owner of all content collections and refresh state.
type Store struct {
	log       logger.Logger
	source    RemoteSource
	snapshots *cache.Snapshots
	publisher *events.Publisher

	mu          sync.RWMutex
	topics      []models.Topic
	questions   []models.Question
	pathways    []models.PathwayStep
	infertility []models.InfertilityInfo
	resources   []models.SupportResource
	status      models.ConnectionStatus
	refresh     models.RefreshState
	useRemote   bool
}

// Option configures optional store collaborators.
type Option func(*Store)

// WithSnapshots attaches a snapshot cache. Successful fetches are persisted
// and Hydrate restores them at startup.
func WithSnapshots(snaps *cache.Snapshots) Option {
	return func(s *Store) { s.snapshots = snaps }
}

// WithEvents attaches an event publisher for refresh lifecycle events.
func WithEvents(pub *events.Publisher) Option {
	return func(s *Store) { s.publisher = pub }
}

// WithRemoteEnabled sets the initial remote-data toggle.
func WithRemoteEnabled(enabled bool) Option {
	return func(s *Store) { s.useRemote = enabled }
}

// New builds a store seeded from bundled data.
func New(source RemoteSource, log logger.Logger, opts ...Option) (*Store, error) {
	seed, err := bundled.Load()
	if err != nil {
		return nil, fmt.Errorf("seed bundled content: %w", err)
	}

	s := &Store{
		log:         log,
		source:      source,
		topics:      seed.Topics,
		questions:   seed.Questions,
		pathways:    seed.PathwaySteps,
		infertility: seed.InfertilityInfo,
		resources:   seed.Resources,
		status:      models.ConnectionStatus{State: models.StateUnknown},
		useRemote:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hydrate overlays cached snapshots from a previous run onto the bundled
// seed. Missing or unreadable snapshots leave the seed untouched.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	topics, err := cache.LoadRecords[models.Topic](ctx, s.snapshots, models.ResourceTopics)
	if err != nil {
		return err
	}
	questions, err := cache.LoadRecords[models.Question](ctx, s.snapshots, models.ResourceQuestions)
	if err != nil {
		return err
	}
	pathways, err := cache.LoadRecords[models.PathwayStep](ctx, s.snapshots, models.ResourcePathways)
	if err != nil {
		return err
	}
	infertility, err := cache.LoadRecords[models.InfertilityInfo](ctx, s.snapshots, models.ResourceInfertility)
	if err != nil {
		return err
	}
	resources, err := cache.LoadRecords[models.SupportResource](ctx, s.snapshots, models.ResourceResources)
	if err != nil {
		return err
	}
	lastUpdate, err := s.snapshots.LastUpdate(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	hydrated := 0
	if topics != nil {
		s.topics = topics
		hydrated++
	}
	if questions != nil {
		s.questions = questions
		hydrated++
	}
	if pathways != nil {
		s.pathways = pathways
		hydrated++
	}
	if infertility != nil {
		s.infertility = infertility
		hydrated++
	}
	if resources != nil {
		s.resources = resources
		hydrated++
	}
	if lastUpdate != nil {
		s.refresh.LastUpdate = lastUpdate
	}

	if hydrated > 0 {
		s.log.Info("Hydrated collections from snapshot cache",
			logger.Int("collections", hydrated),
		)
	}
	return nil
}

// Topics returns a copy of the current topics collection.
func (s *Store) Topics() []models.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.topics)
}

// Questions returns a copy of the current questions collection.
func (s *Store) Questions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.questions)
}

// PathwaySteps returns a copy of the current pathway collection.
func (s *Store) PathwaySteps() []models.PathwayStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pathways)
}

// InfertilityInfo returns a copy of the current infertility collection.
func (s *Store) InfertilityInfo() []models.InfertilityInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.infertility)
}

// Resources returns a copy of the current support resources collection.
func (s *Store) Resources() []models.SupportResource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.resources)
}

// Status returns the current connection status.
func (s *Store) Status() models.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// RefreshState returns the current refresh state.
func (s *Store) RefreshState() models.RefreshState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// UseRemoteData reports whether refreshes consult the network.
func (s *Store) UseRemoteData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.useRemote
}

// SetUseRemoteData toggles whether future refreshes consult the network.
func (s *Store) SetUseRemoteData(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useRemote = enabled
	s.log.Info("Remote data toggled", logger.Bool("enabled", enabled))
}

// Counts returns the current size of every collection.
func (s *Store) Counts() map[models.Resource]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[models.Resource]int{
		models.ResourceTopics:      len(s.topics),
		models.ResourceQuestions:   len(s.questions),
		models.ResourcePathways:    len(s.pathways),
		models.ResourceInfertility: len(s.infertility),
		models.ResourceResources:   len(s.resources),
	}
}

// ApplyOverride replaces a collection with externally validated records (from
// the editorial importer or the local overrides watcher) and persists the
// batch to the snapshot cache.
func (s *Store) ApplyOverride(ctx context.Context, res models.Resource, records any) error {
	s.mu.Lock()
	switch batch := records.(type) {
	case []models.Topic:
		if res != models.ResourceTopics {
			s.mu.Unlock()
			return fmt.Errorf("override for %s carries topic records", res)
		}
		s.topics = batch
	case []models.Question:
		if res != models.ResourceQuestions {
			s.mu.Unlock()
			return fmt.Errorf("override for %s carries question records", res)
		}
		s.questions = batch
	case []models.PathwayStep:
		if res != models.ResourcePathways {
			s.mu.Unlock()
			return fmt.Errorf("override for %s carries pathway records", res)
		}
		s.pathways = batch
	case []models.InfertilityInfo:
		if res != models.ResourceInfertility {
			s.mu.Unlock()
			return fmt.Errorf("override for %s carries infertility records", res)
		}
		s.infertility = batch
	case []models.SupportResource:
		if res != models.ResourceResources {
			s.mu.Unlock()
			return fmt.Errorf("override for %s carries resource records", res)
		}
		s.resources = batch
	default:
		s.mu.Unlock()
		return fmt.Errorf("unsupported override type %T for %s", records, res)
	}
	s.mu.Unlock()

	s.log.Info("Applied content override", logger.String("resource", res.String()))
	if err := s.snapshots.Save(ctx, res, records); err != nil {
		s.log.Warn("Failed to persist override snapshot",
			logger.String("resource", res.String()),
			logger.Error(err),
		)
	}
	return nil
}

// ResetToBundled clears the snapshot cache and reseeds every collection from
// bundled data. Status returns to unknown, as if freshly started.
func (s *Store) ResetToBundled(ctx context.Context) error {
	seed, err := bundled.Load()
	if err != nil {
		return fmt.Errorf("reseed bundled content: %w", err)
	}
	if err := s.snapshots.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = seed.Topics
	s.questions = seed.Questions
	s.pathways = seed.PathwaySteps
	s.infertility = seed.InfertilityInfo
	s.resources = seed.Resources
	s.status = models.ConnectionStatus{State: models.StateUnknown}
	s.refresh = models.RefreshState{}
	s.log.Info("Collections reset to bundled data")
	return nil
}
