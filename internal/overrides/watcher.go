// Package overrides watches a local directory for <resource>.json files and
// applies them to the content store. It exists for development and editorial
// preview: drop a topics.json next to the service and the served collection
// updates without a deploy.
package overrides

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
	"github.com/petalhealth/content-service/internal/store"
)

// Watcher applies local JSON override files to the store.
type Watcher struct {
	dir     string
	store   *store.Store
	log     logger.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for dir. The directory must exist.
func NewWatcher(dir string, st *store.Store, log logger.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("overrides dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("overrides path %s is not a directory", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{dir: dir, store: st, log: log, watcher: fsw}, nil
}

// Run applies any override files already present, then blocks applying
// changes until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	if err := w.applyExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.applyFile(ctx, event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Overrides watcher error", logger.Error(err))
		}
	}
}

func (w *Watcher) applyExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read overrides dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			w.applyFile(ctx, filepath.Join(w.dir, entry.Name()))
		}
	}
	return nil
}

// applyFile loads one override file. Files that are not <resource>.json, or
// that fail to decode, are logged and skipped.
func (w *Watcher) applyFile(ctx context.Context, path string) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") {
		return
	}
	res, err := models.ParseResource(strings.TrimSuffix(name, ".json"))
	if err != nil {
		w.log.Debug("Ignoring unknown override file", logger.String("file", name))
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Warn("Failed to read override file",
			logger.String("file", name),
			logger.Error(err),
		)
		return
	}

	records, err := decodeOverride(res, data)
	if err != nil {
		w.log.Warn("Skipping invalid override file",
			logger.String("file", name),
			logger.Error(err),
		)
		return
	}

	if err := w.store.ApplyOverride(ctx, res, records); err != nil {
		w.log.Warn("Failed to apply override",
			logger.String("resource", res.String()),
			logger.Error(err),
		)
		return
	}
	w.log.Info("Applied local override",
		logger.String("resource", res.String()),
		logger.String("file", name),
	)
}

func decodeOverride(res models.Resource, data []byte) (any, error) {
	switch res {
	case models.ResourceTopics:
		return decodeRecords[models.Topic](res, data)
	case models.ResourceQuestions:
		return decodeRecords[models.Question](res, data)
	case models.ResourcePathways:
		return decodeRecords[models.PathwayStep](res, data)
	case models.ResourceInfertility:
		return decodeRecords[models.InfertilityInfo](res, data)
	case models.ResourceResources:
		return decodeRecords[models.SupportResource](res, data)
	}
	return nil, fmt.Errorf("unsupported resource %q", res)
}

// decodeRecords decodes an override batch, dropping records that fail
// validation like every other ingest path.
func decodeRecords[T models.Record](res models.Resource, data []byte) ([]T, error) {
	var all []T
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode %s override: %w", res, err)
	}
	valid := make([]T, 0, len(all))
	for _, record := range all {
		if record.Validate() == nil {
			valid = append(valid, record)
		}
	}
	return valid, nil
}
