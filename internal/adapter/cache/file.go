package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"exchange-chat-service/internal/domain/model"
	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

// FileStore persists raw day payloads as an indented JSON document keyed by
// DD.MM.YYYY date strings. The store only grows: entries are never evicted
// or expired, and Save rewrites the whole document.
//
// All file I/O runs on a bounded pool of workers; callers block on a reply
// channel so a slow disk stalls only the requesting goroutine.
type FileStore struct {
	path    string
	jobs    chan func()
	wg      sync.WaitGroup
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewFileStore(path string, workers int, log *logger.Logger, metrics *metrics.Metrics) *FileStore {
	if workers < 1 {
		workers = 1
	}

	s := &FileStore{
		path:    path,
		jobs:    make(chan func()),
		log:     log,
		metrics: metrics,
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	return s
}

func (s *FileStore) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		job()
	}
}

// Close stops accepting work and waits for in-flight jobs to finish.
func (s *FileStore) Close() {
	close(s.jobs)
	s.wg.Wait()
}

type loadResult struct {
	snapshot map[string]model.DayPayload
	err      error
}

// Load reads the whole store. A missing file is not an error: the store
// starts empty.
func (s *FileStore) Load(ctx context.Context) (map[string]model.DayPayload, error) {
	resultCh := make(chan loadResult, 1)
	job := func() {
		snapshot, err := s.readFile()
		resultCh <- loadResult{snapshot: snapshot, err: err}
	}

	select {
	case s.jobs <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case result := <-resultCh:
		if result.err != nil {
			return nil, result.err
		}
		s.metrics.CacheLoadsTotal.Inc()
		s.log.Debug("Loaded rate cache", "path", s.path, "entries", len(result.snapshot))
		return result.snapshot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Save rewrites the whole store with the given snapshot. The write is not
// atomic against a crash mid-write.
func (s *FileStore) Save(ctx context.Context, snapshot map[string]model.DayPayload) error {
	errCh := make(chan error, 1)
	job := func() {
		errCh <- s.writeFile(snapshot)
	}

	select {
	case s.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		s.metrics.CacheSavesTotal.Inc()
		s.log.Debug("Saved rate cache", "path", s.path, "entries", len(snapshot))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *FileStore) readFile() (map[string]model.DayPayload, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]model.DayPayload{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file %s: %w", s.path, err)
	}

	snapshot := make(map[string]model.DayPayload)
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cache file %s: %w", s.path, err)
	}
	return snapshot, nil
}

func (s *FileStore) writeFile(snapshot map[string]model.DayPayload) error {
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return fmt.Errorf("encode cache snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file %s: %w", s.path, err)
	}
	return nil
}
