package learn

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/patternd/patternd/internal/errors"
	"github.com/patternd/patternd/internal/logger"
)

// storeVersion is the schema version written into the pattern file.
const storeVersion = "1.0"

// confidenceStep is added to a pattern's confidence on each repeat
// detection, capped at 1.0.
const confidenceStep = 0.1

// patternFile is the on-disk document shape.
type patternFile struct {
	Version   string     `json:"version"`
	UpdatedAt float64    `json:"updated_at"`
	Patterns  []*Pattern `json:"patterns"`
}

// Store holds the deduplicated pattern population and persists it to a
// single JSON file. All mutation happens under one lock.
type Store struct {
	mu    sync.Mutex
	log   logger.Logger
	path  string
	max   int
	items map[string]*Pattern
}

// NewStore creates a store backed by the given file and loads any
// existing population from it. A missing or malformed file is logged and
// treated as starting empty, never as a failure. max bounds the
// population size; zero or negative means unbounded.
func NewStore(path string, max int, log logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	s := &Store{
		log:   log,
		path:  path,
		max:   max,
		items: make(map[string]*Pattern),
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Warn("Could not create pattern directory %s: %v", filepath.Dir(path), err)
	}
	s.load()
	return s
}

// Path returns the canonical pattern file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the current population size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add inserts the candidate as a new pattern, or merges it into the
// existing pattern with the same id: the timestamp is refreshed, the
// confidence is bumped by a fixed step, and new data values overlay the
// old ones. Inserting past the population limit evicts the entry with
// the smallest updated_at, ties broken by id.
func (s *Store) Add(c Candidate) {
	id := PatternID(c.Type, c.Data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[id]; ok {
		existing.UpdatedAt = c.ObservedAt
		existing.Confidence = math.Min(1.0, existing.Confidence+confidenceStep)
		for k, v := range c.Data {
			existing.Data[k] = v
		}
		return
	}

	s.items[id] = &Pattern{
		ID:         id,
		Type:       c.Type,
		Data:       c.Data,
		CreatedAt:  c.ObservedAt,
		UpdatedAt:  c.ObservedAt,
		Confidence: c.Confidence,
		Metadata:   c.Metadata,
	}
	if s.max > 0 && len(s.items) > s.max {
		s.evictOldest()
	}
}

func (s *Store) evictOldest() {
	var oldest *Pattern
	for _, p := range s.items {
		if oldest == nil || p.UpdatedAt < oldest.UpdatedAt ||
			(p.UpdatedAt == oldest.UpdatedAt && p.ID < oldest.ID) {
			oldest = p
		}
	}
	if oldest != nil {
		delete(s.items, oldest.ID)
		s.log.Debug("Evicted pattern %s to keep population at %d", oldest.ID, s.max)
	}
}

// List returns the population as value copies, newest first.
func (s *Store) List() []Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Pattern, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Persist writes the whole population to disk. The document goes to a
// temporary file first and is renamed over the canonical path, so a
// crash mid-write leaves the previous file intact.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := patternFile{
		Version:   storeVersion,
		UpdatedAt: epochSeconds(time.Now()),
		Patterns:  make([]*Pattern, 0, len(s.items)),
	}
	for _, p := range s.items {
		doc.Patterns = append(doc.Patterns, p)
	}
	sort.Slice(doc.Patterns, func(i, j int) bool {
		return doc.Patterns[i].ID < doc.Patterns[j].ID
	})

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Failed to encode patterns")
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to write pattern file",
			"Check that the data directory exists and is writable")
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "Failed to write pattern file")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "Failed to flush pattern file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "Failed to close pattern file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "Failed to replace pattern file")
	}
	return nil
}

// ReadFile reads a persisted pattern file without opening a store.
// Entries missing an id are skipped. Patterns come back newest first.
// A missing file yields an empty slice and no error.
func ReadFile(path string) ([]Pattern, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read pattern file",
			"Check that "+path+" is readable")
	}

	var doc patternFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Pattern file is malformed: "+path,
			"Delete or repair the file; patternd will rebuild it")
	}

	out := make([]Pattern, 0, len(doc.Patterns))
	for _, p := range doc.Patterns {
		if p == nil || p.ID == "" {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Could not read pattern file %s: %v", s.path, err)
		}
		return
	}

	var doc patternFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("Pattern file %s is malformed, starting empty: %v", s.path, err)
		return
	}

	for _, p := range doc.Patterns {
		if p == nil || p.ID == "" {
			continue
		}
		if p.Data == nil {
			p.Data = make(map[string]any)
		}
		s.items[p.ID] = p
	}
	s.log.Info("Loaded %d patterns from %s", len(s.items), s.path)
}
