package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// StorageKey is the key the whole preference object is persisted under.
const StorageKey = "pydat5-prefs"

// Storage is the client's local key/value store.
type Storage interface {
	// Load returns the value stored under key. ok is false when nothing
	// has been stored yet.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store is the runtime holder of preference values. It is the single source
// of truth during a session and writes itself back to Storage after every
// successful change.
type Store struct {
	schema  *Schema
	storage Storage
	logger  *slog.Logger

	mu          sync.Mutex
	initialized bool
	values      map[string]map[string]any
	// stale holds namespaces found in storage that nothing declares. They
	// are written back unchanged and never readable.
	stale map[string]any
}

// NewStore binds a schema to a storage backend. It performs no I/O.
func NewStore(schema *Schema, storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		schema:  schema,
		storage: storage,
		logger:  logger,
		values:  make(map[string]map[string]any),
		stale:   make(map[string]any),
	}
}

// Initialize loads the persisted object, fills every declared preference
// missing from it with its default, and writes the merged object back.
// Values already stored for known preferences are kept.
func (s *Store) Initialize(ctx context.Context) error {
	data, ok, err := s.storage.Load(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	stored := map[string]any{}
	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, &stored); err != nil || stored == nil {
			s.logger.Warn("discarding unreadable preference storage", "key", StorageKey, "error", err)
			stored = map[string]any{}
		}
	}

	values := make(map[string]map[string]any)
	stale := make(map[string]any)
	declared := s.schema.Namespaces()
	known := make(map[string]bool, len(declared))
	for _, ns := range declared {
		known[ns.Name] = true
	}
	for name, raw := range stored {
		if !known[name] {
			stale[name] = raw
		}
	}

	for _, ns := range declared {
		current := map[string]any{}
		switch raw := stored[ns.Name].(type) {
		case map[string]any:
			current = raw
		case nil:
		default:
			s.logger.Warn("resetting malformed preference namespace", "namespace", ns.Name)
		}
		for _, p := range s.schema.Preferences(ns.Name) {
			v, present := current[p.Name]
			if present && v != nil {
				if err := p.Type.check(v); err == nil {
					continue
				}
				s.logger.Warn("stored preference has wrong type, using default",
					"namespace", ns.Name, "preference", p.Name, "type", p.Type)
			} else if present && p.Type == TypeAny {
				continue
			}
			current[p.Name] = clone(p.Default)
		}
		values[ns.Name] = current
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
	s.stale = stale
	s.initialized = true
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.logger.Debug("preferences initialized", "namespaces", len(values), "stale", len(stale))
	return nil
}

// Initialized reports whether Initialize has completed.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Get returns the current value of ns:name.
func (s *Store) Get(ns, name string) (any, error) {
	if _, err := s.schema.Lookup(ns, name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return clone(s.values[ns][name]), nil
}

// GetAll returns a copy of every declared preference value in ns.
func (s *Store) GetAll(ns string) (map[string]any, error) {
	if _, ok := s.schema.Namespace(ns); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredNamespace, ns)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return s.declaredLocked(ns), nil
}

func (s *Store) declaredLocked(ns string) map[string]any {
	decls := s.schema.Preferences(ns)
	out := make(map[string]any, len(decls))
	for _, p := range decls {
		out[p.Name] = clone(s.values[ns][p.Name])
	}
	return out
}

// Set validates value against the declared type of ns:name, stores it and
// persists the whole store. On any error the stored value is unchanged.
func (s *Store) Set(ctx context.Context, ns, name string, value any) error {
	p, err := s.schema.Lookup(ns, name)
	if err != nil {
		return err
	}
	v, err := p.Type.coerce(value)
	if err != nil {
		return fmt.Errorf("preference %s:%s: %w", ns, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	vals, ok := s.values[ns]
	if !ok {
		vals = map[string]any{}
		s.values[ns] = vals
	}
	old, had := vals[name]
	vals[name] = v
	if err := s.persistLocked(ctx); err != nil {
		if had {
			vals[name] = old
		} else {
			delete(vals, name)
		}
		return err
	}
	return nil
}

// Clear discards every customization, including stale keys, and persists
// the schema defaults.
func (s *Store) Clear(ctx context.Context) error {
	defaults := s.schema.Defaults()
	s.mu.Lock()
	defer s.mu.Unlock()
	prevValues, prevStale := s.values, s.stale
	s.values = defaults
	s.stale = make(map[string]any)
	s.initialized = true
	if err := s.persistLocked(ctx); err != nil {
		s.values, s.stale = prevValues, prevStale
		return err
	}
	return nil
}

// Export returns a copy of every declared preference value, by namespace.
func (s *Store) Export() (map[string]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	out := make(map[string]map[string]any)
	for _, ns := range s.schema.Namespaces() {
		out[ns.Name] = s.declaredLocked(ns.Name)
	}
	return out, nil
}

// Import sets many values at once. Every value is validated first; if any
// fails, nothing is changed.
func (s *Store) Import(ctx context.Context, in map[string]map[string]any) error {
	staged := make(map[string]map[string]any, len(in))
	for ns, vals := range in {
		staged[ns] = make(map[string]any, len(vals))
		for name, value := range vals {
			p, err := s.schema.Lookup(ns, name)
			if err != nil {
				return err
			}
			v, err := p.Type.coerce(value)
			if err != nil {
				return fmt.Errorf("preference %s:%s: %w", ns, name, err)
			}
			staged[ns][name] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	prev := make(map[string]map[string]any, len(s.values))
	for ns, vals := range s.values {
		prev[ns] = clone(map[string]any(vals)).(map[string]any)
	}
	for ns, vals := range staged {
		if s.values[ns] == nil {
			s.values[ns] = map[string]any{}
		}
		for name, v := range vals {
			s.values[ns][name] = v
		}
	}
	if err := s.persistLocked(ctx); err != nil {
		s.values = prev
		return err
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	out := make(map[string]any, len(s.values)+len(s.stale))
	for ns, raw := range s.stale {
		out[ns] = raw
	}
	for ns, vals := range s.values {
		out[ns] = vals
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.storage.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
