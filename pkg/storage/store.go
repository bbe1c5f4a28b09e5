package storage

import (
	"log/slog"

	"github.com/pkg/errors"

	"nestedset/pkg/nset"
)

// Store is the named-set store: an Engine for concurrent in-memory access and
// an optional Backend that receives every write.
//
// Sets handed in are copied and sets handed out are copies, so callers never
// share a handle with the store.
type Store struct {
	engine  *Engine
	backend Backend
	logger  *slog.Logger
}

// NewStore creates a store over engine. backend may be nil for a purely
// in-memory store; logger may be nil for slog.Default().
func NewStore(engine *Engine, backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		engine:  engine,
		backend: backend,
		logger:  logger.With("component", "store"),
	}
}

// Restore loads every set from the backend into the engine.
func (store *Store) Restore() error {
	if store.backend == nil {
		return nil
	}
	sets, err := store.backend.LoadAll()
	if err != nil {
		return errors.Wrap(err, "restore sets")
	}
	for name, s := range sets {
		store.engine.Put(name, s)
	}
	store.logger.Debug("restored sets", "count", len(sets))
	return nil
}

func (store *Store) Get(name string) (*nset.Set, error) {
	s, _, ok := store.engine.Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrSetNotFound, "%q", name)
	}
	return s, nil
}

func (store *Store) Put(name string, s *nset.Set) error {
	if name == "" {
		return ErrEmptyName
	}
	stored := s.Clone()
	v, err := store.engine.PutWith(name, stored, func(s *nset.Set) error {
		return store.persist(name, s)
	})
	if err != nil {
		return err
	}
	store.logger.Debug("stored set", "name", name, "size", stored.Size(), "version", v.Sequence)
	return nil
}

// Update applies fn to the set under name while holding that set's
// exclusive lock, then persists the result.
func (store *Store) Update(name string, fn func(s *nset.Set) error) error {
	v, err := store.engine.Update(name, func(s *nset.Set) error {
		if err := fn(s); err != nil {
			return err
		}
		return store.persist(name, s)
	})
	if err != nil {
		if errors.Is(err, ErrSetNotFound) {
			return errors.Wrapf(err, "%q", name)
		}
		return err
	}
	store.logger.Debug("updated set", "name", name, "version", v.Sequence)
	return nil
}

func (store *Store) Delete(name string) error {
	ok, err := store.engine.DeleteWith(name, func() error {
		if store.backend == nil {
			return nil
		}
		return store.backend.Delete(name)
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrSetNotFound, "%q", name)
	}
	store.logger.Debug("deleted set", "name", name)
	return nil
}

func (store *Store) Names() []string {
	return store.engine.Names()
}

// Lookup and Bind let the store serve as an expression environment.
func (store *Store) Lookup(name string) (*nset.Set, bool) {
	s, _, ok := store.engine.Get(name)
	return s, ok
}

func (store *Store) Bind(name string, s *nset.Set) error {
	return store.Put(name, s)
}

func (store *Store) Close() error {
	if store.backend == nil {
		return nil
	}
	return store.backend.Close()
}

func (store *Store) persist(name string, s *nset.Set) error {
	if store.backend == nil {
		return nil
	}
	return store.backend.Save(name, s)
}
