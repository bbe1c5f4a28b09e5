package storage

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"nestedset/pkg/nset"
	"nestedset/pkg/structs"
)

const defaultShards = 16

// Version identifies one state of a named set.
type Version struct {
	// Sequence grows by one with every write to the engine.
	Sequence  int64
	UpdatedAt time.Time
}

// Entry holds one named top-level set. Its mutex is the single lock that
// serialises every access to the set and to the nested sets it references.
type Entry struct {
	mu        sync.RWMutex
	set       *nset.Set
	version   Version
	tombstone bool // entry was deleted from its shard
}

// live reports whether the entry holds a written set. A fresh entry has no
// version until its first Put completes.
func (entry *Entry) live() bool {
	return !entry.tombstone && entry.version.Sequence > 0
}

type shard struct {
	mu   sync.RWMutex
	data map[string]*Entry
}

// Engine is a sharded in-memory map of named sets.
type Engine struct {
	shards    []*shard
	mask      uint32
	seq       atomic.Int64
	countKeys atomic.Int64
}

// NewEngine creates an engine with numShards rounded up to a power of two.
func NewEngine(numShards int) *Engine {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	e := &Engine{shards: make([]*shard, n), mask: uint32(n - 1)}
	for i := range e.shards {
		e.shards[i] = &shard{data: make(map[string]*Entry)}
	}
	return e
}

func (e *Engine) shardFor(name string) *shard {
	h := fnv.New32a()
	h.Write([]byte(name))
	return e.shards[h.Sum32()&e.mask]
}

func (e *Engine) nextVersion() Version {
	return Version{Sequence: e.seq.Add(1), UpdatedAt: time.Now()}
}

// entry returns the live entry for name.
func (e *Engine) entry(name string) (*Entry, bool) {
	sh := e.shardFor(name)
	sh.mu.RLock()
	entry, ok := sh.data[name]
	sh.mu.RUnlock()
	return entry, ok
}

// Get returns a copy of the set stored under name.
func (e *Engine) Get(name string) (*nset.Set, Version, bool) {
	entry, ok := e.entry(name)
	if !ok {
		return nil, Version{}, false
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	if !entry.live() {
		return nil, Version{}, false
	}
	return entry.set.Clone(), entry.version, true
}

// Put stores s under name, replacing any previous set. s is owned by the
// engine afterwards.
func (e *Engine) Put(name string, s *nset.Set) Version {
	v, _ := e.PutWith(name, s, nil)
	return v
}

// PutWith is Put with a persist hook that runs under the entry's exclusive
// lock before s is installed. If persist fails the previous set stays.
func (e *Engine) PutWith(name string, s *nset.Set, persist func(s *nset.Set) error) (Version, error) {
	for {
		entry := e.getOrCreate(name)

		entry.mu.Lock()
		if entry.tombstone {
			// deleted between lookup and lock, start over
			entry.mu.Unlock()
			continue
		}
		if persist != nil {
			if err := persist(s); err != nil {
				if !entry.live() {
					e.unlink(name, entry)
				}
				entry.mu.Unlock()
				return Version{}, err
			}
		}
		entry.set = s
		entry.version = e.nextVersion()
		v := entry.version
		entry.mu.Unlock()
		return v, nil
	}
}

func (e *Engine) getOrCreate(name string) *Entry {
	sh := e.shardFor(name)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	entry, ok := sh.data[name]
	if !ok {
		entry = &Entry{set: nset.New()}
		sh.data[name] = entry
		e.countKeys.Add(1)
	}
	return entry
}

// Update runs fn on the set stored under name while holding its exclusive
// lock. The set is left untouched if fn fails.
func (e *Engine) Update(name string, fn func(s *nset.Set) error) (Version, error) {
	entry, ok := e.entry(name)
	if !ok {
		return Version{}, ErrSetNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !entry.live() {
		return Version{}, ErrSetNotFound
	}

	working := entry.set.Clone()
	if err := fn(working); err != nil {
		return Version{}, err
	}
	entry.set = working
	entry.version = e.nextVersion()
	return entry.version, nil
}

func (e *Engine) Delete(name string) bool {
	ok, _ := e.DeleteWith(name, nil)
	return ok
}

// DeleteWith removes name, running remove under the entry's exclusive lock
// first. If remove fails the set stays.
func (e *Engine) DeleteWith(name string, remove func() error) (bool, error) {
	for {
		entry, ok := e.entry(name)
		if !ok {
			return false, nil
		}

		entry.mu.Lock()
		if entry.tombstone {
			entry.mu.Unlock()
			continue
		}
		if !entry.live() {
			entry.mu.Unlock()
			return false, nil
		}
		if remove != nil {
			if err := remove(); err != nil {
				entry.mu.Unlock()
				return false, err
			}
		}
		e.unlink(name, entry)
		entry.mu.Unlock()
		return true, nil
	}
}

// unlink drops entry from its shard and marks it deleted. The caller holds
// entry.mu; shard locks are always taken after entry locks.
func (e *Engine) unlink(name string, entry *Entry) {
	sh := e.shardFor(name)
	sh.mu.Lock()
	if sh.data[name] == entry {
		delete(sh.data, name)
		e.countKeys.Add(-1)
	}
	sh.mu.Unlock()
	entry.tombstone = true
}

// Names returns the stored names in ascending order.
func (e *Engine) Names() []string {
	names := structs.NewSet[string]()
	for _, sh := range e.shards {
		sh.mu.RLock()
		for name := range sh.data {
			names.Add(name)
		}
		sh.mu.RUnlock()
	}
	return structs.Sorted(names)
}

func (e *Engine) Len() int {
	return int(e.countKeys.Load())
}
