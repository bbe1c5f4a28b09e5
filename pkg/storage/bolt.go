package storage

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"nestedset/pkg/nset"
)

// openTimeout bounds the wait for the database file lock.
const openTimeout = 2 * time.Second

// Backend persists named sets. Implementations store sets in the brace
// grammar.
type Backend interface {
	Save(name string, s *nset.Set) error
	Delete(name string) error
	LoadAll() (map[string]*nset.Set, error)
	Close() error
}

// BoltBackend keeps every set as brace-grammar text in one bolt bucket.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
}

func NewBoltBackend(path string, bucket string) (*BoltBackend, error) {
	if bucket == "" {
		return nil, ErrEmptyBucket
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt database %s", path)
	}

	backend := &BoltBackend{db: db, bucket: []byte(bucket)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(backend.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create bucket %s", bucket)
	}
	return backend, nil
}

func (b *BoltBackend) Save(name string, s *nset.Set) error {
	text, err := s.MarshalText()
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(name), text)
	})
	return errors.Wrapf(err, "save set %q", name)
}

func (b *BoltBackend) Delete(name string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(name))
	})
	return errors.Wrapf(err, "delete set %q", name)
}

// LoadAll parses every stored set. A record that no longer parses fails the
// whole load.
func (b *BoltBackend) LoadAll() (map[string]*nset.Set, error) {
	sets := make(map[string]*nset.Set)
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).ForEach(func(k, v []byte) error {
			s := nset.New()
			if err := s.UnmarshalText(v); err != nil {
				return errors.Wrapf(err, "stored set %q", k)
			}
			sets[string(k)] = s
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
