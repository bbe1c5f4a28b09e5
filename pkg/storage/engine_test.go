package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestedset/pkg/nset"
)

func TestNewEngine_ShardCount(t *testing.T) {
	tests := []struct {
		name   string
		shards int
		want   int
	}{
		{name: "default", shards: 0, want: defaultShards},
		{name: "power of two", shards: 8, want: 8},
		{name: "rounded up", shards: 5, want: 8},
		{name: "single", shards: 1, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(tc.shards)
			if len(e.shards) != tc.want {
				t.Fatalf("expected %d shards, got %d", tc.want, len(e.shards))
			}
		})
	}
}

func TestEngine_PutGetDelete(t *testing.T) {
	e := NewEngine(4)

	v1 := e.Put("a", nset.MustParse("{1,{2}}"))
	v2 := e.Put("b", nset.New())
	assert.Greater(t, v2.Sequence, v1.Sequence)
	assert.Equal(t, 2, e.Len())

	got, v, ok := e.Get("a")
	require.True(t, ok)
	assert.Equal(t, v1, v)
	assert.Equal(t, "{1, {2}}", got.String())

	// Get hands out copies
	got.AddInt(3)
	again, _, _ := e.Get("a")
	assert.False(t, again.ContainsInt(3))

	v3 := e.Put("a", nset.New(9))
	assert.Greater(t, v3.Sequence, v2.Sequence)
	assert.Equal(t, 2, e.Len())

	assert.Equal(t, []string{"a", "b"}, e.Names())

	assert.True(t, e.Delete("a"))
	assert.False(t, e.Delete("a"))
	_, _, ok = e.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, e.Len())
}

func TestEngine_Update(t *testing.T) {
	e := NewEngine(2)
	e.Put("s", nset.New(1))

	_, err := e.Update("s", func(s *nset.Set) error {
		s.AddInt(2)
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = e.Update("s", func(s *nset.Set) error {
		s.AddInt(3)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _, _ := e.Get("s")
	assert.True(t, got.Equal(nset.New(1, 2)), "failed update must not leak: %s", got)

	_, err = e.Update("missing", func(*nset.Set) error { return nil })
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestEngine_PutWithDeleteWith(t *testing.T) {
	e := NewEngine(2)
	boom := errors.New("boom")
	fail := func(*nset.Set) error { return boom }

	_, err := e.PutWith("fresh", nset.New(1), fail)
	require.ErrorIs(t, err, boom)
	_, _, ok := e.Get("fresh")
	assert.False(t, ok, "failed first write must not leave an empty set")
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Names())

	e.Put("s", nset.New(1))
	_, err = e.PutWith("s", nset.New(2), fail)
	require.ErrorIs(t, err, boom)
	got, _, _ := e.Get("s")
	assert.Equal(t, "{1}", got.String())

	var persisted *nset.Set
	_, err = e.PutWith("s", nset.New(3), func(s *nset.Set) error {
		persisted = s
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "{3}", persisted.String())

	deleted, err := e.DeleteWith("s", func() error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, deleted)
	_, _, ok = e.Get("s")
	assert.True(t, ok, "failed delete must keep the set")

	calls := 0
	deleted, err = e.DeleteWith("s", func() error { calls++; return nil })
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = e.DeleteWith("s", func() error { calls++; return nil })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, calls, "remove runs only for a present set")
}

func TestEngine_ConcurrentUpdatesAreSerialised(t *testing.T) {
	e := NewEngine(8)
	e.Put("shared", nset.New())

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := e.Update("shared", func(s *nset.Set) error {
					s.AddInt(int64(w*perWorker + i))
					return nil
				})
				if err != nil {
					t.Errorf("update failed: %v", err)
					return
				}
			}
		}(w)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := fmt.Sprintf("k-%d-%d", w, i)
				e.Put(name, nset.New(int64(i)))
				e.Get(name)
				e.Get("shared")
			}
		}(w)
	}
	wg.Wait()

	got, _, ok := e.Get("shared")
	require.True(t, ok)
	assert.Equal(t, workers*perWorker, got.Size())
	assert.Equal(t, workers*perWorker+1, e.Len())
}
