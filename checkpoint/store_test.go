package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlmesh/rlmesh/core"
)

// Interface compliance (compile-time assertions)
var (
	_ core.CheckpointStore = (*InMemoryStore)(nil)
	_ core.CheckpointStore = (*FSStore)(nil)
)

func stores(t *testing.T) map[string]core.CheckpointStore {
	t.Helper()
	fsStore, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	return map[string]core.CheckpointStore{
		"in_memory": NewInMemoryStore(),
		"fs":        fsStore,
	}
}

func TestStoreSaveGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("run1", "policy", []byte("abc")))

			data, err := s.Get("run1", "policy")
			require.NoError(t, err)
			assert.Equal(t, []byte("abc"), data)

			// overwrite
			require.NoError(t, s.Save("run1", "policy", []byte("xyz")))
			data, err = s.Get("run1", "policy")
			require.NoError(t, err)
			assert.Equal(t, []byte("xyz"), data)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("nope", "policy")
			assert.ErrorIs(t, err, core.ErrNotFound)

			require.NoError(t, s.Save("run1", "policy", []byte("abc")))
			_, err = s.Get("run1", "value")
			assert.ErrorIs(t, err, core.ErrNotFound)
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			names, err := s.List("run1")
			require.NoError(t, err)
			assert.Empty(t, names)

			require.NoError(t, s.Save("run1", "policy", []byte("a")))
			require.NoError(t, s.Save("run1", "value", []byte("b")))
			require.NoError(t, s.Save("run2", "policy", []byte("c")))

			names, err = s.List("run1")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"policy", "value"}, names)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("run1", "policy", []byte("a")))
			require.NoError(t, s.Delete("run1", "policy"))

			_, err := s.Get("run1", "policy")
			assert.ErrorIs(t, err, core.ErrNotFound)
			assert.ErrorIs(t, s.Delete("run1", "policy"), core.ErrNotFound)
		})
	}
}

func TestInMemoryStoreCopyIsolation(t *testing.T) {
	s := NewInMemoryStore()
	in := []byte{1, 2, 3}
	require.NoError(t, s.Save("run1", "policy", in))
	in[0] = 9

	out, err := s.Get("run1", "policy")
	require.NoError(t, err)
	assert.Equal(t, byte(1), out[0])

	out[1] = 9
	again, err := s.Get("run1", "policy")
	require.NoError(t, err)
	assert.Equal(t, byte(2), again[1])
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Save("..", "policy", nil))
	assert.Error(t, s.Save("run1", "a/b", nil))
	_, err = s.Get("run1", "..")
	assert.Error(t, err)
}
