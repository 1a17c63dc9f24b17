package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netscript/pkg/script"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	require.NoError(t, s.Save(ctx, "home", script.Script{Filename: "hack.js", Code: "v1"}))
	require.NoError(t, s.Save(ctx, "home", script.Script{Filename: "hack.js", Code: "v2"}))

	got, err := s.Get(ctx, "home", "hack.js")
	require.NoError(t, err)
	assert.Equal(t, script.Script{Filename: "hack.js", Code: "v2"}, got)

	_, err = s.Get(ctx, "n00dles", "hack.js")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "hack.js on n00dles")
}

func TestSaveRejectsInvalidNames(t *testing.T) {
	s := openMemory(t)
	err := s.Save(context.Background(), "home", script.Script{Filename: "notes.txt"})
	assert.EqualError(t, err, `invalid script filename "notes.txt"`)
}

func TestListAndServers(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	for _, sc := range []script.Script{
		{Filename: "b.ts", Code: "b"},
		{Filename: "a.js", Code: "a"},
	} {
		require.NoError(t, s.Save(ctx, "home", sc))
	}
	require.NoError(t, s.Save(ctx, "foodnstuff", script.Script{Filename: "x.ns", Code: "x"}))

	scripts, err := s.List(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, []script.Script{{Filename: "a.js", Code: "a"}, {Filename: "b.ts", Code: "b"}}, scripts)

	none, err := s.List(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, none)

	servers, err := s.Servers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"foodnstuff", "home"}, servers)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, "home", script.Script{Filename: "a.js", Code: "a"}))

	require.NoError(t, s.Delete(ctx, "home", "a.js"))
	assert.True(t, errors.Is(s.Delete(ctx, "home", "a.js"), ErrNotFound))
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scripts.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "home", script.Script{Filename: "a.js", Code: "a"}))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "home", "a.js")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Code)
}
