package session

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreCreateAndReloadAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = store.CreateSession("s1")
	require.NoError(t, err)
	require.NoError(t, store.AddClauses("s1", []string{"cat(fluffy)."}))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	kb, err := reopened.GetKnowledgeBase("s1")
	require.NoError(t, err)
	assert.Equal(t, "cat(fluffy).", kb)
}

func TestFileStoreDeleteRemovesBackingFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = store.CreateSession("s1")
	require.NoError(t, err)

	ok, err := store.DeleteSession("s1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.GetSession("s1")
	assert.Error(t, err)
}

func TestFileStoreListSessionsSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = store.CreateSession("good")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dir+"/bad.json", []byte("not json"), 0o644))

	all, err := store.ListSessions()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFileStoreActiveStrategyPersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = store.CreateSession("s1")
	require.NoError(t, err)

	require.NoError(t, store.SetActiveStrategy("s1", "custom"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	active, ok, err := reopened.GetActiveStrategy("s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "custom", active)
}
