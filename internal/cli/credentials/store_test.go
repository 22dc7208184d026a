package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "hotline-cli-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	_ = os.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Cleanup(func() { _ = os.Setenv("XDG_CONFIG_HOME", oldXDG) })

	store, err := NewStore()
	require.NoError(t, err)
	return store
}

func TestStoreConfigPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "hotline-cli-test-*")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	_ = os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", oldXDG) }()

	store, err := NewStore()
	require.NoError(t, err)

	expectedPath := filepath.Join(tmpDir, DefaultConfigDir, ConfigFileName)
	assert.Equal(t, expectedPath, store.ConfigPath())
}

func TestStoreOperations(t *testing.T) {
	store := newTestStore(t)

	// Test empty state
	_, err := store.GetDefaultBookmark()
	assert.ErrorIs(t, err, ErrNoDefaultBookmark)
	assert.Empty(t, store.ListBookmarks())

	// Add a bookmark
	b1 := &Bookmark{
		Name:    "home",
		Address: "hotline.example.com",
		Port:    5500,
		Login:   "guest",
	}
	err = store.SetBookmark("home", b1)
	require.NoError(t, err)

	// Use the bookmark
	err = store.UseBookmark("home")
	require.NoError(t, err)

	// Get default bookmark
	current, err := store.GetDefaultBookmark()
	require.NoError(t, err)
	assert.Equal(t, "hotline.example.com", current.Address)
	assert.Equal(t, uint16(5500), current.Port)
	assert.Equal(t, "guest", current.Login)

	// Add another bookmark
	b2 := &Bookmark{
		Name:    "work",
		Address: "hl.internal",
		Port:    5500,
	}
	err = store.SetBookmark("work", b2)
	require.NoError(t, err)

	// List bookmarks
	bookmarks := store.ListBookmarks()
	assert.Len(t, bookmarks, 2)
	assert.Contains(t, bookmarks, "home")
	assert.Contains(t, bookmarks, "work")

	// Switch default
	err = store.UseBookmark("work")
	require.NoError(t, err)
	assert.Equal(t, "work", store.GetDefaultBookmarkName())

	// Rename bookmark
	err = store.RenameBookmark("work", "office")
	require.NoError(t, err)
	assert.Equal(t, "office", store.GetDefaultBookmarkName())

	renamed, err := store.GetBookmark("office")
	require.NoError(t, err)
	assert.Equal(t, "office", renamed.Name)

	// Delete bookmark
	err = store.DeleteBookmark("office")
	require.NoError(t, err)
	assert.Empty(t, store.GetDefaultBookmarkName())

	// Try to get non-existent bookmark
	_, err = store.GetBookmark("nonexistent")
	assert.ErrorIs(t, err, ErrBookmarkNotFound)

	// Try to use non-existent bookmark
	err = store.UseBookmark("nonexistent")
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}

func TestStoreBookmarkCredentials(t *testing.T) {
	store := newTestStore(t)

	b := &Bookmark{
		Name:        "home",
		Address:     "hotline.example.com",
		Port:        5500,
		Login:       "admin",
		Password:    "secret",
		IconID:      414,
		AutoConnect: true,
	}
	require.NoError(t, store.SetBookmark("home", b))

	got, err := store.GetBookmark("home")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Login)
	assert.Equal(t, "secret", got.Password)
	assert.Equal(t, uint16(414), got.IconID)
	assert.True(t, got.AutoConnect)
}

func TestStorePreferences(t *testing.T) {
	store := newTestStore(t)

	// Get default preferences
	prefs := store.GetPreferences()
	assert.Empty(t, prefs.DefaultOutput)
	assert.Empty(t, prefs.Color)

	// Set preferences
	newPrefs := Preferences{
		DefaultOutput: "json",
		Color:         "auto",
		Editor:        "vim",
	}
	err := store.SetPreferences(newPrefs)
	require.NoError(t, err)

	// Verify preferences persisted
	prefs = store.GetPreferences()
	assert.Equal(t, "json", prefs.DefaultOutput)
	assert.Equal(t, "auto", prefs.Color)
	assert.Equal(t, "vim", prefs.Editor)
}
