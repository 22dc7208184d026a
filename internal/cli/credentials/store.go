// Package credentials provides bookmark storage for the hotline CLI.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the default directory for hotline-cli configuration.
	DefaultConfigDir = "hotline-cli"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.json"
	// FilePermissions for config files (read/write for owner only).
	FilePermissions = 0600
	// DirPermissions for config directories.
	DirPermissions = 0700
)

var (
	// ErrNoDefaultBookmark indicates no default bookmark is set.
	ErrNoDefaultBookmark = errors.New("no default bookmark set")
	// ErrBookmarkNotFound indicates the requested bookmark doesn't exist.
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

// Bookmark is a saved connection to a Hotline server. It is a convenience
// for the CLI only; the client library itself has no notion of persisted
// connections.
type Bookmark struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Port        uint16 `json:"port"`
	Login       string `json:"login,omitempty"`
	Password    string `json:"password,omitempty"`
	IconID      uint16 `json:"icon_id,omitempty"`
	AutoConnect bool   `json:"auto_connect,omitempty"`
}

// Preferences represents user preferences for the CLI.
type Preferences struct {
	DefaultOutput string `json:"default_output,omitempty"` // table, json, yaml
	Color         string `json:"color,omitempty"`          // auto, always, never
	Editor        string `json:"editor,omitempty"`
}

// Config represents the complete hotline-cli configuration.
type Config struct {
	DefaultBookmark string               `json:"default_bookmark"`
	Bookmarks       map[string]*Bookmark `json:"bookmarks"`
	Preferences     Preferences          `json:"preferences,omitempty"`
}

// Store manages bookmark storage and retrieval.
type Store struct {
	configPath string
	config     *Config
}

// NewStore creates a new bookmark store.
func NewStore() (*Store, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	store := &Store{
		configPath: configPath,
	}

	if err := store.load(); err != nil {
		if os.IsNotExist(err) {
			store.config = &Config{
				Bookmarks: make(map[string]*Bookmark),
			}
		} else {
			return nil, err
		}
	}

	return store, nil
}

// getConfigPath returns the path to the config file.
func getConfigPath() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, DefaultConfigDir, ConfigFileName), nil
}

// load reads the config from disk.
func (s *Store) load() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}

	s.config = &Config{}
	return json.Unmarshal(data, s.config)
}

// save writes the config to disk.
func (s *Store) save() error {
	dir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configPath, data, FilePermissions)
}

// GetDefaultBookmark returns the default bookmark.
func (s *Store) GetDefaultBookmark() (*Bookmark, error) {
	if s.config.DefaultBookmark == "" {
		return nil, ErrNoDefaultBookmark
	}

	b, ok := s.config.Bookmarks[s.config.DefaultBookmark]
	if !ok {
		return nil, ErrBookmarkNotFound
	}

	return b, nil
}

// GetDefaultBookmarkName returns the name of the default bookmark.
func (s *Store) GetDefaultBookmarkName() string {
	return s.config.DefaultBookmark
}

// GetBookmark returns a specific bookmark by name.
func (s *Store) GetBookmark(name string) (*Bookmark, error) {
	b, ok := s.config.Bookmarks[name]
	if !ok {
		return nil, ErrBookmarkNotFound
	}
	return b, nil
}

// ListBookmarks returns all bookmark names.
func (s *Store) ListBookmarks() []string {
	names := make([]string, 0, len(s.config.Bookmarks))
	for name := range s.config.Bookmarks {
		names = append(names, name)
	}
	return names
}

// SetBookmark creates or updates a bookmark.
func (s *Store) SetBookmark(name string, b *Bookmark) error {
	if s.config.Bookmarks == nil {
		s.config.Bookmarks = make(map[string]*Bookmark)
	}
	s.config.Bookmarks[name] = b
	return s.save()
}

// UseBookmark sets the default bookmark.
func (s *Store) UseBookmark(name string) error {
	if _, ok := s.config.Bookmarks[name]; !ok {
		return ErrBookmarkNotFound
	}
	s.config.DefaultBookmark = name
	return s.save()
}

// RenameBookmark renames a bookmark.
func (s *Store) RenameBookmark(oldName, newName string) error {
	b, ok := s.config.Bookmarks[oldName]
	if !ok {
		return ErrBookmarkNotFound
	}

	delete(s.config.Bookmarks, oldName)
	b.Name = newName
	s.config.Bookmarks[newName] = b

	if s.config.DefaultBookmark == oldName {
		s.config.DefaultBookmark = newName
	}

	return s.save()
}

// DeleteBookmark removes a bookmark.
func (s *Store) DeleteBookmark(name string) error {
	if _, ok := s.config.Bookmarks[name]; !ok {
		return ErrBookmarkNotFound
	}

	delete(s.config.Bookmarks, name)

	if s.config.DefaultBookmark == name {
		s.config.DefaultBookmark = ""
	}

	return s.save()
}

// GetPreferences returns the user preferences.
func (s *Store) GetPreferences() Preferences {
	return s.config.Preferences
}

// SetPreferences updates the user preferences.
func (s *Store) SetPreferences(prefs Preferences) error {
	s.config.Preferences = prefs
	return s.save()
}

// ConfigPath returns the path to the config file.
func (s *Store) ConfigPath() string {
	return s.configPath
}
