// Package identity owns the user map and the current-session pointer.
// Users are keyed by opaque id; display names are unique
// case-insensitively. Users are never deleted.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hikaya/api/internal/storage"
	"hikaya/api/internal/util"
)

const (
	usersKey   = "users"
	sessionKey = "session"
)

var (
	// ErrNameTaken is returned by Register when another user already
	// holds the name (compared case-insensitively).
	ErrNameTaken = errors.New("name already taken")
	// ErrNotFound is returned when no user matches the given id or name.
	ErrNotFound = errors.New("user not found")
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Store reads and writes the user map as a whole. Every mutation is a
// full read-modify-write of the map under one key; the last writer wins.
type Store struct {
	storage storage.Store
}

func NewStore(s storage.Store) *Store {
	return &Store{storage: s}
}

// ListUsers returns the full user map, seeding the demo users on first
// access so the seeded story content has authors to point at.
func (s *Store) ListUsers(ctx context.Context) (map[string]User, error) {
	raw, ok, err := s.storage.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var users map[string]User
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("decode user map: %w", err)
		}
		return users, nil
	}

	users := seedUsers()
	if err := s.save(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) save(ctx context.Context, users map[string]User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user map: %w", err)
	}
	return s.storage.Set(ctx, usersKey, raw)
}

// FindByName matches the name case-insensitively.
func (s *Store) FindByName(ctx context.Context, name string) (User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Name, name) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

// IsNameTaken reports whether any user holds the name, ignoring case.
func (s *Store) IsNameTaken(ctx context.Context, name string) (bool, error) {
	_, err := s.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Register creates a user with a fresh id and a default avatar derived
// from that id, and persists immediately.
func (s *Store) Register(ctx context.Context, name string) (User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Name, name) {
			return User{}, ErrNameTaken
		}
	}

	id := util.NewID("user")
	user := User{
		ID:     id,
		Name:   name,
		Avatar: defaultAvatar(id),
	}
	users[id] = user
	if err := s.save(ctx, users); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return User{}, err
	}
	user, ok := users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// UpdateAvatar replaces the avatar of an existing user. Unknown ids
// report ErrNotFound without writing anything.
func (s *Store) UpdateAvatar(ctx context.Context, id, avatar string) (User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return User{}, err
	}
	user, ok := users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Avatar = avatar
	users[id] = user
	if err := s.save(ctx, users); err != nil {
		return User{}, err
	}
	return user, nil
}

// CurrentSessionID returns the persisted session pointer, or "" when
// nobody is logged in.
func (s *Store) CurrentSessionID(ctx context.Context) (string, error) {
	raw, ok, err := s.storage.Get(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// SetCurrentSessionID persists the session pointer; an empty id clears it.
func (s *Store) SetCurrentSessionID(ctx context.Context, id string) error {
	if id == "" {
		return s.storage.Delete(ctx, sessionKey)
	}
	return s.storage.Set(ctx, sessionKey, []byte(id))
}

func defaultAvatar(id string) string {
	return "https://i.pravatar.cc/150?u=" + id
}
