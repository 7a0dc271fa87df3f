// Package repotest provides in-memory stores with the same contracts as the
// Postgres repositories, for handler and router tests.
package repotest

import (
	"context"
	"sync"
	"time"

	"weather-dashboard/internal/model"
)

type Users struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]model.User
}

func NewUsers() *Users {
	return &Users{byName: map[string]model.User{}}
}

func (s *Users) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byName[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *Users) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byName[username]
	return ok, nil
}

func (s *Users) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byName {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Users) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[u.Username]; ok {
		return model.User{}, model.ErrUserAlreadyExists
	}
	for _, existing := range s.byName {
		if existing.Email == u.Email {
			return model.User{}, model.ErrEmailAlreadyExists
		}
	}

	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	s.byName[u.Username] = u
	return u, nil
}

func (s *Users) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

type Favorites struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.FavoriteLocation
}

func NewFavorites() *Favorites {
	return &Favorites{}
}

func (s *Favorites) Create(_ context.Context, fav model.FavoriteLocation) (model.FavoriteLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	fav.ID = s.nextID
	fav.AddedAt = time.Now().UTC()
	s.rows = append(s.rows, fav)
	return fav, nil
}

func (s *Favorites) ListByUser(_ context.Context, userID int64) ([]model.FavoriteLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.FavoriteLocation, 0)
	for _, fav := range s.rows {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (s *Favorites) DeleteForUser(_ context.Context, userID int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.rows {
		if fav.ID == id && fav.UserID == userID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return model.ErrFavoriteNotFound
}

// Get looks a favorite up by id regardless of owner.
func (s *Favorites) Get(id int64) (model.FavoriteLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fav := range s.rows {
		if fav.ID == id {
			return fav, true
		}
	}
	return model.FavoriteLocation{}, false
}
