package service

import (
	"context"
	"errors"
	"strings"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

type favoriteStore interface {
	Create(ctx context.Context, fav model.FavoriteLocation) (model.FavoriteLocation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.FavoriteLocation, error)
	DeleteForUser(ctx context.Context, userID int64, id int64) error
}

type FavoriteService struct {
	favorites favoriteStore
}

func NewFavoriteService(favorites favoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Add saves a location for owner. The same city may be saved more than once.
func (s *FavoriteService) Add(ctx context.Context, owner model.User, req model.FavoriteRequest) (model.FavoriteLocation, error) {
	req.City = strings.TrimSpace(req.City)
	req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	if req.Country == "" {
		req.Country = model.DefaultCountry
	}

	if err := validateStruct(req); err != nil {
		return model.FavoriteLocation{}, err
	}

	return s.favorites.Create(ctx, model.FavoriteLocation{
		UserID:  owner.ID,
		City:    req.City,
		Country: req.Country,
	})
}

func (s *FavoriteService) List(ctx context.Context, owner model.User) ([]model.FavoriteLocation, error) {
	return s.favorites.ListByUser(ctx, owner.ID)
}

// Delete removes one of owner's favorites. Ids that belong to someone else
// are reported exactly like ids that do not exist.
func (s *FavoriteService) Delete(ctx context.Context, owner model.User, id int64) error {
	err := s.favorites.DeleteForUser(ctx, owner.ID, id)
	if errors.Is(err, model.ErrFavoriteNotFound) {
		return apierror.NotFound(model.ErrFavoriteNotFound, "Favorite not found", "")
	}
	return err
}
