package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/apierror"
)

func TestFavoriteServiceAdd(t *testing.T) {
	t.Parallel()

	owner := model.User{ID: 3, Username: "alice"}

	t.Run("defaults country to US", func(t *testing.T) {
		favorites := new(repository.MockFavoriteRepository)
		svc := NewFavoriteService(favorites)
		stored := model.FavoriteLocation{ID: 10, UserID: 3, City: "Austin", Country: "US", AddedAt: time.Now().UTC()}

		favorites.On("Create", mock.Anything, model.FavoriteLocation{UserID: 3, City: "Austin", Country: "US"}).Return(stored, nil)

		fav, err := svc.Add(context.Background(), owner, model.FavoriteRequest{City: " Austin "})
		require.NoError(t, err)
		assert.Equal(t, stored, fav)
		favorites.AssertExpectations(t)
	})

	t.Run("keeps explicit country", func(t *testing.T) {
		favorites := new(repository.MockFavoriteRepository)
		svc := NewFavoriteService(favorites)

		favorites.On("Create", mock.Anything, model.FavoriteLocation{UserID: 3, City: "Paris", Country: "FR"}).
			Return(model.FavoriteLocation{ID: 11, UserID: 3, City: "Paris", Country: "FR"}, nil)

		fav, err := svc.Add(context.Background(), owner, model.FavoriteRequest{City: "Paris", Country: "fr"})
		require.NoError(t, err)
		assert.Equal(t, "FR", fav.Country)
	})

	t.Run("city is required", func(t *testing.T) {
		favorites := new(repository.MockFavoriteRepository)
		svc := NewFavoriteService(favorites)

		_, err := svc.Add(context.Background(), owner, model.FavoriteRequest{City: "   "})
		require.ErrorIs(t, err, model.ErrInvalidInput)
		favorites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFavoriteServiceDelete(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 1, Username: "alice"}
	bob := model.User{ID: 2, Username: "bob"}

	favorites := new(repository.MockFavoriteRepository)
	svc := NewFavoriteService(favorites)

	favorites.On("DeleteForUser", mock.Anything, int64(1), int64(42)).Return(nil)
	favorites.On("DeleteForUser", mock.Anything, int64(2), int64(42)).Return(model.ErrFavoriteNotFound)
	favorites.On("DeleteForUser", mock.Anything, int64(1), int64(99)).Return(errors.New("connection reset"))

	require.NoError(t, svc.Delete(context.Background(), alice, 42))

	err := svc.Delete(context.Background(), bob, 42)
	require.ErrorIs(t, err, model.ErrFavoriteNotFound)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)

	err = svc.Delete(context.Background(), alice, 99)
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrFavoriteNotFound)
}

func TestFavoriteServiceList(t *testing.T) {
	t.Parallel()

	favorites := new(repository.MockFavoriteRepository)
	svc := NewFavoriteService(favorites)
	want := []model.FavoriteLocation{{ID: 1, UserID: 5, City: "Paris", Country: "FR"}}
	favorites.On("ListByUser", mock.Anything, int64(5)).Return(want, nil)

	got, err := svc.List(context.Background(), model.User{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
