package repository

import (
	"context"
	"fmt"

	"weather-dashboard/internal/database"
	"weather-dashboard/internal/model"
)

type FavoriteRepository struct {
	db database.DBTX
}

func NewFavoriteRepository(db database.DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, fav model.FavoriteLocation) (model.FavoriteLocation, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorite_locations (user_id, city, country)
		 VALUES ($1, $2, $3)
		 RETURNING id, added_at`,
		fav.UserID, fav.City, fav.Country).Scan(&fav.ID, &fav.AddedAt)
	if err != nil {
		return model.FavoriteLocation{}, fmt.Errorf("create favorite: %w", err)
	}
	return fav, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.FavoriteLocation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, city, country, added_at
		 FROM favorite_locations WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteLocation, 0)
	for rows.Next() {
		var f model.FavoriteLocation
		if err := rows.Scan(&f.ID, &f.UserID, &f.City, &f.Country, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// DeleteForUser removes the favorite only when userID owns it. A foreign or
// unknown id yields ErrFavoriteNotFound either way.
func (r *FavoriteRepository) DeleteForUser(ctx context.Context, userID int64, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorite_locations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFavoriteNotFound
	}
	return nil
}
