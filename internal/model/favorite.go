package model

import "time"

const DefaultCountry = "US"

type FavoriteLocation struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"-"`
	City    string    `json:"city"`
	Country string    `json:"country"`
	AddedAt time.Time `json:"added_at"`
}

type FavoriteList struct {
	Favorites []FavoriteLocation `json:"favorites"`
}
