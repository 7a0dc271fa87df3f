package model

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FavoriteRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	Country string `json:"country" validate:"omitempty,max=64"`
}
