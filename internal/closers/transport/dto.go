package transport

import "time"

type CreateCloserRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type CloserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListClosersResponse struct {
	Closers []CloserResponse `json:"closers"`
}
