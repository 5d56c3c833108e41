package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest alta de categoría de bienes.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCategoryRequest campos opcionales a actualizar.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

// CategoryResponse una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateReliefGoodRequest alta de un bien de ayuda.
type CreateReliefGoodRequest struct {
	CategoryID int64           `json:"category_id" validate:"required,gt=0"`
	Name       string          `json:"name" validate:"required,max=200"`
	Unit       string          `json:"unit" validate:"required,max=50"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// UpdateReliefGoodRequest campos opcionales a actualizar.
type UpdateReliefGoodRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=200"`
	Unit     *string          `json:"unit" validate:"omitempty,max=50"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Active   *bool            `json:"active"`
}

// ReliefGoodResponse un bien de ayuda.
type ReliefGoodResponse struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateDisasterRequest declara un desastre.
type CreateDisasterRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	Kind       string    `json:"kind" validate:"required,max=100"`
	Location   string    `json:"location" validate:"max=200"`
	DeclaredAt time.Time `json:"declared_at"`
}

// DisasterResponse un desastre declarado.
type DisasterResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Location   string    `json:"location,omitempty"`
	DeclaredAt time.Time `json:"declared_at"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpdateDisasterRequest campos opcionales a actualizar.
type UpdateDisasterRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Kind     *string `json:"kind" validate:"omitempty,max=100"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Active   *bool   `json:"active"`
}

// CreateShelterRequest alta de un albergue (opcionalmente ligado a un desastre).
type CreateShelterRequest struct {
	DisasterID *int64 `json:"disaster_id" validate:"omitempty,gt=0"`
	Name       string `json:"name" validate:"required,max=200"`
	Address    string `json:"address" validate:"max=300"`
	Capacity   int    `json:"capacity" validate:"min=0"`
}

// UpdateShelterRequest campos opcionales a actualizar.
type UpdateShelterRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
	Active   *bool   `json:"active"`
}

// ShelterResponse un albergue.
type ShelterResponse struct {
	ID         int64     `json:"id"`
	DisasterID *int64    `json:"disaster_id,omitempty"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	Capacity   int       `json:"capacity"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateEvacueeRequest registra un evacuado en un albergue.
type CreateEvacueeRequest struct {
	ShelterID  *int64 `json:"shelter_id" validate:"omitempty,gt=0"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	DocumentID string `json:"document_id" validate:"max=50"`
}

// UpdateEvacueeRequest campos opcionales a actualizar.
type UpdateEvacueeRequest struct {
	ShelterID  *int64  `json:"shelter_id" validate:"omitempty,gt=0"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,max=100"`
	DocumentID *string `json:"document_id" validate:"omitempty,max=50"`
	Active     *bool   `json:"active"`
}

// EvacueeResponse un evacuado.
type EvacueeResponse struct {
	ID         int64     `json:"id"`
	ShelterID  *int64    `json:"shelter_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	DocumentID string    `json:"document_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReliefGoodListResponse listado paginado de bienes.
type ReliefGoodListResponse struct {
	Items []ReliefGoodResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// DisasterListResponse listado paginado de desastres.
type DisasterListResponse struct {
	Items []DisasterResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ShelterListResponse listado paginado de albergues.
type ShelterListResponse struct {
	Items []ShelterResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// EvacueeListResponse listado paginado de evacuados.
type EvacueeListResponse struct {
	Items []EvacueeResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
