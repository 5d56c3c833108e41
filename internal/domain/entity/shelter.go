package entity

import "time"

// Shelter representa un albergue que recibe asignaciones de stock central.
type Shelter struct {
	ID         int64
	DisasterID *int64
	Name       string
	Address    string
	Capacity   int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
