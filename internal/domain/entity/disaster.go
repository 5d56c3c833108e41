package entity

import "time"

// Disaster representa un evento de desastre declarado (inundación, sismo).
type Disaster struct {
	ID         int64
	Name       string
	Kind       string
	Location   string
	DeclaredAt time.Time
	Active     bool
	CreatedAt  time.Time
}
