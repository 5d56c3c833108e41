package entity

import "time"

// Evacuee representa una persona registrada en un albergue, receptora final
// de las distribuciones. Archivable.
type Evacuee struct {
	ID         int64
	ShelterID  *int64
	FirstName  string
	LastName   string
	DocumentID string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName nombre para mostrar (derivación best-effort en archivos).
func (e *Evacuee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
