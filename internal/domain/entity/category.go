package entity

import "time"

// Category representa una categoría de bienes de ayuda (alimentos, medicinas,
// abrigo, etc.). Archivable.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
