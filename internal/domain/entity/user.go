package entity

import "time"

// User representa al usuario actuante, consumido para atribución en la
// auditoría. La autenticación se resuelve fuera de este servicio.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      string // "admin" | "coordinador" | "voluntario"
	Active    bool
	CreatedAt time.Time
}
