package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// UserRepository define el puerto de lectura de usuarios, consumido para
// validar el usuario actuante y atribuir la auditoría.
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
