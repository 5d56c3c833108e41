package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// ArchiveRepository define el puerto de persistencia para los sobres de
// archivo (borrado suave genérico).
type ArchiveRepository interface {
	Create(archive *entity.Archive) error
	GetByID(id int64) (*entity.Archive, error)
	// Search filtra por tipo de entidad y/o texto del nombre a mostrar.
	// Cadenas vacías no filtran.
	Search(entityType, query string, limit, offset int) ([]*entity.Archive, error)
	Delete(id int64) error
}
