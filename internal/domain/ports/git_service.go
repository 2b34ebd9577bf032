package ports

import (
	"context"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
)

// GitService define las operaciones de control de versiones que usa el
// pipeline. Cada operación es una llamada síncrona al ejecutable git.
type GitService interface {
	// Clone clona el repositorio autenticado en dest.
	Clone(ctx context.Context, repoURL, dest, token string) error
	// HasPendingChanges inspecciona el estado del working copy limitado a folder.
	HasPendingChanges(ctx context.Context, repoPath, folder string) (models.ChangeStatus, error)
	// PublishBranch crea y empuja una rama nueva con los cambios bajo folder.
	// Retorna "" cuando no hay nada para publicar.
	PublishBranch(ctx context.Context, opts models.PublishOptions) (string, error)
}
