package ports

import (
	"context"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
)

// VCSClient define los métodos para interactuar con la API REST del forge.
type VCSClient interface {
	// CurrentUser retorna el login del usuario autenticado por el token.
	CurrentUser(ctx context.Context) (string, error)
	// OpenPullRequest abre una PR contra la rama base. Una PR ya existente
	// para la misma rama se reporta como éxito suave, no como error.
	OpenPullRequest(ctx context.Context, pr models.PRRequest) (*models.PRResult, error)
}
