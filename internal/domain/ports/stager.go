package ports

import (
	"context"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
)

// Stager orquesta el pipeline completo de un envío: adquirir el working
// copy, preparar los archivos, publicar la rama y abrir la PR.
type Stager interface {
	Run(ctx context.Context, submission *models.Submission) (*models.PipelineResult, error)
}
