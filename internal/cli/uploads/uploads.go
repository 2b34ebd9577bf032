package uploads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
)

// Read carga un archivo subido en memoria. Una ruta vacía significa que el
// upload opcional no fue provisto.
func Read(path string) (*models.Upload, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error al leer el archivo %s: %w", path, err)
	}

	return &models.Upload{
		Name: filepath.Base(path),
		Data: data,
	}, nil
}
