// Package template aplica reemplazos literales de tokens sobre los archivos
// de la plantilla del instalador. Sin semántica de regex ni escapes: puro
// reemplazo de substrings.
package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
)

// Apply ejecuta cada sustitución del manifiesto: lee el archivo completo,
// reemplaza cada ocurrencia literal del token por el valor (sin espacios
// alrededor) y lo escribe de vuelta. Un token puede aparecer cero o más
// veces. Falla si el archivo destino no existe.
func Apply(substitutions []models.Substitution) error {
	for _, sub := range substitutions {
		data, err := os.ReadFile(sub.File)
		if err != nil {
			return fmt.Errorf("error al leer el archivo de plantilla %s: %w", sub.File, err)
		}

		info, err := os.Stat(sub.File)
		if err != nil {
			return fmt.Errorf("error al inspeccionar el archivo de plantilla %s: %w", sub.File, err)
		}

		replaced := strings.ReplaceAll(string(data), sub.Token, strings.TrimSpace(sub.Value))

		if err := os.WriteFile(sub.File, []byte(replaced), info.Mode()); err != nil {
			return fmt.Errorf("error al escribir el archivo de plantilla %s: %w", sub.File, err)
		}
	}
	return nil
}
