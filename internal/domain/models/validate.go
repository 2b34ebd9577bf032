package models

import (
	"fmt"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateIntake/internal/domain/errors"
)

// Validate chequea el envío completo en el borde, antes de que cualquier
// etapa lo consuma. Retorna todos los problemas encontrados, para que el
// usuario pueda corregirlos de una sola vez. maxUploadBytes es el tamaño
// máximo por archivo subido; cero o negativo usa MaxUploadBytes.
func (s *Submission) Validate(maxUploadBytes int) []error {
	if maxUploadBytes <= 0 {
		maxUploadBytes = MaxUploadBytes
	}

	var errs []error

	if strings.TrimSpace(s.ProjectName) == "" {
		errs = append(errs, domainErrors.NewValidationError("project_name", "el nombre del proyecto no puede estar vacío"))
	}

	if !IsValidSemVer(s.Version) {
		errs = append(errs, domainErrors.NewValidationError("version",
			fmt.Sprintf("%q no cumple el formato MAJOR.MINOR.PATCH[-pre][+build]", s.Version)))
	}

	if _, err := ParsePythonVersion(string(s.PythonTarget)); err != nil {
		errs = append(errs, domainErrors.NewValidationError("python", err.Error()))
	}

	uploads := map[string]*Upload{
		"icon":          s.Icon,
		"welcome_image": s.WelcomeImage,
		"header_image":  s.HeaderImage,
	}
	for field, upload := range uploads {
		if upload == nil {
			continue
		}
		if upload.Name == "" {
			errs = append(errs, domainErrors.NewValidationError(field, "el archivo subido no tiene nombre"))
			continue
		}
		if len(upload.Data) == 0 {
			errs = append(errs, domainErrors.NewValidationError(field, "el archivo subido está vacío"))
			continue
		}
		if len(upload.Data) > maxUploadBytes {
			errs = append(errs, domainErrors.NewValidationError(field,
				fmt.Sprintf("%s supera el máximo de %d MB", upload.Name, maxUploadBytes/(1024*1024))))
		}
	}

	return errs
}
