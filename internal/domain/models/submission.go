package models

import (
	"fmt"
	"regexp"
	"strings"
)

// PythonVersion es la versión de Python objetivo del proyecto enviado.
type PythonVersion string

const (
	Python38  PythonVersion = "3.8"
	Python39  PythonVersion = "3.9"
	Python310 PythonVersion = "3.10"
	Python311 PythonVersion = "3.11"
	Python312 PythonVersion = "3.12"
	Python313 PythonVersion = "3.13"
)

// SupportedPythonVersions lista las versiones aceptadas por el formulario,
// de la más nueva a la más vieja.
var SupportedPythonVersions = []PythonVersion{
	Python313, Python312, Python311, Python310, Python39, Python38,
}

// MaxUploadBytes es el tamaño máximo por defecto por archivo subido (25 MB).
// La configuración puede bajarlo o subirlo vía max_upload_mb.
const MaxUploadBytes = 25 * 1024 * 1024

// semverRegex acepta MAJOR.MINOR.PATCH con pre-release y build metadata opcionales.
var semverRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

type (
	// Upload es un archivo subido por el usuario, retenido en memoria hasta el staging.
	Upload struct {
		Name string
		Data []byte
	}

	// Submission es el paquete de entrada validado de un envío del formulario.
	// Es inmutable después de una validación exitosa.
	Submission struct {
		ProjectName  string
		Version      string
		PythonTarget PythonVersion

		// Imágenes opcionales del instalador. Nil cuando no fueron provistas.
		Icon         *Upload
		WelcomeImage *Upload
		HeaderImage  *Upload
	}
)

// ParsePythonVersion valida que la versión esté dentro del enum soportado.
func ParsePythonVersion(s string) (PythonVersion, error) {
	for _, v := range SupportedPythonVersions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("versión de Python no soportada: %q", s)
}

// IsValidSemVer verifica el formato MAJOR.MINOR.PATCH[-pre][+build].
func IsValidSemVer(version string) bool {
	return semverRegex.MatchString(version)
}

// Slug retorna el nombre del proyecto en minúsculas con guiones,
// usable en rutas de archivos y tokens de plantilla.
func (s *Submission) Slug() string {
	slug := strings.ToLower(strings.TrimSpace(s.ProjectName))
	return strings.Join(strings.Fields(slug), "-")
}

// HasImages indica si el envío trae al menos una imagen opcional.
func (s *Submission) HasImages() bool {
	return s.Icon != nil || s.WelcomeImage != nil || s.HeaderImage != nil
}
