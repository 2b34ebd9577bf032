package errors

import (
	"fmt"
)

// ValidationError representa un campo del envío faltante o mal formado.
// Es recuperable: el usuario puede corregir y reenviar.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación [%s]: %s", e.Field, e.Message)
}

// NewValidationError crea un nuevo error de validación
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError indica que el forge rechazó el token de acceso.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("el token fue rechazado por el forge (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("el token fue rechazado por el forge (status %d)", e.StatusCode)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError crea un nuevo error de autenticación
func NewAuthError(statusCode int, err error) *AuthError {
	return &AuthError{StatusCode: statusCode, Err: err}
}

// GitError representa la salida no-cero de un subcomando de git,
// con el subcomando que falló y su stderr.
type GitError struct {
	Subcommand string
	Stderr     string
	Err        error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", e.Subcommand, e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", e.Subcommand, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError crea un nuevo error de git
func NewGitError(subcommand, stderr string, err error) *GitError {
	return &GitError{Subcommand: subcommand, Stderr: stderr, Err: err}
}

// ForgeAPIError representa una respuesta no-2xx del forge que no es el
// caso 422 de PR duplicada.
type ForgeAPIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ForgeAPIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("forge API (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("forge API (status %d): %v", e.StatusCode, e.Err)
}

func (e *ForgeAPIError) Unwrap() error {
	return e.Err
}

// NewForgeAPIError crea un nuevo error de API del forge
func NewForgeAPIError(statusCode int, body string, err error) *ForgeAPIError {
	return &ForgeAPIError{StatusCode: statusCode, Body: body, Err: err}
}
