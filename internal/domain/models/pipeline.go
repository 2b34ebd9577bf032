package models

type (
	// ExtraFileEntry es una entrada fuente → destino de la tabla extra_files
	// del archivo construct.yaml.
	ExtraFileEntry struct {
		Source string
		Dest   string
	}

	// Substitution es un reemplazo literal de un token dentro de un archivo.
	Substitution struct {
		Token string
		File  string
		Value string
	}

	// PublishOptions son los parámetros para publicar una rama con los cambios
	// de un envío.
	PublishOptions struct {
		RepoPath     string
		Folder       string
		BranchPrefix string
		BaseBranch   string
		Message      string
		Token        string
	}

	// PRRequest describe la pull request a abrir en el forge.
	PRRequest struct {
		Branch string
		Title  string
		Body   string
	}

	// PRResult es el resultado de abrir una pull request.
	PRResult struct {
		URL string
		// AlreadyExists indica que el forge reportó una PR existente para la
		// rama y que fue actualizada automáticamente (éxito suave).
		AlreadyExists bool
	}

	// PipelineResult resume una corrida completa del pipeline de envío.
	PipelineResult struct {
		WorkingCopy string
		Branch      string
		PullRequest *PRResult
	}
)

// ChangeStatus distingue "sin cambios" de "no se pudo inspeccionar",
// para que una falla transitoria no se trate como éxito silencioso.
type ChangeStatus int

const (
	ChangesUnknown ChangeStatus = iota
	ChangesPresent
	ChangesNone
)
