// Package stager orquesta el pipeline completo de un envío: adquirir el
// working copy, preparar los assets, parchear la plantilla, publicar la rama
// y abrir la pull request, con limpieza best-effort al final.
package stager

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Tomas-vilte/MateIntake/internal/construct"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/Tomas-vilte/MateIntake/internal/domain/ports"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	vcsgithub "github.com/Tomas-vilte/MateIntake/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/MateIntake/internal/logging"
	"github.com/Tomas-vilte/MateIntake/internal/template"
	"github.com/Tomas-vilte/MateIntake/internal/ui"
	"github.com/rs/zerolog"
)

const (
	// assetFolder es la carpeta del repo plantilla donde se copian los uploads.
	assetFolder = "app/logo"
	// menuFile es la metadata del lanzador de plataforma, en su ruta fija.
	menuFile = "app/menu/menu.json"
	docsDir  = "docs"
)

// Reporter recibe las líneas de estado del pipeline, el reemplazo del
// status inline del formulario original.
type Reporter interface {
	Info(message string)
	Success(message string)
	Warning(message string)
}

// UIReporter imprime el estado en la terminal con los estilos de ui. Las
// líneas informativas de progreso se muestran en el spinner activo cuando
// hay uno girando, en vez de cortarlo.
type UIReporter struct{}

func (UIReporter) Info(message string) {
	if ui.UpdateActiveSpinner(message) {
		return
	}
	ui.PrintInfo(message)
}

func (UIReporter) Success(message string) { ui.PrintSuccess(message) }
func (UIReporter) Warning(message string) { ui.PrintWarning(message) }

// Options son los parámetros de una corrida del pipeline.
type Options struct {
	RepoURL      string
	Token        string
	ScratchRoot  string
	BranchPrefix string
	BaseBranch   string
}

var _ ports.Stager = (*Stager)(nil)

// Stager es el contexto de ejecución de una corrida: conoce el working copy
// actual y los colaboradores externos. Vive una sola invocación del pipeline.
type Stager struct {
	opts     Options
	git      ports.GitService
	forge    ports.VCSClient
	icons    ports.IconBuilder
	trans    *i18n.Translations
	reporter Reporter
	log      zerolog.Logger
}

func NewStager(opts Options, git ports.GitService, forge ports.VCSClient, icons ports.IconBuilder, trans *i18n.Translations, reporter Reporter) *Stager {
	if reporter == nil {
		reporter = UIReporter{}
	}
	return &Stager{
		opts:     opts,
		git:      git,
		forge:    forge,
		icons:    icons,
		trans:    trans,
		reporter: reporter,
		log:      logging.GetLogger("stager"),
	}
}

// Run ejecuta el pipeline lineal. Cualquier paso que falle aborta los
// siguientes, pero la limpieza del working copy se intenta igual.
func (s *Stager) Run(ctx context.Context, submission *models.Submission) (result *models.PipelineResult, err error) {
	s.reporter.Info(s.trans.GetMessage("creating_pr", 0, map[string]interface{}{
		"Name": submission.ProjectName,
	}))

	workingCopy, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	defer s.cleanup(workingCopy)

	result = &models.PipelineResult{WorkingCopy: workingCopy}

	staged, err := s.stageAssets(workingCopy, submission)
	if err != nil {
		return nil, err
	}

	if err := s.applyTemplates(workingCopy, submission); err != nil {
		return nil, err
	}

	if err := s.patchConstruct(workingCopy, submission, staged); err != nil {
		return nil, err
	}

	if err := s.writeReadme(workingCopy, submission); err != nil {
		return nil, err
	}

	s.publish(ctx, workingCopy, submission, result)
	return result, nil
}

// acquire reutiliza un working copy existente con metadata de git válida, o
// clona de cero, borrando antes cualquier sobrante que no sea un repo.
func (s *Stager) acquire(ctx context.Context) (string, error) {
	owner, repo, err := vcsgithub.ParseRepoURL(s.opts.RepoURL)
	if err != nil {
		return "", err
	}

	workingCopy := filepath.Join(s.opts.ScratchRoot, owner, repo)

	if info, statErr := os.Stat(filepath.Join(workingCopy, ".git")); statErr == nil && info.IsDir() {
		s.reporter.Success(s.trans.GetMessage("repo_already_cloned", 0, map[string]interface{}{
			"Path": workingCopy,
		}))
		return workingCopy, nil
	}

	if _, statErr := os.Stat(workingCopy); statErr == nil {
		s.log.Debug().Str("path", workingCopy).Msg("borrando sobrante que no es un repo")
		if err := os.RemoveAll(workingCopy); err != nil {
			return "", fmt.Errorf("error al borrar el sobrante en %s: %w", workingCopy, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(workingCopy), 0755); err != nil {
		return "", fmt.Errorf("error al crear el directorio de trabajo: %w", err)
	}

	s.reporter.Info(s.trans.GetMessage("cloning_repo", 0, map[string]interface{}{
		"Path": workingCopy,
	}))

	if err := s.git.Clone(ctx, s.opts.RepoURL, workingCopy, s.opts.Token); err != nil {
		// Un clone interrumpido puede dejar un directorio parcial.
		s.cleanup(workingCopy)
		return "", err
	}

	return workingCopy, nil
}

// stageAssets escribe los uploads en la carpeta de assets y, si hay ícono,
// produce al lado los contenedores ICO e ICNS. Retorna las rutas relativas
// (con barras) de todo lo que quedó staged.
func (s *Stager) stageAssets(workingCopy string, submission *models.Submission) ([]string, error) {
	s.reporter.Info(s.trans.GetMessage("staging_assets", 0, nil))

	assetDir := filepath.Join(workingCopy, filepath.FromSlash(assetFolder))
	if err := os.MkdirAll(assetDir, 0755); err != nil {
		return nil, fmt.Errorf("error al crear la carpeta de assets: %w", err)
	}

	var staged []string

	for _, upload := range []*models.Upload{submission.WelcomeImage, submission.HeaderImage, submission.Icon} {
		if upload == nil {
			continue
		}
		dest := filepath.Join(assetDir, upload.Name)
		if err := os.WriteFile(dest, upload.Data, 0644); err != nil {
			return nil, fmt.Errorf("error al escribir el asset %s: %w", upload.Name, err)
		}
		staged = append(staged, path.Join(assetFolder, upload.Name))
	}

	if submission.Icon != nil {
		img, err := png.Decode(bytes.NewReader(submission.Icon.Data))
		if err != nil {
			return nil, fmt.Errorf("error al decodificar el PNG del ícono: %w", err)
		}

		base := strings.TrimSuffix(submission.Icon.Name, filepath.Ext(submission.Icon.Name))

		icoName := base + ".ico"
		if err := s.icons.BuildICO(img, nil, filepath.Join(assetDir, icoName)); err != nil {
			return nil, err
		}
		staged = append(staged, path.Join(assetFolder, icoName))

		icnsName := base + ".icns"
		if err := s.icons.BuildICNS(img, filepath.Join(assetDir, icnsName)); err != nil {
			return nil, err
		}
		staged = append(staged, path.Join(assetFolder, icnsName))
	}

	return staged, nil
}

// applyTemplates computa el manifiesto de sustituciones a partir del envío
// tipado y lo aplica de una sola pasada.
func (s *Stager) applyTemplates(workingCopy string, submission *models.Submission) error {
	constructPath := filepath.Join(workingCopy, construct.FileName)
	menuPath := filepath.Join(workingCopy, filepath.FromSlash(menuFile))

	manifest := []models.Substitution{
		{Token: "__NAME__", File: constructPath, Value: submission.Slug()},
		{Token: "__VERSION__", File: constructPath, Value: submission.Version},
		{Token: "__PYTHON_VERSION__", File: constructPath, Value: string(submission.PythonTarget)},
		{Token: "__NAME__", File: menuPath, Value: submission.ProjectName},
	}

	return template.Apply(manifest)
}

// patchConstruct carga construct.yaml, fija o borra las claves de imágenes,
// mergea la tabla extra_files con los assets staged y lo reescribe
// preservando las claves repetidas del original.
func (s *Stager) patchConstruct(workingCopy string, submission *models.Submission, staged []string) error {
	constructPath := filepath.Join(workingCopy, construct.FileName)

	data, err := os.ReadFile(constructPath)
	if err != nil {
		return fmt.Errorf("error al leer %s: %w", construct.FileName, err)
	}

	doc, err := construct.Parse(string(data))
	if err != nil {
		return err
	}

	provided := map[string]bool{}
	images := map[string]*models.Upload{
		"welcome_image": submission.WelcomeImage,
		"header_image":  submission.HeaderImage,
		"icon_image":    submission.Icon,
	}
	for key, upload := range images {
		if upload == nil {
			continue
		}
		provided[key] = true
		doc.SetImageKey(key, path.Join(assetFolder, upload.Name))
	}
	doc.RemoveEmptyImageKeys(provided)

	entries := make([]models.ExtraFileEntry, 0, len(staged))
	for _, source := range staged {
		entries = append(entries, models.ExtraFileEntry{
			Source: source,
			Dest:   path.Join(submission.Slug(), path.Base(source)),
		})
	}
	doc.MergeExtraFiles(entries)

	serialized, err := doc.Serialize()
	if err != nil {
		return err
	}

	if err := os.WriteFile(constructPath, []byte(serialized), 0644); err != nil {
		return fmt.Errorf("error al escribir %s: %w", construct.FileName, err)
	}

	return nil
}

// writeReadme mueve el README preexistente a la carpeta de documentación y
// escribe uno nuevo con el nombre del proyecto.
func (s *Stager) writeReadme(workingCopy string, submission *models.Submission) error {
	readmePath := filepath.Join(workingCopy, "README.md")

	if _, err := os.Stat(readmePath); err == nil {
		docs := filepath.Join(workingCopy, docsDir)
		if err := os.MkdirAll(docs, 0755); err != nil {
			return fmt.Errorf("error al crear la carpeta de documentación: %w", err)
		}
		if err := os.Rename(readmePath, filepath.Join(docs, "README.md")); err != nil {
			return fmt.Errorf("error al mover el README existente: %w", err)
		}
	}

	content := fmt.Sprintf(
		"# %s\n\nProject: %s\nPython Version: %s\n\nThis repository was generated from a project intake submission.\n",
		submission.ProjectName, submission.ProjectName, submission.PythonTarget,
	)

	if err := os.WriteFile(readmePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("error al escribir el README: %w", err)
	}

	return nil
}

// publish empuja la rama y abre la PR. Las fallas de publicación se reportan
// y cortan sólo el resto de la publicación, nunca la limpieza.
func (s *Stager) publish(ctx context.Context, workingCopy string, submission *models.Submission, result *models.PipelineResult) {
	message := fmt.Sprintf("Add submission for %s", submission.ProjectName)

	branch, err := s.git.PublishBranch(ctx, models.PublishOptions{
		RepoPath:     workingCopy,
		Folder:       ".",
		BranchPrefix: s.opts.BranchPrefix,
		BaseBranch:   s.opts.BaseBranch,
		Message:      message,
		Token:        s.opts.Token,
	})
	if err != nil {
		s.reporter.Warning(s.trans.GetMessage("push_failed", 0, map[string]interface{}{
			"Error": err.Error(),
		}))
		return
	}

	if branch == "" {
		s.reporter.Info(s.trans.GetMessage("no_changes_detected", 0, map[string]interface{}{
			"Folder": workingCopy,
		}))
		return
	}

	result.Branch = branch
	s.reporter.Success(s.trans.GetMessage("branch_pushed", 0, map[string]interface{}{
		"Branch": branch,
	}))

	pr, err := s.forge.OpenPullRequest(ctx, models.PRRequest{
		Branch: branch,
		Title:  message,
		Body: fmt.Sprintf(
			"This PR adds the submission for the project %s targeting Python %s.",
			submission.ProjectName, submission.PythonTarget,
		),
	})
	if err != nil {
		s.reporter.Warning(s.trans.GetMessage("pr_failed", 0, map[string]interface{}{
			"Error": err.Error(),
		}))
		return
	}

	result.PullRequest = pr
	if pr.AlreadyExists {
		s.reporter.Info(s.trans.GetMessage("pr_already_exists", 0, map[string]interface{}{
			"Branch": branch,
		}))
		return
	}

	s.reporter.Success(s.trans.GetMessage("pr_created", 0, map[string]interface{}{
		"URL": pr.URL,
	}))
}

// cleanup borra el working copy incondicionalmente, tolerando los archivos
// de sólo lectura que deja la metadata de git: les limpia el atributo y
// reintenta. Sus propias fallas se reportan pero nunca escalan.
func (s *Stager) cleanup(workingCopy string) {
	if workingCopy == "" {
		return
	}

	if err := os.RemoveAll(workingCopy); err == nil {
		return
	}

	_ = filepath.WalkDir(workingCopy, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = os.Chmod(p, 0755)
		} else {
			_ = os.Chmod(p, 0644)
		}
		return nil
	})

	if err := os.RemoveAll(workingCopy); err != nil {
		s.log.Warn().Err(err).Str("path", workingCopy).Msg("no se pudo borrar el working copy")
		s.reporter.Warning(s.trans.GetMessage("cleanup_failed", 0, map[string]interface{}{
			"Path":  workingCopy,
			"Error": err.Error(),
		}))
	}
}
