package git

import (
	"context"
	"encoding/base64"
	"fmt"
	"os/exec"
	"strings"
	"time"

	domainErrors "github.com/Tomas-vilte/MateIntake/internal/domain/errors"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/Tomas-vilte/MateIntake/internal/domain/ports"
	"github.com/Tomas-vilte/MateIntake/internal/logging"
	"github.com/rs/zerolog"
)

var _ ports.GitService = (*GitService)(nil)

// UserResolver resuelve el login del usuario autenticado contra el forge.
type UserResolver interface {
	CurrentUser(ctx context.Context) (string, error)
}

// GitService ejecuta subcomandos de git de forma síncrona. El token de
// acceso se inyecta como header de autorización sólo en los subcomandos que
// tocan la red (clone/pull/push) y nunca se persiste en la config del repo.
type GitService struct {
	users UserResolver
	log   zerolog.Logger
	now   func() time.Time
}

func NewGitService(users UserResolver) *GitService {
	return &GitService{
		users: users,
		log:   logging.GetLogger("git"),
		now:   time.Now,
	}
}

// authHeader arma el header equivalente a
// Authorization: Basic base64("x-access-token:<token>").
func authHeader(token string) string {
	credentials := base64.StdEncoding.EncodeToString([]byte("x-access-token:" + token))
	return "http.extraHeader=Authorization: Basic " + credentials
}

// run ejecuta un subcomando de git en dir. Si token no está vacío, el header
// de autorización se pasa por -c, sin tocar la configuración en disco.
func (s *GitService) run(ctx context.Context, dir, token string, args ...string) (string, error) {
	full := args
	if token != "" {
		full = append([]string{"-c", authHeader(token)}, args...)
	}

	cmd := exec.CommandContext(ctx, "git", full...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.log.Debug().Str("subcommand", args[0]).Str("dir", dir).Msg("ejecutando git")

	if err := cmd.Run(); err != nil {
		return "", domainErrors.NewGitError(strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Clone clona el repositorio autenticado en dest.
func (s *GitService) Clone(ctx context.Context, repoURL, dest, token string) error {
	_, err := s.run(ctx, "", token, "clone", repoURL, dest)
	return err
}

// HasPendingChanges inspecciona el working copy limitado a folder. Una falla
// de inspección se reporta como ChangesUnknown con su error, no como "sin
// cambios": el que orquesta decide cómo tratarla.
func (s *GitService) HasPendingChanges(ctx context.Context, repoPath, folder string) (models.ChangeStatus, error) {
	output, err := s.run(ctx, repoPath, "", "status", "--porcelain", folder)
	if err != nil {
		return models.ChangesUnknown, err
	}

	if strings.TrimSpace(output) != "" {
		return models.ChangesPresent, nil
	}
	return models.ChangesNone, nil
}

// PublishBranch fija la identidad del committer al usuario autenticado,
// actualiza la rama base, y si hay cambios pendientes bajo folder crea una
// rama nueva "<prefix>/<usuario>-<YYYYMMDDHHmm>", agrega sólo folder,
// commitea y pushea con upstream tracking. Retorna "" si no había nada para
// publicar.
func (s *GitService) PublishBranch(ctx context.Context, opts models.PublishOptions) (string, error) {
	username, err := s.users.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	branch := fmt.Sprintf("%s/%s-%s", opts.BranchPrefix, username, s.now().Format("200601021504"))

	email := username + "@users.noreply.github.com"
	if _, err := s.run(ctx, opts.RepoPath, "", "config", "user.email", email); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, opts.RepoPath, "", "config", "user.name", username); err != nil {
		return "", err
	}

	if _, err := s.run(ctx, opts.RepoPath, "", "checkout", opts.BaseBranch); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, opts.RepoPath, opts.Token, "pull", "origin", opts.BaseBranch); err != nil {
		return "", err
	}

	status, err := s.HasPendingChanges(ctx, opts.RepoPath, opts.Folder)
	if err != nil {
		s.log.Warn().Err(err).Str("folder", opts.Folder).Msg("no se pudo inspeccionar el estado del working copy")
		return "", err
	}
	if status != models.ChangesPresent {
		s.log.Info().Str("folder", opts.Folder).Msg("sin cambios pendientes, nada para publicar")
		return "", nil
	}

	if _, err := s.run(ctx, opts.RepoPath, "", "checkout", "-b", branch); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, opts.RepoPath, "", "add", opts.Folder); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, opts.RepoPath, "", "commit", "-m", opts.Message); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, opts.RepoPath, opts.Token, "push", "--set-upstream", "origin", branch); err != nil {
		return "", err
	}

	return branch, nil
}
