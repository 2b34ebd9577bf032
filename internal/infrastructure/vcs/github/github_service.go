package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateIntake/internal/domain/errors"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/Tomas-vilte/MateIntake/internal/domain/ports"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

var _ ports.VCSClient = (*GitHubClient)(nil)

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

// GitHubClient habla con la API REST de GitHub para identificar al usuario
// autenticado y abrir pull requests.
type GitHubClient struct {
	usersService UsersService
	prService    PullRequestsService
	owner        string
	repo         string
	base         string
}

func NewGitHubClient(repoURL, token, baseBranch string) (*GitHubClient, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		usersService: client.Users,
		prService:    client.PullRequests,
		owner:        owner,
		repo:         repo,
		base:         baseBranch,
	}, nil
}

// NewGitHubClientWithServices permite inyectar los servicios, para tests.
func NewGitHubClientWithServices(users UsersService, prs PullRequestsService, owner, repo, baseBranch string) *GitHubClient {
	return &GitHubClient{
		usersService: users,
		prService:    prs,
		owner:        owner,
		repo:         repo,
		base:         baseBranch,
	}
}

// ParseRepoURL extrae owner y nombre del repo de los dos últimos segmentos
// de la URL.
func ParseRepoURL(repoURL string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(repoURL), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	segments := strings.Split(trimmed, "/")
	if len(segments) < 2 {
		return "", "", fmt.Errorf("no se pudo extraer el propietario y el repositorio de la URL: %s", repoURL)
	}

	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("no se pudo extraer el propietario y el repositorio de la URL: %s", repoURL)
	}

	return owner, repo, nil
}

// CurrentUser retorna el login del usuario autenticado por el token.
func (ghc *GitHubClient) CurrentUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}
		return "", domainErrors.NewAuthError(statusCode, err)
	}

	login := user.GetLogin()
	if login == "" {
		return "", domainErrors.NewAuthError(resp.StatusCode, fmt.Errorf("la respuesta del forge no trajo login"))
	}

	return login, nil
}

// OpenPullRequest abre una PR head=branch contra la rama base. Un 422 cuyo
// cuerpo contiene "already exists" se trata como éxito suave: el forge ya
// actualizó la PR existente.
func (ghc *GitHubClient) OpenPullRequest(ctx context.Context, pr models.PRRequest) (*models.PRResult, error) {
	payload := &github.NewPullRequest{
		Title:               github.Ptr(pr.Title),
		Head:                github.Ptr(pr.Branch),
		Base:                github.Ptr(ghc.base),
		Body:                github.Ptr(pr.Body),
		MaintainerCanModify: github.Ptr(true),
	}

	created, resp, err := ghc.prService.Create(ctx, ghc.owner, ghc.repo, payload)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(err.Error(), "already exists") {
			return &models.PRResult{AlreadyExists: true}, nil
		}

		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}
		return nil, domainErrors.NewForgeAPIError(statusCode, err.Error(), err)
	}

	return &models.PRResult{URL: created.GetHTMLURL()}, nil
}
