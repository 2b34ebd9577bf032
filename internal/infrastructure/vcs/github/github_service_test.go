package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/Tomas-vilte/MateIntake/internal/domain/errors"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ghResponse(statusCode int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: statusCode}}
}

func TestParseRepoURL(t *testing.T) {
	t.Run("should parse an https url", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/acme/templates")
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "templates", repo)
	})

	t.Run("should strip a trailing .git suffix", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/acme/templates.git")
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "templates", repo)
	})

	t.Run("should strip a trailing slash", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/acme/templates/")
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "templates", repo)
	})

	t.Run("should fail when the url has too few segments", func(t *testing.T) {
		_, _, err := ParseRepoURL("templates")
		assert.Error(t, err)
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("should return the authenticated login", func(t *testing.T) {
		mockUsers := new(MockUsersService)
		client := NewGitHubClientWithServices(mockUsers, nil, "acme", "templates", "main")

		mockUsers.On("Get", mock.Anything, "").
			Return(&github.User{Login: github.Ptr("octocat")}, ghResponse(http.StatusOK), nil)

		login, err := client.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "octocat", login)
		mockUsers.AssertExpectations(t)
	})

	t.Run("should wrap an api failure as an auth error", func(t *testing.T) {
		mockUsers := new(MockUsersService)
		client := NewGitHubClientWithServices(mockUsers, nil, "acme", "templates", "main")

		mockUsers.On("Get", mock.Anything, "").
			Return(nil, ghResponse(http.StatusUnauthorized), errors.New("bad credentials"))

		_, err := client.CurrentUser(context.Background())
		require.Error(t, err)

		var authErr *domainErrors.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	})

	t.Run("should fail when the response carries no login", func(t *testing.T) {
		mockUsers := new(MockUsersService)
		client := NewGitHubClientWithServices(mockUsers, nil, "acme", "templates", "main")

		mockUsers.On("Get", mock.Anything, "").
			Return(&github.User{}, ghResponse(http.StatusOK), nil)

		_, err := client.CurrentUser(context.Background())
		assert.Error(t, err)
	})
}

func TestOpenPullRequest(t *testing.T) {
	request := models.PRRequest{
		Branch: "submissions/octocat-202608251200",
		Title:  "Add submission for Demo Lab",
		Body:   "cuerpo",
	}

	t.Run("should open the pr against the base branch", func(t *testing.T) {
		mockPRs := new(MockPullRequestsService)
		client := NewGitHubClientWithServices(nil, mockPRs, "acme", "templates", "main")

		mockPRs.On("Create", mock.Anything, "acme", "templates", mock.MatchedBy(func(pull *github.NewPullRequest) bool {
			return pull.GetHead() == request.Branch &&
				pull.GetBase() == "main" &&
				pull.GetTitle() == request.Title &&
				pull.GetMaintainerCanModify()
		})).Return(&github.PullRequest{HTMLURL: github.Ptr("https://github.com/acme/templates/pull/7")}, ghResponse(http.StatusCreated), nil)

		result, err := client.OpenPullRequest(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/acme/templates/pull/7", result.URL)
		assert.False(t, result.AlreadyExists)
		mockPRs.AssertExpectations(t)
	})

	t.Run("should treat a duplicate pr as soft success", func(t *testing.T) {
		mockPRs := new(MockPullRequestsService)
		client := NewGitHubClientWithServices(nil, mockPRs, "acme", "templates", "main")

		mockPRs.On("Create", mock.Anything, "acme", "templates", mock.Anything).
			Return(nil, ghResponse(http.StatusUnprocessableEntity),
				errors.New("422 A pull request already exists for acme:submissions/octocat-202608251200"))

		result, err := client.OpenPullRequest(context.Background(), request)
		require.NoError(t, err)
		assert.True(t, result.AlreadyExists)
		assert.Empty(t, result.URL)
	})

	t.Run("should wrap any other 422 as a forge error", func(t *testing.T) {
		mockPRs := new(MockPullRequestsService)
		client := NewGitHubClientWithServices(nil, mockPRs, "acme", "templates", "main")

		mockPRs.On("Create", mock.Anything, "acme", "templates", mock.Anything).
			Return(nil, ghResponse(http.StatusUnprocessableEntity), errors.New("422 Validation Failed: base invalid"))

		_, err := client.OpenPullRequest(context.Background(), request)
		require.Error(t, err)

		var forgeErr *domainErrors.ForgeAPIError
		require.ErrorAs(t, err, &forgeErr)
		assert.Equal(t, http.StatusUnprocessableEntity, forgeErr.StatusCode)
	})

	t.Run("should wrap server failures as a forge error", func(t *testing.T) {
		mockPRs := new(MockPullRequestsService)
		client := NewGitHubClientWithServices(nil, mockPRs, "acme", "templates", "main")

		mockPRs.On("Create", mock.Anything, "acme", "templates", mock.Anything).
			Return(nil, ghResponse(http.StatusInternalServerError), errors.New("boom"))

		_, err := client.OpenPullRequest(context.Background(), request)
		require.Error(t, err)

		var forgeErr *domainErrors.ForgeAPIError
		require.ErrorAs(t, err, &forgeErr)
		assert.Equal(t, http.StatusInternalServerError, forgeErr.StatusCode)
	})
}
