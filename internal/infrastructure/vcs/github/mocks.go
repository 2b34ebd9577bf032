package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

// MockUsersService es un mock del servicio de usuarios de GitHub.
type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)

	var u *github.User
	if args.Get(0) != nil {
		u = args.Get(0).(*github.User)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return u, resp, args.Error(2)
}

// MockPullRequestsService es un mock del servicio de pull requests de GitHub.
type MockPullRequestsService struct {
	mock.Mock
}

func (m *MockPullRequestsService) Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, pull)

	var pr *github.PullRequest
	if args.Get(0) != nil {
		pr = args.Get(0).(*github.PullRequest)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return pr, resp, args.Error(2)
}
