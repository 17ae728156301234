package gitlab

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGetter is a mock implementation of Getter.
type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Get(ctx context.Context, url, accessToken string) ([]byte, error) {
	args := m.Called(ctx, url, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

const (
	testClientID   = "ABC123"
	testProfileURL = "https://gitlab.com/api/v4/user"
	testGroupsURL  = "https://gitlab.com/api/v4/groups?min_access_level=10"
	testEmailsURL  = "https://gitlab.com/api/v4/user/emails"
	testToken      = "token"
)

var userBody = []byte(`{
	"id": 1,
	"name": "John Smith",
	"username": "john_smith",
	"state": "active",
	"avatar_url": "https://gitlab.com/uploads/user/avatar/1/index.jpg",
	"web_url": "https://gitlab.com/u/john_smith",
	"created_at": "2012-05-23T08:00:58Z",
	"is_admin": false,
	"email": "john@example.com",
	"theme_id": 4,
	"projects_limit": 100000,
	"identities": [],
	"two_factor_enabled": true
}`)

var groupsBody = []byte(`[
	{"id": 0, "name": "groupA", "path": "groupA", "visibility": "private", "full_path": "groupA"},
	{"id": 1, "name": "groupB", "path": "groupB", "visibility": "private", "full_path": "groupB"}
]`)

var emailsBody = []byte(`[
	{"id": 1, "email": "a@x.com", "confirmed_at": "2021-03-26T19:07:56.248Z"},
	{"id": 3, "email": "john@example.com", "confirmed_at": null}
]`)

var malformedBody = []byte("Hello World.")
