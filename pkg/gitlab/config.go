package gitlab

import (
	"fmt"
	"net/url"
	"strings"
)

// Default values applied by New when the corresponding Config field is empty.
const (
	DefaultBaseURL        = "https://gitlab.com"
	DefaultScope          = "read_user"
	DefaultScopeSeparator = ","

	// ScopeAPI grants read-write API access and unlocks the group-membership fetch.
	ScopeAPI = "api"
)

// Endpoint paths, resolved against BaseURL.
const (
	authPath    = "oauth/authorize"
	tokenPath   = "oauth/token"
	profilePath = "api/v4/user"
	groupsPath  = "api/v4/groups?min_access_level=10"
	emailsPath  = "api/v4/user/emails"
)

// Config holds configuration for the GitLab OAuth provider.
// Endpoint URLs left empty are derived from BaseURL.
type Config struct {
	ClientID     string `env:"GITLAB_OAUTH_CLIENT_ID,required"`
	ClientSecret string `env:"GITLAB_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string `env:"GITLAB_OAUTH_REDIRECT_URL,required"`

	BaseURL    string `env:"GITLAB_BASE_URL" envDefault:"https://gitlab.com"`
	AuthURL    string `env:"GITLAB_OAUTH_AUTH_URL"`
	TokenURL   string `env:"GITLAB_OAUTH_TOKEN_URL"`
	ProfileURL string `env:"GITLAB_PROFILE_URL"`
	GroupsURL  string `env:"GITLAB_GROUPS_URL"`
	EmailsURL  string `env:"GITLAB_EMAILS_URL"`

	Scopes         []string `env:"GITLAB_OAUTH_SCOPES" envSeparator:"," envDefault:"read_user"`
	ScopeSeparator string   `env:"GITLAB_OAUTH_SCOPE_SEPARATOR" envDefault:","`

	// FetchAllEmails adds every address from the emails endpoint to Profile.Emails.
	FetchAllEmails bool `env:"GITLAB_FETCH_ALL_EMAILS" envDefault:"false"`

	// SecondaryFetchPolicy overrides how groups/emails fetch failures are handled.
	// Empty keeps the per-fetch default: strict for groups, best effort for emails.
	SecondaryFetchPolicy Policy `env:"GITLAB_SECONDARY_FETCH_POLICY"`
}

// Policy decides what a failed secondary fetch does to the whole operation.
type Policy string

const (
	// PolicyStrict fails the operation and discards the primary profile.
	PolicyStrict Policy = "strict"
	// PolicyBestEffort logs the failure and returns the primary profile.
	PolicyBestEffort Policy = "best_effort"
)

func (p Policy) valid() bool {
	switch p {
	case "", PolicyStrict, PolicyBestEffort:
		return true
	}
	return false
}

// resolve fills every empty field with its default.
func (c Config) resolve() (Config, error) {
	if c.ClientID == "" {
		return c, ErrMissingClientID
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if len(c.Scopes) == 0 {
		c.Scopes = []string{DefaultScope}
	}
	if c.ScopeSeparator == "" {
		c.ScopeSeparator = DefaultScopeSeparator
	}
	if !c.SecondaryFetchPolicy.valid() {
		return c, fmt.Errorf("%w: %q", ErrInvalidPolicy, c.SecondaryFetchPolicy)
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return c, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	for _, f := range []struct {
		dst  *string
		path string
	}{
		{&c.AuthURL, authPath},
		{&c.TokenURL, tokenPath},
		{&c.ProfileURL, profilePath},
		{&c.GroupsURL, groupsPath},
		{&c.EmailsURL, emailsPath},
	} {
		if *f.dst != "" {
			continue
		}
		ref, err := url.Parse(f.path)
		if err != nil {
			return c, err
		}
		*f.dst = base.ResolveReference(ref).String()
	}

	return c, nil
}

// scope joins the configured scopes the way GitLab expects them on the wire.
func (c Config) scope() string {
	return strings.Join(c.Scopes, c.ScopeSeparator)
}

// hasScope reports whether any configured scope token equals want.
// Entries are split on the separator and whitespace, so "read_user api" counts.
func (c Config) hasScope(want string) bool {
	for _, s := range c.Scopes {
		for _, part := range strings.Split(s, c.ScopeSeparator) {
			for _, tok := range strings.Fields(part) {
				if tok == want {
					return true
				}
			}
		}
	}
	return false
}
