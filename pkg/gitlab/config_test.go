package gitlab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Config{ClientID: testClientID}.resolve()
		require.NoError(t, err)

		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, "https://gitlab.com/oauth/authorize", cfg.AuthURL)
		assert.Equal(t, "https://gitlab.com/oauth/token", cfg.TokenURL)
		assert.Equal(t, testProfileURL, cfg.ProfileURL)
		assert.Equal(t, testGroupsURL, cfg.GroupsURL)
		assert.Equal(t, testEmailsURL, cfg.EmailsURL)
		assert.Equal(t, []string{"read_user"}, cfg.Scopes)
		assert.Equal(t, ",", cfg.ScopeSeparator)
	})

	t.Run("derives urls from custom base url", func(t *testing.T) {
		t.Parallel()

		cfg, err := Config{ClientID: testClientID, BaseURL: "https://example.com/gl/"}.resolve()
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/gl/oauth/authorize", cfg.AuthURL)
		assert.Equal(t, "https://example.com/gl/api/v4/user", cfg.ProfileURL)
		assert.Equal(t, "https://example.com/gl/api/v4/groups?min_access_level=10", cfg.GroupsURL)
		assert.Equal(t, "https://example.com/gl/api/v4/user/emails", cfg.EmailsURL)
	})

	t.Run("base url without trailing slash drops last segment", func(t *testing.T) {
		t.Parallel()

		cfg, err := Config{ClientID: testClientID, BaseURL: "https://example.com/gl"}.resolve()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/api/v4/user", cfg.ProfileURL)
	})

	t.Run("keeps explicit urls", func(t *testing.T) {
		t.Parallel()

		cfg, err := Config{
			ClientID:   testClientID,
			ProfileURL: "https://api.example.com/me",
			GroupsURL:  "https://api.example.com/me/groups",
			TokenURL:   "https://sso.example.com/token",
		}.resolve()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/me", cfg.ProfileURL)
		assert.Equal(t, "https://api.example.com/me/groups", cfg.GroupsURL)
		assert.Equal(t, "https://sso.example.com/token", cfg.TokenURL)
		assert.Equal(t, "https://gitlab.com/oauth/authorize", cfg.AuthURL)
	})

	t.Run("rejects invalid base url", func(t *testing.T) {
		t.Parallel()

		for _, base := range []string{"gitlab.com", "://bad", "/relative/path"} {
			_, err := Config{ClientID: testClientID, BaseURL: base}.resolve()
			assert.ErrorIs(t, err, ErrInvalidBaseURL, base)
		}
	})

	t.Run("requires client id", func(t *testing.T) {
		t.Parallel()

		_, err := Config{ClientSecret: "secret", BaseURL: "https://example.com"}.resolve()
		assert.ErrorIs(t, err, ErrMissingClientID)
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		t.Parallel()

		_, err := Config{ClientID: testClientID, SecondaryFetchPolicy: "sometimes"}.resolve()
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})
}

func TestConfig_HasScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scopes []string
		sep    string
		want   bool
	}{
		{"single read_user", []string{"read_user"}, ",", false},
		{"separate api entry", []string{"read_user", "api"}, ",", true},
		{"space separated string", []string{"read_user api"}, ",", true},
		{"separator joined string", []string{"read_user,api"}, ",", true},
		{"custom separator", []string{"read_user+api"}, "+", true},
		{"read_api is not api", []string{"read_user", "read_api"}, ",", false},
		{"empty", nil, ",", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{Scopes: tt.scopes, ScopeSeparator: tt.sep}
			assert.Equal(t, tt.want, cfg.hasScope(ScopeAPI))
		})
	}
}

func TestConfig_Scope(t *testing.T) {
	t.Parallel()

	cfg := Config{Scopes: []string{"read_user", "api"}, ScopeSeparator: ","}
	assert.Equal(t, "read_user,api", cfg.scope())

	cfg.ScopeSeparator = " "
	assert.Equal(t, "read_user api", cfg.scope())
}
