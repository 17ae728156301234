package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gitlabauth/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"provider", logger.Provider("gitlab"), "provider", "gitlab"},
		{"resource", logger.Resource("groups"), "resource", "groups"},
		{"policy", logger.Policy("strict"), "policy", "strict"},
		{"endpoint", logger.Endpoint("https://gitlab.com/api/v4/user"), "endpoint", "https://gitlab.com/api/v4/user"},
		{"user id", logger.UserID("42"), "user_id", "42"},
		{"request id", logger.RequestID("abc"), "request_id", "abc"},
		{"component", logger.Component("gitlab_strategy"), "component", "gitlab_strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}
}

func TestEmptyIDs(t *testing.T) {
	assert.True(t, logger.UserID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
