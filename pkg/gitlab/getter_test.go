package gitlab

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuth2Getter(t *testing.T) {
	t.Parallel()

	t.Run("defaults to client with timeout", func(t *testing.T) {
		t.Parallel()

		g := newOAuth2Getter(nil)
		assert.Equal(t, 10*time.Second, g.base.Timeout)
	})

	t.Run("sends bearer header and returns body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		t.Cleanup(srv.Close)

		body, err := newOAuth2Getter(srv.Client()).Get(context.Background(), srv.URL, "secret-token")
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
	})

	t.Run("non 2xx becomes status error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"403 Forbidden"}`))
		}))
		t.Cleanup(srv.Close)

		body, err := newOAuth2Getter(srv.Client()).Get(context.Background(), srv.URL, "secret-token")
		assert.Nil(t, body)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusForbidden, se.StatusCode)
		assert.Equal(t, "gitlab api returned status 403", se.Error())
	})

	t.Run("body at the size limit is returned whole", func(t *testing.T) {
		t.Parallel()

		payload := bytes.Repeat([]byte("a"), maxBodySize)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(payload)
		}))
		t.Cleanup(srv.Close)

		body, err := newOAuth2Getter(srv.Client()).Get(context.Background(), srv.URL, "secret-token")
		require.NoError(t, err)
		assert.Len(t, body, maxBodySize)
	})

	t.Run("body over the size limit is rejected", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(bytes.Repeat([]byte("a"), maxBodySize+1))
		}))
		t.Cleanup(srv.Close)

		body, err := newOAuth2Getter(srv.Client()).Get(context.Background(), srv.URL, "secret-token")
		assert.Nil(t, body)
		require.ErrorIs(t, err, ErrResponseTooLarge)

		var se *StatusError
		assert.False(t, errors.As(err, &se))
	})

	t.Run("oversized error body keeps status error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write(bytes.Repeat([]byte("x"), maxBodySize+10))
		}))
		t.Cleanup(srv.Close)

		_, err := newOAuth2Getter(srv.Client()).Get(context.Background(), srv.URL, "secret-token")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadGateway, se.StatusCode)
		assert.Len(t, se.Body, maxBodySize)
		assert.NotErrorIs(t, err, ErrResponseTooLarge)
	})

	t.Run("canceled context fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newOAuth2Getter(srv.Client()).Get(ctx, srv.URL, "secret-token")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
