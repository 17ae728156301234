package gitlab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// maxBodySize caps how much of a provider response is read into memory.
const maxBodySize = 1 << 20

// Getter performs an authenticated GET and returns the raw response body.
// It is the only capability the profile fetch needs from the OAuth2 client.
type Getter interface {
	Get(ctx context.Context, url, accessToken string) ([]byte, error)
}

// oauth2Getter sends the access token as a bearer Authorization header
// through an x/oauth2 transport layered over base.
type oauth2Getter struct {
	base *http.Client
}

func newOAuth2Getter(base *http.Client) *oauth2Getter {
	if base == nil {
		base = &http.Client{Timeout: 10 * time.Second}
	}
	return &oauth2Getter{base: base}
}

// Get issues the request; non-2xx responses become *StatusError.
func (g *oauth2Getter) Get(ctx context.Context, url, accessToken string) ([]byte, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = g.base.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	tooLarge := len(body) > maxBodySize
	if tooLarge {
		body = body[:maxBodySize]
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	if tooLarge {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBodySize)
	}

	return body, nil
}

// Compile-time interface assertion
var _ Getter = (*oauth2Getter)(nil)
