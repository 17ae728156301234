package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/gitlabauth/pkg/logger"
)

// VerifyFunc is invoked by Authenticate with the exchanged token and the
// fetched profile. Returning an error rejects the login.
type VerifyFunc func(ctx context.Context, token *oauth2.Token, profile *Profile) error

// Strategy authenticates users against GitLab. It wraps an oauth2.Config for
// the authorization-code flow and a Getter for the profile endpoints.
// A Strategy is immutable after New and safe for concurrent use.
type Strategy struct {
	cfg    Config
	oauth  *oauth2.Config
	getter Getter
	verify VerifyFunc
	logger *slog.Logger

	httpClient   *http.Client
	fetchGroups  bool
	groupsPolicy Policy
	emailsPolicy Policy
}

// Option configures a Strategy during construction.
type Option func(*Strategy)

// WithLogger sets a custom logger for the strategy.
func WithLogger(l *slog.Logger) Option {
	return func(s *Strategy) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHTTPClient sets the base client used for token exchange and API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Strategy) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithGetter replaces the transport used for the profile endpoints.
func WithGetter(g Getter) Option {
	return func(s *Strategy) {
		if g != nil {
			s.getter = g
		}
	}
}

// New creates a GitLab strategy. cfg.ClientID is required. verify may be nil
// when the caller only needs FetchProfile; Authenticate refuses to run without it.
func New(cfg Config, verify VerifyFunc, opts ...Option) (*Strategy, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	// x/oauth2 joins scopes with a space, so GitLab's separator is applied up front.
	scopes := []string{cfg.scope()}

	s := &Strategy{
		cfg:    cfg,
		verify: verify,
		logger: logger.Discard(),
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		fetchGroups:  cfg.hasScope(ScopeAPI),
		groupsPolicy: PolicyStrict,
		emailsPolicy: PolicyBestEffort,
	}
	if cfg.SecondaryFetchPolicy != "" {
		s.groupsPolicy = cfg.SecondaryFetchPolicy
		s.emailsPolicy = cfg.SecondaryFetchPolicy
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.getter == nil {
		s.getter = newOAuth2Getter(s.httpClient)
	}

	return s, nil
}

// Name returns the provider identifier.
func (s *Strategy) Name() string {
	return ProviderName
}

// Config returns the resolved configuration.
func (s *Strategy) Config() Config {
	c := s.cfg
	c.Scopes = append([]string(nil), s.cfg.Scopes...)
	return c
}

// OAuth2Config returns a copy of the underlying oauth2 configuration.
func (s *Strategy) OAuth2Config() *oauth2.Config {
	c := *s.oauth
	c.Scopes = append([]string(nil), s.oauth.Scopes...)
	return &c
}

// AuthCodeURL builds the GitLab authorization URL for the given state token.
func (s *Strategy) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return s.oauth.AuthCodeURL(state, opts...)
}

// Authenticate exchanges the authorization code, fetches the profile and
// hands both to the verify callback.
// It fails with ErrMissingVerify, before any request, when New got no callback.
func (s *Strategy) Authenticate(ctx context.Context, code string) (*Profile, error) {
	if s.verify == nil {
		return nil, ErrMissingVerify
	}
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}

	profile, err := s.FetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	if err := s.verify(ctx, tok, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// FetchProfile retrieves and normalizes the user profile for accessToken.
//
// The profile endpoint is always called. Group membership is fetched when the
// "api" scope is configured and all email addresses when FetchAllEmails is set;
// the calls run one after another. Failures of those secondary calls either fail
// the whole operation (PolicyStrict) or are logged and skipped (PolicyBestEffort).
func (s *Strategy) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	body, err := s.getter.Get(ctx, s.cfg.ProfileURL, accessToken)
	if err != nil {
		return nil, &TransportError{Resource: ResourceProfile, Err: err}
	}

	profile, err := newProfile(body)
	if err != nil {
		return nil, &ParseError{Resource: ResourceProfile, Err: err}
	}

	if s.fetchGroups {
		if err := s.loadGroups(ctx, accessToken, profile); err != nil {
			if !s.tolerate(ctx, s.groupsPolicy, ResourceGroups, s.cfg.GroupsURL, err) {
				return nil, err
			}
		}
	}

	if s.cfg.FetchAllEmails {
		if err := s.loadEmails(ctx, accessToken, profile); err != nil {
			if !s.tolerate(ctx, s.emailsPolicy, ResourceEmails, s.cfg.EmailsURL, err) {
				return nil, err
			}
		}
	}

	return profile, nil
}

func (s *Strategy) loadGroups(ctx context.Context, accessToken string, profile *Profile) error {
	body, err := s.getter.Get(ctx, s.cfg.GroupsURL, accessToken)
	if err != nil {
		return &TransportError{Resource: ResourceGroups, Err: err}
	}
	groups, err := parseGroups(body)
	if err != nil {
		return &ParseError{Resource: ResourceGroups, Err: err}
	}
	profile.Groups = groups
	return nil
}

func (s *Strategy) loadEmails(ctx context.Context, accessToken string, profile *Profile) error {
	body, err := s.getter.Get(ctx, s.cfg.EmailsURL, accessToken)
	if err != nil {
		return &TransportError{Resource: ResourceEmails, Err: err}
	}
	emails, err := parseEmails(body)
	if err != nil {
		return &ParseError{Resource: ResourceEmails, Err: err}
	}
	profile.mergeEmails(emails)
	return nil
}

// tolerate reports whether a secondary fetch failure may be skipped,
// logging it when it is.
func (s *Strategy) tolerate(ctx context.Context, policy Policy, res Resource, endpoint string, err error) bool {
	if policy != PolicyBestEffort {
		return false
	}
	s.logger.WarnContext(ctx, "secondary fetch failed, continuing with primary profile",
		logger.Provider(ProviderName),
		logger.Resource(string(res)),
		logger.Endpoint(endpoint),
		logger.Policy(string(policy)),
		logger.Error(err),
		logger.Component("gitlab_strategy"),
	)
	return true
}
