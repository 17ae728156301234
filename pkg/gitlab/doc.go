// Package gitlab authenticates users against GitLab (gitlab.com or a
// self-managed instance) over OAuth 2.0 and normalizes the returned user into
// a Profile.
//
// The authorization-code handshake is handled by golang.org/x/oauth2; this
// package supplies the endpoints and scopes and turns the REST responses into
// a provider-independent shape.
//
// # Usage
//
//	strategy, err := gitlab.New(gitlab.Config{
//		ClientID:     "123-456-789",
//		ClientSecret: "shhh-its-a-secret",
//		RedirectURL:  "https://www.example.net/auth/gitlab/callback",
//		Scopes:       []string{"read_user", "api"},
//	}, func(ctx context.Context, tok *oauth2.Token, p *gitlab.Profile) error {
//		return users.FindOrCreate(ctx, p.Provider, p.ID)
//	}, gitlab.WithLogger(log))
//
//	http.Redirect(w, r, strategy.AuthCodeURL(state), http.StatusFound)
//
//	// in the callback handler
//	profile, err := strategy.Authenticate(ctx, r.URL.Query().Get("code"))
//
// # Profile fetch
//
// FetchProfile always calls the user endpoint (api/v4/user). Two optional
// secondary calls follow it, in order:
//
//   - group membership (api/v4/groups?min_access_level=10), when the "api"
//     scope is configured; fills Profile.Groups.
//   - all email addresses (api/v4/user/emails), when Config.FetchAllEmails is
//     set; appends to Profile.Emails.
//
// By default a failed group fetch fails the whole call and a failed emails
// fetch is logged and ignored. Config.SecondaryFetchPolicy forces one policy
// for both.
//
// # Errors
//
// Every fetch failure is a *TransportError or a *ParseError naming the
// resource. Both match the resource sentinels with errors.Is:
//
//	switch {
//	case errors.Is(err, gitlab.ErrFetchProfile):
//		// provider unreachable or token rejected
//	case errors.Is(err, gitlab.ErrParseGroups):
//		// groups endpoint returned something other than JSON
//	}
//
// Responses larger than 1 MiB are refused with ErrResponseTooLarge inside a
// *TransportError rather than parsed truncated.
package gitlab
