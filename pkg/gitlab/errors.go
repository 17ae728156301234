package gitlab

import (
	"errors"
	"fmt"
)

// Resource names the provider endpoint a failure belongs to.
type Resource string

const (
	ResourceProfile Resource = "profile"
	ResourceGroups  Resource = "groups"
	ResourceEmails  Resource = "emails"
)

// Fetch and parse errors, one pair per resource.
var (
	ErrFetchProfile = errors.New("gitlab: failed to fetch user profile")
	ErrParseProfile = errors.New("gitlab: failed to parse user profile")
	ErrFetchGroups  = errors.New("gitlab: failed to fetch groups of user")
	ErrParseGroups  = errors.New("gitlab: failed to parse groups of user")
	ErrFetchEmails  = errors.New("gitlab: failed to fetch emails of user")
	ErrParseEmails  = errors.New("gitlab: failed to parse emails of user")
)

// Configuration and flow errors
var (
	ErrInvalidBaseURL   = errors.New("gitlab: invalid base url")
	ErrInvalidPolicy    = errors.New("gitlab: invalid secondary fetch policy")
	ErrMissingClientID  = errors.New("gitlab: client id is required")
	ErrMissingVerify    = errors.New("gitlab: verify callback is required to authenticate")
	ErrInvalidCode      = errors.New("gitlab: invalid oauth code")
	ErrUnexpectedJSON   = errors.New("gitlab: unexpected json document")
	ErrResponseTooLarge = errors.New("gitlab: response body too large")
)

// TransportError reports that the authenticated GET itself failed:
// network, TLS or a non-2xx status. No body was parsed.
type TransportError struct {
	Resource Resource
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", fetchSentinel(e.Resource), e.Err)
}

// Unwrap exposes both the resource sentinel and the transport cause to errors.Is.
func (e *TransportError) Unwrap() []error {
	return []error{fetchSentinel(e.Resource), e.Err}
}

// ParseError reports a response body that is not the expected JSON document.
type ParseError struct {
	Resource Resource
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", parseSentinel(e.Resource), e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{parseSentinel(e.Resource), e.Err}
}

// StatusError is returned by the default Getter for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gitlab api returned status %d", e.StatusCode)
}

func fetchSentinel(r Resource) error {
	switch r {
	case ResourceGroups:
		return ErrFetchGroups
	case ResourceEmails:
		return ErrFetchEmails
	default:
		return ErrFetchProfile
	}
}

func parseSentinel(r Resource) error {
	switch r {
	case ResourceGroups:
		return ErrParseGroups
	case ResourceEmails:
		return ErrParseEmails
	default:
		return ErrParseProfile
	}
}
