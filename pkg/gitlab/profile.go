package gitlab

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ProviderName identifies profiles produced by this adapter.
const ProviderName = "gitlab"

// Profile is the normalized GitLab user profile.
type Profile struct {
	Provider    string  `json:"provider"`
	ID          string  `json:"id"`
	Username    string  `json:"username,omitempty"`
	DisplayName string  `json:"displayName,omitempty"`
	Emails      []Email `json:"emails"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
	ProfileURL  string  `json:"profileUrl,omitempty"`

	// Groups is nil unless group membership was fetched successfully.
	Groups []string `json:"groups,omitempty"`

	// Raw is the unparsed profile response body.
	Raw string `json:"_raw"`

	// JSON is the parsed profile response; numbers are kept as json.Number.
	JSON map[string]any `json:"_json"`
}

// MarshalJSON encodes the profile, keeping an empty fetched group list as []
// while leaving the attribute out entirely when groups were never fetched.
func (p Profile) MarshalJSON() ([]byte, error) {
	type alias Profile
	out := struct {
		alias
		Groups *[]string `json:"groups,omitempty"`
	}{alias: alias(p)}
	if p.Groups != nil {
		out.Groups = &p.Groups
	}
	return json.Marshal(out)
}

// HasGroups reports whether group membership is part of the profile.
func (p *Profile) HasGroups() bool {
	return p.Groups != nil
}

// PrimaryEmail returns the address reported by the profile endpoint.
func (p *Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0].Value
}

// Email is a single address of the user. Primary is nil when the
// provider data carried no notion of primacy.
type Email struct {
	Value   string `json:"value"`
	Primary *bool  `json:"primary,omitempty"`
}

// IsPrimary reports whether the address is explicitly marked primary.
func (e Email) IsPrimary() bool {
	return e.Primary != nil && *e.Primary
}

// newProfile maps the profile endpoint body onto a Profile.
// Missing or mistyped fields become empty strings; only invalid JSON fails.
func newProfile(body []byte) (*Profile, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Provider:    ProviderName,
		ID:          idString(obj["id"]),
		Username:    stringField(obj, "username"),
		DisplayName: stringField(obj, "name"),
		Emails:      []Email{{Value: stringField(obj, "email")}},
		AvatarURL:   stringField(obj, "avatar_url"),
		ProfileURL:  stringField(obj, "web_url"),
		Raw:         string(body),
		JSON:        obj,
	}, nil
}

// parseGroups returns the name of every group, in response order.
func parseGroups(body []byte) ([]string, error) {
	items, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(items))
	for _, g := range items {
		groups = append(groups, stringField(g, "name"))
	}
	return groups, nil
}

// parseEmails returns the address of every entry, in response order.
func parseEmails(body []byte) ([]string, error) {
	items, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(items))
	for _, e := range items {
		emails = append(emails, stringField(e, "email"))
	}
	return emails, nil
}

// mergeEmails marks the profile email primary and appends all addresses.
// An address is primary only when it equals the profile email; provider
// flags are never consulted. An empty list leaves the profile untouched.
func (p *Profile) mergeEmails(addresses []string) {
	if len(addresses) == 0 {
		return
	}
	primary := p.Emails[0].Value
	p.Emails[0].Primary = boolPtr(true)
	for _, addr := range addresses {
		p.Emails = append(p.Emails, Email{Value: addr, Primary: boolPtr(addr == primary)})
	}
}

// decodeObject strictly parses body as exactly one JSON object.
func decodeObject(body []byte) (map[string]any, error) {
	var obj map[string]any
	if err := decodeStrict(body, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrUnexpectedJSON
	}
	return obj, nil
}

// decodeList strictly parses body as a JSON array of objects; null is rejected.
func decodeList(body []byte) ([]map[string]any, error) {
	var items []map[string]any
	if err := decodeStrict(body, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, ErrUnexpectedJSON
	}
	return items, nil
}

func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// idString renders the provider identifier as a string.
// Numbers keep their exact decimal text; non-scalar values yield "".
func idString(v any) string {
	switch id := v.(type) {
	case json.Number:
		return id.String()
	case string:
		return id
	default:
		return ""
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolPtr(b bool) *bool {
	return &b
}
