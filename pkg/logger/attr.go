package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Provider records the identity provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Resource records which provider endpoint a record concerns under the key "resource".
func Resource(name string) slog.Attr {
	return slog.String("resource", name)
}

// Policy records the secondary fetch policy under the key "policy".
func Policy(name string) slog.Attr {
	return slog.String("policy", name)
}

// Endpoint records a request URL under the key "endpoint".
func Endpoint(url string) slog.Attr {
	return slog.String("endpoint", url)
}

// UserID records the provider user identifier under the key "user_id".
// Empty ids produce an empty Attr.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

