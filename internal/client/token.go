package client

import "errors"

// ErrTokenMissing means no anti-forgery token is available. Mutating calls
// abort before touching the network; this is an environment defect, not a
// user-recoverable failure.
var ErrTokenMissing = errors.New("anti-forgery token not found")

// TokenSource yields the anti-forgery token attached to mutating requests.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed token value.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", ErrTokenMissing
	}
	return string(t), nil
}

// PageTokens resolves the token the way storefront pages expose it: the
// csrf-token meta tag first, then the csrftoken cookie.
type PageTokens struct {
	Meta   string
	Cookie string
}

func (p PageTokens) Token() (string, error) {
	if p.Meta != "" {
		return p.Meta, nil
	}
	if p.Cookie != "" {
		return p.Cookie, nil
	}
	return "", ErrTokenMissing
}
