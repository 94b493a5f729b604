package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthUser is the provider-agnostic identity returned from a
// completed OAuth flow.
type OAuthUser struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
}

// OAuthProvider abstracts an OAuth identity provider.
type OAuthProvider interface {
	Name() string
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}
