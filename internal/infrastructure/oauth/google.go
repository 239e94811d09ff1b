package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleProvider signs users in with Google's OpenID Connect userinfo.
type GoogleProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
}

var _ ports.OAuthProvider = (*GoogleProvider)(nil)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades the authorization code for a token and fetches the
// profile. Missing or rejected codes and unverified emails wrap
// domain.ErrInvalidCredentials.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (domain.ExternalProfile, error) {
	if code == "" {
		return domain.ExternalProfile{}, fmt.Errorf("google: %w: missing authorization code", domain.ErrInvalidCredentials)
	}

	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		// A rejected code is a failed sign-in, not a server fault.
		return domain.ExternalProfile{}, fmt.Errorf("google: %w: exchange code: %v", domain.ErrInvalidCredentials, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("google: build userinfo request: %w", err)
	}
	resp, err := p.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("google: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ExternalProfile{}, fmt.Errorf("google: userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("google: decode userinfo: %w", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return domain.ExternalProfile{}, fmt.Errorf("google: %w: email not verified", domain.ErrInvalidCredentials)
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	return domain.ExternalProfile{
		Provider: p.Name(),
		Subject:  info.Sub,
		Email:    info.Email,
		Name:     name,
		Image:    info.Picture,
	}, nil
}
