package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	appcfg "github.com/inkwell-notes/core/internal/config"
	"github.com/gin-gonic/gin"
)

// ExternalProfile is the verified identity returned by a provider.
type ExternalProfile struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}

var oauthHTTPClient = &http.Client{Timeout: 15 * time.Second}

func callbackURI(c *gin.Context, provider string) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/auth/callback/%s", scheme, c.Request.Host, provider)
}

// authorizeURL builds the provider consent page URL.
func authorizeURL(provider appcfg.OAuthProvider, redirectURI, state string) string {
	switch strings.ToLower(provider.Type) {
	case "github":
		params := url.Values{}
		params.Set("client_id", provider.ClientID)
		params.Set("redirect_uri", redirectURI)
		params.Set("scope", "user:email")
		if state != "" {
			params.Set("state", state)
		}
		return "https://github.com/login/oauth/authorize?" + params.Encode()
	case "google":
		params := url.Values{}
		params.Set("client_id", provider.ClientID)
		params.Set("redirect_uri", redirectURI)
		params.Set("response_type", "code")
		params.Set("scope", "openid email profile")
		params.Set("access_type", "offline")
		if state != "" {
			params.Set("state", state)
		}
		return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
	}
	return ""
}

// exchangeCode trades the authorization code for an access token.
func exchangeCode(ctx context.Context, provider appcfg.OAuthProvider, code, redirectURI string) (string, error) {
	providerType := strings.ToLower(provider.Type)

	body := url.Values{}
	body.Set("client_id", provider.ClientID)
	body.Set("client_secret", provider.ClientSecret)
	body.Set("code", code)
	body.Set("redirect_uri", redirectURI)

	var endpoint string
	switch providerType {
	case "github":
		endpoint = "https://github.com/login/oauth/access_token"
	case "google":
		body.Set("grant_type", "authorization_code")
		endpoint = "https://oauth2.googleapis.com/token"
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider.Type)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(body.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := oauthHTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Error != "" {
		return "", fmt.Errorf("%s: %s", providerType, result.Error)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%s: empty access token", providerType)
	}
	return result.AccessToken, nil
}

// fetchProfile loads the external profile for the token's user.
func fetchProfile(ctx context.Context, providerType, accessToken string) (*ExternalProfile, error) {
	switch strings.ToLower(providerType) {
	case "github":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := oauthHTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var u struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Email     string `json:"email"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, err
		}
		name := u.Name
		if name == "" {
			name = u.Login
		}
		return &ExternalProfile{
			ID:        fmt.Sprintf("%d", u.ID),
			Name:      name,
			Email:     u.Email,
			AvatarURL: u.AvatarURL,
		}, nil

	case "google":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := oauthHTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var u struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, err
		}
		return &ExternalProfile{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			AvatarURL: u.Picture,
		}, nil
	}

	return nil, fmt.Errorf("unsupported provider: %s", providerType)
}
