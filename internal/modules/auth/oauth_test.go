package auth

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	appcfg "github.com/inkwell-notes/core/internal/config"
)

func TestAuthorizeURLGitHub(t *testing.T) {
	provider := appcfg.OAuthProvider{Type: "github", ClientID: "gh-id"}
	raw := authorizeURL(provider, "http://localhost:2333/auth/callback/github", "st-1")

	if !strings.HasPrefix(raw, "https://github.com/login/oauth/authorize?") {
		t.Fatalf("url = %q", raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("client_id") != "gh-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("scope") != "user:email" {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if q.Get("state") != "st-1" {
		t.Errorf("state = %q", q.Get("state"))
	}
}

func TestAuthorizeURLGoogle(t *testing.T) {
	provider := appcfg.OAuthProvider{Type: "google", ClientID: "g-id"}
	raw := authorizeURL(provider, "http://localhost:2333/auth/callback/google", "")

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("scope") != "openid email profile" {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if q.Has("state") {
		t.Error("empty state should be omitted")
	}
}

func TestAuthorizeURLUnknownProvider(t *testing.T) {
	if got := authorizeURL(appcfg.OAuthProvider{Type: "gitlab"}, "uri", ""); got != "" {
		t.Fatalf("unknown provider built %q", got)
	}
}

func TestCallbackURI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "http://notes.example.com/auth/redirect/github", nil)
	c.Request.Host = "notes.example.com"

	got := callbackURI(c, "github")
	if got != "http://notes.example.com/auth/callback/github" {
		t.Fatalf("callback uri = %q", got)
	}
}
