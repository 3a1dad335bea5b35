package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"chorepoints/internal/security"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// StartOAuth initiates the OAuth flow for a provider. The client's originUrl
// rides along in a short-lived cookie so the callback knows where to land.
func (h *AuthHandler) StartOAuth(providerKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := h.oauthProviders[providerKey]
		if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
			respondMessage(w, http.StatusBadRequest, "OAuth provider not configured")
			return
		}

		state := security.GenerateSessionID()
		h.setTempCookie(w, "oauth_state", state, 10*time.Minute)
		if origin := r.URL.Query().Get("originUrl"); origin != "" {
			h.setTempCookie(w, "oauth_origin", origin, 10*time.Minute)
		}

		config := *provider.Config
		config.RedirectURL = h.oauthRedirectURL(r, providerKey)

		authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// OAuthCallback exchanges the authorization code, logs the user in and
// redirects back to the frontend with the session and token pair in the
// query string.
func (h *AuthHandler) OAuthCallback(providerKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := h.oauthProviders[providerKey]
		if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
			respondMessage(w, http.StatusBadRequest, "OAuth provider not configured")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			respondMessage(w, http.StatusBadRequest, "Missing authorization code")
			return
		}

		stateCookie, err := r.Cookie("oauth_state")
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			respondMessage(w, http.StatusBadRequest, "Invalid OAuth state")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		config := *provider.Config
		config.RedirectURL = h.oauthRedirectURL(r, providerKey)

		token, err := config.Exchange(ctx, code)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Failed to exchange OAuth code")
			return
		}

		userInfo, err := fetchOAuthUserInfo(ctx, provider, token)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		origin := ""
		if cookie, err := r.Cookie("oauth_origin"); err == nil {
			origin = cookie.Value
		}
		h.clearTempCookie(w, "oauth_state")
		h.clearTempCookie(w, "oauth_origin")

		user, pair, err := h.authService.OAuthLogin(providerKey, userInfo.Subject, userInfo.Email, userInfo.Name)
		if err != nil {
			respondServiceError(w, h.log, err)
			return
		}

		if user.OriginURL != "" {
			origin = user.OriginURL
		}
		if origin == "" {
			respondJSON(w, http.StatusOK, map[string]string{
				"sid":          pair.SessionID,
				"accessToken":  pair.AccessToken,
				"refreshToken": pair.RefreshToken,
			})
			return
		}

		target := fmt.Sprintf("%s?%s", strings.TrimRight(origin, "/"), url.Values{
			"sid":          []string{pair.SessionID},
			"accessToken":  []string{pair.AccessToken},
			"refreshToken": []string{pair.RefreshToken},
		}.Encode())
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// fetchOAuthUserInfo pulls the subject, email and display name from the
// provider's userinfo endpoint. Google and Facebook share the payload shape.
func fetchOAuthUserInfo(ctx context.Context, provider OAuthProvider, token *oauth2.Token) (oauthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to fetch %s user info", provider.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, fmt.Errorf("failed to fetch %s user info", provider.Name)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to parse %s user info", provider.Name)
	}

	return oauthUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request, providerKey string) string {
	baseURL := strings.TrimSpace(h.oauthRedirectBaseURL)
	if baseURL == "" {
		scheme := "http"
		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s/auth/%s-redirect", strings.TrimRight(baseURL, "/"), providerKey)
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
