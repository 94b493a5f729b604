package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ctjot-server/internal/auth"
	"ctjot-server/internal/auth/providers"
	"ctjot-server/internal/shared/config"
	"ctjot-server/internal/shared/cookies"
	"ctjot-server/internal/shared/errors"
	"ctjot-server/internal/shared/response"
)

// OAuthHandler runs the operator login flow. Only Discord users on the
// admin allowlist get a session; everyone else is turned away.
type OAuthHandler struct {
	provider     providers.OAuthProvider
	isConfigured bool
}

func NewOAuthHandler(provider providers.OAuthProvider, isConfigured bool) *OAuthHandler {
	return &OAuthHandler{
		provider:     provider,
		isConfigured: isConfigured,
	}
}

func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	logger := slog.With("handler", name+"_oauth_init")

	if !h.isConfigured {
		response.Error(w, r, logger, errors.External(fmt.Sprintf("%s OAuth is not properly configured", name)))
		return
	}

	state, err := auth.GenerateOAuthState(name, r.UserAgent())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to initialize OAuth flow", err))
		return
	}

	authURL := h.provider.GetAuthURL(state)
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	errorParam := r.URL.Query().Get("error")

	logger := slog.With(
		"handler", name+"_oauth_callback",
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
		"has_code", code != "",
		"has_state", state != "",
	)

	if errorParam != "" {
		logger.Warn("OAuth authorization denied",
			"provider", name,
			"oauth_error", errorParam,
			"error_description", r.URL.Query().Get("error_description"))
		redirectWithError(w, r, "oauth_denied")
		return
	}

	if code == "" {
		logger.Error("OAuth callback missing authorization code", "provider", name)
		redirectWithError(w, r, "oauth_error")
		return
	}

	if err := auth.ValidateOAuthState(state, name, r.UserAgent()); err != nil {
		logger.Warn("OAuth state validation failed", "error", err, "provider", name)
		redirectWithError(w, r, "oauth_error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", "error", err, "provider", name)
		redirectWithError(w, r, "oauth_error")
		return
	}

	userInfo, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to get user info", "error", err, "provider", name)
		redirectWithError(w, r, "oauth_error")
		return
	}

	userLogger := logger.With(
		"provider_user_id", userInfo.ID,
		"user_name", userInfo.Username)

	if !config.GlobalConfig.IsAdminDiscordUser(userInfo.ID) {
		userLogger.Warn("Non-admin user attempted operator login")
		redirectWithError(w, r, "not_authorized")
		return
	}

	jwtToken, err := auth.GenerateJWT(userInfo.ID, userInfo.Username, true)
	if err != nil {
		userLogger.Error("Failed to generate JWT token", "error", err)
		redirectWithError(w, r, "auth_error")
		return
	}

	cookies.SetAuthCookie(w, jwtToken)

	userLogger.Info("Operator login successful", "provider", name)

	successURL := fmt.Sprintf("%s/admin?login=success", config.GlobalConfig.Frontend.URL)
	http.Redirect(w, r, successURL, http.StatusTemporaryRedirect)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	errorURL := fmt.Sprintf("%s/admin?error=%s", config.GlobalConfig.Frontend.URL, code)
	http.Redirect(w, r, errorURL, http.StatusTemporaryRedirect)
}
