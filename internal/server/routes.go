package server

import (
	"log/slog"
	"net/http"

	authHandlers "ctjot-server/internal/auth/handlers"
	"ctjot-server/internal/auth/providers"
	"ctjot-server/internal/middleware"
	"ctjot-server/internal/seed"
	seedHandlers "ctjot-server/internal/seed/handlers"
	serverHandlers "ctjot-server/internal/server/handlers"
	"ctjot-server/internal/shared/database"
)

type Routes struct {
	db              *database.DB
	seedService     *seed.Service
	discordProvider providers.OAuthProvider
	discordEnabled  bool
	logger          *slog.Logger
}

func NewRoutes(db *database.DB, seedService *seed.Service, discordProvider providers.OAuthProvider, discordEnabled bool, logger *slog.Logger) *Routes {
	return &Routes{
		db:              db,
		seedService:     seedService,
		discordProvider: discordProvider,
		discordEnabled:  discordEnabled,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	statsHandler := serverHandlers.NewStatsHandler(r.seedService)
	seedHandler := seedHandlers.NewSeedHandler(r.seedService)
	logoutHandler := authHandlers.NewLogoutHandler()

	discordAuthHandler := authHandlers.NewOAuthHandler(r.discordProvider, r.discordEnabled)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/seeds", seedHandler.Generate)
	mux.HandleFunc("GET /api/seeds/{share_id}", seedHandler.GetShare)
	mux.HandleFunc("POST /api/seeds/{share_id}/clone", seedHandler.Clone)
	mux.HandleFunc("POST /api/seeds/{share_id}/rom", seedHandler.PatchROM)
	mux.HandleFunc("GET /api/seeds/{share_id}/spoilers", seedHandler.SpoilerText)
	mux.HandleFunc("GET /api/seeds/{share_id}/spoilers.json", seedHandler.SpoilerJSON)
	mux.HandleFunc("GET /api/seeds/{share_id}/spoilers/web", seedHandler.WebSpoilers)

	// Admin-only endpoints (authenticated + admin)
	mux.Handle("GET /api/server/stats", middleware.RequireAdmin(statsHandler))
	mux.Handle("DELETE /api/seeds/{share_id}", middleware.RequireAdmin(http.HandlerFunc(seedHandler.Delete)))

	// OAuth endpoints
	mux.HandleFunc("/auth/discord", discordAuthHandler.HandleAuth)
	mux.HandleFunc("/auth/discord/callback", discordAuthHandler.HandleCallback)
	mux.Handle("POST /auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/seeds", "/api/seeds/{share_id}", "/api/seeds/{share_id}/rom", "/api/seeds/{share_id}/spoilers"},
		"admin_endpoints", []string{"/api/server/stats", "DELETE /api/seeds/{share_id}"},
		"auth_endpoints", []string{"/auth/discord", "/auth/logout"},
	)

	return mux
}
