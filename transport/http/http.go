package http

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shine/config"
	"shine/shared/constant"
	"shine/transport/http/middleware"
	"shine/transport/http/response"
	"shine/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config         *config.Config
	Router         router.Router
	State          ServerState
	mux            chi.Router
	appMiddleware  middleware.AppMiddleware
	authMiddleware middleware.AuthRole
}

func New(cfg *config.Config, r router.Router, appMiddleware middleware.AppMiddleware, authMiddleware middleware.AuthRole) *HTTP {
	return &HTTP{
		Config:         cfg,
		Router:         r,
		appMiddleware:  appMiddleware,
		authMiddleware: authMiddleware,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := http.ListenAndServe(net.JoinHostPort("0.0.0.0", h.Config.Server.Port), h.mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// ServeHTTP lets the server run behind serverless function adapters.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.mux == nil {
		h.setup()
	}

	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(h.appMiddleware.Tracing)
	mux.Use(h.appMiddleware.RateLimit())

	if h.Config.App.CORS.Enable {
		corsConfig := h.Config.App.CORS

		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	mux.Get("/health", h.HealthCheck)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		mux.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	mux.Group(func(routerGroup chi.Router) {
		routerGroup.Use(h.authMiddleware.APIKey)
		routerGroup.Use(h.authMiddleware.Auth)
		routerGroup.Use(h.authMiddleware.RBAC)

		h.Router.SetupRoutes(routerGroup)
	})

	h.mux = mux
}

// HealthCheck reports server readiness.
// @Summary Health check
// @Description Report whether the server accepts traffic.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Failure 503 {object} response.Message
// @Router /health [get]
func (h *HTTP) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	switch h.State {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
