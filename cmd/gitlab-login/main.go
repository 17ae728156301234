package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/gitlabauth/pkg/config"
	"github.com/dmitrymomot/gitlabauth/pkg/gitlab"
	"github.com/dmitrymomot/gitlabauth/pkg/logger"
	"github.com/dmitrymomot/gitlabauth/pkg/requestid"
)

const stateCookie = "gitlab_oauth_state"

type appConfig struct {
	Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	Env      string        `env:"APP_ENV" envDefault:"development"`
	StateTTL time.Duration `env:"GITLAB_OAUTH_STATE_TTL" envDefault:"10m"`
}

func main() {
	var app appConfig
	config.MustLoad(&app)

	log := logger.New(
		logger.WithEnvironment(app.Env, "gitlab-login"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var glCfg gitlab.Config
	if err := config.Load(&glCfg); err != nil {
		log.Error("failed to load gitlab config", logger.Error(err))
		os.Exit(1)
	}

	strategy, err := gitlab.New(glCfg, verifyProfile(log), gitlab.WithLogger(log))
	if err != nil {
		log.Error("failed to create gitlab strategy", logger.Error(err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer)
	r.Get("/auth/gitlab", loginHandler(strategy, app.StateTTL))
	r.Get("/auth/gitlab/callback", callbackHandler(strategy, log))

	srv := &http.Server{
		Addr:              app.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", slog.String("addr", app.Addr), logger.Provider(strategy.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", logger.Error(err))
	}
}

// verifyProfile is where an application maps the profile onto its own user record.
func verifyProfile(log *slog.Logger) gitlab.VerifyFunc {
	return func(ctx context.Context, _ *oauth2.Token, p *gitlab.Profile) error {
		log.InfoContext(ctx, "user authenticated",
			logger.Provider(p.Provider),
			logger.UserID(p.ID),
			slog.String("username", p.Username),
			slog.Int("groups", len(p.Groups)),
		)
		return nil
	}
}

func loginHandler(s *gitlab.Strategy, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/auth/gitlab",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, s.AuthCodeURL(state), http.StatusFound)
	}
}

func callbackHandler(s *gitlab.Strategy, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		c, err := r.Cookie(stateCookie)
		if err != nil || c.Value == "" || c.Value != q.Get("state") {
			http.Error(w, "invalid oauth state", http.StatusBadRequest)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/gitlab", MaxAge: -1})

		if e := q.Get("error"); e != "" {
			log.WarnContext(ctx, "authorization denied", slog.String("reason", e))
			http.Error(w, "authorization denied", http.StatusUnauthorized)
			return
		}

		profile, err := s.Authenticate(ctx, q.Get("code"))
		if err != nil {
			log.ErrorContext(ctx, "authentication failed", logger.Provider(s.Name()), logger.Error(err))
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(profile); err != nil {
			log.ErrorContext(ctx, "failed to write profile", logger.Error(err))
		}
	}
}
