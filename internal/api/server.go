// Package api is the JWT-secured JSON variant of the application, routed
// with chi. There is no logout: issued tokens live until expiry.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/service"
	"github.com/mkarlsson/webdemo/internal/session"
	"github.com/mkarlsson/webdemo/internal/webres"
)

type ctxKey int

const userIDKey ctxKey = iota

type Server struct {
	auth     *service.AuthService
	sessions session.Authenticator
	logger   *zap.Logger
}

type Deps struct {
	Auth     *service.AuthService
	Sessions session.Authenticator
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	s := &Server{auth: deps.Auth, sessions: deps.Sessions, logger: deps.Logger}

	r := chi.NewRouter()
	r.Post("/login", s.login)
	r.Post("/test_json", s.testJSON)
	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/secret", s.secret)
	})
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

type loginInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Username == nil || input.Password == nil {
		s.respond(w, r, s.badCredentials(), nil)
		return
	}

	userID, err := s.auth.Authenticate(r.Context(), *input.Username, *input.Password)
	if err != nil {
		if appErr.IsUnauthorized(err) {
			s.respond(w, r, s.badCredentials(), nil)
			return
		}
		s.respond(w, r, nil, err)
		return
	}

	signed, err := s.sessions.Issue(w, session.Identity{UserID: userID})
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	s.respond(w, r, webres.JSON(map[string]string{"token": signed}), nil)
}

func (s *Server) secret(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDKey).(int64)
	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	s.respond(w, r, webres.JSON(map[string]string{"hello": user.Email}), nil)
}

func (s *Server) testJSON(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respond(w, r, webres.JSON(map[string]string{"error": "Invalid request body"}).WithStatus(422), nil)
		return
	}
	if _, verr := service.ValidateEmail(input.Email); verr != nil {
		s.respond(w, r, webres.JSON(map[string]string{"error": verr.Message}).WithStatus(422), nil)
		return
	}
	if _, verr := service.ValidatePassword(input.Password); verr != nil {
		s.respond(w, r, webres.JSON(map[string]string{"error": verr.Message}).WithStatus(422), nil)
		return
	}
	s.respond(w, r, webres.JSON(map[string]bool{"success": true}), nil)
}

// requireToken is the token-variant challenge policy: reject with a JSON
// 401 instead of redirecting.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.sessions.Validate(r)
		if err != nil {
			s.respond(w, r, webres.JSON(map[string]string{"error": "unauthorized"}).WithStatus(http.StatusUnauthorized), nil)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, ident.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) badCredentials() *webres.Response {
	return webres.JSON(map[string]string{"error": "Invalid username and/or password"}).
		WithStatus(http.StatusForbidden)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, resp *webres.Response, err error) {
	if err == nil {
		if err = webres.WriteHTTP(w, resp); err == nil {
			return
		}
	}
	s.logger.Error("unhandled request error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("500: " + err.Error()))
}
