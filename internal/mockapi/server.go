// Package mockapi is a stand-in for the Ledgerline backend used in local
// development and end-to-end tests. It reproduces the real backend's
// envelope quirks on purpose: some endpoints report status as the string
// "200", and each list endpoint ships a different subset of pagination
// metadata.
package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/unrolled/secure"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerline/ledgerline-mobile/internal/platform/httpx"
)

// Server serves the mock backend API.
type Server struct {
	fixtures *Fixtures
	logger   *slog.Logger
}

// New builds the mock backend handler.
func New(fixtures *Fixtures, logger *slog.Logger) http.Handler {
	s := &Server{fixtures: fixtures, logger: logger}

	secureMW := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(secureMW.Handler)
	r.Use(httprate.LimitByIP(300, time.Minute))

	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/permissions/{userID}", s.handleGrants)
		r.Get("/api/{module}", s.handleList)
		r.Post("/api/{module}", s.handleCreate)
		r.Post("/api/{module}/{id}/{action}", s.handleRecordAction)
	})
	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			httpx.Failure(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, ok := s.fixtures.ResolveToken(raw); !ok {
			httpx.Failure(w, http.StatusUnauthorized, "unknown token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(r, &creds); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "malformed login request")
		return
	}
	acc, ok := s.fixtures.AccountByEmail(creds.Email)
	if !ok || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(creds.Password)) != nil {
		httpx.Failure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := uuid.NewString()
	s.fixtures.IssueToken(token, acc.ID)
	if s.logger != nil {
		s.logger.Info("issued token", slog.Int64("account_id", acc.ID))
	}
	httpx.Success(w, httpx.Envelope{
		Data: mustJSON(map[string]any{
			"token": token,
			"user":  map[string]any{"id": acc.ID, "role": acc.Role},
		}),
	}, false)
}

func (s *Server) handleGrants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "bad user id")
		return
	}
	acc, ok := s.fixtures.AccountByID(id)
	if !ok {
		httpx.Failure(w, http.StatusNotFound, "user not found")
		return
	}
	// The permissions endpoint is one of the string-status ones.
	httpx.Success(w, httpx.Envelope{
		Permissions: mustJSON(acc.Grants),
	}, true)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	rows, total, ok := s.fixtures.Page(module, page)
	if !ok {
		httpx.Failure(w, http.StatusNotFound, "unknown module")
		return
	}

	perPage := s.fixtures.PerPage()
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	env := httpx.Envelope{Data: mustJSON(rows)}

	// Pagination metadata differs per endpoint, as it does in production.
	asString := false
	switch module {
	case "expenses":
		if page < lastPage {
			next := fmt.Sprintf("/api/%s?page=%d", module, page+1)
			env.NextPageURL = &next
		}
	case "invoices":
		env.CurrentPage = &page
		env.LastPage = &lastPage
		asString = true
	default:
		env.PerPage = &perPage
	}
	httpx.Success(w, env, asString)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	var row Record
	if err := httpx.DecodeJSON(r, &row); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "malformed payload")
		return
	}
	id, ok := s.fixtures.Create(module, row)
	if !ok {
		httpx.Failure(w, http.StatusNotFound, "unknown module")
		return
	}
	httpx.Success(w, httpx.Envelope{Data: mustJSON(map[string]any{"id": id})}, false)
}

func (s *Server) handleRecordAction(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	action := chi.URLParam(r, "action")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "bad record id")
		return
	}

	var ok bool
	switch action {
	case "delete":
		ok = s.fixtures.Delete(module, id)
	case "approve":
		ok = s.fixtures.SetStatus(module, id, "approved")
	case "edit":
		var fields Record
		if err := httpx.DecodeJSON(r, &fields); err != nil {
			httpx.Failure(w, http.StatusBadRequest, "malformed payload")
			return
		}
		ok = s.fixtures.Update(module, id, fields)
	default:
		httpx.Failure(w, http.StatusNotFound, "unknown action")
		return
	}
	if !ok {
		httpx.Failure(w, http.StatusNotFound, "record not found")
		return
	}
	httpx.Success(w, httpx.Envelope{}, false)
}
