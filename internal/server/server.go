// Package server is the thin HTTP surface over the pipeline: one endpoint
// accepting a question, an optional document, and a credential token.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/paylinq/askhr/internal/config"
	"github.com/paylinq/askhr/internal/identity"
	"github.com/paylinq/askhr/internal/model"
)

// maxUploadBytes caps the multipart form size.
const maxUploadBytes = 32 << 20

// Runner runs one request through the pipeline.
type Runner interface {
	Run(ctx context.Context, req model.Request) string
}

// Server wires the HTTP routes to the pipeline.
type Server struct {
	runner   Runner
	resolver identity.Resolver
	cfg      config.ServerConfig
}

// New creates a Server.
func New(runner Runner, resolver identity.Resolver, cfg config.ServerConfig) *Server {
	return &Server{runner: runner, resolver: resolver, cfg: cfg}
}

// Router builds the chi router with CORS for the frontend.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/ask", s.handleAsk)

	return r
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.AllowedOrigins
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAsk accepts a multipart form with fields question, token, and an
// optional file, and returns {"output": answer}. Only transport-level
// failures produce a non-200 status; the pipeline always answers.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm only bounds in-memory buffering; the body itself
	// needs its own cap so oversized uploads are rejected, not spooled.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	tier, name, err := s.resolver.Resolve(r.FormValue("token"))
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		zap.L().Error("server: identity resolution failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "identity resolution failed")
		return
	}

	filePath, cleanup, err := s.saveUpload(r)
	if err != nil {
		zap.L().Error("server: upload failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer cleanup()

	req := model.Request{
		Question: r.FormValue("question"),
		FilePath: filePath,
		Tier:     tier,
		UserName: name,
	}

	zap.L().Info("server: request received",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("user", name),
		zap.String("tier", string(tier)),
		zap.Bool("has_file", filePath != ""),
	)

	answer := s.runner.Run(r.Context(), req)
	writeJSON(w, http.StatusOK, map[string]string{"output": answer})
}

// saveUpload stores the optional multipart file under the upload dir with a
// generated name and returns its path plus a cleanup func. Returns an empty
// path when no file was sent.
func (s *Server) saveUpload(r *http.Request) (string, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", noop, nil
		}
		return "", noop, eris.Wrap(err, "server: form file")
	}
	defer file.Close()

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", noop, eris.Wrap(err, "server: create upload dir")
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := filepath.Join(s.cfg.UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", noop, eris.Wrap(err, "server: create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", noop, eris.Wrap(err, "server: write upload file")
	}

	return path, func() { os.Remove(path) }, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
