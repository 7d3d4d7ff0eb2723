package httpserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/isdmx/runbox/sandbox"
)

//go:embed static
var staticFiles embed.FS

func staticHandler() http.Handler {
	static, _ := fs.Sub(staticFiles, "static")
	return http.FileServer(http.FS(static))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type runRequest struct {
	// Pointer so a missing field and an empty program are distinguishable
	Code *string `json:"code"`
}

type runResponse struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == nil {
		writeError(w, http.StatusBadRequest, "Missing 'code' field")
		return
	}

	code := *req.Code
	if maxChars := s.cfg.Server.MaxCodeChars; len(code) > maxChars {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Code too long (max %d characters)", maxChars))
		return
	}

	result := s.runner.Run(r.Context(), sandbox.Request{Code: code})

	// Traceback shortening is applied exactly once, here at the boundary
	writeJSON(w, http.StatusOK, runResponse{
		Output:   sandbox.ShortenTraceback(result.Output),
		ExitCode: result.ExitCode,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
