package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/partscout"
	"github.com/fwojciec/partscout/xlsx"
)

// Server defaults.
const (
	DefaultShutdownTimeout = 10 * time.Second
	MaxRequestBodySize     = 1 << 20

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Server serves the partscout JSON API.
type Server struct {
	Lookup     partscout.ComponentLookup
	Components partscout.ComponentService
	Prober     partscout.Prober

	// Metrics, if set, is served at /metrics.
	Metrics http.Handler

	Logger *slog.Logger
}

// response is the envelope of every JSON reply.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type searchRequest struct {
	PartNumber string `json:"partNumber"`
}

type candidatesRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/components", s.handleListComponents)
	mux.HandleFunc("DELETE /api/components", s.handleClearComponents)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("GET /api/export/{partNumber}", s.handleExportPart)
	mux.HandleFunc("POST /api/candidates", s.handleCandidates)
	mux.HandleFunc("GET /api/validate/{token}", s.handleValidate)
	mux.HandleFunc("GET /api/probe", s.handleProbe)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}
	return mux
}

// ListenAndServe serves the API on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.PartNumber) == "" {
		s.writeError(w, partscout.Errorf(partscout.EINVALID, "part number is required"))
		return
	}

	rec, err := s.Lookup.LookupComponent(r.Context(), req.PartNumber)
	if err != nil {
		s.writeError(w, err)
		return
	}

	stored, created, err := s.Components.UpsertComponent(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	msg := "component updated"
	if created {
		msg = "component added"
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: stored, Message: msg})
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Components.FindComponents(r.Context(), partscout.ComponentFilter{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*partscout.ComponentRecord{}
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: recs})
}

func (s *Server) handleClearComponents(w http.ResponseWriter, r *http.Request) {
	n, err := s.Components.DeleteAllComponents(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    map[string]int{"deleted": n},
		Message: fmt.Sprintf("cleared %d components", n),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Components.FindComponents(r.Context(), partscout.ComponentFilter{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(recs) == 0 {
		s.writeError(w, partscout.Errorf(partscout.ENOTFOUND, "no components found; search for components first"))
		return
	}
	s.writeWorkbook(w, "Components.xlsx", recs)
}

func (s *Server) handleExportPart(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PathValue("partNumber"))
	if raw == "" {
		s.writeError(w, partscout.Errorf(partscout.EINVALID, "part number is required"))
		return
	}

	rec, err := s.Components.FindComponentByPartNumber(r.Context(), partscout.PartNumber(strings.ToUpper(raw)))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeWorkbook(w, safeFileName(raw)+".xlsx", []*partscout.ComponentRecord{rec})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	kind, err := partscout.ParseSourceKind(req.Source)
	if err != nil {
		s.writeError(w, err)
		return
	}

	pns := partscout.ExtractCandidates(req.Text, kind)
	if len(pns) == 0 {
		s.writeError(w, partscout.Errorf(partscout.EINVALID, "no part numbers found in the text"))
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    map[string][]partscout.PartNumber{"partNumbers": pns},
		Message: fmt.Sprintf("found %d part number(s)", len(pns)),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    partscout.ClassifyToken(r.PathValue("token")),
	})
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	res, err := s.Prober.Probe(r.Context())
	if err != nil {
		s.logError(r, err)
		writeJSON(w, errorStatus(err), response{
			Success: false,
			Data:    res,
			Error:   partscout.ErrorMessage(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: res})
}

// writeWorkbook renders recs before writing any headers so that a failure
// can still be reported as JSON.
func (s *Server) writeWorkbook(w http.ResponseWriter, name string, recs []*partscout.ComponentRecord) {
	var buf bytes.Buffer
	if err := xlsx.WriteComponents(&buf, recs); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError && s.Logger != nil {
		s.Logger.Error("api", "code", partscout.ErrorCode(err), "err", err)
	}
	writeJSON(w, status, response{Success: false, Error: partscout.ErrorMessage(err)})
}

func (s *Server) logError(r *http.Request, err error) {
	if s.Logger != nil {
		s.Logger.Warn("api", "path", r.URL.Path, "code", partscout.ErrorCode(err), "err", err)
	}
}

// errorStatus maps an application error to an HTTP status.
func errorStatus(err error) int {
	switch partscout.ErrorCode(err) {
	case partscout.EINVALID:
		return http.StatusBadRequest
	case partscout.ENOTFOUND, partscout.ENODATA:
		return http.StatusNotFound
	case partscout.ERATELIMITED:
		return http.StatusTooManyRequests
	case partscout.EBLOCKED, partscout.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case partscout.ETIMEOUT:
		return http.StatusGatewayTimeout
	case partscout.ECONNECT:
		return http.StatusBadGateway
	case partscout.ENOOCR:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return partscout.Wrap(partscout.EINVALID, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// safeFileName replaces characters that are not allowed in file names.
func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, s)
}
