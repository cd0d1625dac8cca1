// Package chi exposes the prediction pipeline over HTTP.
package chi

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	analyticsuc "github.com/23f2000400/student-dropout-prediction/internal/usecase/analytics"
	healthuc "github.com/23f2000400/student-dropout-prediction/internal/usecase/health"
	importeruc "github.com/23f2000400/student-dropout-prediction/internal/usecase/importer"
	predictuc "github.com/23f2000400/student-dropout-prediction/internal/usecase/predict"
)

// maxUploadBytes bounds the CSV upload size.
const maxUploadBytes = 32 << 20

// defaultNotificationLimit caps GET /api/notifications responses.
const defaultNotificationLimit = 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services into HTTP handlers.
type Server struct {
	predictions   *predictuc.Service
	imports       *importeruc.Service
	students      StudentReader
	notifications NotificationReader
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	predictions *predictuc.Service,
	imports *importeruc.Service,
	students StudentReader,
	notifications NotificationReader,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		predictions:   predictions,
		imports:       imports,
		students:      students,
		notifications: notifications,
		analytics:     analytics,
		health:        health,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		partialStateHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStudentNotFound, http.StatusNotFound, codeStudentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrModelUnavailable, http.StatusServiceUnavailable, codeModelUnavailable),
		sentinelHandler(domain.ErrImportFailed, http.StatusInternalServerError, codeImportFailed),
	}
	return s
}

// Routes mounts all API handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/predict", s.Predict)
		r.Post("/predict/quick", s.PredictQuick)
		r.Post("/import", s.Import)
		r.Get("/export", s.Export)
		r.Get("/students", s.ListStudents)
		r.Get("/students/{id}", s.GetStudent)
		r.Get("/analytics", s.Analytics)
		r.Get("/notifications", s.ListNotifications)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Predict handles POST /api/predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decodeRecord(w, r)
	if !ok {
		return
	}

	res, err := s.predictions.Predict(r.Context(), rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(res))
}

// PredictQuick handles POST /api/predict/quick.
func (s *Server) PredictQuick(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decodeRecord(w, r)
	if !ok {
		return
	}

	res, err := s.predictions.Quick(r.Context(), rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(res))
}

// Import handles POST /api/import (multipart, field "file").
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid multipart body: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, `multipart field "file" is required`)
		return
	}
	defer func() { _ = file.Close() }()

	sum, err := s.imports.Import(r.Context(), file, header.Filename)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(sum))
}

// Export handles GET /api/export, streaming the collection as CSV.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)

	cw := csv.NewWriter(w)
	header := append([]string{feature.IDColumn, feature.NameColumn}, feature.Headers()...)
	header = append(header, "risk_score", "risk_category")
	if err := cw.Write(header); err != nil {
		return
	}

	for _, st := range students {
		row := make([]string, 0, len(header))
		row = append(row, st.ID(), st.Name())
		vec := st.Attributes()
		for i, f := range feature.Fields() {
			val := f.Default()
			if i < vec.Len() {
				val = vec[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', -1, 64))
		}
		row = append(row,
			strconv.FormatFloat(st.Score().Probability(), 'f', -1, 64),
			string(st.Score().Category()),
		)
		if err := cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
}

// ListStudents handles GET /api/students.
func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]studentResponse, len(students))
	for i, st := range students {
		items[i] = studentToResponse(st)
	}

	writeJSON(w, http.StatusOK, studentListResponse{Items: items, Total: len(items)})
}

// GetStudent handles GET /api/students/{id}.
func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st, err := s.students.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, studentToResponse(st))
}

// Analytics handles GET /api/analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analytics.Snapshot(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToResponse(rep))
}

// ListNotifications handles GET /api/notifications.
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	counselorID := r.URL.Query().Get("counselor_id")
	if counselorID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "counselor_id is required")
		return
	}

	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = n
	}

	notifications, err := s.notifications.ListUnread(r.Context(), counselorID, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = notificationToResponse(n)
	}

	writeJSON(w, http.StatusOK, notificationListResponse{Items: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeRecord reads a JSON object body into a feature record.
func (s *Server) decodeRecord(w http.ResponseWriter, r *http.Request) (feature.Record, bool) {
	var rec feature.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrStudentNotFound,
		domain.ErrNotFound,
		domain.ErrModelUnavailable,
		domain.ErrImportFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// partialStateHandler reports an import that cleared prior records but
// failed to commit replacements; the cleared count tells the operator what
// was lost.
func partialStateHandler(w http.ResponseWriter, err error, _ string) bool {
	var pse *domain.PartialStateError
	if !errors.As(err, &pse) {
		return false
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"code":    codeImportFailed,
		"message": fmt.Sprintf("import failed after clearing %d prior records; data may be in an inconsistent state", pse.ClearedCount),
		"cleared": pse.ClearedCount,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
