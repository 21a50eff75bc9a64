package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/amortizer/internal/config"
	"github.com/iwvelando/amortizer/internal/report"
	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/loans"
	"github.com/iwvelando/amortizer/pkg/lumpsum"
	"github.com/iwvelando/amortizer/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and schedule API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Schedule API endpoint, JSON body (POST) or query parameters (GET)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Loan file serialization endpoint for form downloads
	mux.HandleFunc("/api/export", h.handleExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return withRequestLogging(logger, mux)
}

type scheduleResponse struct {
	output.Document
	Warnings []string `json:"warnings,omitempty"`
	CSV      string   `json:"csv"`
	Duration string   `json:"duration"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Rows  []output.Row `json:"rows"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	var (
		loan config.Loan
		err  error
	)
	switch r.Method {
	case http.MethodPost:
		loan, err = h.decodeLoan(w, r)
	case http.MethodGet:
		loan, err = loanFromQuery(r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	start := time.Now()
	params, lumpSums, warnings, err := loan.Parameters()
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	warnings = append(warnings, loan.Warnings()...)

	result, err := report.GetReport(h.logger, params, lumpSums)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, loans.ErrInvalidInput) {
			status = http.StatusUnprocessableEntity
		}
		h.respondError(w, status, err.Error(), op)
		return
	}

	csv, err := output.CsvString(result)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := scheduleResponse{
		Document: output.NewDocument(result),
		Warnings: warnings,
		CSV:      csv,
		Duration: elapsed.String(),
	}

	h.logger.Debug("schedule computed",
		zap.String("op", op),
		zap.Int("rows", len(response.Rows)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	loan, err := h.decodeLoan(w, r)
	if err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	// Normalize the lump sums so the file round-trips to the same schedule.
	lumpSums, skipped := lumpsum.Parse(loan.LumpSums)
	loan.LumpSums = lumpsum.Format(lumpSums)
	warnings := make([]string, 0, len(skipped))
	for _, s := range skipped {
		warnings = append(warnings, s.String())
	}

	yamlBytes, err := MarshalLoanFile(loan)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode loan file: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		ConfigYAML string   `json:"configYaml"`
		Warnings   []string `json:"warnings,omitempty"`
	}{
		ConfigYAML: string(yamlBytes),
		Warnings:   warnings,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// MarshalLoanFile renders loan as a loan file that LoadConfiguration reads
// back unchanged.
func MarshalLoanFile(loan config.Loan) ([]byte, error) {
	return yaml.Marshal(config.Configuration{
		Loan:   loan,
		Output: config.OutputConfig{Format: constants.OutputFormatPretty},
	})
}

// errBadRequest marks request bodies that could not be decoded at all.
var errBadRequest = errors.New("bad request")

func (h *handler) decodeLoan(w http.ResponseWriter, r *http.Request) (config.Loan, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	req := newScheduleRequest()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return config.Loan{}, err
		}
		if errors.Is(err, io.EOF) {
			return config.Loan{}, fmt.Errorf("%w: empty request body", errBadRequest)
		}
		return config.Loan{}, fmt.Errorf("%w: failed to decode loan: %v", errBadRequest, err)
	}
	return req.loan(), nil
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
	case errors.Is(err, errBadRequest):
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	case errors.Is(err, datetime.ErrInvalidMonth), errors.Is(err, errInvalidField):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
	default:
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Rows: []output.Row{}})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
