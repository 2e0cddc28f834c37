package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/report"
)

var errBusy = errors.New("server is busy, try again later")

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

// writeError maps domain errors to status codes
func writeError(w http.ResponseWriter, err error) {
	var verr *analysis.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrUnsupportedReportType):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, report.ErrInvalidFilename):
		writeMessage(w, http.StatusBadRequest, "Invalid filename")
	case errors.Is(err, report.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Report not found")
	case errors.Is(err, errBusy):
		writeMessage(w, http.StatusServiceUnavailable, "Server is busy, try again later")
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}
