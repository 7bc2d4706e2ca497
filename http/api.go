package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"go.uber.org/zap"

	"heartrisk/patient"
	"heartrisk/risk"
)

type predictResponse struct {
	Label       int        `json:"label"`
	Risk        risk.Level `json:"risk"`
	Probability float64    `json:"probability"`
	Confidence  float64    `json:"confidence"`
	Features    []float64  `json:"features"`
	Summary     string     `json:"summary"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.fatal() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  h.loadErr.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.modelType,
	})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fields": patient.Fields(),
	})
}

// handlePredict accepts the same fields as the form as a JSON object:
// numbers as JSON numbers, selectors as their option labels.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if h.fatal() {
		writeError(w, http.StatusServiceUnavailable, h.loadErr.Error())
		return
	}

	var in patient.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if fieldErr := decodeFieldError(err); fieldErr != nil {
			writeFieldError(w, fieldErr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := in.Patient()
	if err != nil {
		var fieldErr *patient.FieldError
		if errors.As(err, &fieldErr) {
			writeFieldError(w, fieldErr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	result, err := h.assessor.Assess(p)
	if err != nil {
		h.logger.Error("prediction failed", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Label:       result.Label,
		Risk:        result.Risk,
		Probability: round2(result.Probability),
		Confidence:  round2(result.Confidence),
		Features:    result.Features.Slice(),
		Summary:     result.Summary(),
	})
}

// decodeFieldError reports a JSON value of the wrong type against the field
// it was meant for.
func decodeFieldError(err error) *patient.FieldError {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil
	}
	f, ok := patient.FieldByName(typeErr.Field)
	if !ok {
		return nil
	}
	cause := patient.ErrUnknownOption
	if f.Kind == patient.KindNumber {
		cause = patient.ErrNotInteger
	}
	return &patient.FieldError{Field: f.Name, Err: fmt.Errorf("%s: %w", typeErr.Value, cause)}
}

func writeFieldError(w http.ResponseWriter, fieldErr *patient.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": fieldErr.Message(),
		"field": fieldErr.Field,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
