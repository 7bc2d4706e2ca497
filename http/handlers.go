package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"heartrisk/patient"
	"heartrisk/risk"
)

// Assessor runs one prediction; *risk.Assessor implements it.
type Assessor interface {
	Assess(p patient.Patient) (risk.Assessment, error)
}

// HandlerConfig carries what NewHandler needs from startup.
type HandlerConfig struct {
	// Assessor is nil when the model failed to load; LoadErr says why.
	Assessor  Assessor
	ModelType string
	LoadErr   error
	Theme     Theme
}

// Handler serves the form page and the JSON API. It holds no per-request
// state.
type Handler struct {
	assessor  Assessor
	modelType string
	loadErr   error
	theme     Theme
	logger    *zap.Logger
}

// NewHandler builds the page and API handlers. A nil Assessor puts the page
// and both predict routes into the fatal state.
func NewHandler(config HandlerConfig, logger *zap.Logger) *Handler {
	h := &Handler{
		assessor:  config.Assessor,
		modelType: config.ModelType,
		loadErr:   config.LoadErr,
		theme:     config.Theme,
		logger:    logger,
	}
	if h.assessor == nil && h.loadErr == nil {
		h.loadErr = risk.ErrNoModel
	}
	if h.theme.Name == "" {
		h.theme = themes["classic"]
	}
	return h
}

// Register adds the page, static and API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handlePredictForm)
	mux.Handle("GET /static/", http.FileServerFS(assets))

	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func (h *Handler) fatal() bool {
	return h.assessor == nil
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if h.fatal() {
		h.renderPage(w, r, http.StatusServiceUnavailable, pageData{Fatal: fatalMessage(h.loadErr)})
		return
	}
	h.renderPage(w, r, http.StatusOK, pageData{Fields: fieldViews(noValues, "")})
}

func (h *Handler) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	if h.fatal() {
		h.renderPage(w, r, http.StatusServiceUnavailable, pageData{Fatal: fatalMessage(h.loadErr)})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, pageData{
			Fields: fieldViews(noValues, ""),
			Error:  "Could not read the submitted form.",
		})
		return
	}

	values := r.PostForm.Get
	p, err := patient.Parse(values)
	if err != nil {
		message := "Invalid input."
		invalid := ""
		var fieldErr *patient.FieldError
		if errors.As(err, &fieldErr) {
			message = "Invalid input: " + fieldErr.Message()
			invalid = fieldErr.Field
		}
		h.renderPage(w, r, http.StatusBadRequest, pageData{
			Fields: fieldViews(values, invalid),
			Error:  message,
		})
		return
	}

	result, err := h.assessor.Assess(p)
	if err != nil {
		h.predictionFailed(w, r, err)
		return
	}
	h.logger.Debug("assessment",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("risk", string(result.Risk)),
		zap.Float64("probability", result.Probability),
	)
	h.renderPage(w, r, http.StatusOK, pageData{
		Fields: fieldViews(values, ""),
		Result: &result,
	})
}

// predictionFailed handles a classifier fault. No user-facing explanation
// exists for this case; the details go to the log only.
func (h *Handler) predictionFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("prediction failed", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func noValues(string) string { return "" }
