package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"heartrisk/ml"
	"heartrisk/patient"
	"heartrisk/risk"
)

//go:embed templates static
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "templates/page.html"))

type pageData struct {
	Theme  Theme
	Fields []fieldView
	Result *risk.Assessment
	Error  string
	Fatal  string
}

type fieldView struct {
	Name    string
	Label   string
	Min     string
	Max     string
	Value   string
	Options []string
	Invalid bool
}

// fieldViews fills every form control from values, falling back to the
// defaults for fields that were not submitted.
func fieldViews(values func(string) string, invalid string) []fieldView {
	defaults := patient.Default().Values()
	fields := patient.Fields()
	views := make([]fieldView, len(fields))
	for i, f := range fields {
		value := values(f.Name)
		if value == "" {
			value = defaults[f.Name]
		}
		views[i] = fieldView{
			Name:    f.Name,
			Label:   f.Label,
			Value:   value,
			Options: f.Options,
			Invalid: f.Name == invalid,
		}
		if f.Kind == patient.KindNumber {
			views[i].Min = strconv.Itoa(f.Min)
			views[i].Max = strconv.Itoa(f.Max)
		}
	}
	return views
}

func fatalMessage(err error) string {
	if errors.Is(err, ml.ErrModelNotFound) {
		return "Model file not found. Train the model first."
	}
	return "The prediction model could not be loaded. See the server log for details."
}

// renderPage executes the template into a buffer first so a template
// failure never leaves a half-written page.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Theme = h.theme
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		h.logger.Error("render page", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
