package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jacoelho/jsonschema/internal/metrics"
	"github.com/jacoelho/jsonschema/value"
)

// ValidationResponse is the body of a /validate response.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	source       Source
	logger       zerolog.Logger
	metrics      *metrics.Collector
	maxBodyBytes int64
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.source.Get() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no schema loaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) schema(w http.ResponseWriter, r *http.Request) {
	v := h.source.Get()
	if v == nil {
		writeError(w, http.StatusServiceUnavailable, "no schema loaded")
		return
	}
	writeJSON(w, http.StatusOK, v.Schema())
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	v := h.source.Get()
	if v == nil {
		writeError(w, http.StatusServiceUnavailable, "no schema loaded")
		return
	}

	body := &limitedBody{r: http.MaxBytesReader(w, r.Body, h.maxBodyBytes)}
	instance, err := decodeBody(r, body)
	if err != nil {
		h.metrics.ObserveValidation(metrics.OutcomeError, 0, 0)

		if body.tooLarge {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.logger.Debug().Err(err).Str("request_id", RequestID(r.Context())).Msg("malformed document")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result := v.Validate(instance)
	elapsed := time.Since(start)

	if result.IsValid() {
		h.metrics.ObserveValidation(metrics.OutcomeValid, 0, elapsed)
		writeJSON(w, http.StatusOK, ValidationResponse{Valid: true})
		return
	}

	messages := result.Messages()
	h.metrics.ObserveValidation(metrics.OutcomeInvalid, len(messages), elapsed)
	writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Valid: false, Errors: messages})
}

// limitedBody remembers that the body limit was hit, since the YAML decoder
// does not wrap reader errors.
type limitedBody struct {
	r        io.Reader
	tooLarge bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		b.tooLarge = true
	}
	return n, err
}

// decodeBody decodes YAML bodies by content type and JSON otherwise.
func decodeBody(r *http.Request, body io.Reader) (value.Value, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return value.DecodeYAML(body)
	default:
		return value.DecodeJSON(body)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
