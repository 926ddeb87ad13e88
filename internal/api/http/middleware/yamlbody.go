package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/logger"
)

const yamlContentType = "application/yaml"

const yamlParseDetail = "Unable to parse provided YAML configuration."

// YAMLBody rewrites request bodies sent as application/yaml into JSON so
// downstream handlers only ever decode one format. Requests with any other
// content type pass through untouched.
type YAMLBody struct {
	logger *logger.Logger
}

// NewYAMLBody creates a new YAMLBody middleware.
func NewYAMLBody(logger *logger.Logger) *YAMLBody {
	return &YAMLBody{logger: logger}
}

// Handle is a mux-compatible middleware.
func (y *YAMLBody) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != yamlContentType {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			httputil.WriteDetail(w, http.StatusUnprocessableEntity, yamlParseDetail)
			return
		}
		r.Body.Close()

		var doc any
		if err := yaml.Unmarshal(body, &doc); err != nil {
			y.logger.Debug("failed to parse yaml request body", "error", err.Error())
			httputil.WriteDetail(w, http.StatusUnprocessableEntity, yamlParseDetail)
			return
		}

		converted, err := json.Marshal(doc)
		if err != nil {
			y.logger.Debug("failed to convert yaml request body", "error", err.Error())
			httputil.WriteDetail(w, http.StatusUnprocessableEntity, yamlParseDetail)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(converted))
		r.ContentLength = int64(len(converted))
		r.Header.Set("Content-Length", strconv.Itoa(len(converted)))
		r.Header.Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}
