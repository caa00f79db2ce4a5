package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHandler returns the HTTP handler for the metrics endpoint
func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
