package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

var (
	// KeysIssued counts API keys minted by the create endpoint.
	KeysIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keymint_api_keys_issued_total",
		Help: "Total number of API keys issued",
	})

	// KeyValidations counts validation requests by verdict.
	KeyValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keymint_key_validations_total",
		Help: "Total number of API key validation requests by verdict",
	}, []string{"verdict"})
)

// Handler returns the prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
