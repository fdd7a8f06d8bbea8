package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinGate adapts the net/http gate to Gin so it can run as a global
// middleware. Auth decisions stay in the net/http core; this only bridges
// the two chains.
func GinGate(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		// Wrap Gin request with the net/http gate
		handler := gate.Intercept(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already handled the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
