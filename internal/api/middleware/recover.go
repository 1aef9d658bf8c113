package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/jcheng-dev/sportlog/internal/utils"
)

// Recover turns panics into a generic 500. The panic value and stack stay
// in the server log; clients never see internal detail.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.JSONError(w, http.StatusInternalServerError, "Unexpected server error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
