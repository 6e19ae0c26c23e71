package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// GenericErrorMessage is the body sent for any failure without a dedicated response.
const GenericErrorMessage = "Something went wrong!"

const genericErrorBody = `{"error":"` + GenericErrorMessage + `"}` + "\n"

// Recoverer is a middleware that recovers from panics.
// It logs the panic with its stack and answers 500 with the generic JSON error.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					// net/http uses this to abort silently; let it through.
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(genericErrorBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
