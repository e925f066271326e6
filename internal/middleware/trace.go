package middleware

import (
	"fmt"
	"math/rand"
	"net/http"

	"zhurnal/internal/logger"
)

// TraceID привязывает короткий id запроса к контексту и заголовку ответа
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := fmt.Sprintf("%08x", rand.Uint32())
		w.Header().Set("X-Trace-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithID(r.Context(), id)))
	})
}
