package common

import (
	"net/http"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

// JsonHandler wraps a handler returning an envelope payload. A returned error
// is answered with {success:false} and the given status.
func JsonHandler[T any](log *zap.Logger, fn func(r *http.Request) (T, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		data, status, err := fn(r)
		if err != nil {
			if status < 400 {
				status = http.StatusInternalServerError
			}
			log.Warn("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
			WriteJson(w, r, status, types.Response[any]{Success: false, Error: err.Error()})
			return
		}
		if status == 0 {
			status = http.StatusOK
		}
		WriteJson(w, r, status, types.Response[T]{Success: true, Data: data})
	}
}

func WriteJson(w http.ResponseWriter, r *http.Request, status int, v any) {
	GenericHeaders(w, r)
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	w.WriteHeader(status)
	_ = jsoncompat.NewEncoder(w).Encode(v)
}

func GenericHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
