package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func queryInt(q url.Values, key string, def int) int {
	s := q.Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func queryFloat(q url.Values, key string) float64 {
	f, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0
	}
	return f
}

func queryBool(q url.Values, key string) bool {
	switch q.Get(key) {
	case "true", "1", "yes":
		return true
	}
	return false
}
