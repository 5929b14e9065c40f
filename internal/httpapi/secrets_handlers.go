package httpapi

import (
	"encoding/json"
	"net/http"

	"remoteboard-engine/internal/secrets"
)

type SecretsHandler struct{}

type setGeminiKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	var req setGeminiKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.APIKey == "" {
		if err := secrets.DeleteGeminiAPIKey(); err != nil {
			http.Error(w, "failed to clear key: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := secrets.SetGeminiAPIKey(req.APIKey); err != nil {
		http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
