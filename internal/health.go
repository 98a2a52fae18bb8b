package internal

import (
	"encoding/json"
	"net/http"
)

type StatsProvider func() map[string]any

// HealthHandler answers with {"status": "ok"} plus whatever stats reports.
func HealthHandler(stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if stats != nil {
			for k, v := range stats() {
				body[k] = v
			}
		}
		body["status"] = "ok"

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
}
