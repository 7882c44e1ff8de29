package downloadhttp

import (
	"encoding/json"
	"net/http"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK       bool  `json:"ok"`
	TmpBytes int64 `json:"tmp_bytes"`
}

// health возвращает агрегированную статистику по temp store.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	total, err := s.Tmp.TotalBytes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(healthStats{
		OK:       true,
		TmpBytes: total,
	})

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
