package downloadhttp

import (
	"net/http"

	"github.com/sir_venger/filegate/pkg/httperrors"
)

// batchStart стримит готовый архив по тикету; неизвестный тикет — чистый 404.
func (s *Server) batchStart(w http.ResponseWriter, r *http.Request) {
	uniqid := r.URL.Query().Get("uniqid")

	if err := s.Downloads.DeliverArchive(r.Context(), w, uniqid); err != nil {
		httperrors.Write(w, err)
		return
	}
}
