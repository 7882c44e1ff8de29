package downloadhttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/filegate/internal/models"
	"github.com/sir_venger/filegate/pkg/httperrors"
)

// batchCreateRequest — тело запроса на сборку архива.
type batchCreateRequest struct {
	Items []models.ArchiveItem `json:"items"`
}

// batchCreateResp — тикет, по которому клиент заберёт архив вторым запросом.
type batchCreateResp struct {
	Uniqid string `json:"uniqid"`
}

// batchCreate синхронно собирает архив и возвращает тикет.
func (s *Server) batchCreate(w http.ResponseWriter, r *http.Request) {
	var payload batchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uniqid, err := s.Downloads.CreateArchive(r.Context(), payload.Items)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(batchCreateResp{Uniqid: uniqid})
}
