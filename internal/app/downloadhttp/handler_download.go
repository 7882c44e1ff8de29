package downloadhttp

import "net/http"

// download отдаёт один файл; ошибка резолва до начала стрима — мягкий
// редирект на корень, без 5xx и без деталей.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	if err := s.Downloads.ServeFile(r.Context(), w, path, r.Header.Get("Range")); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
}
