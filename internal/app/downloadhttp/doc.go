// Package downloadhttp реализует HTTP-интерфейс выдачи файлов. Основные эндпоинты:
//   - GET /download?path=<base64> — отдаёт один файл, понимает заголовок Range (206/200).
//   - POST /batchdownload — синхронно собирает архив по списку элементов, отвечает {"uniqid": ...}.
//   - GET /batchdownload?uniqid=... — стримит готовый архив и удаляет его из tmpfs.
//   - GET /health — агрегированная метрика по temp store для health-check'ов.
package downloadhttp
