package models

const (
	ItemFile = "file"
	ItemDir  = "dir"
)

// ArchiveItem — один элемент из списка на архивирование. Порядок элементов
// в списке определяет порядок членов архива.
type ArchiveItem struct {
	Type string `json:"type"`
	Path string `json:"path"`
}
