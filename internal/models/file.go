package models

import "io"

// FileHandle — открытый файл из хранилища: позиционируемый поток плюс
// метаданные для заголовков ответа. Владелец — запрос, который его открыл;
// поток обязан быть закрыт на любом пути выхода.
type FileHandle struct {
	Stream   io.ReadSeekCloser
	Filename string
	Size     int64
}
