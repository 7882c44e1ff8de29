// Package httprange разбирает заголовок Range запроса и превращает его в
// план выдачи: статус, смещение и длину окна байтов. Функция чистая, без
// состояния; семантика одиночного диапазона — из списка спеков действует
// только последний.
package httprange

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed возвращается для синтаксически неверного заголовка либо для
// окна, пустого после клампа по размеру ресурса. Вызывающий сам решает:
// 416 или выдача полного содержимого.
var ErrMalformed = errors.New("malformed range header")

// Plan — вычисленное окно выдачи.
type Plan struct {
	Partial    bool
	StatusCode int
	Start      int64
	Length     int64
	Total      int64
}

// Resolve строит план по размеру ресурса и тексту заголовка Range.
// Пустой заголовок означает полную выдачу (200). Поддерживаются формы
// "N-M", "N-" и одиночный токен "N" (ровно один байт); пустой старт
// трактуется как 0. Из перечисленных через запятую спеков действует последний.
func Resolve(total int64, header string) (Plan, error) {
	if header == "" {
		return Plan{
			Partial:    false,
			StatusCode: 200,
			Start:      0,
			Length:     total,
			Total:      total,
		}, nil
	}

	parts := strings.SplitN(header, "=", 2)
	if len(parts) != 2 || parts[0] != "bytes" {
		return Plan{}, ErrMalformed
	}

	var start, end int64
	for _, spec := range strings.Split(parts[1], ",") {
		spec = strings.TrimSpace(spec)

		var err error
		start, end, err = parseSpec(spec, total)
		if err != nil {
			return Plan{}, err
		}
	}

	// Кламп границ по фактическому размеру ресурса.
	if start < 0 {
		start = 0
	}
	if end > total-1 {
		end = total - 1
	}
	if start > end {
		return Plan{}, ErrMalformed
	}

	return Plan{
		Partial:    true,
		StatusCode: 206,
		Start:      start,
		Length:     end - start + 1,
		Total:      total,
	}, nil
}

// parseSpec разбирает один спек диапазона в пару (start, end).
func parseSpec(spec string, total int64) (int64, int64, error) {
	bounds := strings.SplitN(spec, "-", 2)

	// Одиночный токен "N" — запрошен ровно один байт.
	if len(bounds) == 1 {
		n, err := strconv.ParseInt(bounds[0], 10, 64)
		if err != nil {
			return 0, 0, ErrMalformed
		}
		return n, n, nil
	}

	start, err := parseBound(bounds[0], 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseBound(bounds[1], total-1)
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// parseBound парсит границу; пустая строка означает значение по умолчанию.
func parseBound(s string, def int64) (int64, error) {
	if s == "" {
		return def, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}

	return n, nil
}
