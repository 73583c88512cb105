package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// upsertChunkSize — размер чанка батч-апсерта: ограничивает число
// параметров одного запроса.
const upsertChunkSize = 500

// postgresDuplicate сообщает, является ли ошибка нарушением уникальности.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// chunk режет слайс на части не длиннее size.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}

	return chunks
}
