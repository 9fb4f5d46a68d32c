package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const diaLayout = "2006-01-02"

// aplicarPeriodo constrains a query to [de, ate] day bounds on the given
// column. Both bounds are optional; "ate" is inclusive of the whole day.
func aplicarPeriodo(q *gorm.DB, coluna, de, ate string) (*gorm.DB, error) {
	if de != "" {
		inicio, err := time.Parse(diaLayout, de)
		if err != nil {
			return nil, fmt.Errorf("data inicial invalida %q: %w", de, err)
		}
		q = q.Where(coluna+" >= ?", inicio)
	}
	if ate != "" {
		fim, err := time.Parse(diaLayout, ate)
		if err != nil {
			return nil, fmt.Errorf("data final invalida %q: %w", ate, err)
		}
		q = q.Where(coluna+" < ?", fim.AddDate(0, 0, 1))
	}
	return q, nil
}
