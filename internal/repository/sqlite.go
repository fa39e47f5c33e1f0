package repository

import (
	"strings"
	"time"
)

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sqliteTime is the layout created_at is stored with; it sorts lexically.
const sqliteTime = "2006-01-02T15:04:05.000000Z07:00"

func parseSQLiteTime(raw string) (time.Time, error) {
	t, err := time.Parse(sqliteTime, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
