package repository

import "sync/atomic"

// sequence hands out strictly increasing identifiers starting at 1.
// Identifiers are never handed out twice, even after the record is deleted.
type sequence struct {
	last atomic.Int64
}

func (s *sequence) Next() int64 {
	return s.last.Add(1)
}
