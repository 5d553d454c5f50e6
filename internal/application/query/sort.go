package query

import (
	"bytes"
	"sort"
)

// Direction orders records by creation timestamp.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"

	// DefaultDirection applies when a request does not specify a sort.
	DefaultDirection = DirectionDesc
)

// IsValid reports whether the direction is one of asc or desc.
func (d Direction) IsValid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

// Compare orders two records by created_at in the given direction. Timestamp
// ties are broken by ID byte order ascending regardless of direction, so both
// backends produce the same ordering: uuid byte order equals canonical string
// order equals the relational engine's native uuid ordering. Returns a
// negative value when a sorts before b, positive when after, zero when equal.
func Compare(a, b Filterable, direction Direction) int {
	at, bt := a.FilterCreatedAt(), b.FilterCreatedAt()
	if !at.Equal(bt) {
		if at.Before(bt) == (direction != DirectionDesc) {
			return -1
		}
		return 1
	}

	aID, bID := a.FilterID(), b.FilterID()
	return bytes.Compare(aID[:], bID[:])
}

// Sort orders records in place by created_at in the given direction with the
// deterministic tie-break applied by Compare.
func Sort[T Filterable](records []T, direction Direction) {
	sort.Slice(records, func(i, j int) bool {
		return Compare(records[i], records[j], direction) < 0
	})
}
