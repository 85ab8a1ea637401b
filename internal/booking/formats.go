package booking

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"universe-manager/internal/domain"
)

const (
	MinParticipants = 2
	MaxParticipants = 8
)

// Shape partitions a match's participants into ordered team sizes.
type Shape []int

// Total is the number of participants the shape seats.
func (s Shape) Total() int {
	n := 0
	for _, size := range s {
		n += size
	}
	return n
}

// String renders the shape as it is shown to the booker, e.g. "2 v 2".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, size := range s {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, " v ")
}

func (s Shape) Equal(o Shape) bool {
	return slices.Equal(s, o)
}

// ParseShape reads the "1 v 2" form produced by String.
func ParseShape(text string) (Shape, error) {
	fields := strings.Split(text, "v")
	shape := make(Shape, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", domain.ErrIllegalShape, text)
		}
		shape = append(shape, n)
	}
	return shape, nil
}

// The legal shapes per participant count. Hand-authored, first entry is the default.
var shapeTable = map[int][]Shape{
	2: {{1, 1}},
	3: {{1, 1, 1}, {1, 2}},
	4: {{1, 1, 1, 1}, {2, 2}, {1, 3}},
	5: {{1, 1, 1, 1, 1}, {2, 3}},
	6: {{1, 1, 1, 1, 1, 1}, {3, 3}, {2, 2, 2}},
	7: {{1, 1, 1, 1, 1, 1, 1}},
	8: {{1, 1, 1, 1, 1, 1, 1, 1}, {2, 2, 2, 2}, {4, 4}},
}

// Shapes returns the legal shapes for total, or nil when total is out of range.
func Shapes(total int) []Shape {
	shapes, ok := shapeTable[total]
	if !ok {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = slices.Clone(s)
	}
	return out
}

// IsLegal reports whether shape appears in the table for its own total.
func IsLegal(shape Shape) bool {
	for _, s := range shapeTable[shape.Total()] {
		if s.Equal(shape) {
			return true
		}
	}
	return false
}

// shapeWithFirstTeam finds the first table shape, scanning totals in ascending order,
// whose opening team seats exactly size participants.
func shapeWithFirstTeam(size int) (Shape, bool) {
	for total := MinParticipants; total <= MaxParticipants; total++ {
		for _, s := range shapeTable[total] {
			if s[0] == size {
				return slices.Clone(s), true
			}
		}
	}
	return nil, false
}

// Format is the active participant count and team partition of a session.
type Format struct {
	Total int
	Shape Shape
}

// Partition splits filled slots into contiguous teams per shape.
func (f Format) Partition(slots []string) [][]string {
	teams := make([][]string, 0, len(f.Shape))
	idx := 0
	for _, size := range f.Shape {
		team := make([]string, size)
		copy(team, slots[idx:idx+size])
		teams = append(teams, team)
		idx += size
	}
	return teams
}
