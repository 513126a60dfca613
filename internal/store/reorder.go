package store

import "clubroster/internal/model"

// Move returns a copy of s with the element at oldIndex removed and reinserted
// at newIndex. Elements in between shift by one. Both indices must be in range.
func Move[T any](s []T, oldIndex, newIndex int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:oldIndex]...)
	out = append(out, s[oldIndex+1:]...)

	moved := s[oldIndex]
	out = append(out, moved)
	copy(out[newIndex+1:], out[newIndex:len(out)-1])
	out[newIndex] = moved
	return out
}

// DropIndices converts a finished drag (the dragged member and the member it
// was dropped on) into an index pair for ReorderMembers. ok is false when the
// drop should not mutate anything.
func DropIndices(members []model.Member, activeID, overID string) (oldIndex, newIndex int, ok bool) {
	if activeID == "" || overID == "" || activeID == overID {
		return 0, 0, false
	}
	oldIndex, newIndex = -1, -1
	for i := range members {
		switch members[i].ID {
		case activeID:
			oldIndex = i
		case overID:
			newIndex = i
		}
	}
	if oldIndex < 0 || newIndex < 0 {
		return 0, 0, false
	}
	return oldIndex, newIndex, true
}
