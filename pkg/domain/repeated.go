package domain

import "fmt"

// RemoveAt removes s[row] by swapping it towards the end one step at a time and then
// truncating the last slot. The remaining elements keep their relative order.
// The vacated slot is zeroed so the removed element can be collected.
func RemoveAt[T any](s []T, row int) ([]T, error) {
	if row < 0 || row >= len(s) {
		return s, fmt.Errorf("remove at %d of %d: %w", row, len(s), ErrInvalidRow)
	}
	for i := row; i < len(s)-1; i++ {
		s[i], s[i+1] = s[i+1], s[i]
	}
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1], nil
}

// MoveUpLastAt bubbles the last element of s up to row by adjacent swaps.
// Appending followed by MoveUpLastAt is an insert at row.
func MoveUpLastAt[T any](s []T, row int) error {
	if row < 0 || row >= len(s) {
		return fmt.Errorf("move up to %d of %d: %w", row, len(s), ErrInvalidRow)
	}
	for i := len(s) - 1; i > row; i-- {
		s[i], s[i-1] = s[i-1], s[i]
	}
	return nil
}

// InsertAt appends v and moves it up to row. A row outside [0, len(s)] appends.
func InsertAt[T any](s []T, row int, v T) []T {
	s = append(s, v)
	if row < 0 || row >= len(s)-1 {
		return s
	}
	_ = MoveUpLastAt(s, row)
	return s
}
