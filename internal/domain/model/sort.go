package model

import "fmt"

// SortOrder selects the article list ordering.
type SortOrder string

// Supported orderings. SortLatest is the backend default and sends no parameter.
const (
	SortLatest      SortOrder = "latest"
	SortTrending    SortOrder = "trending"
	SortTopComments SortOrder = "top-comments"
)

// ParseSortOrder maps a ?sort= value to a SortOrder. Empty means latest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortLatest:
		return SortLatest, nil
	case SortTrending, SortTopComments:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// Param returns the value sent to the backend, or "" for the default order.
func (s SortOrder) Param() string {
	if s == SortLatest || s == "" {
		return ""
	}
	return string(s)
}
