package model

import "errors"

// ErrUnknownSort is returned for unsupported article orderings.
var ErrUnknownSort = errors.New("unknown sort order")
