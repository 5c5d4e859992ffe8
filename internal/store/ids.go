package store

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDFunc mints an identifier for the given prefix.
type IDFunc func(prefix string) string

// NewID returns prefix-<UUIDv4>, upper-cased.
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString())
}

// SequentialIDs returns an IDFunc producing prefix-1, prefix-2, ... with one
// counter shared across prefixes. Useful where ordering must be predictable.
func SequentialIDs() IDFunc {
	var n atomic.Int64
	return func(prefix string) string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
