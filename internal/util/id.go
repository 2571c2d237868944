package util

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewID returns an identifier of the form "<prefix>-<millis>-<random>".
// The timestamp keeps ids roughly sortable by creation time; the random
// suffix keeps two ids minted in the same millisecond distinct.
func NewID(prefix string) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	id := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(buf)
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
