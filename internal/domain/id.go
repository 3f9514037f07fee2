package domain

import (
	"math/rand"
	"strconv"
	"time"
)

// NewLocalID generates an identifier for topics, subtopics, and
// fallback card IDs: the current Unix-millisecond timestamp in base36
// followed by a random base36 suffix. Practically unique without any
// global coordination, and sortable by creation time as a bonus.
func NewLocalID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int63n(1<<40), 36)
	return ts + suffix
}
