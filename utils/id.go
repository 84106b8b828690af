package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID builds ids like "search_1712345678901_3f2a9c1d" — the same
// prefix_millis_random layout the web client wrote into its blobs, with the
// random tail taken from a UUID instead of Math.random.
func GenerateID(prefix string) string {
	tail := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), tail)
}
