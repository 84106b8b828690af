// Package storage abstracts the key-value medium the history and meal-plan
// services persist their JSON blobs into. One key holds one whole collection;
// get/set of a single key is the atomicity granularity. Concurrent writers to
// the same key are not coordinated — last writer wins.
package storage

// Store is the minimal contract the services need. Implementations must not
// panic; a failed write is reported through the error and nothing else.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
