package utils

import "hash/fnv"

// Hash64 gives a stable 64-bit hash of s, used to derive deterministic
// canned values in the mock Silhouette client.
func Hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
