package utils

import (
	"crypto/md5"
	"fmt"
)

// KeyHash returns a stable hex digest for a storage key. File-backed
// storage uses it as the on-disk filename so keys with slashes or
// Hangul stay filesystem-safe.
func KeyHash(key string) string {
	if key == "" {
		return ""
	}
	sum := md5.Sum([]byte(key))
	return fmt.Sprintf("%x", sum)
}
