package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL builds the default avatar URL for an email address
// (200px, PG rated, "mystery man" fallback).
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
