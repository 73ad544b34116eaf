package domain

import (
	"crypto/md5" //nolint:gosec // change detection, not security
	"encoding/hex"
)

// Fingerprint returns the hex MD5 digest of title concatenated with body.
// It is the change-detection hash stored in sidecars; timestamps are
// never used for change detection.
func Fingerprint(title, body string) string {
	h := md5.New() //nolint:gosec // change detection, not security
	h.Write([]byte(title))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}
