// Package gravatar builds deterministic avatar URLs for user emails.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL returns the gravatar URL for email at the given pixel size, with
// a PG rating cap and the "mystery person" default image.
func URL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=pg&d=mm",
		hex.EncodeToString(sum[:]), size)
}
