package form

import "regexp"

var uuidPattern = regexp.MustCompile(`(?i)^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

// ValidUUID reports whether s is an 8-4-4-4-12 hexadecimal UUID, in any case.
// No version or variant bits are checked.
func ValidUUID(s string) bool {
	return uuidPattern.MatchString(s)
}
