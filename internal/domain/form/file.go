package form

import (
	"math"
	"strconv"
	"strings"
)

// DefaultMaxFileSize is the upload limit for both slots (10 MiB)
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary prefixes, rounded to two
// decimals: 0 -> "0 Bytes", 1536 -> "1.5 KB", 10485760 -> "10 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	i := 0
	for i < len(sizeUnits)-1 && float64(bytes) >= math.Pow(1024, float64(i+1)) {
		i++
	}

	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// HasExtension compares the lowercase text from the last '.' of name with ext.
// A name without a dot is compared whole, so "xml" never matches ".xml".
func HasExtension(name, ext string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		idx = 0
	}
	return strings.ToLower(name[idx:]) == strings.ToLower(ext)
}
