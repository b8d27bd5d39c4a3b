package utils

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeFileName removes control characters and surrounding blanks from a
// client-supplied file name.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(name, ""))
}

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// SanitizeNoticeHTML keeps only basic inline formatting and links from
// operator-supplied page notices.
func SanitizeNoticeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(noticeSanitizer().Sanitize(trimmed))
}

func noticeSanitizer() *bluemonday.Policy {
	noticePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "br", "strong", "em", "b", "i", "ul", "ol", "li", "span", "a")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		noticePolicy = policy
	})
	return noticePolicy
}
