// Package links decides whether inbound message text refers to a video we
// can pull audio from.
package links

import "strings"

// Host fragments we accept. Substring matching mirrors how users actually
// paste links: with or without scheme, www, or mobile prefixes.
var supportedHosts = []string{
	"youtube.com",
	"youtu.be",
}

// IsSupportedVideoLink reports whether body looks like a link to a supported
// video platform. Unsupported or malformed text is a normal outcome, never
// an error.
func IsSupportedVideoLink(body string) bool {
	body = strings.TrimSpace(body)
	if body == "" {
		return false
	}
	lower := strings.ToLower(body)
	for _, host := range supportedHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}
