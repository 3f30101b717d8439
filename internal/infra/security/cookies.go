package security

import "strings"

// ParseCookies parses an RFC 6265 Cookie header value into a name/value map.
// Both the HTTP middleware and the realtime handshake go through this one
// function so the two transports cannot drift apart.
func ParseCookies(header string) map[string]string {
	cookies := make(map[string]string)
	if strings.TrimSpace(header) == "" {
		return cookies
	}

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}

		// First occurrence wins, matching net/http request cookie lookup.
		if _, exists := cookies[name]; !exists {
			cookies[name] = value
		}
	}

	return cookies
}
