package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceSummary condenses a User-Agent string into a short "Browser on OS"
// label suitable for storing against an account's last login.
func DeviceSummary(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}

	parser := ua.New(userAgent)
	if parser.Bot() {
		return "bot"
	}

	browser, _ := parser.Browser()
	os := parser.OS()

	parts := make([]string, 0, 2)
	if browser != "" {
		parts = append(parts, browser)
	}
	if os != "" {
		parts = append(parts, "on "+os)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " ")
}
