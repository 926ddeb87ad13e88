// Package validate checks template field formats before persistence.
package validate

import (
	"net"
	"strings"

	"github.com/google/uuid"
)

const (
	maxHostnameLen = 253
	maxLabelLen    = 63
)

// IsValidHostname reports whether name conforms to RFC1035: dot-separated
// labels of letters, digits and inner hyphens, each at most 63 characters,
// 253 characters overall, with a non-numeric final label. A single trailing
// dot is permitted.
func IsValidHostname(name string) bool {
	if name == "" {
		return false
	}
	name = strings.TrimSuffix(name, ".")
	if name == "" || len(name) > maxHostnameLen {
		return false
	}

	labels := strings.Split(name, ".")
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}

	// An all-numeric top-level label would be indistinguishable from an
	// IP address octet.
	return !isAllDigits(labels[len(labels)-1])
}

func isValidLabel(label string) bool {
	if label == "" || len(label) > maxLabelLen {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// IsValidIPv4CIDR reports whether s is an IPv4 network in CIDR notation.
func IsValidIPv4CIDR(s string) bool {
	ip, _, err := net.ParseCIDR(s)
	if err != nil {
		return false
	}
	return ip.To4() != nil
}

// IsValidUUID4 reports whether s is a version 4 UUID.
func IsValidUUID4(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4
}
