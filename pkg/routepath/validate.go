package routepath

import (
	"errors"
	"strings"
)

// Navigation URI errors.
var (
	ErrInvalidURI      = errors.New("invalid navigation uri")
	ErrAbsoluteURI     = errors.New("navigation uri must be relative to the origin")
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
)

// ValidateNavURI checks a navigation URI received from an untrusted host.
//
// Navigation URIs MUST be origin-relative:
//   - MUST start with "/" (or be empty, meaning "/")
//   - MUST NOT be a full URL ("http://", "https://", "//")
//   - MUST NOT contain a backslash or NUL byte in the path
func ValidateNavURI(uri string) error {
	if uri == "" {
		return nil
	}
	if strings.HasPrefix(uri, "http://") ||
		strings.HasPrefix(uri, "https://") ||
		strings.HasPrefix(uri, "//") {
		return ErrAbsoluteURI
	}
	if !strings.HasPrefix(uri, "/") && !strings.HasPrefix(uri, "?") {
		return ErrInvalidURI
	}

	path, _ := SplitPathAndQuery(uri)
	if strings.Contains(path, "\\") {
		return ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return ErrNullByteInPath
	}
	return nil
}
