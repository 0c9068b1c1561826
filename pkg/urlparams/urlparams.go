// Package urlparams recovers identifiers embedded in a route path.
package urlparams

import (
	"errors"
	"strings"
)

// Theme is the marker segment used by the legacy theme routes.
const Theme = "theme"

var (
	ErrSentinelNotFound = errors.New("urlparams: sentinel segment not found")
	ErrNoIdentifier     = errors.New("urlparams: expected exactly one segment after sentinel")
)

// After splits path on "/" and returns every segment that follows the first
// segment equal to sentinel. Segments are returned raw, empty ones included.
func After(path, sentinel string) ([]string, error) {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == sentinel {
			rest := make([]string, len(segments)-i-1)
			copy(rest, segments[i+1:])
			return rest, nil
		}
	}
	return nil, ErrSentinelNotFound
}

// Single is After for routes that carry exactly one non-empty identifier
// after the sentinel, such as /edit-contact/{id}.
func Single(path, sentinel string) (string, error) {
	rest, err := After(path, sentinel)
	if err != nil {
		return "", err
	}
	if len(rest) != 1 || rest[0] == "" {
		return "", ErrNoIdentifier
	}
	return rest[0], nil
}
