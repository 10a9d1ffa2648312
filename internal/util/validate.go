package util

import (
	"fmt"
	"regexp"
)

// validNameChars matches only alphanumeric characters, hyphens, underscores, and periods.
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

// ValidateName checks that a home or service identifier is usable as a
// storage key and on the command line:
//   - At least 1 and at most 64 characters
//   - Only alphanumeric characters, hyphens (-), underscores (_), and periods (.)
//   - First character must be alphanumeric
func ValidateName(kind, name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%s must not be empty", kind)
	}
	if len(name) > 64 {
		return fmt.Errorf("%s must be at most 64 characters, got %d", kind, len(name))
	}

	if !validNameChars.MatchString(name) {
		return fmt.Errorf("%s %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, underscores, and periods are allowed)", kind, name)
	}

	if !isAlphanumeric(name[0]) {
		return fmt.Errorf("%s must start with an alphanumeric character, got %q", kind, string(name[0]))
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
