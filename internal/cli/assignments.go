package cli

import (
	"fmt"
	"strings"

	"github.com/davesims/rhom-sti/internal/ports/primary"
)

// parseAssignments parses key=value arguments into attributes.
// The value may be empty or contain further '=' characters.
func parseAssignments(args []string) (primary.Attributes, error) {
	attrs := primary.Attributes{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", arg)
		}
		attrs[key] = value
	}
	return attrs, nil
}
