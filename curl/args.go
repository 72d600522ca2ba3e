package curl

import (
	"fmt"
	"strings"
)

// Flags the tool needs for itself: output capture and the write-out format
// would silently break if the user overrode them.
var reservedFlags = []string{
	"-w",
	"-D",
	"-o",
	"-s",
	"--write-out",
	"--dump-header",
	"--output",
	"--silent",
}

// ValidateExtraArgs rejects passthrough arguments that collide with the
// flags this tool reserves for capturing metrics, headers and body.
// A collision is an exact match or the "flag=value" form.
func ValidateExtraArgs(extraArgs []string) error {
	for _, arg := range extraArgs {
		for _, flag := range reservedFlags {
			if arg == flag || strings.HasPrefix(arg, flag+"=") {
				return fmt.Errorf("disallowed flag %q: %s is reserved for capturing curl output", arg, flag)
			}
		}
	}
	return nil
}
