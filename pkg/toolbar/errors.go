package toolbar

import (
	"fmt"
	"strings"
)

// MissingControlError reports every required control absent from a container.
type MissingControlError struct {
	Container string
	Missing   []string
}

func (e *MissingControlError) Error() string {
	classes := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		classes[i] = "." + c
	}
	return fmt.Sprintf("toolbar: container %q is missing required controls: %s",
		e.Container, strings.Join(classes, ", "))
}
