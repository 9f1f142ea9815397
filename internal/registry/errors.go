package registry

import "fmt"

var errEmptyName = fmt.Errorf("registry: tool name must not be empty")

func errEmptyDescription(name string) error {
	return fmt.Errorf("registry: tool %q must have a non-empty description", name)
}

func errDestructiveReadOnly(name string) error {
	return fmt.Errorf("registry: tool %q cannot be both destructive and read_only", name)
}

func errNilHandler(name string) error {
	return fmt.Errorf("registry: tool %q has a nil handler", name)
}

func errDuplicateName(name string) error {
	return fmt.Errorf("registry: duplicate tool name %q", name)
}

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
