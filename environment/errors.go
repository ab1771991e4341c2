package environment

import "fmt"

// ParseError is raised by the (out of scope) input parser when an object in
// the input stream is malformed; the environment only propagates it.
type ParseError struct {
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("environment: parse error: %s", e.Reason)
}

// MissingFactory means a module was referenced (staged objects exist for
// it, or setup reached it in the fixed order) without a registered factory.
type MissingFactory struct {
	Name string
}

func (e MissingFactory) Error() string {
	return fmt.Sprintf("environment: no factory registered for module %q", e.Name)
}

// ModuleMissing means a typed lookup was made for a module whose factory
// had no staged objects (so it was never constructed), or whose stored
// value is not of the requested type.
type ModuleMissing struct {
	Name string
}

func (e ModuleMissing) Error() string {
	return fmt.Sprintf("environment: module %q is not set up", e.Name)
}

// ObjectMissing means a user id was not found in a module's own index.
type ObjectMissing struct {
	Module string
	UserID string
}

func (e ObjectMissing) Error() string {
	return fmt.Sprintf("environment: module %q has no object with user id %q", e.Module, e.UserID)
}
