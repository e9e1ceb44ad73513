package codegen

import "fmt"

// GeneratorError reports an internal inconsistency detected during code
// generation.  The input tree is assumed to be validated, so these indicate a
// bug in the generator or its emitter rather than bad user code.
type GeneratorError struct {
	Message string
}

func (e *GeneratorError) Error() string {
	return e.Message
}

// ice raises a GeneratorError by panicking.  Generate recovers these at its
// boundary and discards the partially-built assembly buffer.
func ice(format string, args ...interface{}) {
	panic(&GeneratorError{Message: fmt.Sprintf(format, args...)})
}
