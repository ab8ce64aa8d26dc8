/*
Package errors implements the error values shared by all royalty packages.

Reuse errors declared in this package whenever possible and declare a custom
root error in an extension only when a caller must be able to tell it apart
from the generic ones. Root errors are created with Register(code, description)
and every code may be registered only once.

Wrap an error with Wrap or Wrapf at the point of creation so that a stack
trace is attached. Only the innermost wrap records the stack trace. Test for
a kind of error with the Is method of a root error:

	if errors.ErrNotFound.Is(err) {
		...
	}

Formatting with %+v prints the full stack trace of the error.
*/
package errors
