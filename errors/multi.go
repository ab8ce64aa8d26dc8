package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. A single non-nil error is
// returned as it is. Otherwise a multi error that holds all of them is
// returned. Its Is method matches any of the contained errors, and its Code
// is the code of the first one, following the fail-fast approach.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// Code returns the code of the first contained error.
func (m multiErr) Code() uint32 {
	return Code(m[0])
}

// Contains returns true if any of the contained errors is of given kind.
func (m multiErr) Contains(kind *Error) bool {
	for _, e := range m {
		if kind.Is(e) {
			return true
		}
	}
	return false
}
