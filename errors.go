package hexmesh

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Error classes returned by topology operations. They describe inputs that
// violate the structure of a regular hexahedral mesh and are never retried.
// Use errors.Is to test for a class.
var (
	// ErrMalformedConnectivity reports connectivity that cannot belong to a
	// regular hex mesh, e.g. a vertex with 7 neighbours or a seed quadruple
	// that does not span exactly 3 faces.
	ErrMalformedConnectivity = errors.New("malformed connectivity")
	// ErrAmbiguousGeometry reports a geometric test that could not decide
	// between two outcomes within tolerance.
	ErrAmbiguousGeometry = errors.New("ambiguous geometry")
	// ErrUnsupportedInput reports input outside of what the resolvers handle,
	// e.g. non-quad faces or pinches of multiplicity other than two.
	ErrUnsupportedInput = errors.New("unsupported input")
)

// malformed wraps ErrMalformedConnectivity with the calling function's name.
func malformed(format string, args ...interface{}) error {
	return errors.Wrap(ErrMalformedConnectivity, callerMsg(format, args...))
}

func ambiguous(format string, args ...interface{}) error {
	return errors.Wrap(ErrAmbiguousGeometry, callerMsg(format, args...))
}

func unsupported(format string, args ...interface{}) error {
	return errors.Wrap(ErrUnsupportedInput, callerMsg(format, args...))
}

func callerMsg(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return msg
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return msg
	}
	return fn.Name() + ": " + msg
}
