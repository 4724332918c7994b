package pathsearch

import "github.com/pkg/errors"

var (
	// ErrVertexNotFound is returned when start or end does not appear in any edge.
	ErrVertexNotFound = errors.New("pathsearch: vertex not found")
	// ErrIterationLimit is returned when the search exceeds its step budget.
	// Paths found before the limit was hit are returned alongside it.
	ErrIterationLimit = errors.New("pathsearch: iteration limit reached")
	// ErrNoPath is returned by ShortestPath when end cannot be reached from start.
	ErrNoPath = errors.New("pathsearch: no path")
)

// DefaultMaxSteps bounds the number of edge traversals of a search.
const DefaultMaxSteps = 1 << 20

// Option configures FindAllPaths.
type Option func(*Options)

// Options holds the limits of a search.
type Options struct {
	// MaxSteps is the maximum number of edges pushed on the stack before the
	// search aborts with ErrIterationLimit.
	MaxSteps int
	// MaxPaths stops the search once this many paths were found. 0 is no limit.
	MaxPaths int
	// MaxDepth limits path length in edges. Negative is no limit.
	MaxDepth int
}

// DefaultOptions returns DefaultMaxSteps, no path limit and no depth limit.
func DefaultOptions() Options {
	return Options{MaxSteps: DefaultMaxSteps, MaxPaths: 0, MaxDepth: -1}
}

// WithMaxSteps sets the step budget. Non positive values are ignored.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSteps = n
		}
	}
}

// WithMaxPaths stops the search after n paths.
func WithMaxPaths(n int) Option {
	return func(o *Options) {
		o.MaxPaths = n
	}
}

// WithMaxDepth limits paths to at most n edges.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = n
	}
}
