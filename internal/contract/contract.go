// Package contract provides interfaces and shared utilities for chronometrist's internal architecture.
package contract

// LineSink receives report lines one at a time, in order.
// This allows report output to be captured or mocked in tests.
type LineSink interface {
	WriteLine(line string)
}

// LineSinkFunc adapts a plain function to LineSink.
type LineSinkFunc func(line string)

// WriteLine implements the LineSink interface.
func (f LineSinkFunc) WriteLine(line string) {
	f(line)
}
