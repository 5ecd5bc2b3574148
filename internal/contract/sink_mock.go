package contract

import "github.com/stretchr/testify/mock"

// MockLineSink is a mock implementation of LineSink for testing.
type MockLineSink struct {
	mock.Mock
}

var _ LineSink = &MockLineSink{} // Compile-time check

// WriteLine implements the LineSink interface.
func (m *MockLineSink) WriteLine(line string) {
	m.Called(line)
}
