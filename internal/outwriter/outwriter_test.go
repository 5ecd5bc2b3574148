package outwriter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter fails every write.
type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestOutWriter(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutWriter(&buf)

	ow.WriteLine("first")
	ow.Log("second")

	assert.Equal(t, "first\nsecond\n", buf.String())
	assert.NoError(t, ow.Err())
}

func TestOutWriterKeepsFirstError(t *testing.T) {
	fw := &failingWriter{}
	ow := NewOutWriter(fw)

	ow.WriteLine("a")
	ow.WriteLine("b")

	assert.ErrorContains(t, ow.Err(), "disk full")
	assert.Equal(t, 1, fw.calls)
}

func TestWriteReportOrder(t *testing.T) {
	sink := &contract.MockLineSink{}
	sink.On("WriteLine", "top").Return().Once()
	sink.On("WriteLine", "middle").Return().Once()
	sink.On("WriteLine", "bottom").Return().Once()

	WriteReport(sink, []string{"top", "middle", "bottom"})

	sink.AssertExpectations(t)
	require.Len(t, sink.Calls, 3)
	assert.Equal(t, "middle", sink.Calls[1].Arguments.String(0))
}

func TestPrintReportToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.txt")
	cfg := &contract.Config{OutputFile: outputFile}

	require.NoError(t, PrintReport([]string{"one", "two"}, cfg))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestPrintReportBadPath(t *testing.T) {
	cfg := &contract.Config{OutputFile: filepath.Join(t.TempDir(), "missing", "report.txt")}
	assert.Error(t, PrintReport([]string{"one"}, cfg))
}
