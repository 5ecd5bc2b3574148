package outwriter

import (
	"os"

	"github.com/huangsam/chronometrist/internal/contract"
	"golang.org/x/term"
)

// sizeFunc reports the terminal size of a file descriptor.
type sizeFunc func(fd int) (width, height int, err error)

// GetScreenWidth returns the number of columns a report may use.
// A positive override wins; otherwise the terminal width of stdout is used,
// falling back to the default when it cannot be detected.
func GetScreenWidth(override int) int {
	return screenWidth(override, term.GetSize, int(os.Stdout.Fd()))
}

func screenWidth(override int, size sizeFunc, fd int) int {
	if override > 0 {
		return min(override, contract.MaxScreenWidth)
	}

	detected, _, err := size(fd)
	if err != nil || detected <= contract.MinScreenWidth {
		// Conservative default for CI and redirected output
		return contract.DefaultScreenWidth
	}
	return min(detected, contract.MaxScreenWidth)
}
