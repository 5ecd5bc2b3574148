package contract

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/chronometrist/schema"
)

// Color attributes for console output, keyed by report color.
var colorAttributes = map[schema.Color][]color.Attribute{
	schema.ColorBold:      {color.Bold},
	schema.ColorGray:      {color.FgHiBlack},
	schema.ColorBlack:     {color.FgBlack},
	schema.ColorRed:       {color.FgRed},
	schema.ColorYellow:    {color.FgYellow},
	schema.ColorGreen:     {color.FgGreen},
	schema.ColorUnderline: {color.Underline},
}

// ansiReset ends every styled run produced by fatih/color.
const ansiReset = "\x1b[0m"

// style pairs a forced-on color with the escape sequence that opens it.
type style struct {
	color *color.Color
	open  string
}

// palette holds one style per report color. Colors are forced on so the
// report looks the same whether or not stdout is a terminal.
var palette = buildPalette()

func buildPalette() map[schema.Color]style {
	p := make(map[schema.Color]style, len(colorAttributes))
	for name, attrs := range colorAttributes {
		c := color.New(attrs...)
		c.EnableColor()
		codes := make([]string, len(attrs))
		for i, attr := range attrs {
			codes[i] = strconv.Itoa(int(attr))
		}
		p[name] = style{color: c, open: "\x1b[" + strings.Join(codes, ";") + "m"}
	}
	return p
}

// ColorStyler styles text with ANSI escape codes. Unknown colors leave the text as is.
// Resets from nested styles re-open this style, so the rest of text keeps it.
func ColorStyler(text string, c schema.Color) string {
	if text == "" {
		return text
	}
	st, ok := palette[c]
	if !ok {
		return text
	}
	text = strings.ReplaceAll(text, ansiReset, ansiReset+st.open)
	return st.color.Sprint(text)
}

// PlainStyler returns the text unchanged.
func PlainStyler(text string, _ schema.Color) string {
	return text
}

// SelectStyler returns ColorStyler when colors are enabled and PlainStyler otherwise.
func SelectStyler(useColors bool) schema.Colorizer {
	if useColors {
		return ColorStyler
	}
	return PlainStyler
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
