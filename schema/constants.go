package schema

// Custom string types for type safety.
type (
	// Color is a style name understood by a Colorizer.
	Color string

	// ReportState represents where a session is in its report lifecycle.
	ReportState string
)

// All colors used when composing a report.
const (
	ColorBold      Color = "bold"
	ColorGray      Color = "gray"
	ColorBlack     Color = "black"
	ColorRed       Color = "red"
	ColorYellow    Color = "yellow"
	ColorGreen     Color = "green"
	ColorUnderline Color = "underline"
)

// All report states.
const (
	IdleState       ReportState = "idle"       // disabled session, nothing recorded
	CollectingState ReportState = "collecting" // enabled and accepting events
	SkippedState    ReportState = "skipped"    // ShouldSkip returned true
	SuppressedState ReportState = "suppressed" // below the log threshold
	RenderedState   ReportState = "rendered"   // report was printed
)

// Characters used to draw the timeline.
const (
	GridChar = '·'
	BarChar  = '▇'
	TickChar = '|'
	HRChar   = '━'
)

// Outcome marks for the footer line.
const (
	SuccessMark  = "✓"
	RedirectMark = "→"
	FailureMark  = "✗"
)

// MinScaleSpace is the minimum number of columns between two ticks.
// It leaves room for a label like "| 2000 ms" and a little more.
const MinScaleSpace = 10

// ScaleIntervals are the preferred tick intervals in milliseconds.
// Larger intervals continue on the same 1-2-5 progression.
var ScaleIntervals = []float64{20, 50, 100, 200, 500, 1000, 2000}

// NotFinishedMessage is shown for events that never ended.
const NotFinishedMessage = "Operation still not finished"

// OKStatusCodes lists status codes rendered with SuccessMark.
var OKStatusCodes = map[int]struct{}{
	200: {},
	204: {},
}

// RedirectStatusCodes lists status codes rendered with RedirectMark.
var RedirectStatusCodes = map[int]struct{}{
	301: {},
	302: {},
	304: {},
}

// ValidColors lists every color a Colorizer may receive.
var ValidColors = map[Color]struct{}{
	ColorBold:      {},
	ColorGray:      {},
	ColorBlack:     {},
	ColorRed:       {},
	ColorYellow:    {},
	ColorGreen:     {},
	ColorUnderline: {},
}
