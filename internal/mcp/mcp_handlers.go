package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/chronometrist/core"
	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/internal/replay"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// scaleResult is the JSON body of select_scale.
type scaleResult struct {
	LifeMS    float64  `json:"life_ms"`
	Width     int      `json:"width"`
	Interval  float64  `json:"interval_ms"`
	PerColumn float64  `json:"ms_per_column"`
	Columns   *float64 `json:"columns_per_tick,omitempty"` // unset on an empty timeline
}

// width returns the requested width, then the configured one, then the default.
func (h *toolHandler) width(request mcp.CallToolRequest) int {
	if w := request.GetInt("width", 0); w > 0 {
		return w
	}
	if h.baseCfg.Width > 0 {
		return h.baseCfg.Width
	}
	return contract.DefaultScreenWidth
}

func (h *toolHandler) handleRenderTimeline(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := request.GetString("trace", "")
	if strings.TrimSpace(doc) == "" {
		return mcp.NewToolResultError("trace is required"), nil
	}

	tr, err := replay.Parse([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trace: %v", err)), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Width = h.width(request)
	cfg.UseColors = false
	if r := request.GetFloat("round_to", 0); r > 0 {
		cfg.RoundTo = time.Duration(r * float64(time.Millisecond))
	}

	lines, err := replay.Render(tr, core.NewConfig(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (h *toolHandler) handleSelectScale(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	life := request.GetFloat("life_ms", -1)
	width := h.width(request)

	sc, err := core.SelectScale(life, width)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no scale: %v", err)), nil
	}

	result := scaleResult{
		LifeMS:    life,
		Width:     width,
		Interval:  sc.Interval,
		PerColumn: sc.PerColumn,
	}
	if sc.PerColumn > 0 {
		columns := sc.Columns()
		result.Columns = &columns
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode scale: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
