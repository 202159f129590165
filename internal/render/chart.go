// Package render rasterizes the sample series into an ASCII chart frame
// and drives the fixed-interval redraw loop.
package render

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alanyoungcy/polychart/internal/domain"
	"github.com/alanyoungcy/polychart/internal/series"
)

const (
	// Rows reserved for the header, stats, and time axis around the grid.
	chromeRows = 8
	// Columns reserved for the price-axis labels left of the grid.
	chromeCols = 13

	// plotMark is the glyph used for a plotted point.
	plotMark = '●'
)

// SizeFunc reports the terminal dimensions (columns, rows) for the next
// frame. Injecting it keeps the renderer testable with fixed sizes.
type SizeFunc func() (cols, rows int)

// Renderer turns the current contents of the store's time window into one
// terminal frame. Frame is a pure function of the store contents, the
// clock, and the reported size, so re-rendering an unchanged window
// yields an identical frame.
type Renderer struct {
	store       *series.Store
	label       string
	windowHours int
	size        SizeFunc
	logger      *slog.Logger
}

// NewRenderer creates a Renderer over the given store. label is the
// market question shown as the title line.
func NewRenderer(store *series.Store, label string, windowHours int, size SizeFunc, logger *slog.Logger) *Renderer {
	return &Renderer{
		store:       store,
		label:       label,
		windowHours: windowHours,
		size:        size,
		logger:      logger.With(slog.String("component", "renderer")),
	}
}

// Frame renders the chart for the window ending at now. When no sample
// falls inside the window it returns a placeholder frame; whether the
// store was empty or merely stale is only visible in the debug log.
func (r *Renderer) Frame(now time.Time) string {
	cutoff := now.Add(-time.Duration(r.windowHours) * time.Hour).UnixMilli()
	window := r.store.Window(cutoff)

	if len(window) == 0 {
		if r.store.Len() == 0 {
			r.logger.Debug("nothing to render", slog.String("reason", domain.ErrNoData.Error()))
		} else {
			r.logger.Debug("nothing to render",
				slog.String("reason", domain.ErrEmptyWindow.Error()),
				slog.Int("stored", r.store.Len()),
			)
		}
		return r.placeholder()
	}

	cols, rows := r.size()
	height := rows - chromeRows
	width := cols - chromeCols
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	// Scale to the window's mid range, with a floor against a degenerate
	// flat series, 10% padding, and a clamp to the [0,1] probability
	// bounds.
	dataMin, dataMax := window[0].Mid, window[0].Mid
	for _, s := range window[1:] {
		dataMin = math.Min(dataMin, s.Mid)
		dataMax = math.Max(dataMax, s.Mid)
	}
	dataRange := math.Max(dataMax-dataMin, 0.1)
	padding := dataRange * 0.1
	minMid := math.Max(0, dataMin-padding)
	maxMid := math.Min(1, dataMax+padding)
	span := maxMid - minMid

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// One column per horizontal cell, sampled at the proportional index.
	step := float64(len(window)) / float64(width)
	for i := 0; i < width; i++ {
		idx := int(float64(i) * step)
		if idx >= len(window) {
			break
		}
		normalized := (window[idx].Mid - minMid) / span
		row := int((1 - normalized) * float64(height-1))
		if row < 0 {
			row = 0
		}
		if row > height-1 {
			row = height - 1
		}
		grid[row][i] = plotMark
	}

	// Headline stats come from the newest point, unless it carries the
	// default/uninitialized mid of exactly 0.5 as a trailing artifact.
	latest := window[len(window)-1]
	if latest.Mid == 0.5 && len(window) > 1 {
		latest = window[len(window)-2]
	}

	var b strings.Builder
	b.WriteString(r.label)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "yes: %.1f%% | no: %.1f%% | last %dh | mid: $%.3f - $%.3f\n",
		latest.Mid*100, (1-latest.Mid)*100, r.windowHours, minMid, maxMid)
	fmt.Fprintf(&b, "%d data points | vol: %.0f bid / %.0f ask | spread: $%.4f\n\n",
		len(window), latest.BidSize, latest.AskSize, latest.Spread)

	for row := 0; row < height; row++ {
		price := minMid
		if height > 1 {
			price = minMid + float64(height-1-row)/float64(height-1)*span
		}
		fmt.Fprintf(&b, "%-8s│ %s\n", fmt.Sprintf("$%.3f", price), string(grid[row]))
	}

	b.WriteString("        └" + strings.Repeat("─", width+1) + "\n")

	oldest := window[0].Time().Format("15:04:05")
	newest := latest.Time().Format("15:04:05")
	gap := width - len(oldest) - len(newest)
	if gap < 1 {
		gap = 1
	}
	fmt.Fprintf(&b, "        %s%s%s\n", oldest, strings.Repeat(" ", gap), newest)

	return b.String()
}

// placeholder is the frame shown while the window is empty. Keeping it a
// full frame keeps the redraw loop uniform through feed outages.
func (r *Renderer) placeholder() string {
	var b strings.Builder
	b.WriteString(r.label)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "no data yet (window: last %dh)\n", r.windowHours)
	return b.String()
}
