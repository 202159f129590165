package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/polychart/internal/domain"
	"github.com/alanyoungcy/polychart/internal/series"
)

func TestLoopRedrawsUntilCancelled(t *testing.T) {
	store := series.NewStore()
	store.Append(domain.Sample{Timestamp: time.Now().UnixMilli(), Mid: 0.42})

	var out bytes.Buffer
	loop := NewLoop(newTestRenderer(store), &out, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// Each tick clears the screen and redraws the full frame.
	require.GreaterOrEqual(t, bytes.Count(out.Bytes(), []byte(clearScreen)), 2)
	require.Contains(t, out.String(), "Test market?")
	require.Contains(t, out.String(), string(plotMark))
}
