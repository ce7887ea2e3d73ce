package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("convert")
	time.Sleep(2 * time.Millisecond)
	tm.End(idx, "native")
	tm.End(tm.Begin("rewrite"), "")
	tm.End(99, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "convert", r.Phases[0].Name)
	assert.Equal(t, "native", r.Phases[0].Note)
	assert.GreaterOrEqual(t, r.Phases[0].DurationMS, 2.0)
	assert.GreaterOrEqual(t, r.TotalMS, r.Phases[0].DurationMS)
}

func TestSummaryAlignsColumns(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("read"), "")
	tm.End(tm.Begin("structure"), "")
	tm.End(tm.Begin("résumé"), "")

	lines := strings.Split(strings.TrimSpace(tm.Summary()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "timings:", lines[0])
	col := runewidth.StringWidth(lines[1][:strings.Index(lines[1], " ms")])
	for _, l := range lines[2:] {
		assert.Equal(t, col, runewidth.StringWidth(l[:strings.Index(l, " ms")]), "misaligned %q", l)
	}
	assert.True(t, strings.HasPrefix(lines[4], "  total"))
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	assert.Empty(t, tm.Phases())
	assert.Equal(t, Report{}, tm.Report())
}
