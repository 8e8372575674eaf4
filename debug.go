package lumen

import (
	"fmt"
	"os"
	"time"
)

// FrameStats holds per-frame pass timings and draw-call counts.
type FrameStats struct {
	GeometryTime  time.Duration
	LightingTime  time.Duration
	CompositeTime time.Duration
	Drawables     int
	// Lights counts lights that drew successfully.
	Lights    int
	DrawCalls int
}

// Total returns the time spent in all three passes.
func (s FrameStats) Total() time.Duration {
	return s.GeometryTime + s.LightingTime + s.CompositeTime
}

// debugLog prints timing and draw-call stats to stderr when Config.Debug is set.
func (p *Program) debugLog(stats FrameStats) {
	if !p.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[lumen] geometry: %v | lighting: %v | composite: %v | total: %v\n",
		stats.GeometryTime, stats.LightingTime, stats.CompositeTime, stats.Total())
	_, _ = fmt.Fprintf(os.Stderr,
		"[lumen] drawables: %d | lights: %d | draw calls: %d\n",
		stats.Drawables, stats.Lights, stats.DrawCalls)
}
