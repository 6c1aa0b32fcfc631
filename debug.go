package deepsea

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	collectTime   time.Duration
	sortTime      time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog prints draw timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.collectTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[deepsea] collect: %v | sort: %v | submit: %v | total: %v\n",
		stats.collectTime, stats.sortTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[deepsea] spheres: %d | draw calls: %d\n",
		stats.commandCount, stats.drawCallCount)
}

// debugTick prints simulation timing and population counts to stderr.
func (s *Scene) debugTick(elapsed time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[deepsea] tick %d t=%.3f: %v | phase: %s | rise: %d | ambient: %d | fragments: %d | tweens: %d | timers: %d\n",
		s.frames, s.clock.Now(), elapsed, s.phases.Phase(),
		s.rise.ActiveCount(), s.ambient.ActiveCount(), s.fragments.Len(),
		s.anim.Len(), s.clock.Pending())
}

// debugf prints a one-line event to stderr in debug mode.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[deepsea] "+format+"\n", args...)
}

// warnf prints a one-line failure to stderr whether or not debug is on.
func (s *Scene) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[deepsea] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("deepsea debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[deepsea] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
