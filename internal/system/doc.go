// Package system wires the evaluator, piece registry, and box manager into
// one explicitly owned aggregate and exposes the operations the presentation
// shell and the monitor surface call. The shell is the only writer; the
// aggregate carries an RWMutex so the read-only monitor endpoints can observe
// it from their own goroutines.
package system
