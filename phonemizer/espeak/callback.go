//go:build !noespeak
// +build !noespeak

package espeak

import "C"

// goClauseBoundary is invoked from the native synthesis callback whenever
// the engine reports a sentence boundary or end of synthesis. It hands any
// newly completed phoneme trace lines to the active run's capture target.
//
// Errors must never propagate across the native call boundary; a degraded
// clause is recorded by the capture target itself, and this function only
// signals continue (0) or stop (1) to the engine.
//
//export goClauseBoundary
func goClauseBoundary() C.int {
	run := active
	if run == nil {
		return 0
	}
	if !run.drain(false) {
		return 1
	}
	return 0
}
