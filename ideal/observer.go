// SPDX-License-Identifier: MIT

package ideal

// Observer receives fit events as they happen. Calls are made synchronously
// from the fitting goroutine, in classification order.
type Observer interface {
	// TermClassified is called once per border term.
	TermClassified(degree int, vanishing bool, loss float64, iterations int, converged bool)

	// DegreeCommitted is called after every processed degree.
	DegreeCommitted(degree, admitted, vanished, purged int)

	// InverseDropped is called when the inverse Gram matrix stops being
	// maintained; size is the Gram order at that point, reason is
	// "unstable" or "cap".
	InverseDropped(degree, size int, reason string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TermClassified(int, bool, float64, int, bool) {}
func (NopObserver) DegreeCommitted(int, int, int, int)           {}
func (NopObserver) InverseDropped(int, int, string)              {}
