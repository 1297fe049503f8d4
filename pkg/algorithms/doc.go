// Package algorithms contains the visualizers shipped with algoviz.
//
// Every visualizer mutates its structure inside the animating window of the
// page's run state, so a second submission observes domain.ErrBusy instead
// of a half-updated structure. Views (such as the sort viewport) are kept
// per instance.
package algorithms
