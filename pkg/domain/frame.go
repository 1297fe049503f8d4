package domain

// Frame is one discrete step of an animation.
type Frame struct {
	// Algorithm is the registered name of the visualizer that produced the frame.
	Algorithm string `json:"algorithm"`
	// Step is the position of the frame within its sequence, starting at 1.
	Step int `json:"step"`
	// Caption is a human readable description of the step.
	Caption string `json:"caption"`
	// Items is the rendered structure (tree levels, heap array, sort array).
	Items []string `json:"items"`
	// Highlight holds the indexes of Items being compared or moved.
	Highlight []int `json:"highlight,omitempty"`
	// Offset is the index of the first visible item when the renderer scrolls.
	Offset int `json:"offset,omitempty"`
}

// Status is a snapshot of the run state flags.
type Status struct {
	Running   bool `json:"running"`
	Animating bool `json:"animating"`
	Resetting bool `json:"resetting"`
}

// Busy reports whether state-mutating operations must be refused.
func (s Status) Busy() bool {
	return s.Animating || s.Resetting
}
