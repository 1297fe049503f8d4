package domain

// StatusDiff represents the changes between two run state snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type StatusDiff struct {
	// Container is always present to identify the target.
	Container string `json:"container"`

	Running   *bool `json:"running,omitempty"`
	Animating *bool `json:"animating,omitempty"`
	Resetting *bool `json:"resetting,omitempty"`
}

// Busy reports whether the diff leaves the page in a busy state, given the
// previous snapshot for fields that did not change.
func (d *StatusDiff) Busy(prev Status) bool {
	next := prev
	if d.Animating != nil {
		next.Animating = *d.Animating
	}
	if d.Resetting != nil {
		next.Resetting = *d.Resetting
	}
	return next.Busy()
}

// Diff calculates the difference between oldStatus and newStatus.
// If oldStatus is nil, it returns a diff representing the entire newStatus (initial load).
// It returns nil when nothing changed.
func Diff(container string, oldStatus *Status, newStatus Status) *StatusDiff {
	diff := &StatusDiff{Container: container}

	if oldStatus == nil || oldStatus.Running != newStatus.Running {
		diff.Running = &newStatus.Running
	}
	if oldStatus == nil || oldStatus.Animating != newStatus.Animating {
		diff.Animating = &newStatus.Animating
	}
	if oldStatus == nil || oldStatus.Resetting != newStatus.Resetting {
		diff.Resetting = &newStatus.Resetting
	}

	if diff.Running == nil && diff.Animating == nil && diff.Resetting == nil {
		return nil
	}
	return diff
}
