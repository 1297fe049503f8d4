package algorithms

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

// SortVariant selects the sorting algorithm animated by a Sort visualizer.
type SortVariant string

const (
	Insertion SortVariant = "insertion"
	Selection SortVariant = "selection"
)

const insertionCode = "```\n" +
	"for i in 1..n-1:\n" +
	"  j = i\n" +
	"  while j > 0 and a[j-1] > a[j]: swap a[j-1], a[j]; j--\n" +
	"```\n"

const selectionCode = "```\n" +
	"for i in 0..n-2:\n" +
	"  m = index of the smallest of a[i..n-1]\n" +
	"  swap a[i], a[m]\n" +
	"```\n"

// viewport is the scroll window over the array. Each Sort owns one.
type viewport struct {
	offset int
	width  int
}

// follow scrolls just enough for index i to be visible.
func (v *viewport) follow(i int) {
	switch {
	case i < v.offset:
		v.offset = i
	case i >= v.offset+v.width:
		v.offset = i - v.width + 1
	}
}

// Sort animates an in-place array sort.
type Sort struct {
	base
	variant SortVariant

	mu    sync.Mutex
	items []string
	view  viewport
}

var (
	_ ports.Visualizer    = (*Sort)(nil)
	_ ports.ControlLayout = (*Sort)(nil)
)

// NewInsertionSort is the registry factory for insertion sort.
func NewInsertionSort(env registry.Env) (ports.Visualizer, error) {
	s, err := newSort(env, Insertion, "Insertion Sort", insertionCode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewSelectionSort is the registry factory for selection sort.
func NewSelectionSort(env registry.Env) (ports.Visualizer, error) {
	s, err := newSort(env, Selection, "Selection Sort", selectionCode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newSort(env registry.Env, variant SortVariant, title, code string) (*Sort, error) {
	b, err := newBase(env, title, code, []string{"5,2,9,1,7", "10,9,8,7,6,5,4,3,2,1"})
	if err != nil {
		return nil, err
	}
	return &Sort{
		base:    b,
		variant: variant,
		view:    viewport{width: b.opts.ViewportWidth},
	}, nil
}

// RequiredControls is the sorting toolbar: values are appended, then sorted.
func (s *Sort) RequiredControls() []string {
	return []string{
		domain.ClassInsertField,
		domain.ClassInsertSubmit,
		domain.ClassSortSubmit,
		domain.ClassPrintSubmit,
		domain.ClassClearSubmit,
	}
}

// Variant reports which algorithm the visualizer animates.
func (s *Sort) Variant() SortVariant { return s.variant }

// Items returns the current array.
func (s *Sort) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Viewport returns the scroll offset and width of the array view.
func (s *Sort) Viewport() (offset, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.offset, s.view.width
}

func (s *Sort) Init(ctx context.Context, container ports.Container) error {
	s.init(ctx, container, domain.Frame{Caption: "Empty array"})
	return nil
}

func (s *Sort) Submit(ctx context.Context, op domain.Operation) error {
	switch op.Kind {
	case domain.OpInsert:
		return s.player.Run(ctx, func() ([]domain.Frame, error) {
			return s.insert(splitValues(op.Value)), nil
		})
	case domain.OpSort:
		return s.player.Run(ctx, func() ([]domain.Frame, error) {
			return s.sort(), nil
		})
	case domain.OpPrint:
		return s.player.Run(ctx, func() ([]domain.Frame, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return []domain.Frame{s.frameLocked(fmt.Sprintf("Array holds %d items", len(s.items)))}, nil
		})
	}
	return fmt.Errorf("%w: %s on %s", domain.ErrUnsupportedOperation, op.Kind, s.name)
}

func (s *Sort) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.view.offset = 0
	s.mu.Unlock()
	s.player.Show(ctx, domain.Frame{Caption: "Empty array"})
	return nil
}

func (s *Sort) insert(values []string) []domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	var frames []domain.Frame
	for _, v := range values {
		s.items = append(s.items, v)
		frames = append(frames, s.frameLocked("Append "+v, len(s.items)-1))
	}
	return frames
}

func (s *Sort) sort() []domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	var frames []domain.Frame
	switch s.variant {
	case Selection:
		frames = s.selectionLocked()
	default:
		frames = s.insertionLocked()
	}
	return append(frames, s.frameLocked("Sorted"))
}

func (s *Sort) insertionLocked() []domain.Frame {
	var frames []domain.Frame
	a := s.items
	for i := 1; i < len(a); i++ {
		for j := i; j > 0; j-- {
			frames = append(frames, s.frameLocked(fmt.Sprintf("Compare %s and %s", a[j-1], a[j]), j-1, j))
			if Compare(a[j-1], a[j]) <= 0 {
				break
			}
			a[j-1], a[j] = a[j], a[j-1]
			frames = append(frames, s.frameLocked("Swap", j-1, j))
		}
	}
	return frames
}

func (s *Sort) selectionLocked() []domain.Frame {
	var frames []domain.Frame
	a := s.items
	for i := 0; i < len(a)-1; i++ {
		m := i
		for j := i + 1; j < len(a); j++ {
			frames = append(frames, s.frameLocked(fmt.Sprintf("Compare %s with minimum %s", a[j], a[m]), m, j))
			if Compare(a[j], a[m]) < 0 {
				m = j
			}
		}
		if m != i {
			a[i], a[m] = a[m], a[i]
			frames = append(frames, s.frameLocked(fmt.Sprintf("Move %s to position %d", a[i], i), i, m))
		}
	}
	return frames
}

// frameLocked scrolls the viewport to the last highlighted index and renders.
func (s *Sort) frameLocked(caption string, highlight ...int) domain.Frame {
	if len(highlight) > 0 {
		s.view.follow(highlight[len(highlight)-1])
	}
	return domain.Frame{
		Caption:   caption,
		Items:     slices.Clone(s.items),
		Highlight: highlight,
		Offset:    s.view.offset,
	}
}
