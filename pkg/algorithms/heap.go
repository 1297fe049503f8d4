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

const heapCode = "```\n" +
	"insert(v):\n" +
	"  append v; i = last\n" +
	"  while i > 0 and a[i] < a[parent(i)]: swap, i = parent(i)\n" +
	"deleteMin():\n" +
	"  min = a[0]; a[0] = pop last\n" +
	"  sift a[0] down while a child is smaller\n" +
	"```\n"

// BinaryHeap animates an array-backed min priority queue.
type BinaryHeap struct {
	base

	mu    sync.Mutex
	items []string
}

var (
	_ ports.Visualizer    = (*BinaryHeap)(nil)
	_ ports.ControlLayout = (*BinaryHeap)(nil)
)

// NewBinaryHeap is the registry factory for the min heap.
func NewBinaryHeap(env registry.Env) (ports.Visualizer, error) {
	b, err := newBase(env, "Binary Heap", heapCode, []string{"9,4,7,1,8,2", "5,5,3"})
	if err != nil {
		return nil, err
	}
	return &BinaryHeap{base: b}, nil
}

// RequiredControls drops find and delete: a priority queue only removes its minimum.
func (h *BinaryHeap) RequiredControls() []string {
	return []string{
		domain.ClassInsertField,
		domain.ClassInsertSubmit,
		domain.ClassDeleteMinSubmit,
		domain.ClassPrintSubmit,
		domain.ClassClearSubmit,
	}
}

func (h *BinaryHeap) Init(ctx context.Context, container ports.Container) error {
	h.init(ctx, container, domain.Frame{Caption: "Empty heap"})
	return nil
}

// Items returns the heap array.
func (h *BinaryHeap) Items() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.items)
}

func (h *BinaryHeap) Submit(ctx context.Context, op domain.Operation) error {
	switch op.Kind {
	case domain.OpInsert:
		return h.player.Run(ctx, func() ([]domain.Frame, error) {
			return h.insert(splitValues(op.Value)), nil
		})
	case domain.OpDeleteMin:
		return h.player.Run(ctx, func() ([]domain.Frame, error) {
			return h.deleteMin(), nil
		})
	case domain.OpPrint:
		return h.player.Run(ctx, func() ([]domain.Frame, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			return []domain.Frame{h.frameLocked(fmt.Sprintf("Heap holds %d items", len(h.items)))}, nil
		})
	}
	return fmt.Errorf("%w: %s on %s", domain.ErrUnsupportedOperation, op.Kind, h.name)
}

func (h *BinaryHeap) Reset(ctx context.Context) error {
	h.mu.Lock()
	h.items = nil
	h.mu.Unlock()
	h.player.Show(ctx, domain.Frame{Caption: "Empty heap"})
	return nil
}

func (h *BinaryHeap) insert(values []string) []domain.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()

	var frames []domain.Frame
	for _, v := range values {
		h.items = append(h.items, v)
		i := len(h.items) - 1
		frames = append(frames, h.frameLocked("Append "+v, i))
		for i > 0 {
			p := (i - 1) / 2
			if Compare(h.items[i], h.items[p]) >= 0 {
				break
			}
			h.items[i], h.items[p] = h.items[p], h.items[i]
			frames = append(frames, h.frameLocked(fmt.Sprintf("Swap %s up", v), p, i))
			i = p
		}
	}
	return frames
}

func (h *BinaryHeap) deleteMin() []domain.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return []domain.Frame{h.frameLocked("Heap is empty")}
	}
	top := h.items[0]
	frames := []domain.Frame{h.frameLocked("Remove minimum "+top, 0)}

	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) == 0 {
		return append(frames, h.frameLocked("Removed "+top))
	}
	frames = append(frames, h.frameLocked("Move last item to the root", 0))

	i := 0
	for {
		smallest := i
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < len(h.items) && Compare(h.items[c], h.items[smallest]) < 0 {
				smallest = c
			}
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		frames = append(frames, h.frameLocked("Sift down", i, smallest))
		i = smallest
	}
	return append(frames, h.frameLocked("Removed "+top))
}

func (h *BinaryHeap) frameLocked(caption string, highlight ...int) domain.Frame {
	return domain.Frame{
		Caption:   caption,
		Items:     slices.Clone(h.items),
		Highlight: highlight,
	}
}
