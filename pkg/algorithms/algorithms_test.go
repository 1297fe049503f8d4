package algorithms_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/algorithms"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/runstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameLog struct {
	mu     sync.Mutex
	frames []domain.Frame
}

func (l *frameLog) Publish(_ context.Context, f domain.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
}

func (l *frameLog) last() domain.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames[len(l.frames)-1]
}

func build(t *testing.T, factory registry.Factory, name string, opts map[string]any) (ports.Visualizer, *frameLog, *runstate.State) {
	t.Helper()
	state := runstate.New()
	log := &frameLog{}
	if opts == nil {
		opts = map[string]any{}
	}
	if _, ok := opts["step_delay"]; !ok {
		opts["step_delay"] = 0
	}
	v, err := factory(registry.Env{Name: name, State: state, Frames: log, Options: opts})
	require.NoError(t, err)
	require.NoError(t, v.Init(context.Background(), dom.NewStandardContainer("viz")))
	return v, log, state
}

func submit(t *testing.T, v ports.Visualizer, kind domain.OpKind, value string) {
	t.Helper()
	require.NoError(t, v.Submit(context.Background(), domain.Operation{Kind: kind, Value: value}))
}

func TestDecodeOptions(t *testing.T) {
	opts, err := algorithms.DecodeOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, opts.StepDelay)
	assert.Equal(t, algorithms.DefaultViewportWidth, opts.ViewportWidth)

	opts, err = algorithms.DecodeOptions(map[string]any{
		"step_delay":      "250ms",
		"show_null_nodes": "true",
		"presets":         "1,2,3",
		"viewport_width":  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, opts.StepDelay)
	assert.True(t, opts.ShowNullNodes)
	assert.Equal(t, []string{"1", "2", "3"}, opts.Presets)
	assert.Equal(t, 5, opts.ViewportWidth)

	opts, err = algorithms.DecodeOptions(map[string]any{"step_delay": 75})
	require.NoError(t, err)
	assert.Equal(t, 75*time.Millisecond, opts.StepDelay)

	_, err = algorithms.DecodeOptions(map[string]any{"colour": "red"})
	assert.Error(t, err)
}

func TestBST_InsertFindDelete(t *testing.T) {
	v, log, _ := build(t, algorithms.NewBST, algorithms.NameBST, nil)
	tree := v.(*algorithms.BST)

	submit(t, v, domain.OpInsert, "50, 30,70 20 40 60 80")
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, []string{"20", "30", "40", "50", "60", "70", "80"}, tree.InOrder())
	assert.Equal(t, []string{"50", "30", "70", "20", "40", "60", "80"}, log.last().Items)

	submit(t, v, domain.OpFind, "60")
	assert.Equal(t, "Found 60", log.last().Caption)
	assert.Equal(t, []int{5}, log.last().Highlight)

	submit(t, v, domain.OpFind, "65")
	assert.Equal(t, "65 not found", log.last().Caption)

	submit(t, v, domain.OpDelete, "30")
	assert.Equal(t, []string{"20", "40", "50", "60", "70", "80"}, tree.InOrder())

	submit(t, v, domain.OpDelete, "50")
	assert.Equal(t, []string{"20", "40", "60", "70", "80"}, tree.InOrder())
	assert.Equal(t, "60", log.last().Items[0], "successor replaces the root")

	submit(t, v, domain.OpDelete, "99")
	assert.Equal(t, 5, tree.Len())

	submit(t, v, domain.OpPrint, "")
	assert.Equal(t, "Print: 20 40 60 70 80", log.last().Caption)
}

func TestBST_NumericOrdering(t *testing.T) {
	v, _, _ := build(t, algorithms.NewBST, algorithms.NameBST, nil)
	submit(t, v, domain.OpInsert, "10,9,b,100,a")
	assert.Equal(t, []string{"9", "10", "100", "a", "b"}, v.(*algorithms.BST).InOrder())
}

func TestBST_NonFiniteNumbersAreWords(t *testing.T) {
	v, _, _ := build(t, algorithms.NewBST, algorithms.NameBST, nil)
	tree := v.(*algorithms.BST)

	submit(t, v, domain.OpInsert, "50,30,70")
	submit(t, v, domain.OpDelete, "NaN")
	assert.Equal(t, []string{"30", "50", "70"}, tree.InOrder(), "NaN must not match a number")

	submit(t, v, domain.OpInsert, "Inf NaN")
	assert.Equal(t, []string{"30", "50", "70", "Inf", "NaN"}, tree.InOrder())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"9", "10", -1},
		{"10", "10.0", 0},
		{"1e3", "999", 1},
		{"NaN", "50", 1},
		{"50", "NaN", -1},
		{"NaN", "NaN", 0},
		{"Inf", "-Inf", 1},
		{"7", "Inf", -1},
		{"a", "b", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, algorithms.Compare(tt.a, tt.b), "Compare(%q, %q)", tt.a, tt.b)
	}
}

func TestBST_NullNodes(t *testing.T) {
	v, log, _ := build(t, algorithms.NewBST, algorithms.NameBST, map[string]any{"show_null_nodes": true})
	submit(t, v, domain.OpInsert, "2,1")
	assert.Equal(t, []string{"2", "1", "null", "null", "null"}, log.last().Items)

	v.(ports.NullNodeToggler).SetShowNullNodes(false)
	assert.Equal(t, []string{"2", "1"}, log.last().Items)
}

func TestBST_Reset(t *testing.T) {
	v, log, _ := build(t, algorithms.NewBST, algorithms.NameBST, nil)
	submit(t, v, domain.OpInsert, "1,2")

	require.NoError(t, v.Reset(context.Background()))
	assert.Zero(t, v.(*algorithms.BST).Len())
	assert.Empty(t, log.last().Items)
}

func TestBinaryHeap(t *testing.T) {
	v, log, _ := build(t, algorithms.NewBinaryHeap, algorithms.NameBinaryHeap, nil)
	heap := v.(*algorithms.BinaryHeap)

	submit(t, v, domain.OpInsert, "9,4,7,1,8,2")
	assert.Equal(t, "1", heap.Items()[0])

	var out []string
	for range 6 {
		out = append(out, heap.Items()[0])
		submit(t, v, domain.OpDeleteMin, "")
	}
	assert.Equal(t, []string{"1", "2", "4", "7", "8", "9"}, out)
	assert.Empty(t, heap.Items())

	submit(t, v, domain.OpDeleteMin, "")
	assert.Equal(t, "Heap is empty", log.last().Caption)

	err := v.Submit(context.Background(), domain.Operation{Kind: domain.OpFind, Value: "1"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestSort_Variants(t *testing.T) {
	for _, tc := range []struct {
		name    string
		factory registry.Factory
	}{
		{algorithms.NameInsertionSort, algorithms.NewInsertionSort},
		{algorithms.NameSelectionSort, algorithms.NewSelectionSort},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, log, _ := build(t, tc.factory, tc.name, nil)
			submit(t, v, domain.OpInsert, "5,2,9,1,7,10")
			submit(t, v, domain.OpSort, "")

			want := []string{"1", "2", "5", "7", "9", "10"}
			assert.Equal(t, want, v.(*algorithms.Sort).Items())
			assert.Equal(t, "Sorted", log.last().Caption)
			assert.Equal(t, want, log.last().Items)
		})
	}
}

func TestSort_ViewportIsPerInstance(t *testing.T) {
	a, _, _ := build(t, algorithms.NewInsertionSort, algorithms.NameInsertionSort, map[string]any{"viewport_width": 3})
	b, _, _ := build(t, algorithms.NewInsertionSort, algorithms.NameInsertionSort, map[string]any{"viewport_width": 3})

	submit(t, a, domain.OpInsert, "1,2,3,4,5,6")

	offA, width := a.(*algorithms.Sort).Viewport()
	offB, _ := b.(*algorithms.Sort).Viewport()
	assert.Equal(t, 3, offA)
	assert.Equal(t, 3, width)
	assert.Zero(t, offB)

	require.NoError(t, a.Reset(context.Background()))
	offA, _ = a.(*algorithms.Sort).Viewport()
	assert.Zero(t, offA)
}

func TestSubmit_BusyWhileResetting(t *testing.T) {
	v, _, state := build(t, algorithms.NewBST, algorithms.NameBST, nil)

	err := state.RunWhileResetting(context.Background(), func(ctx context.Context) error {
		return v.Submit(ctx, domain.Operation{Kind: domain.OpInsert, Value: "1"})
	})
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Zero(t, v.(*algorithms.BST).Len())
}

func TestRegisterAll(t *testing.T) {
	reg := registry.New()
	require.NoError(t, algorithms.RegisterAll(reg))

	assert.Equal(t, []string{"BST", "BinaryHeap", "Sort.Insertion", "Sort.Selection"}, reg.Names())
	for _, name := range reg.Names() {
		assert.True(t, registry.ValidName(name), name)
		d, ok := reg.Describe(name)
		require.True(t, ok)
		assert.NotEmpty(t, d.PseudoCode)
	}
}
