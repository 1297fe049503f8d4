package submit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/runstate"
	"github.com/aretw0/algoviz/pkg/submit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records operations and animates through the run state like a real visualizer.
type fakeEngine struct {
	state *runstate.State

	mu        sync.Mutex
	ops       []domain.Operation
	resets    int
	submitErr error
	resetErr  error
}

func (f *fakeEngine) Name() string                                { return "fake" }
func (f *fakeEngine) Init(context.Context, ports.Container) error { return nil }

func (f *fakeEngine) Submit(ctx context.Context, op domain.Operation) error {
	return f.state.RunWhileAnimating(ctx, func(ctx context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.ops = append(f.ops, op)
		return f.submitErr
	})
}

func (f *fakeEngine) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return f.resetErr
}

func (f *fakeEngine) calls() []domain.Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Operation(nil), f.ops...)
}

func newSubmitter(t *testing.T, opts ...submit.Option) (*submit.Submitter, *fakeEngine, *runstate.State) {
	t.Helper()
	state := runstate.New()
	engine := &fakeEngine{state: state}
	return submit.New(state, engine, opts...), engine, state
}

func field(value string) *dom.Element {
	el := dom.NewElement(domain.ClassInsertField)
	el.SetValue(value)
	return el
}

func TestSubmit_ForwardsTrimmedValueAndClearsField(t *testing.T) {
	s, engine, _ := newSubmitter(t)
	f := field("  42 ")

	require.NoError(t, s.Submit(context.Background(), domain.OpInsert, f))

	assert.Equal(t, []domain.Operation{{Kind: domain.OpInsert, Value: "42"}}, engine.calls())
	assert.Empty(t, f.Value())
}

func TestSubmit_InvalidValuesAreIgnored(t *testing.T) {
	s, engine, _ := newSubmitter(t)
	ctx := context.Background()

	require.NoError(t, s.Submit(ctx, domain.OpInsert, field("   ")))
	require.NoError(t, s.Submit(ctx, domain.OpFind, field("4 2")))
	require.NoError(t, s.Submit(ctx, domain.OpDelete, field("<x>")))
	require.NoError(t, s.Submit(ctx, domain.OpInsert, nil))

	assert.Empty(t, engine.calls())
}

func TestSubmit_OperationsWithoutValueIgnoreField(t *testing.T) {
	s, engine, _ := newSubmitter(t)
	f := field("leftover")

	require.NoError(t, s.Submit(context.Background(), domain.OpPrint, f))
	require.NoError(t, s.Submit(context.Background(), domain.OpSort, nil))

	assert.Equal(t, []domain.Operation{{Kind: domain.OpPrint}, {Kind: domain.OpSort}}, engine.calls())
	assert.Equal(t, "leftover", f.Value())
}

func TestSubmit_SuppressedWhileAnimating(t *testing.T) {
	var drops []*domain.OperationEvent
	s, engine, state := newSubmitter(t, submit.WithLifecycleHooks(domain.LifecycleHooks{
		OnDrop: func(ctx context.Context, e *domain.OperationEvent) { drops = append(drops, e) },
	}))
	state.SetAnimating(true)

	for _, kind := range domain.OpKinds {
		f := field("7")
		require.NoError(t, s.Submit(context.Background(), kind, f))
		assert.Equal(t, "7", f.Value(), "dropped submissions leave the field untouched")
	}

	assert.Empty(t, engine.calls())
	require.Len(t, drops, len(domain.OpKinds))
	assert.Equal(t, submit.ReasonBusy, drops[0].Reason)
	assert.Equal(t, domain.EventDrop, drops[0].Type)
}

func TestSubmit_SuppressedWhileResetting(t *testing.T) {
	s, engine, state := newSubmitter(t)
	ctx := context.Background()

	err := state.RunWhileResetting(ctx, func(ctx context.Context) error {
		return s.Submit(ctx, domain.OpInsert, field("1"))
	})

	require.NoError(t, err)
	assert.Empty(t, engine.calls())
}

func TestSubmit_EngineErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported is silent", func(t *testing.T) {
		s, engine, _ := newSubmitter(t)
		engine.submitErr = domain.ErrUnsupportedOperation
		assert.NoError(t, s.Submit(ctx, domain.OpDeleteMin, nil))
	})

	t.Run("busy is silent", func(t *testing.T) {
		s, engine, _ := newSubmitter(t)
		engine.submitErr = domain.ErrBusy
		assert.NoError(t, s.Submit(ctx, domain.OpPrint, nil))
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("renderer failed")
		var submits []*domain.OperationEvent
		s, engine, _ := newSubmitter(t, submit.WithLifecycleHooks(domain.LifecycleHooks{
			OnSubmit: func(ctx context.Context, e *domain.OperationEvent) { submits = append(submits, e) },
		}))
		engine.submitErr = boom

		f := field("5")
		err := s.Submit(ctx, domain.OpInsert, f)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "5", f.Value(), "failed operations keep the input for editing")
		require.Len(t, submits, 1)
		assert.ErrorIs(t, submits[0].Err, boom)
	})
}

func TestClear_FailureIsObservableAndReleasesFlag(t *testing.T) {
	boom := errors.New("reset failed")
	var resets []*domain.OperationEvent
	s, engine, state := newSubmitter(t, submit.WithContainer("viz"), submit.WithLifecycleHooks(domain.LifecycleHooks{
		OnReset: func(ctx context.Context, e *domain.OperationEvent) { resets = append(resets, e) },
	}))
	engine.resetErr = boom

	err := s.Clear(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, state.IsResetting())
	require.Len(t, resets, 1)
	assert.Equal(t, domain.EventReset, resets[0].Type)
	assert.Equal(t, "viz", resets[0].Container)
}

func TestClear_DroppedWhileAnimating(t *testing.T) {
	s, engine, state := newSubmitter(t)
	state.SetAnimating(true)

	require.NoError(t, s.Clear(context.Background()))
	assert.Zero(t, engine.resets)
	assert.False(t, state.IsResetting())
}

func TestClear_Success(t *testing.T) {
	s, engine, state := newSubmitter(t)

	require.NoError(t, s.Clear(context.Background()))
	assert.Equal(t, 1, engine.resets)
	assert.False(t, state.IsBusy())
}
