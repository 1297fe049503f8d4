package registry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVisualizer struct{ name string }

func (s *stubVisualizer) Name() string                                   { return s.name }
func (s *stubVisualizer) Init(context.Context, ports.Container) error    { return nil }
func (s *stubVisualizer) Submit(context.Context, domain.Operation) error { return nil }
func (s *stubVisualizer) Reset(context.Context) error                    { return nil }

func factory(tag string) registry.Factory {
	return func(env registry.Env) (ports.Visualizer, error) {
		return &stubVisualizer{name: tag}, nil
	}
}

func TestValidName(t *testing.T) {
	valid := []string{"BST", "Sort.Insertion", "red_black_tree", "AVL2", "..."}
	invalid := []string{"", "a b", "a-b", "a/b", "<script>", "Binär", "a\nb", "x=1"}

	for _, name := range valid {
		assert.True(t, registry.ValidName(name), "expected %q to be valid", name)
	}
	for _, name := range invalid {
		assert.False(t, registry.ValidName(name), "expected %q to be invalid", name)
	}
}

func TestRegistry_RegisterRejectsInvalidNames(t *testing.T) {
	r := registry.New()

	err := r.Register("bad name", factory("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidAlgorithmName)

	err = r.Register("", factory("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidAlgorithmName)

	assert.Error(t, r.Register("NoFactory", nil))
	assert.Empty(t, r.Names())
}

func TestRegistry_Resolve(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("BST", factory("bst")))

	fn, ok := r.Resolve("BST")
	require.True(t, ok)
	v, err := fn(registry.Env{})
	require.NoError(t, err)
	assert.Equal(t, "bst", v.Name())

	notFound := []string{
		"",
		"bst",         // names are case sensitive
		"Heap",        // valid but unknown
		"BST ",        // grammar
		"constructor", // inherited members do not exist in a closed map
		"__proto__",
		"toString",
		"hasOwnProperty",
		"BST;rm",
	}
	for _, name := range notFound {
		_, ok := r.Resolve(name)
		assert.False(t, ok, "expected %q to be not found", name)
	}
}

func TestRegistry_CollisionLastWins(t *testing.T) {
	var buf bytes.Buffer
	r := registry.New(registry.WithLogger(logging.NewWriter(&buf, slog.LevelWarn)))

	require.NoError(t, r.Register("BST", factory("first")))
	require.NoError(t, r.Register("BST", factory("second")))

	fn, ok := r.Resolve("BST")
	require.True(t, ok)
	v, _ := fn(registry.Env{})
	assert.Equal(t, "second", v.Name())
	assert.Contains(t, buf.String(), "last registration wins")
}

func TestRegistry_DescribeAndNames(t *testing.T) {
	r := registry.New()
	r.MustRegister(registry.Descriptor{Name: "Sort.Insertion", Factory: factory("s"), PseudoCode: "for i ..."})
	r.MustRegister(registry.Descriptor{Name: "BST", Title: "Binary Search Tree", Factory: factory("b")})

	assert.Equal(t, []string{"BST", "Sort.Insertion"}, r.Names())

	d, ok := r.Describe("Sort.Insertion")
	require.True(t, ok)
	assert.Equal(t, "Sort.Insertion", d.Title, "title defaults to the name")
	assert.Equal(t, "for i ...", d.PseudoCode)

	assert.Panics(t, func() {
		r.MustRegister(registry.Descriptor{Name: "bad name", Factory: factory("x")})
	})
}
