package algorithms

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

const bstCode = "```\n" +
	"insert(v):\n" +
	"  if tree empty: root = v\n" +
	"  n = root\n" +
	"  while true:\n" +
	"    if v < n.key: descend left, or attach v there\n" +
	"    else: descend right, or attach v there\n" +
	"```\n"

// NullMarker renders an absent child when null nodes are shown.
const NullMarker = "null"

type bstNode struct {
	key         string
	left, right *bstNode
}

// BST animates an unbalanced binary search tree.
type BST struct {
	base

	mu        sync.Mutex
	root      *bstNode
	size      int
	showNulls bool
}

var (
	_ ports.Visualizer      = (*BST)(nil)
	_ ports.NullNodeToggler = (*BST)(nil)
	_ ports.PseudoCoder     = (*BST)(nil)
	_ ports.InsertPresets   = (*BST)(nil)
)

// NewBST is the registry factory for the binary search tree.
func NewBST(env registry.Env) (ports.Visualizer, error) {
	b, err := newBase(env, "Binary Search Tree", bstCode, []string{"50,30,70,20,40,60,80", "1,2,3,4,5"})
	if err != nil {
		return nil, err
	}
	return &BST{base: b, showNulls: b.opts.ShowNullNodes}, nil
}

func (t *BST) Init(ctx context.Context, container ports.Container) error {
	t.init(ctx, container, t.frame("Empty tree", nil))
	return nil
}

// ShowNullNodes reports whether empty children are rendered.
func (t *BST) ShowNullNodes() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showNulls
}

// SetShowNullNodes toggles rendering of empty children.
func (t *BST) SetShowNullNodes(show bool) {
	t.mu.Lock()
	t.showNulls = show
	t.mu.Unlock()
	t.player.Show(context.Background(), t.frame("Redraw", nil))
}

// Len returns the number of keys in the tree.
func (t *BST) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// InOrder returns the keys in sorted order.
func (t *BST) InOrder() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var keys []string
	walkInOrder(t.root, func(n *bstNode) { keys = append(keys, n.key) })
	return keys
}

func (t *BST) Submit(ctx context.Context, op domain.Operation) error {
	switch op.Kind {
	case domain.OpInsert:
		return t.player.Run(ctx, func() ([]domain.Frame, error) {
			return t.insert(splitValues(op.Value)), nil
		})
	case domain.OpFind:
		return t.player.Run(ctx, func() ([]domain.Frame, error) {
			return t.find(op.Value), nil
		})
	case domain.OpDelete:
		return t.player.Run(ctx, func() ([]domain.Frame, error) {
			return t.delete(op.Value), nil
		})
	case domain.OpPrint:
		return t.player.Run(ctx, func() ([]domain.Frame, error) {
			return t.print(), nil
		})
	}
	return fmt.Errorf("%w: %s on %s", domain.ErrUnsupportedOperation, op.Kind, t.name)
}

func (t *BST) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.root = nil
	t.size = 0
	t.mu.Unlock()
	t.player.Show(ctx, t.frame("Empty tree", nil))
	return nil
}

func (t *BST) insert(values []string) []domain.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	var frames []domain.Frame
	for _, v := range values {
		if t.root == nil {
			t.root = &bstNode{key: v}
			t.size++
			frames = append(frames, t.frameLocked("Insert "+v+" as root", t.root))
			continue
		}
		n := t.root
		for {
			c := Compare(v, n.key)
			if c < 0 {
				frames = append(frames, t.frameLocked(fmt.Sprintf("%s < %s: go left", v, n.key), n))
				if n.left == nil {
					n.left = &bstNode{key: v}
					n = n.left
					break
				}
				n = n.left
				continue
			}
			frames = append(frames, t.frameLocked(fmt.Sprintf("%s >= %s: go right", v, n.key), n))
			if n.right == nil {
				n.right = &bstNode{key: v}
				n = n.right
				break
			}
			n = n.right
		}
		t.size++
		frames = append(frames, t.frameLocked("Inserted "+v, n))
	}
	return frames
}

func (t *BST) find(v string) []domain.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	var frames []domain.Frame
	for n := t.root; n != nil; {
		c := Compare(v, n.key)
		if c == 0 {
			return append(frames, t.frameLocked("Found "+v, n))
		}
		frames = append(frames, t.frameLocked(fmt.Sprintf("Compare %s with %s", v, n.key), n))
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return append(frames, t.frameLocked(v+" not found", nil))
}

func (t *BST) delete(v string) []domain.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	var frames []domain.Frame
	var parent *bstNode
	n := t.root
	for n != nil {
		c := Compare(v, n.key)
		if c == 0 {
			break
		}
		frames = append(frames, t.frameLocked(fmt.Sprintf("Compare %s with %s", v, n.key), n))
		parent = n
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return append(frames, t.frameLocked(v+" not found", nil))
	}
	frames = append(frames, t.frameLocked("Delete "+v, n))

	if n.left != nil && n.right != nil {
		succParent, succ := n, n.right
		for succ.left != nil {
			succParent, succ = succ, succ.left
		}
		frames = append(frames, t.frameLocked("Successor is "+succ.key, succ))
		n.key = succ.key
		parent, n = succParent, succ
	}

	child := n.left
	if child == nil {
		child = n.right
	}
	switch {
	case parent == nil:
		t.root = child
	case parent.left == n:
		parent.left = child
	default:
		parent.right = child
	}
	t.size--
	return append(frames, t.frameLocked("Deleted "+v, nil))
}

func (t *BST) print() []domain.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root == nil {
		return []domain.Frame{t.frameLocked("Tree is empty", nil)}
	}
	var frames []domain.Frame
	var printed []string
	walkInOrder(t.root, func(n *bstNode) {
		printed = append(printed, n.key)
		frames = append(frames, t.frameLocked("Print: "+strings.Join(printed, " "), n))
	})
	return frames
}

func walkInOrder(n *bstNode, visit func(*bstNode)) {
	if n == nil {
		return
	}
	walkInOrder(n.left, visit)
	visit(n)
	walkInOrder(n.right, visit)
}

func (t *BST) frame(caption string, highlight *bstNode) domain.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameLocked(caption, highlight)
}

// frameLocked renders the tree in level order. With null nodes shown, every
// missing child of a present node is rendered as NullMarker.
func (t *BST) frameLocked(caption string, highlight *bstNode) domain.Frame {
	f := domain.Frame{Caption: caption}
	if t.root == nil {
		return f
	}
	queue := []*bstNode{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			f.Items = append(f.Items, NullMarker)
			continue
		}
		if n == highlight {
			f.Highlight = []int{len(f.Items)}
		}
		f.Items = append(f.Items, n.key)
		for _, child := range []*bstNode{n.left, n.right} {
			if child != nil || t.showNulls {
				queue = append(queue, child)
			}
		}
	}
	return f
}
