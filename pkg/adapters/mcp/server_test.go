package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
)

func newTestServer() *Server {
	return NewServer(algoviz.NewRegistry(logging.NewNop()))
}

func TestListAlgorithms(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleList(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)

	var names []string
	for _, a := range resp.Algorithms {
		names = append(names, a.Name)
		assert.Empty(t, a.PseudoCode)
	}
	assert.Equal(t, []string{"BST", "BinaryHeap", "Sort.Insertion", "Sort.Selection"}, names)
}

func TestDescribeAlgorithm(t *testing.T) {
	s := newTestServer()

	info, err := s.handleDescribe(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "BinaryHeap"})
	require.NoError(t, err)
	assert.Equal(t, "Binary Heap", info.Title)
	assert.NotEmpty(t, info.PseudoCode)

	_, err = s.handleDescribe(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "__proto__"})
	assert.ErrorContains(t, err, "unknown algorithm")
}

func TestParseOperations(t *testing.T) {
	ops, err := ParseOperations("insert 5; insert 3, 8 ;find 3;; print; clear")
	require.NoError(t, err)
	assert.Equal(t, []domain.Operation{
		{Kind: domain.OpInsert, Value: "5"},
		{Kind: domain.OpInsert, Value: "3, 8"},
		{Kind: domain.OpFind, Value: "3"},
		{Kind: domain.OpPrint},
		{Kind: domain.OpClear},
	}, ops)

	_, err = ParseOperations("jump 4")
	assert.ErrorContains(t, err, "unknown operation")

	_, err = ParseOperations(" ; ")
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"algorithm":  "BST",
		"operations": "insert 5; insert 3; find 3; find x!; deleteMin",
	})
	require.NoError(t, err)
	assert.Equal(t, "BST", resp.Algorithm)
	require.NotEmpty(t, resp.Frames)
	for _, f := range resp.Frames {
		assert.Equal(t, "BST", f.Algorithm)
	}
	assert.Equal(t, []string{"find: invalid_input", "deleteMin: unsupported"}, resp.Dropped)
}

func TestSimulate_UnknownAlgorithm(t *testing.T) {
	s := newTestServer()

	_, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"algorithm":  "Nope",
		"operations": "print",
	})
	assert.ErrorContains(t, err, "unknown algorithm")
}

func TestInstant_KeepsOtherOptions(t *testing.T) {
	opts := map[string]map[string]any{
		"BST":        {"step_delay": "1s", "show_null_nodes": true},
		"BinaryHeap": {"step_delay": 10},
	}
	out := instant(opts, "BST")

	assert.Equal(t, map[string]any{"step_delay": 0, "show_null_nodes": true}, out["BST"])
	assert.Equal(t, opts["BinaryHeap"], out["BinaryHeap"])
	assert.Equal(t, "1s", opts["BST"]["step_delay"])
}
