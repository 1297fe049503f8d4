package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/algoviz/internal/presentation/graph"
	"github.com/aretw0/algoviz/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		frame    domain.Frame
		layout   graph.Layout
		contains []string
		excludes []string
	}{
		{
			name:   "Array Chain",
			frame:  domain.Frame{Items: []string{"4", "1", "9"}},
			layout: graph.LayoutArray,
			contains: []string{
				"graph LR",
				"n0[\"4\"]",
				"n0 --> n1",
				"n1 --> n2",
			},
			excludes: []string{"classDef"},
		},
		{
			name:   "Heap Children",
			frame:  domain.Frame{Items: []string{"1", "3", "2", "7"}},
			layout: graph.LayoutHeap,
			contains: []string{
				"graph TD",
				"n0 --> n1",
				"n0 --> n2",
				"n1 --> n3",
			},
		},
		{
			name:   "Search Tree Rebuilt From Level Order",
			frame:  domain.Frame{Items: []string{"5", "3", "8", "4", "9"}},
			layout: graph.LayoutSearchTree,
			contains: []string{
				"n0 --> n1",
				"n0 --> n2",
				"n1 --> n3",
				"n2 --> n4",
			},
			excludes: []string{"n1 --> n4"},
		},
		{
			name:   "Search Tree With Null Markers",
			frame:  domain.Frame{Items: []string{"5", "null", "8", "null", "null"}},
			layout: graph.LayoutSearchTree,
			contains: []string{
				"n1((\" \"))",
				"n0 --> n1",
				"n0 --> n2",
				"n2 --> n3",
				"n2 --> n4",
			},
		},
		{
			name:   "Highlight And Caption",
			frame:  domain.Frame{Caption: "Compare 3 with 5", Items: []string{"5", "3"}, Highlight: []int{1, 7}},
			layout: graph.LayoutSearchTree,
			contains: []string{
				"%% Compare 3 with 5",
				"class n1 current;",
			},
			excludes: []string{"class n7"},
		},
		{
			name:     "Label Escaping",
			frame:    domain.Frame{Items: []string{`a"b`}},
			layout:   graph.LayoutArray,
			contains: []string{"n0[\"a'b\"]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := graph.GenerateMermaid(tt.frame, tt.layout)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.False(t, strings.Contains(output, s), "unexpected %q in:\n%s", s, output)
			}
		})
	}
}

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, graph.LayoutSearchTree, graph.LayoutFor("BST"))
	assert.Equal(t, graph.LayoutHeap, graph.LayoutFor("BinaryHeap"))
	assert.Equal(t, graph.LayoutArray, graph.LayoutFor("Sort.Insertion"))
	assert.Equal(t, graph.LayoutArray, graph.LayoutFor("unknown"))
}
