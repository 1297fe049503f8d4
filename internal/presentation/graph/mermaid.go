package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/algoviz/pkg/algorithms"
	"github.com/aretw0/algoviz/pkg/domain"
)

// Layout selects how the items of a frame are connected.
type Layout int

const (
	// LayoutArray draws items left to right.
	LayoutArray Layout = iota
	// LayoutHeap treats items as an implicit binary tree (children of i at 2i+1, 2i+2).
	LayoutHeap
	// LayoutSearchTree rebuilds a binary search tree from its level order.
	LayoutSearchTree
)

// LayoutFor returns the layout matching a registered algorithm.
func LayoutFor(algorithm string) Layout {
	switch algorithm {
	case algorithms.NameBST:
		return LayoutSearchTree
	case algorithms.NameBinaryHeap:
		return LayoutHeap
	}
	return LayoutArray
}

// GenerateMermaid produces a Mermaid flowchart for one animation frame.
// Highlighted items get the "current" class; null markers are drawn as
// small circles.
func GenerateMermaid(frame domain.Frame, layout Layout) string {
	var sb strings.Builder
	if layout == LayoutArray {
		sb.WriteString("graph LR\n")
	} else {
		sb.WriteString("graph TD\n")
	}
	if frame.Caption != "" {
		sb.WriteString(fmt.Sprintf("    %%%% %s\n", frame.Caption))
	}

	for i, item := range frame.Items {
		if item == algorithms.NullMarker {
			sb.WriteString(fmt.Sprintf("    %s((\" \"))\n", nodeID(i)))
			continue
		}
		// Escape double quotes for Mermaid labels
		label := strings.ReplaceAll(item, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeID(i), label))
	}

	for _, e := range edges(frame.Items, layout) {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeID(e[0]), nodeID(e[1])))
	}

	if len(frame.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, i := range frame.Highlight {
			if i >= 0 && i < len(frame.Items) {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(i)))
			}
		}
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("n%d", i)
}

// edges returns parent/child index pairs.
func edges(items []string, layout Layout) [][2]int {
	var out [][2]int
	switch layout {
	case LayoutArray:
		for i := 1; i < len(items); i++ {
			out = append(out, [2]int{i - 1, i})
		}
	case LayoutHeap:
		for i := 1; i < len(items); i++ {
			out = append(out, [2]int{(i - 1) / 2, i})
		}
	case LayoutSearchTree:
		if containsNull(items) {
			return levelOrderEdges(items)
		}
		return insertionEdges(items)
	}
	return out
}

func containsNull(items []string) bool {
	for _, item := range items {
		if item == algorithms.NullMarker {
			return true
		}
	}
	return false
}

// levelOrderEdges links a level order listing in which every present node
// lists both children, null or not.
func levelOrderEdges(items []string) [][2]int {
	var out [][2]int
	next := 1
	for i := 0; i < len(items) && next < len(items); i++ {
		if items[i] == algorithms.NullMarker {
			continue
		}
		for c := 0; c < 2 && next < len(items); c++ {
			out = append(out, [2]int{i, next})
			next++
		}
	}
	return out
}

// insertionEdges re-inserts a level order listing into an empty search tree.
// Level order preserves the shape, so the resulting edges match the original.
func insertionEdges(items []string) [][2]int {
	type node struct{ left, right int }
	if len(items) == 0 {
		return nil
	}
	nodes := make([]node, len(items))
	for i := range nodes {
		nodes[i] = node{-1, -1}
	}

	var out [][2]int
	for i := 1; i < len(items); i++ {
		at := 0
		for {
			child := &nodes[at].right
			if algorithms.Compare(items[i], items[at]) < 0 {
				child = &nodes[at].left
			}
			if *child < 0 {
				*child = i
				out = append(out, [2]int{at, i})
				break
			}
			at = *child
		}
	}
	return out
}
