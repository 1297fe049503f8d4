package algorithms

import "github.com/aretw0/algoviz/pkg/registry"

// Registered algorithm names.
const (
	NameBST           = "BST"
	NameBinaryHeap    = "BinaryHeap"
	NameInsertionSort = "Sort.Insertion"
	NameSelectionSort = "Sort.Selection"
)

// Descriptors returns the visualizers shipped with algoviz.
func Descriptors() []registry.Descriptor {
	return []registry.Descriptor{
		{
			Name:       NameBST,
			Title:      "Binary Search Tree",
			Summary:    "Insert, find, delete and print keys of an unbalanced binary search tree.",
			PseudoCode: bstCode,
			Factory:    NewBST,
		},
		{
			Name:       NameBinaryHeap,
			Title:      "Binary Heap",
			Summary:    "Min priority queue stored in an array: insert and remove the minimum.",
			PseudoCode: heapCode,
			Factory:    NewBinaryHeap,
		},
		{
			Name:       NameInsertionSort,
			Title:      "Insertion Sort",
			Summary:    "Grow a sorted prefix by sinking each new item into place.",
			PseudoCode: insertionCode,
			Factory:    NewInsertionSort,
		},
		{
			Name:       NameSelectionSort,
			Title:      "Selection Sort",
			Summary:    "Repeatedly move the smallest remaining item to the front.",
			PseudoCode: selectionCode,
			Factory:    NewSelectionSort,
		},
	}
}

// RegisterAll adds every shipped visualizer to reg.
func RegisterAll(reg *registry.Registry) error {
	for _, d := range Descriptors() {
		if err := reg.RegisterDescriptor(d); err != nil {
			return err
		}
	}
	return nil
}
