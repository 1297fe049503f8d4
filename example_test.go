package algoviz_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/algorithms"
	"github.com/aretw0/algoviz/pkg/domain"
)

// ExampleOpen loads a binary search tree from the query string and drives it
// through the toolbar controls.
func ExampleOpen() {
	ctx := context.Background()
	container := dom.NewStandardContainer("viz")
	location := dom.NewLocation("/", "algorithm=BST&debug=")

	page, err := algoviz.Open(ctx, dom.NewDocument(container), location, "viz",
		algoviz.WithAlgorithmOptions(map[string]map[string]any{
			algorithms.NameBST: {"step_delay": 0},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer page.Close()

	container.Element(domain.ClassInsertField).Type(ctx, "5,3,8")
	container.Element(domain.ClassInsertSubmit).Click(ctx)

	fmt.Println("Algorithm:", page.Algorithm())
	fmt.Println("URL:", location.URL())
	fmt.Println("Keys:", page.Engine.Visualizer.(*algorithms.BST).InOrder())
	// Output:
	// Algorithm: BST
	// URL: /?algorithm=BST&debug=
	// Keys: [3 5 8]
}

// ExampleOpen_fallback shows an unknown algorithm being replaced by the idle engine.
func ExampleOpen_fallback() {
	ctx := context.Background()
	location := dom.NewLocation("/", "algorithm=__proto__")

	page, err := algoviz.Open(ctx, dom.NewDocument(dom.NewStandardContainer("viz")), location, "viz")
	if err != nil {
		log.Fatal(err)
	}
	defer page.Close()

	fmt.Println("Algorithm:", page.Algorithm())
	fmt.Println("URL:", location.URL())
	// Output:
	// Algorithm: idle
	// URL: /
}
