/*
Package algoviz coordinates interchangeable algorithm visualizers on a page.

A page is a container of controls addressed by class (".insertField",
".algorithmSelector", ...). Open resolves the algorithm named in the page
query, falls back to an idle engine when the name is absent, malformed or
unknown, and binds the generic toolbar to whichever visualizer was loaded.

# Run state

Every page owns a runstate.State. Visualizers mutate their structure inside
RunWhileAnimating and the clear button runs inside RunWhileResetting, so an
operation can never overlap an animation or a reset. Submissions that arrive
while the page is busy are dropped, and the toolbar buttons are disabled for
the duration.

# Usage

The DOM is abstracted by ports.Document and the address bar by
ports.Navigator. The dom adapter provides in-memory versions:

	container := dom.NewStandardContainer("viz")
	location := dom.NewLocation("/", "algorithm=BST&debug=1")

	page, err := algoviz.Open(ctx, dom.NewDocument(container), location, "viz")
	if err != nil {
		log.Fatal(err)
	}
	defer page.Close()

	container.Element(domain.ClassInsertField).Type(ctx, "5,3,8")
	container.Element(domain.ClassInsertSubmit).Click(ctx)

Changing ".algorithmSelector" reloads the page through the Navigator with the
new algorithm, keeping the debug flag.

The HTTP adapter (pkg/adapters/http) serves the same pages to a browser.
*/
package algoviz
