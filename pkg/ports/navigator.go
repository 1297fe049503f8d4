package ports

import "net/url"

// Navigator abstracts the browser location and history.
type Navigator interface {
	// Query returns the current query string parameters.
	Query() url.Values

	// Replace rewrites the visible URL without pushing a history entry
	// and without reloading the page.
	Replace(query url.Values)

	// Reload navigates to the same page with the given query, restarting the visualization.
	Reload(query url.Values)
}
