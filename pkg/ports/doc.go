/*
Package ports defines the driven ports (interfaces) of the coordination layer.

These interfaces decouple the core logic from the browser-like environment it runs
in, allowing the same registry, loader and toolbar code to drive an in-memory
document in tests or a server-rendered page over HTTP.

# Key Interfaces

  - Document / Container / Element: The DOM subset the toolbar binds to.
  - Navigator: History replacement and full-page reloads.
  - CookieSource: The flat document cookie string.
  - Visualizer: A concrete algorithm engine (plus optional capability interfaces).
  - FrameSink: Destination of animation frames.
  - PageStore: Persistence of page records for listing and expiry.
*/
package ports
