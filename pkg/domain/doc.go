/*
Package domain contains the core domain models shared by the visualization engine
coordination layer.

It defines the operations a user can submit through the toolbar, the DOM events the
toolbar reacts to, the animation frames visualizers emit, and the sentinel errors
used across the module. This package is kept pure and free of external dependencies
like I/O or rendering, following Hexagonal Architecture principles.

# Key Entities

  - OpKind / Operation: A toolbar request (insert, find, delete, print, sort, deleteMin).
  - Event: A DOM-like event (click, keypress, change) delivered to an element.
  - Frame: A single discrete step of an animation.
  - LifecycleHooks: Observability callbacks (engine load, submission, drop, reset).
*/
package domain
