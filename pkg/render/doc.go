// Package render turns placed words into visual artifacts.
//
// Two renderers are bundled: SVG (text elements with CSS transitions and
// optional tooltip titles) and PNG (rasterized through a 2D canvas with a
// system font). Both are fire-and-forget from the orchestrator's point of
// view: they consume a finished placement and never feed back into the
// layout loop.
package render
