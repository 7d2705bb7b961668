// Package display owns the frame loop and the renderer boundary.
//
// The Engine polls the JSON documents every two seconds, asks the board
// composer for a layout plan each frame, and hands the plan to a Renderer.
// Two renderers ship with the module: an image.RGBA framebuffer and an ANSI
// terminal preview. A real panel driver lives outside the module and only
// needs to implement Renderer.
package display
