package display

import "github.com/FlyingObject1024/information-board/board"

// Renderer pushes one layout plan to an output device. The engine calls
// Render once per frame from a single goroutine and Close once on shutdown.
//
// Hardware panel drivers implement this interface outside the module; the
// in-tree implementations are a framebuffer (for snapshots and tests) and an
// ANSI terminal preview.
type Renderer interface {
	Render(p *board.Plan) error
	Close() error
}
