package game

import "context"

// InputSource supplies player inputs. Next blocks until an input arrives or
// ctx is done.
type InputSource interface {
	Next(ctx context.Context) (Input, error)
}

// Renderer draws the board after every processed action.
type Renderer interface {
	Render(View) error
}

// QuitConfirmer asks the player whether a quit request is meant.
type QuitConfirmer interface {
	ConfirmQuit(ctx context.Context) (bool, error)
}
