/*package display shows rendered animations interactively, either in a window
or in a terminal. Both are optional: callers are expected to treat any error
from Show as a reason to fall back on the encoded file.
*/
package display

import (
	"fmt"

	"github.com/phil-mansfield/gogalaxy/render"
)

// Display plays frames in a loop until the user quits.
type Display interface {
	Show(frames []*render.Frame, fps int) error
}

// New returns the Display with the given name, which must be one of
// "window", "terminal", or "none". nil is returned for "none".
func New(kind, title string) (Display, error) {
	switch kind {
	case "window":
		return &Window{Title: title}, nil
	case "terminal":
		return &Terminal{}, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("Unrecognized display '%s'.", kind)
}

// player tracks which frame is being shown. It knows nothing about how
// frames are drawn.
type player struct {
	n, idx int
	paused bool
	// Number of times the animation has played through.
	plays int
}

func newPlayer(n int) *player { return &player{n: n} }

// tick advances to the next frame unless paused.
func (p *player) tick() {
	if p.paused {
		return
	}
	p.idx++
	if p.idx == p.n {
		p.idx = 0
		p.plays++
	}
}

// step moves d frames forwards (or backwards for negative d) and pauses.
func (p *player) step(d int) {
	p.paused = true
	p.idx = ((p.idx+d)%p.n + p.n) % p.n
}

func (p *player) togglePause() { p.paused = !p.paused }

func (p *player) status() string {
	state := ""
	if p.paused {
		state = " (paused)"
	}
	return fmt.Sprintf("frame %d/%d%s", p.idx+1, p.n, state)
}
