package display

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phil-mansfield/gogalaxy/render"
)

// Terminal plays frames in a terminal using half-block glyphs, so each cell
// shows two vertically stacked pixels. Space pauses, the arrow keys step
// through frames, and Escape or Q quits.
type Terminal struct {
	// Screen is the screen to draw on. A new terminal screen is opened if
	// it's nil.
	Screen tcell.Screen
	// Loops is the number of times the animation plays before Show returns.
	// Zero means it plays until the user quits.
	Loops int
}

const halfBlock = '▀'

// Show implements Display.
func (term *Terminal) Show(frames []*render.Frame, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("terminal: no frames to show")
	} else if fps <= 0 {
		return fmt.Errorf("terminal: fps must be positive, not %d", fps)
	}

	s := term.Screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer s.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	p := newPlayer(len(frames))
	drawCells(s, frames[p.idx].Image, p.status())
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					p.togglePause()
				case ev.Key() == tcell.KeyRight:
					p.step(+1)
				case ev.Key() == tcell.KeyLeft:
					p.step(-1)
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case <-ticker.C:
			p.tick()
			if term.Loops > 0 && p.plays >= term.Loops {
				return nil
			}
		}
		drawCells(s, frames[p.idx].Image, p.status())
	}
}

// drawCells draws img over all but the last row of the screen and writes
// msg on the last row.
func drawCells(s tcell.Screen, img image.Image, msg string) {
	w, h := s.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		return
	}

	top, bot := cellColors(img, w, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			style := tcell.StyleDefault.
				Foreground(toTcell(top[i])).
				Background(toTcell(bot[i]))
			s.SetContent(x, y, halfBlock, nil, style)
		}
	}

	for x := 0; x < w; x++ {
		r := ' '
		if x < len(msg) {
			r = rune(msg[x])
		}
		s.SetContent(x, rows, r, nil, tcell.StyleDefault)
	}
	s.Show()
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellColors box-filters img down to cols x (2*rows) pixels and returns the
// colours of the upper and lower half of each cell in row-major order.
func cellColors(img image.Image, cols, rows int) (top, bot []color.RGBA) {
	top = make([]color.RGBA, cols*rows)
	bot = make([]color.RGBA, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top[x+y*cols] = boxAverage(img, x, 2*y, cols, 2*rows)
			bot[x+y*cols] = boxAverage(img, x, 2*y+1, cols, 2*rows)
		}
	}
	return top, bot
}

// boxAverage returns the mean colour of the pixels of img which fall into
// cell (cx, cy) of an nx x ny grid laid over it. Cells smaller than one pixel
// take the colour of the pixel they fall into.
func boxAverage(img image.Image, cx, cy, nx, ny int) color.RGBA {
	b := img.Bounds()
	x0 := b.Min.X + cx*b.Dx()/nx
	x1 := b.Min.X + (cx+1)*b.Dx()/nx
	y0 := b.Min.Y + cy*b.Dy()/ny
	y1 := b.Min.Y + (cy+1)*b.Dy()/ny
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	var sr, sg, sb, n uint64
	for y := y0; y < y1 && y < b.Max.Y; y++ {
		for x := x0; x < x1 && x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			sr, sg, sb = sr+uint64(r>>8), sg+uint64(g>>8), sb+uint64(bl>>8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), 255}
}
