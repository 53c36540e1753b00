package display

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phil-mansfield/gogalaxy/render"
)

// Window plays frames in a desktop window. Space pauses, the arrow keys step
// through frames, and Escape or Q closes the window.
type Window struct {
	Title string
}

type viewer struct {
	p             *player
	frames        []*render.Frame
	images        []*ebiten.Image
	width, height int
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.p.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.p.step(+1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.p.step(-1)
	default:
		v.p.tick()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	i := v.p.idx
	if v.images[i] == nil {
		v.images[i] = ebiten.NewImageFromImage(v.frames[i].Image)
	}
	screen.DrawImage(v.images[i], nil)
	ebitenutil.DebugPrintAt(screen, v.p.status(), 4, v.height-16)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// headless returns true if there's obviously no display server to open a
// window on.
func headless() bool {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// Show implements Display.
func (w *Window) Show(frames []*render.Frame, fps int) (err error) {
	if len(frames) == 0 {
		return fmt.Errorf("window: no frames to show")
	} else if headless() {
		return fmt.Errorf("window: no display server available")
	}

	// Some platforms panic instead of returning an error when the graphics
	// driver can't be initialized.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("window: %v", r)
		}
	}()

	b := frames[0].Image.Bounds()
	v := &viewer{
		p:      newPlayer(len(frames)),
		frames: frames,
		images: make([]*ebiten.Image, len(frames)),
		width:  b.Dx(), height: b.Dy(),
	}

	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetTPS(fps)
	if err = ebiten.RunGame(v); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
