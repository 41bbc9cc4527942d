//go:build !tinygo && cgo

package hal

import (
	"image"

	"dial/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host HostConfig
	// Scale multiplies the window size.
	Scale int
	// WheelTicks is the number of raw encoder ticks per mouse wheel notch,
	// emulating an encoder that reports several ticks per detent.
	WheelTicks int
	// Round masks the corners like a round panel.
	Round bool
}

// RunWindow starts a desktop window that displays the framebuffer and maps the
// mouse to touch, the wheel and arrow keys to the encoder, and space/enter or
// the right mouse button to the button. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.WheelTicks <= 0 {
		cfg.WheelTicks = 4
	}
	cfg.Host.Audio = true
	h := newHost(cfg.Host)
	step := newApp(h)

	g := &hostGame{h: h, step: step, cfg: cfg}
	fb := h.disp.Mem()
	ebiten.SetWindowTitle("Dial (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(fb.Width()*cfg.Scale, fb.Height()*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	cfg     WindowConfig
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error

	wheel float64
}

func (g *hostGame) Update() error {
	g.pollInput()
	g.h.Sample()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollInput() {
	in := g.h.in

	x, y := ebiten.CursorPosition()
	in.setTouch(srcWindow, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), image.Pt(x, y))

	_, dy := ebiten.Wheel()
	g.wheel += dy
	for g.wheel >= 1 {
		in.addTicks(g.cfg.WheelTicks)
		g.wheel--
	}
	for g.wheel <= -1 {
		in.addTicks(-g.cfg.WheelTicks)
		g.wheel++
	}

	// Arrow keys emit single raw ticks to exercise sub-detent accumulation.
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		in.addTicks(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		in.addTicks(-1)
	}

	in.setButton(srcWindow, ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyEnter) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.disp.Mem()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width() || g.fbImg.Bounds().Dy() != fb.Height() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width(), fb.Height())
	}

	g.img, g.scratch = g.h.disp.RGBA(g.img, g.scratch, g.cfg.Round)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.h.disp.Mem()
	return fb.Width(), fb.Height()
}
