//go:build linux && !tinygo

package hal

import (
	"fmt"
	"image"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	NonStd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	PixClock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HSyncLen, VSyncLen       uint32
	Sync, VMode, Rotate      uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

type fbFixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

func fbIoctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// fbdevOutput mirrors a MemDisplay onto a Linux framebuffer device, applying
// the display's brightness and inversion in software.
type fbdevOutput struct {
	f    *os.File
	mem  []byte
	disp *MemDisplay

	xres, yres int
	bpp        int
	lineLen    int
	red        fbBitfield
	green      fbBitfield
	blue       fbBitfield

	mu sync.Mutex
}

// openFbdev maps path and hooks it up as disp's presenter. The source frame is
// drawn at the top-left corner and cropped to the device resolution.
func openFbdev(path string, disp *MemDisplay) (*fbdevOutput, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("fbdev: open %s: %w", path, err)
	}
	fd := int(f.Fd())

	var vinfo fbVarScreenInfo
	if err := fbIoctl(fd, fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: FBIOGET_VSCREENINFO: %w", err)
	}
	var finfo fbFixScreenInfo
	if err := fbIoctl(fd, fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: FBIOGET_FSCREENINFO: %w", err)
	}
	if vinfo.BitsPerPixel != 16 && vinfo.BitsPerPixel != 32 {
		f.Close()
		return nil, fmt.Errorf("fbdev: unsupported depth %d bpp", vinfo.BitsPerPixel)
	}

	size := int(finfo.LineLength) * int(vinfo.YResVirtual)
	if size <= 0 {
		size = int(finfo.SMemLen)
	}
	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: mmap: %w", err)
	}

	o := &fbdevOutput{
		f:       f,
		mem:     mem,
		disp:    disp,
		xres:    int(vinfo.XRes),
		yres:    int(vinfo.YRes),
		bpp:     int(vinfo.BitsPerPixel),
		lineLen: int(finfo.LineLength),
		red:     vinfo.Red,
		green:   vinfo.Green,
		blue:    vinfo.Blue,
	}

	fb := disp.Mem()
	fb.present = func(buf []byte) error {
		o.blit(buf, fb.stride, image.Rect(0, 0, fb.width, fb.height))
		return nil
	}
	fb.presentRegion = func(buf []byte, r image.Rectangle) error {
		o.blit(buf, fb.stride, r)
		return nil
	}
	disp.mu.Lock()
	disp.onBrightness = func(uint8) { _ = fb.Present() }
	disp.onInvert = func(bool) { _ = fb.Present() }
	disp.mu.Unlock()
	return o, nil
}

func (o *fbdevOutput) blit(src []byte, stride int, r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, o.xres, o.yres))
	if r.Empty() {
		return
	}
	level := o.disp.Brightness()
	invert := o.disp.Inverted()

	o.mu.Lock()
	defer o.mu.Unlock()
	direct16 := o.bpp == 16 && level == 255 && !invert && o.red.Offset == 11 && o.blue.Offset == 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		srow := src[y*stride:]
		drow := o.mem[y*o.lineLen:]
		if direct16 {
			copy(drow[r.Min.X*2:r.Max.X*2], srow[r.Min.X*2:r.Max.X*2])
			continue
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			p := uint16(srow[x*2]) | uint16(srow[x*2+1])<<8
			cr, cg, cb := panelRGB(p, level, invert)
			if o.bpp == 16 {
				v := rgb565(cr, cg, cb)
				drow[x*2] = byte(v)
				drow[x*2+1] = byte(v >> 8)
				continue
			}
			v := o.pack32(cr, cg, cb)
			drow[x*4+0] = byte(v)
			drow[x*4+1] = byte(v >> 8)
			drow[x*4+2] = byte(v >> 16)
			drow[x*4+3] = byte(v >> 24)
		}
	}
}

func (o *fbdevOutput) pack32(r, g, b uint8) uint32 {
	return uint32(r)<<o.red.Offset | uint32(g)<<o.green.Offset | uint32(b)<<o.blue.Offset
}

// Close unhooks the display and unmaps the device.
func (o *fbdevOutput) Close() error {
	fb := o.disp.Mem()
	fb.mu.Lock()
	fb.present = nil
	fb.presentRegion = nil
	fb.mu.Unlock()
	o.disp.mu.Lock()
	o.disp.onBrightness = nil
	o.disp.onInvert = nil
	o.disp.mu.Unlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	err := unix.Munmap(o.mem)
	if cerr := o.f.Close(); err == nil {
		err = cerr
	}
	return err
}
