//go:build linux && !tinygo

package hal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux input event types and codes used by the dial.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	relHWheel = 0x06
	relDial   = 0x07
	relWheel  = 0x08

	absX            = 0x00
	absY            = 0x01
	absMTSlot       = 0x2f
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39

	keyEnter = 28
	keySpace = 57
	btn0     = 0x100
	btnLeft  = 0x110
	btnTouch = 0x14a
)

// inputEventSize is sizeof(struct input_event) for this architecture.
var inputEventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

func getAbsInfo(fd int, code int) (absInfo, error) {
	var info absInfo
	req := ioc(iocRead, 'E', uint32(0x40+code), uint32(unsafe.Sizeof(info)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

func grabDevice(fd int) error {
	var one int32 = 1
	req := ioc(iocWrite, 'E', 0x90, uint32(unsafe.Sizeof(one)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&one)))
	if errno != 0 {
		return errno
	}
	return nil
}

// axis maps a device range onto 0..size-1.
type axis struct {
	min, max int32
	size     int
}

func (a axis) scale(v int32) int {
	if a.max <= a.min || a.size <= 1 {
		return int(v)
	}
	if v < a.min {
		v = a.min
	}
	if v > a.max {
		v = a.max
	}
	return int(int64(v-a.min) * int64(a.size-1) / int64(a.max-a.min))
}

// evdevDevice folds one device's event stream into hostInput at each SYN_REPORT.
type evdevDevice struct {
	f   *os.File
	src int
	in  *hostInput

	ax, ay axis

	slot       int32
	tracking   bool
	btnTouch   bool
	x, y       int32
	ticks      int
	button     bool
	dirtyTouch bool
}

func (d *evdevDevice) handle(etype, code uint16, value int32) {
	switch etype {
	case evRel:
		switch code {
		case relDial, relWheel, relHWheel:
			d.ticks += int(value)
		}
	case evAbs:
		switch code {
		case absMTSlot:
			d.slot = value
		case absMTTrackingID:
			if d.slot == 0 {
				d.tracking = value >= 0
				d.dirtyTouch = true
			}
		case absMTPositionX:
			if d.slot == 0 {
				d.x = value
				d.dirtyTouch = true
			}
		case absMTPositionY:
			if d.slot == 0 {
				d.y = value
				d.dirtyTouch = true
			}
		case absX:
			d.x = value
			d.dirtyTouch = true
		case absY:
			d.y = value
			d.dirtyTouch = true
		}
	case evKey:
		switch code {
		case btnTouch, btnLeft:
			d.btnTouch = value != 0
			d.dirtyTouch = true
		case keyEnter, keySpace, btn0:
			// value 2 is autorepeat; still down.
			d.button = value != 0
			d.in.setButton(d.src, d.button)
		}
	case evSyn:
		if code != synReport {
			return
		}
		if d.ticks != 0 {
			d.in.addTicks(d.ticks)
			d.ticks = 0
		}
		if d.dirtyTouch {
			p := image.Pt(d.ax.scale(d.x), d.ay.scale(d.y))
			d.in.setTouch(d.src, d.btnTouch || d.tracking, p)
			d.dirtyTouch = false
		}
	}
}

// parseInputEvents decodes whole input_event records of size sz from b and
// returns the number of bytes consumed.
func parseInputEvents(b []byte, sz int, cb func(etype, code uint16, value int32)) int {
	n := 0
	for len(b)-n >= sz {
		ev := b[n : n+sz]
		off := sz - 8
		cb(
			binary.LittleEndian.Uint16(ev[off:off+2]),
			binary.LittleEndian.Uint16(ev[off+2:off+4]),
			int32(binary.LittleEndian.Uint32(ev[off+4:off+8])),
		)
		n += sz
	}
	return n
}

func (d *evdevDevice) run() {
	buf := make([]byte, inputEventSize*64)
	var pending int
	for {
		n, err := d.f.Read(buf[pending:])
		if err != nil {
			d.in.setTouch(d.src, false, image.Point{})
			d.in.setButton(d.src, false)
			return
		}
		pending += n
		used := parseInputEvents(buf[:pending], inputEventSize, d.handle)
		pending = copy(buf, buf[used:pending])
	}
}

// evdevInput owns the opened devices and their reader goroutines.
type evdevInput struct {
	devs []*evdevDevice
	wg   sync.WaitGroup
}

// openEvdev opens each path and starts feeding it into in. Touch axes are
// scaled to width x height using the ranges reported by the kernel.
func openEvdev(in *hostInput, paths []string, width, height int, grab bool) (*evdevInput, error) {
	if len(paths) == 0 {
		return nil, errors.New("evdev: no devices")
	}
	if srcEvdev+len(paths) > 32 {
		return nil, fmt.Errorf("evdev: too many devices (%d)", len(paths))
	}
	e := &evdevInput{}
	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("evdev: open %s: %w", p, err)
		}
		fd := int(f.Fd())
		d := &evdevDevice{f: f, src: srcEvdev + i, in: in}
		d.ax = axis{size: width}
		d.ay = axis{size: height}
		if info, err := getAbsInfo(fd, absMTPositionX); err == nil && info.Max > info.Min {
			d.ax.min, d.ax.max = info.Min, info.Max
		} else if info, err := getAbsInfo(fd, absX); err == nil {
			d.ax.min, d.ax.max = info.Min, info.Max
		}
		if info, err := getAbsInfo(fd, absMTPositionY); err == nil && info.Max > info.Min {
			d.ay.min, d.ay.max = info.Min, info.Max
		} else if info, err := getAbsInfo(fd, absY); err == nil {
			d.ay.min, d.ay.max = info.Min, info.Max
		}
		if grab {
			if err := grabDevice(fd); err != nil {
				f.Close()
				e.Close()
				return nil, fmt.Errorf("evdev: grab %s: %w", p, err)
			}
		}
		e.devs = append(e.devs, d)
	}
	for _, d := range e.devs {
		e.wg.Add(1)
		go func(d *evdevDevice) {
			defer e.wg.Done()
			d.run()
		}(d)
	}
	return e, nil
}

// Close closes every device and waits for the readers to stop.
func (e *evdevInput) Close() error {
	var first error
	for _, d := range e.devs {
		if err := d.f.Close(); err != nil && first == nil {
			first = err
		}
	}
	e.wg.Wait()
	return first
}
