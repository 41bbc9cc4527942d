//go:build tinygo && !baremetal

package hal

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	disp   *MemDisplay
	clock  Clock
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the display is memory only and no input is ever reported.
func New(_ uint32) HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		disp:   NewMemDisplay(240, 240),
		clock:  newWallClock(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return h.disp }
func (h *tinyGoHostHAL) Encoder() Encoder { return nullEncoder{} }
func (h *tinyGoHostHAL) Touch() Touch     { return nullTouch{} }
func (h *tinyGoHostHAL) Button() Button   { return nullButton{} }
func (h *tinyGoHostHAL) Speaker() Speaker { return nullSpeaker{} }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
