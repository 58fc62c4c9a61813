package epaper

import (
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/epaper/pixel"
)

const (
	jd79668DefaultWidth  = 400
	jd79668DefaultHeight = 300
)

const (
	jd79668PanelSetting          = 0x00
	jd79668PowerOff              = 0x02
	jd79668PowerOn               = 0x04
	jd79668BoosterSoftStart      = 0x06
	jd79668DeepSleep             = 0x07
	jd79668DataStartTransmission = 0x10
	jd79668DisplayRefresh        = 0x12
	jd79668PLLControl            = 0x30
	jd79668VCOMDataInterval      = 0x50
	jd79668Resolution            = 0x61
)

const jd79668DeepSleepCheck = 0xA5

// Resolution register (TRES) payload, the panel is 400x300 whatever the
// configured image size.
const (
	jd79668XAddrStartH = 0x01
	jd79668XAddrStartL = 0x90
	jd79668YAddrStartH = 0x01
	jd79668YAddrStartL = 0x2C
)

const (
	jd79668ResetDelay       = 100 * time.Millisecond
	jd79668ResetTimeout     = time.Second
	jd79668RefreshTimeout   = 40 * time.Second
	jd79668BusyPollInterval = 10 * time.Millisecond
)

// JD79668 is a driver for the JD79668 4-color (black, white, yellow, red) e-paper controller, as
// found on the Pimoroni Inky wHAT.
type JD79668 struct {
	c     Conn
	size  image.Point
	state State
}

// New JD79668 driver on an open connection. The controller is not touched
// until [JD79668.Initialize].
func New(c Conn, width, height int) *JD79668 {
	if width == 0 {
		width = jd79668DefaultWidth
	}
	if height == 0 {
		height = jd79668DefaultHeight
	}
	return &JD79668{
		c:    c,
		size: image.Pt(width, height),
	}
}

// Open the SPI connection described by config and return a driver for it.
func Open(config *Config) (*JD79668, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	c, err := OpenSPI(&config.SPI)
	if err != nil {
		return nil, err
	}
	return New(c, config.Width, config.Height), nil
}

func (d *JD79668) String() string {
	return fmt.Sprintf("JD79668 %dx%d", d.size.X, d.size.Y)
}

// Close the connection. GPIO lines keep their last level.
func (d *JD79668) Close() error {
	return d.c.Close()
}

func (d *JD79668) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.size}
}

func (d *JD79668) ColorMap() pixel.ColorMap {
	return pixel.FourColor
}

func (d *JD79668) State() State {
	return d.state
}

// HardwareReset pulses the reset line.
func (d *JD79668) HardwareReset() (err error) {
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	sleep(jd79668ResetDelay)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	sleep(jd79668ResetDelay)
	return
}

// Initialize resets the controller and sends the panel configuration. The
// driver is only usable for [JD79668.Show] if this succeeds.
func (d *JD79668) Initialize() (err error) {
	d.state = Uninitialized

	if err = d.HardwareReset(); err != nil {
		return
	}
	if err = d.busyWait(jd79668ResetTimeout); err != nil {
		return
	}

	if err = d.commands(
		[]byte{0x4D, 0x78},
		[]byte{jd79668PanelSetting, 0x0F, 0x29},
		[]byte{jd79668BoosterSoftStart, 0x0D, 0x12, 0x24, 0x25, 0x12, 0x29, 0x10},
		[]byte{jd79668PLLControl, 0x08},
		[]byte{jd79668VCOMDataInterval, 0x37},
		[]byte{jd79668Resolution, jd79668XAddrStartH, jd79668XAddrStartL, jd79668YAddrStartH, jd79668YAddrStartL},
		[]byte{0xAE, 0xCF},
		[]byte{0xB0, 0x13},
		[]byte{0xBD, 0x07},
		[]byte{0xBE, 0xFE},
		[]byte{0xE9, 0x01},
	); err != nil {
		return
	}

	d.state = Initialized
	logf("%s initialized", d)
	return
}

// Show sends the image to the display RAM, then powers on, refreshes,
// powers off and puts the controller into deep sleep.
func (d *JD79668) Show(img *pixel.Indexed) (err error) {
	if d.state != Initialized {
		return ErrUninitialized
	}
	if img == nil {
		return ErrNoImage
	}
	if err = pixel.CheckResolution(d.size, img.Bounds().Size()); err != nil {
		return
	}

	var packed []byte
	if packed, err = pixel.PackImage(img); err != nil {
		return
	}

	logf("%s sending %d bytes", d, len(packed))
	if err = d.c.Command(jd79668DataStartTransmission, packed...); err != nil {
		return
	}
	if err = d.commandWait(jd79668PowerOn, jd79668RefreshTimeout); err != nil {
		return
	}
	if err = d.commandWait(jd79668DisplayRefresh, jd79668RefreshTimeout, 0x00); err != nil {
		return
	}
	if err = d.commandWait(jd79668PowerOff, jd79668RefreshTimeout, 0x00); err != nil {
		return
	}
	return d.commandWait(jd79668DeepSleep, jd79668RefreshTimeout, jd79668DeepSleepCheck)
}

func (d *JD79668) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *JD79668) commandWait(command byte, timeout time.Duration, data ...byte) error {
	if err := d.c.Command(command, data...); err != nil {
		return err
	}
	return d.busyWait(timeout)
}

// busyWait polls the busy line until the controller is ready. It returns
// immediately if it already is.
func (d *JD79668) busyWait(timeout time.Duration) error {
	start := now()
	for {
		busy, err := d.c.Busy()
		if err != nil {
			return err
		}
		if !busy {
			return nil
		}
		if elapsed := now().Sub(start); elapsed >= timeout {
			logf("%s busy for %s", d, elapsed)
			return &BusyTimeoutError{Timeout: timeout}
		}
		sleep(jd79668BusyPollInterval)
	}
}

// Interface checks.
var _ Display = (*JD79668)(nil)
