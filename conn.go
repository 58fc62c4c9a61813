package epaper

import (
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/epaper/conn"
)

// Conn errors.
var (
	ErrChipSelectPin = errors.New("epaper: chip select (CS) GPIO pin is invalid")
	ErrDCPin         = errors.New("epaper: data/command (DC) GPIO pin is invalid")
	ErrResetPin      = errors.New("epaper: reset GPIO pin is invalid")
	ErrBusyPin       = errors.New("epaper: busy GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Busy reports if the controller is busy.
	Busy() (bool, error)
}

// SPIConfig describes the SPI bus and the GPIO lines around it.
type SPIConfig struct {
	// Path of the spidev device.
	Path string

	// SpeedHz is the SPI clock.
	SpeedHz uint32

	// BatchSize is the largest single transfer.
	BatchSize uint

	// Settle is the delay after switching the DC line, before the transfer.
	// Use a negative value to disable it.
	Settle time.Duration

	// GPIO line names.
	ChipSelect string
	DataCmd    string
	Reset      string
	Busy       string
}

// DefaultSPIConfig is the Inky wHAT pinout on a Raspberry Pi.
var DefaultSPIConfig = SPIConfig{
	Path:       "/dev/spidev0.0",
	SpeedHz:    1_000_000,
	BatchSize:  4096,
	Settle:     300 * time.Millisecond,
	ChipSelect: "GPIO8",
	DataCmd:    "GPIO22",
	Reset:      "GPIO27",
	Busy:       "GPIO17",
}

// withDefaults returns a copy of config with unset fields taken from
// [DefaultSPIConfig].
func (config *SPIConfig) withDefaults() *SPIConfig {
	c := *config
	if c.Path == "" {
		c.Path = DefaultSPIConfig.Path
	}
	if c.SpeedHz == 0 {
		c.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultSPIConfig.BatchSize
	}
	if c.Settle == 0 {
		c.Settle = DefaultSPIConfig.Settle
	}
	if c.ChipSelect == "" {
		c.ChipSelect = DefaultSPIConfig.ChipSelect
	}
	if c.DataCmd == "" {
		c.DataCmd = DefaultSPIConfig.DataCmd
	}
	if c.Reset == "" {
		c.Reset = DefaultSPIConfig.Reset
	}
	if c.Busy == "" {
		c.Busy = DefaultSPIConfig.Busy
	}
	return &c
}

type spiBus interface {
	io.WriteCloser
	String() string
}

type spiConn struct {
	bus       spiBus
	cs        gpio.PinOut
	dc        gpio.PinOut
	reset     gpio.PinOut
	busy      gpio.PinIn
	batchSize int
	settle    time.Duration
}

// OpenSPI opens the SPI bus and claims the GPIO lines. The chip select line
// is driven as a GPIO, the kernel chip select is disabled.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = &DefaultSPIConfig
	}
	config = config.withDefaults()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("epaper: host init failed: %w", err)
	}

	cs := gpioreg.ByName(config.ChipSelect)
	if cs == nil {
		return nil, fmt.Errorf("%w: %q", ErrChipSelectPin, config.ChipSelect)
	}
	dc := gpioreg.ByName(config.DataCmd)
	if dc == nil {
		return nil, fmt.Errorf("%w: %q", ErrDCPin, config.DataCmd)
	}
	reset := gpioreg.ByName(config.Reset)
	if reset == nil {
		return nil, fmt.Errorf("%w: %q", ErrResetPin, config.Reset)
	}
	busy := gpioreg.ByName(config.Busy)
	if busy == nil {
		return nil, fmt.Errorf("%w: %q", ErrBusyPin, config.Busy)
	}

	if err := busy.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("epaper: busy pin %s: %w", busy, err)
	}
	if err := cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("epaper: chip select pin %s: %w", cs, err)
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("epaper: data/command pin %s: %w", dc, err)
	}
	if err := reset.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("epaper: reset pin %s: %w", reset, err)
	}

	bus, err := conn.OpenSPI(config.Path)
	if err != nil {
		return nil, fmt.Errorf("epaper: open %s: %w", config.Path, err)
	}
	if err = bus.SetMode(conn.SPIMode0 | conn.SPINoCS); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("epaper: %s: %w", config.Path, err)
	}
	if err = bus.SetBitsPerWord(8); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("epaper: %s: %w", config.Path, err)
	}
	if err = bus.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("epaper: %s: %w", config.Path, err)
	}
	logf("opened %s: mode %#02x, %d bits per word, %d Hz", config.Path, uint8(bus.Mode()), bus.BitsPerWord(), bus.MaxSpeed())

	return &spiConn{
		bus:       bus,
		cs:        cs,
		dc:        dc,
		reset:     reset,
		busy:      busy,
		batchSize: int(config.BatchSize),
		settle:    config.Settle,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

// Busy reads the busy line, which the controller holds low while working.
func (c *spiConn) Busy() (bool, error) {
	return c.busy.Read() == gpio.Low, nil
}

// Command selects the chip, sends the command byte with DC low and the
// arguments with DC high, then releases the chip.
func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.cs.Out(gpio.Low); err != nil {
		return
	}
	defer func() {
		if releaseErr := c.release(); err == nil {
			err = releaseErr
		}
	}()

	if err = c.dc.Out(gpio.Low); err != nil {
		return
	}
	c.wait()
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}

	if len(data) > 0 {
		if err = c.dc.Out(gpio.High); err != nil {
			return
		}
		c.wait()
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) release() error {
	if err := c.cs.Out(gpio.High); err != nil {
		return err
	}
	return c.dc.Out(gpio.Low)
}

func (c *spiConn) wait() {
	if c.settle > 0 {
		sleep(c.settle)
	}
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		_, err = c.bus.Write(data)
		return
	}

	logf("write %d bytes of data in %d chunks", len(data), (len(data)+c.batchSize-1)/c.batchSize)
	buffer := data
	for len(buffer) > 0 {
		n := min(len(buffer), c.batchSize)
		if _, err = c.bus.Write(buffer[:n]); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}
