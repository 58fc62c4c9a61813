package conn

import (
	"fmt"
	"os"

	"github.com/BeatGlow/epaper/internal/ioctl"
)

// Definitions from <spi/spidev.h>
const (
	spiCPHA  = 0x01
	spiCPOL  = 0x02
	spiNoCS  = 0x40
	spiModes = spiCPHA | spiCPOL | spiNoCS
)

type SPIMode uint8

const (
	// SPIMode0 samples on the rising edge with the clock idle low.
	SPIMode0 SPIMode = 0

	// SPINoCS leaves the chip select line alone, it is driven as a GPIO instead.
	SPINoCS SPIMode = spiNoCS
)

const (
	spiIOCMode        = 0x6b01
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// SPI implements the spidev interface.
type SPI struct {
	f           *os.File
	fd          uintptr
	path        string
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens a spidev character device, such as /dev/spidev0.0.
func OpenSPI(path string) (*SPI, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		f:    f,
		fd:   f.Fd(),
		path: path,
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.mode, spiIOCMode), &c.mode); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.bitsPerWord, spiIOCBitsPerWord), &c.bitsPerWord); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.maxSpeedHz, spiIOCMaxSpeedHz), &c.maxSpeedHz); err != nil {
		_ = f.Close()
		return nil, err
	}

	return c, nil
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%#02x bits per word=%d max speed=%dHz", c.path, uint8(c.mode), c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

func (c *SPI) SetMode(mode SPIMode) error {
	mode &= spiModes

	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &mode, spiIOCMode), &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &test, spiIOCMode), &test); err != nil {
		return err
	}

	if test&spiModes != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}

	if c.bitsPerWord != bits {
		if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &bits, spiIOCBitsPerWord), &bits); err != nil {
			return err
		}
		c.bitsPerWord = bits
	}

	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

func (c *SPI) SetMaxSpeed(v int) error {
	if v < 0 {
		return nil
	}

	u := uint32(v)
	if c.maxSpeedHz != u {
		if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &u, spiIOCMaxSpeedHz), &u); err != nil {
			return err
		}
		c.maxSpeedHz = u
	}

	return nil
}

// Write sends b as a single spidev transfer. The kernel rejects transfers
// larger than its buffer size (4096 bytes by default); callers chunk.
func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}
