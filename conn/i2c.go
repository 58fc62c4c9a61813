package conn

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/BeatGlow/epaper/internal/ioctl"
)

// I2C is a device on a periph.io registered I²C bus.
type I2C struct {
	bus  i2c.BusCloser
	conn conn.Conn
}

// OpenI2C opens the numbered I²C bus through the periph.io registry, use -1 for
// the first available bus.
func OpenI2C(device int, addr uint16) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(device), 10))
	}
	if err != nil {
		return nil, err
	}

	return &I2C{
		bus:  bus,
		conn: &i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s", c.bus)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}

// Tx implements [conn.Conn].
func (c *I2C) Tx(w, r []byte) error {
	return c.conn.Tx(w, r)
}

// Duplex implements [conn.Conn].
func (c *I2C) Duplex() conn.Duplex {
	return conn.Half
}

// I2C_SLAVE from <linux/i2c-dev.h>
const i2cSlave = 0x0703

// I2CDev is a device on a raw /dev/i2c-N character device. Unlike [I2C] it
// keeps the operating system errors intact, which lets callers tell a missing
// bus apart from a failing transfer.
type I2CDev struct {
	f    *os.File
	path string
	addr uint16
}

// OpenI2CDev opens the I²C character device at path and binds it to addr.
func OpenI2CDev(path string, addr uint16) (*I2CDev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err = ioctl.Call(f.Fd(), i2cSlave, uintptr(addr)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &I2CDev{
		f:    f,
		path: path,
		addr: addr,
	}, nil
}

func (c *I2CDev) String() string {
	return fmt.Sprintf("I²C %s@%#02x", c.path, c.addr)
}

func (c *I2CDev) Close() error {
	return c.f.Close()
}

// Tx implements [conn.Conn] as a write followed by a read, each its own
// transfer with a stop condition in between.
func (c *I2CDev) Tx(w, r []byte) error {
	if len(w) > 0 {
		if _, err := c.f.Write(w); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		n, err := c.f.Read(r)
		if err != nil {
			return err
		}
		if n < len(r) {
			return fmt.Errorf("conn: %s short read of %d bytes, expected %d: %w", c, n, len(r), io.ErrUnexpectedEOF)
		}
	}
	return nil
}

// Duplex implements [conn.Conn].
func (c *I2CDev) Duplex() conn.Duplex {
	return conn.Half
}

// Interface checks.
var (
	_ conn.Conn = (*I2C)(nil)
	_ conn.Conn = (*I2CDev)(nil)
)
