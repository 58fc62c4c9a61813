package eeprom

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	epconn "github.com/BeatGlow/epaper/conn"
	"github.com/BeatGlow/epaper/internal/debug"
)

// Kind classifies the outcome of a probe.
type Kind uint8

// Probe outcomes.
const (
	// Unavailable means the bus does not exist or may not be opened, which is
	// expected on systems without the board.
	Unavailable Kind = iota

	// Error is an unexpected I/O or protocol failure.
	Error

	// Blank is an unprogrammed EEPROM.
	Blank

	// Invalid is a programmed EEPROM with malformed data.
	Invalid

	// Found is a valid identity record.
	Found
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Error:
		return "error"
	case Blank:
		return "blank"
	case Invalid:
		return "invalid"
	case Found:
		return "found"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Status is the result of reading the EEPROM.
type Status struct {
	Kind Kind

	// Info is set if Kind is Found.
	Info Info

	// Reason is set if Kind is Error or Invalid.
	Reason string
}

func (s Status) String() string {
	switch s.Kind {
	case Found:
		return s.Info.String()
	case Error, Invalid:
		return fmt.Sprintf("%s: %s", s.Kind, s.Reason)
	default:
		return s.Kind.String()
	}
}

// Classify turns a raw record into a status.
func Classify(data []byte) Status {
	if IsBlank(data) {
		return Status{Kind: Blank}
	}
	info, err := Parse(data)
	if err != nil {
		return Status{Kind: Invalid, Reason: err.Error()}
	}
	return Status{Kind: Found, Info: info}
}

// Read resets the EEPROM read cursor and reads the identity record from c.
func Read(c conn.Conn) Status {
	if err := c.Tx([]byte{0x00, 0x00}, nil); err != nil {
		return classifyError(err)
	}

	buf := make([]byte, Length)
	if err := c.Tx(nil, buf); err != nil {
		return classifyError(err)
	}
	if debug.Enabled() {
		log.Printf("eeprom: read %d bytes from %s: % x", len(buf), c, buf)
	}
	return Classify(buf)
}

// Probe reads the EEPROM on the I²C character device at path, e.g. /dev/i2c-1.
func Probe(path string) Status {
	c, err := epconn.OpenI2CDev(path, Address)
	if err != nil {
		return classifyError(err)
	}
	defer c.Close()
	return Read(c)
}

// ProbeBus reads the EEPROM on a bus from the periph.io registry, by bus
// number. A bus that cannot be opened is reported as unavailable: periph does
// not keep the operating system error, so other open failures cannot be told
// apart from a missing bus. Use [Probe] with the /dev/i2c-N path to classify
// them as errors.
func ProbeBus(device int) Status {
	c, err := epconn.OpenI2C(device, Address)
	if err != nil {
		if debug.Enabled() {
			log.Printf("eeprom: open I²C bus %d: %v", device, err)
		}
		return Status{Kind: Unavailable}
	}
	defer c.Close()
	return Read(c)
}

func classifyError(err error) Status {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return Status{Kind: Unavailable}
	}
	return Status{Kind: Error, Reason: err.Error()}
}

// BusReport is the probe result for one I²C bus.
type BusReport struct {
	Path   string
	Status Status
}

// ProbeAll probes every I²C bus known to the host.
func ProbeAll() ([]BusReport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("eeprom: host init failed: %w", err)
	}

	var reports []BusReport
	for _, ref := range i2creg.All() {
		if ref.Number < 0 {
			continue
		}
		path := fmt.Sprintf("/dev/i2c-%d", ref.Number)
		reports = append(reports, BusReport{
			Path:   path,
			Status: Probe(path),
		})
	}
	return reports, nil
}

// First returns the first report with a valid identity record.
func First(reports []BusReport) (BusReport, bool) {
	for _, report := range reports {
		if report.Status.Kind == Found {
			return report, true
		}
	}
	return BusReport{}, false
}
