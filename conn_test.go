package epaper

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type recordPin struct {
	*gpiotest.Pin
	name   string
	events *[]string
}

func (p *recordPin) Out(l gpio.Level) error {
	*p.events = append(*p.events, fmt.Sprintf("%s=%s", p.name, l))
	return p.Pin.Out(l)
}

type recordBus struct {
	events  *[]string
	written bytes.Buffer
	err     error
	closed  bool
}

func (b *recordBus) String() string { return "test" }

func (b *recordBus) Close() error {
	b.closed = true
	return nil
}

func (b *recordBus) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	*b.events = append(*b.events, fmt.Sprintf("write %d", len(p)))
	return b.written.Write(p)
}

func testSPIConn(t *testing.T) (*spiConn, *recordBus, *[]string) {
	t.Helper()

	events := new([]string)
	restore := sleep
	sleep = func(d time.Duration) { *events = append(*events, "sleep "+d.String()) }
	t.Cleanup(func() { sleep = restore })

	bus := &recordBus{events: events}
	return &spiConn{
		bus:       bus,
		cs:        &recordPin{Pin: &gpiotest.Pin{N: "GPIO8", L: gpio.High}, name: "cs", events: events},
		dc:        &recordPin{Pin: &gpiotest.Pin{N: "GPIO22"}, name: "dc", events: events},
		reset:     &recordPin{Pin: &gpiotest.Pin{N: "GPIO27", L: gpio.High}, name: "reset", events: events},
		busy:      &gpiotest.Pin{N: "GPIO17", L: gpio.High},
		batchSize: 4096,
		settle:    300 * time.Millisecond,
	}, bus, events
}

func TestSPIConnCommand(t *testing.T) {
	tests := []struct {
		Name   string
		Data   []byte
		Events []string
	}{
		{
			Name: "no data",
			Events: []string{
				"cs=Low", "dc=Low", "sleep 300ms", "write 1",
				"cs=High", "dc=Low",
			},
		},
		{
			Name: "data",
			Data: []byte{0x0f, 0x29},
			Events: []string{
				"cs=Low", "dc=Low", "sleep 300ms", "write 1",
				"dc=High", "sleep 300ms", "write 2",
				"cs=High", "dc=Low",
			},
		},
		{
			Name: "chunked",
			Data: make([]byte, 30000),
			Events: []string{
				"cs=Low", "dc=Low", "sleep 300ms", "write 1",
				"dc=High", "sleep 300ms",
				"write 4096", "write 4096", "write 4096", "write 4096",
				"write 4096", "write 4096", "write 4096", "write 1328",
				"cs=High", "dc=Low",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			c, bus, events := testSPIConn(it)
			if err := c.Command(0x10, test.Data...); err != nil {
				it.Fatal(err)
			}
			if !reflect.DeepEqual(*events, test.Events) {
				it.Errorf("expected events:\n%q\ngot:\n%q", test.Events, *events)
			}
			if want := append([]byte{0x10}, test.Data...); !bytes.Equal(bus.written.Bytes(), want) {
				it.Errorf("expected %d bytes written, got %d", len(want), bus.written.Len())
			}
		})
	}
}

func TestSPIConnCommandReleasesOnError(t *testing.T) {
	c, bus, events := testSPIConn(t)
	bus.err = errors.New("test")

	if err := c.Command(0x04); !errors.Is(err, bus.err) {
		t.Fatalf("expected write error, got %v", err)
	}
	want := []string{"cs=Low", "dc=Low", "sleep 300ms", "cs=High", "dc=Low"}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("expected events:\n%q\ngot:\n%q", want, *events)
	}
}

func TestSPIConnBusy(t *testing.T) {
	c, _, _ := testSPIConn(t)
	pin := c.busy.(*gpiotest.Pin)

	for _, test := range []struct {
		Level gpio.Level
		Busy  bool
	}{
		{gpio.Low, true},
		{gpio.High, false},
	} {
		pin.L = test.Level
		busy, err := c.Busy()
		if err != nil {
			t.Fatal(err)
		}
		if busy != test.Busy {
			t.Errorf("busy line %s: expected busy=%t, got %t", test.Level, test.Busy, busy)
		}
	}
}

func TestSPIConnResetAndClose(t *testing.T) {
	c, bus, events := testSPIConn(t)
	if err := c.Reset(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if want := []string{"reset=Low"}; !reflect.DeepEqual(*events, want) {
		t.Errorf("expected events %q, got %q", want, *events)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !bus.closed {
		t.Error("expected bus to be closed")
	}
}

func TestSPIConfigDefaults(t *testing.T) {
	config := &SPIConfig{
		Path:   "/dev/spidev1.0",
		Settle: -1,
		Busy:   "GPIO5",
	}
	c := config.withDefaults()

	if *config != (SPIConfig{Path: "/dev/spidev1.0", Settle: -1, Busy: "GPIO5"}) {
		t.Errorf("expected config to be left alone, got %+v", *config)
	}
	want := DefaultSPIConfig
	want.Path = "/dev/spidev1.0"
	want.Settle = -1
	want.Busy = "GPIO5"
	if *c != want {
		t.Errorf("expected %+v, got %+v", want, *c)
	}

	if c = (&SPIConfig{}).withDefaults(); *c != DefaultSPIConfig {
		t.Errorf("expected defaults %+v, got %+v", DefaultSPIConfig, *c)
	}
}
