package uart

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is the default baud rate of the ESP link.
const DefaultBaud = 115200

// PortConfig configures a serial port.
type PortConfig struct {
	Name string `yaml:"name"`
	Baud int    `yaml:"baud"`
	// ReadTimeout makes Read return after the duration with no data.
	// 0 blocks Read until data arrives.
	ReadTimeout time.Duration `yaml:"read-timeout"`
}

// OpenPort opens the serial port, 8N1.
func OpenPort(conf PortConfig) (io.ReadWriteCloser, error) {
	baud := conf.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        conf.Name,
		Baud:        baud,
		ReadTimeout: conf.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %v", conf.Name, err)
	}
	return port, nil
}

// OpenLink opens the serial port and creates a Link on it.
func OpenLink(conf PortConfig, maxFrame int) (*Link, io.Closer, error) {
	port, err := OpenPort(conf)
	if err != nil {
		return nil, nil, err
	}
	link := NewLink(port, maxFrame)
	link.Name = conf.Name
	link.ReadTimeout = conf.ReadTimeout > 0
	return link, port, nil
}
