package device

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/uart"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/env"
	"github.com/robotalks/uartled/pkg/led"
)

// DeviceType is the default device type.
const DeviceType = "uartled"

// LEDConfig selects the LED driver.
type LEDConfig struct {
	// Driver is "sysfs" or "log".
	Driver string `yaml:"driver"`
	// Root is the sysfs LED class directory.
	Root string `yaml:"root"`
	// Names maps led1..led4 to sysfs LED names.
	Names map[string]string `yaml:"names"`
}

// Config provides options to setup the LED device.
type Config struct {
	Type        string            `yaml:"type"`
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Labels      map[string]string `yaml:"labels"`

	// MQTTBrokerURL specifies the MQTT broker to register with.
	// e.g. mqtt://host:port/topic-prefix, empty disables MQTT.
	MQTTBrokerURL string `yaml:"mqtt"`
	// Listen is the HTTP address serving websocket clients and metrics.
	Listen string `yaml:"listen"`
	// TCPListen is the address serving stream clients, empty disables it.
	TCPListen string `yaml:"tcp"`

	// Serial is the UART port receiving commands, empty name disables it.
	Serial       uart.PortConfig `yaml:"serial"`
	MaxFrame     int             `yaml:"max-frame"`
	FrameTimeout time.Duration   `yaml:"frame-timeout"`

	LED LEDConfig `yaml:"led"`

	// Fault is the policy on a runtime fault: "halt" or "exit".
	Fault string `yaml:"fault"`

	// ConfigFile is the YAML file loaded by Load, and watched for LED changes.
	ConfigFile string `yaml:"-"`
}

var defaultConfig = Config{
	Type:          DeviceType,
	MQTTBrokerURL: "mqtt://localhost:1883/",
	Listen:        ":8080",
	Serial:        uart.PortConfig{Baud: uart.DefaultBaud},
	MaxFrame:      uart.DefaultMaxFrame,
	FrameTimeout:  uart.DefaultTimeout,
	LED:           LEDConfig{Driver: led.DriverLog, Root: led.DefaultSysfsRoot},
	Fault:         "halt",
}

func init() {
	if val := os.Getenv("ULED_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("ULED_SERIAL_PORT"); val != "" {
		defaultConfig.Serial.Name = val
	}
	if val := os.Getenv("ULED_DEVICE_TYPE"); val != "" {
		defaultConfig.Type = val
	}
	if val := os.Getenv("ULED_DEVICE_ID"); val != "" {
		defaultConfig.ID = val
	}
	if val := os.Getenv("ULED_CONFIG"); val != "" {
		defaultConfig.ConfigFile = val
	}
}

// flagFields copies the value of an explicitly set flag,
// so command line wins over the config file.
var flagFields = map[string]func(dst, src *Config){
	"type":          func(d, s *Config) { d.Type = s.Type },
	"id":            func(d, s *Config) { d.ID = s.ID },
	"mqtt":          func(d, s *Config) { d.MQTTBrokerURL = s.MQTTBrokerURL },
	"listen":        func(d, s *Config) { d.Listen = s.Listen },
	"tcp":           func(d, s *Config) { d.TCPListen = s.TCPListen },
	"serial":        func(d, s *Config) { d.Serial.Name = s.Serial.Name },
	"baud":          func(d, s *Config) { d.Serial.Baud = s.Serial.Baud },
	"max-frame":     func(d, s *Config) { d.MaxFrame = s.MaxFrame },
	"frame-timeout": func(d, s *Config) { d.FrameTimeout = s.FrameTimeout },
	"led-driver":    func(d, s *Config) { d.LED.Driver = s.LED.Driver },
	"led-root":      func(d, s *Config) { d.LED.Root = s.LED.Root },
	"fault":         func(d, s *Config) { d.Fault = s.Fault },
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ConfigFile, "config", defaultConfig.ConfigFile, "YAML config file")
	flag.StringVar(&defaultConfig.Type, "type", defaultConfig.Type, "Device type")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID, default is derived from machine ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.Listen, "listen", defaultConfig.Listen, "HTTP listen address for websocket and metrics, empty to disable")
	flag.StringVar(&defaultConfig.TCPListen, "tcp", defaultConfig.TCPListen, "TCP listen address for stream clients")
	flag.StringVar(&defaultConfig.Serial.Name, "serial", defaultConfig.Serial.Name, "UART device receiving commands")
	flag.IntVar(&defaultConfig.Serial.Baud, "baud", defaultConfig.Serial.Baud, "UART baud rate")
	flag.IntVar(&defaultConfig.MaxFrame, "max-frame", defaultConfig.MaxFrame, "Max bytes of a UART frame")
	flag.DurationVar(&defaultConfig.FrameTimeout, "frame-timeout", defaultConfig.FrameTimeout, "Discard a partial UART frame after idle")
	flag.StringVar(&defaultConfig.LED.Driver, "led-driver", defaultConfig.LED.Driver, "LED driver: sysfs, log")
	flag.StringVar(&defaultConfig.LED.Root, "led-root", defaultConfig.LED.Root, "Root of sysfs LEDs")
	flag.StringVar(&defaultConfig.Fault, "fault", defaultConfig.Fault, "Fault policy: halt, exit")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load creates a Config with default configurations and the config file,
// then explicitly set flags on top.
func Load() (*Config, error) {
	conf := NewConfig()
	if conf.ConfigFile == "" {
		return conf, nil
	}
	return LoadWithFlags(conf.ConfigFile)
}

// LoadWithFlags loads fn over the defaults and puts explicitly set flags
// back on top. Config reloads use it too.
func LoadWithFlags(fn string) (*Config, error) {
	conf := NewConfig()
	if err := conf.LoadFile(fn); err != nil {
		return nil, err
	}
	conf.override(&defaultConfig, explicitFlags())
	return conf, nil
}

func explicitFlags() (names []string) {
	if flag.Parsed() {
		flag.Visit(func(f *flag.Flag) {
			names = append(names, f.Name)
		})
	}
	return
}

func (c *Config) override(src *Config, names []string) {
	for _, name := range names {
		if fn := flagFields[name]; fn != nil {
			fn(c, src)
		}
	}
}

// MustLoad loads Config and fails on error.
func MustLoad() *Config {
	conf, err := Load()
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

// LoadFile overlays the YAML file on Config. Unknown keys are errors.
func (c *Config) LoadFile(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	if err = yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("config %s: %v", fn, err)
	}
	return nil
}

// Info builds the device info for registration.
func (c *Config) Info() l1.DeviceInfo {
	info := l1.DeviceInfo{
		Ref:  l1.DeviceRef{Type: c.Type, ID: c.ID},
		Meta: l1.DeviceMeta{Description: c.Description, Labels: c.Labels},
	}
	if info.Ref.ID == "" {
		info.Ref.ID = env.MachineID()
	}
	return info
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("device type must be specified")
	}
	if _, err := fx.FaultHandlerByName(c.Fault); err != nil {
		return err
	}
	if c.MaxFrame < 0 {
		return fmt.Errorf("invalid max-frame: %d", c.MaxFrame)
	}
	return nil
}

// NewDriver creates the LED driver.
func (c *Config) NewDriver() (led.Driver, error) {
	return led.NewDriver(c.LED.Driver, c.LED.Root, c.LED.Names)
}
