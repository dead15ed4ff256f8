package device

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/golang/glog"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/host"
	"github.com/robotalks/uartled/pkg/l0/uart"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
	"github.com/robotalks/uartled/pkg/l1/comm/mqtt"
	"github.com/robotalks/uartled/pkg/l1/comm/stream"
	"github.com/robotalks/uartled/pkg/l1/comm/websocket"
	"github.com/robotalks/uartled/pkg/led"
)

// Env is everything needed to run the LED device.
type Env struct {
	Config    *Config
	Info      l1.DeviceInfo
	Faults    fx.FaultHandler
	Bank      *led.Bank
	Device    *host.Device
	Metrics   *host.Metrics
	Registrar *comm.RegistrarMux
	// Link is nil when no serial port is configured.
	Link *uart.Link
	// HTTP is nil when Listen is empty.
	HTTP *http.Server

	closers []io.Closer
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	faults, _ := fx.FaultHandlerByName(c.Fault)
	driver, err := c.NewDriver()
	if err != nil {
		return nil, err
	}
	e := &Env{
		Config:    c,
		Info:      c.Info(),
		Faults:    faults,
		Bank:      led.NewBank(driver),
		Metrics:   host.NewMetrics(),
		Registrar: &comm.RegistrarMux{},
	}
	if !e.Info.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	e.Device = host.NewDevice(e.Bank).
		WithRegistrar(e.Registrar).
		WithMetrics(e.Metrics).
		WithFaultHandler(faults)

	if err := e.setup(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Env) setup() error {
	c := e.Config
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, e.Info, e.Device)
		if err != nil {
			return fmt.Errorf("create MQTT registrar error: %v", err)
		}
		e.Registrar.Add(reg)
	}
	if c.TCPListen != "" {
		srv, err := stream.Listen(c.TCPListen, e.Device)
		if err != nil {
			return fmt.Errorf("listen %s error: %v", c.TCPListen, err)
		}
		e.closers = append(e.closers, srv.Listener)
		e.Registrar.Add(srv)
	}
	if c.Listen != "" {
		ws := websocket.NewServer(e.Info, e.Device)
		e.Registrar.Add(ws)
		mux := http.NewServeMux()
		ws.Register(mux)
		mux.Handle("/metrics", e.Metrics.Handler())
		e.HTTP = &http.Server{Addr: c.Listen, Handler: mux}
	}
	if c.Serial.Name != "" {
		link, closer, err := uart.OpenLink(c.Serial, c.MaxFrame)
		if err != nil {
			return err
		}
		if c.FrameTimeout > 0 {
			link.Timeout = c.FrameTimeout
		}
		e.Link = link.WithHandler(e.Device)
		e.closers = append(e.closers, closer)
	}
	if len(e.Registrar.Registrars) == 0 && e.Link == nil {
		return fmt.Errorf("nothing to serve: configure a serial port or a registrar")
	}
	return nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// Runnables returns all components to run.
func (e *Env) Runnables() []fx.Runnable {
	runnables := []fx.Runnable{fx.NamedRun("registrars", e.Registrar)}
	if e.Link != nil {
		runnables = append(runnables, fx.NamedRun("uart", e.Link))
	}
	if e.HTTP != nil {
		runnables = append(runnables, fx.NamedRun("http", fx.RunFunc(e.serveHTTP)))
	}
	if e.Config.ConfigFile != "" {
		runnables = append(runnables, fx.NamedRun("watch", fx.RunFunc(e.watchConfig)))
	}
	return runnables
}

// Close releases resources.
func (e *Env) Close() error {
	var errs fx.AggregatedError
	for _, closer := range e.closers {
		errs.Add(closer.Close())
	}
	e.closers = nil
	return errs.Aggregate()
}

func (e *Env) serveHTTP(ctx context.Context) error {
	for _, reg := range e.Registrar.Registrars {
		if ws, ok := reg.(*websocket.Server); ok {
			ws.WithContext(ctx)
		}
	}
	ln, err := net.Listen("tcp", e.HTTP.Addr)
	if err != nil {
		return err
	}
	glog.Infof("serving http on %s", ln.Addr())
	err = fx.RunWithContextCloser(ctx, e.HTTP, func() error {
		return e.HTTP.Serve(ln)
	})
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (e *Env) watchConfig(ctx context.Context) error {
	return Watch(ctx, e.Config.ConfigFile, DefaultDebounce, func(conf *Config) {
		e.ReloadLEDs(conf)
	})
}

// ReloadLEDs replaces the LED driver using the LED section of conf.
// The current LED states are pushed to the new driver.
func (e *Env) ReloadLEDs(conf *Config) error {
	driver, err := conf.NewDriver()
	if err != nil {
		glog.Errorf("reload LED driver failed: %v", err)
		return err
	}
	if err = e.Bank.SetDriver(driver); err != nil {
		glog.Errorf("apply LED states failed: %v", err)
		return err
	}
	e.Config.LED = conf.LED
	glog.Infof("LED driver reloaded: %s", conf.LED.Driver)
	return nil
}
