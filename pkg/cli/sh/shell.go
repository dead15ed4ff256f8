package sh

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/fatih/color"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm/stream"
	env "github.com/robotalks/uartled/pkg/l1/env/connector"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool
	Timeout     time.Duration

	Shell   *ishell.Shell
	Config  *env.Config
	Session *Session
}

// Session is a running connection to a device.
type Session struct {
	Ctx    context.Context
	Cancel func()
	Ref    l1.DeviceRef
	Conn   l1.DeviceConn
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	timeout    = time.Second

	// ErrNotConnected indicates the command requires a connection.
	ErrNotConnected = fmt.Errorf("not connected")

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}

	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	eventColor = color.New(color.FgCyan)
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.DurationVar(&timeout, "timeout", timeout, "Timeout waiting for a command result.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Timeout:     timeout,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(ErrNotConnected)
			return
		}
		fn(c)
	}
}

// FormatInfo prints DeviceInfo into friendly string for display.
func FormatInfo(info l1.DeviceInfo) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s", info.Ref.Name())
	if info.Meta.Description != "" {
		fmt.Fprintf(&w, ": %s", info.Meta.Description)
	}
	return w.String()
}

// FormatMsg prints a message for display.
func FormatMsg(msg fx.Message) string {
	if s, ok := msg.(msgs.SerializableMessage); ok {
		return fmt.Sprintf("%s %s", msgs.TypeName(msg), s.Serializable().String())
	}
	return msgs.TypeName(msg)
}

// PrintMsg prints a message as JSON or text.
func (s *Shell) PrintMsg(c *ishell.Context, msg fx.Message) error {
	if s.OutputJSON {
		var v interface{} = msg
		if sm, ok := msg.(msgs.SerializableMessage); ok {
			v = sm.Serializable()
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.Println(string(out))
		return nil
	}
	if _, ok := msg.(*msgs.CommandOK); ok {
		c.Println(okColor.Sprint("OK"))
		return nil
	}
	c.Println(FormatMsg(msg))
	return nil
}

// DoCommand runs a command and waits for result.
func DoCommand(c *ishell.Context, msg fx.Message) (reply fx.Message, err error) {
	s := ShellFrom(c)
	if s.Session == nil {
		c.Err(ErrNotConnected)
		return nil, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(s.Session.Ctx, s.Timeout)
	defer cancel()
	if reply, err = l1.Wait(ctx, s.Session.Conn.DoCommand(msg)); err != nil {
		if err == context.DeadlineExceeded {
			err = fmt.Errorf("command timeout")
		}
		c.Err(err)
		return
	}
	return
}

// PrintCommand runs a command and prints the result.
func PrintCommand(c *ishell.Context, msg fx.Message) error {
	reply, err := DoCommand(c, msg)
	if err != nil {
		return err
	}
	if err = ShellFrom(c).PrintMsg(c, reply); err != nil {
		c.Err(err)
	}
	return err
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DiscoverDevices discovers devices.
func (s *Shell) DiscoverDevices(filter func(l1.DeviceInfo) bool) (l1.Connector, []l1.DeviceInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, nil, err
	}
	infoList, err := connector.Discover(context.TODO())
	if err != nil {
		return connector, nil, err
	}
	if filter != nil {
		items := make([]l1.DeviceInfo, 0, len(infoList))
		for _, info := range infoList {
			if filter(info) {
				items = append(items, info)
			}
		}
		infoList = items
	}
	return connector, infoList, nil
}

// SelectDevice discovers devices and asks for a choice.
func (s *Shell) SelectDevice(filter func(l1.DeviceInfo) bool) (*l1.DeviceInfo, error) {
	_, infoList, err := s.DiscoverDevices(filter)
	if err != nil {
		return nil, err
	}
	if len(infoList) == 0 {
		return nil, nil
	}
	var index int
	if len(infoList) > 1 {
		if !s.Interactive {
			return nil, fmt.Errorf("more than 1 devices discovered in non-interactive mode")
		}
		items := make([]string, len(infoList))
		for n, info := range infoList {
			items[n] = FormatInfo(info)
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}
	return &infoList[index], nil
}

// Connect connects device with ref.
func (s *Shell) Connect(ref l1.DeviceRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	session := &Session{Ref: ref}
	session.Ctx, session.Cancel = context.WithCancel(context.Background())
	if session.Conn, err = connector.Connect(session.Ctx, ref); err != nil {
		session.Cancel()
		return err
	}
	session.Conn.OnEvent(fx.HandleMessageFunc(s.printEvent))
	s.Disconnect()
	s.Session = session
	go session.Conn.Run(session.Ctx)
	name := ref.Name()
	if !ref.IsValid() {
		name = s.Config.RegistryURL
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", name))
	return nil
}

func (s *Shell) printEvent(ctx context.Context, msg fx.Message) {
	if s.OutputJSON || !s.Interactive {
		return
	}
	s.Shell.Println(eventColor.Sprint("event: " + FormatMsg(msg)))
}

// Disconnect disconnects current device.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Cancel()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Ref.Name())
		}
		if err := s.Connect(s.Config.Ref); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Ref.Name(), err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Errorf prints an error in color.
func Errorf(c *ishell.Context, format string, args ...interface{}) {
	c.Println(errColor.Sprintf(format, args...))
}

var (
	// DiscoverCmd discovers devices.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			_, infoList, err := s.DiscoverDevices(nil)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if len(infoList) == 0 {
					// in case infoList is nil, make it empty slice.
					infoList = []l1.DeviceInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No devices found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a device.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TYPE [ID]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var ref l1.DeviceRef
			if len(c.Args) >= 2 {
				ref.Type, ref.ID = c.Args[0], c.Args[1]
			} else {
				var filter func(l1.DeviceInfo) bool
				if len(c.Args) == 1 {
					filter = func(info l1.DeviceInfo) bool {
						return info.Ref.Type == c.Args[0]
					}
				}
				info, err := s.SelectDevice(filter)
				if err != nil && err != stream.ErrDiscoverUnsupported {
					c.Err(err)
					return
				}
				if info != nil {
					ref = info.Ref
				} else if err == nil {
					c.Err(fmt.Errorf("no device discovered"))
					return
				}
			}
			if err := s.Connect(ref); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd disconnects current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
