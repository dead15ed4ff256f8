// Package led provides shell commands for LED devices.
package led

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/fatih/color"

	"github.com/robotalks/uartled/pkg/cli/sh"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
	"github.com/robotalks/uartled/pkg/l0/uart"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

var (
	onColor       = color.New(color.FgGreen, color.Bold)
	offColor      = color.New(color.FgWhite)
	rejectedColor = color.New(color.FgRed)
)

// CommandFromArgs builds a command from "LED STATE", e.g. "led1 on".
func CommandFromArgs(args []string) (ledcmd.Command, error) {
	if len(args) != 2 {
		return ledcmd.Rejected(), fmt.Errorf("LED STATE required")
	}
	l, ok := ledcmd.LedByName(strings.ToLower(args[0]))
	if !ok {
		return ledcmd.Rejected(), fmt.Errorf("invalid LED %q, expect %s", args[0], ledNames())
	}
	state, ok := ledcmd.StateByName(strings.ToLower(args[1]))
	if !ok {
		return ledcmd.Rejected(), fmt.Errorf("invalid STATE %q, expect %s", args[1], stateNames())
	}
	return ledcmd.Command{Success: true, Led: l, State: state}, nil
}

func keywordNames(kws []ledcmd.Keyword) string {
	names := make([]string, len(kws))
	for n, kw := range kws {
		names[n] = kw.Literal
	}
	return strings.Join(names, "|")
}

func ledNames() string {
	return keywordNames(ledcmd.LedLiterals())
}

func stateNames() string {
	return keywordNames(ledcmd.StateLiterals())
}

// TextFromArgs rebuilds the input bytes from shell arguments.
// The shell splits words on any whitespace, so they are joined with a
// single space. Go escapes (\t, \r, \xNN) produce exact bytes; wrap the
// text in single quotes so the shell keeps the backslashes.
func TextFromArgs(args []string) ([]byte, error) {
	text := strings.Join(args, " ")
	if !strings.ContainsRune(text, '\\') {
		return []byte(text), nil
	}
	unquoted, err := strconv.Unquote(`"` + strings.ReplaceAll(text, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("invalid escape in %q: %w", text, err)
	}
	return []byte(unquoted), nil
}

const textHelp = "TEXT (words joined by one space, '...' with \\t \\r \\xNN for exact bytes)"

// FormatState renders a LED state in color.
func FormatState(l ledcmd.Led, state ledcmd.LedState) string {
	if state.IsOn() {
		return onColor.Sprintf("%s=%s", l, state)
	}
	return offColor.Sprintf("%s=%s", l, state)
}

// FormatCommand renders a parse result in color.
func FormatCommand(cmd ledcmd.Command) string {
	if !cmd.Success {
		return rejectedColor.Sprint(cmd.String())
	}
	return FormatState(cmd.Led, cmd.State)
}

func printReply(c *ishell.Context, reply *msgs.ParseReply) {
	out := FormatCommand(reply.Command())
	if reply.Changed {
		out += " (changed)"
	}
	c.Println(out)
}

var (
	// ParseCmd parses input locally.
	ParseCmd = ishell.Cmd{
		Name:    "parse",
		Aliases: []string{"p"},
		Help:    textHelp,
		Func: func(c *ishell.Context) {
			text, err := TextFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(FormatCommand(ledcmd.Parse(text)))
		},
	}

	// LedSetCmd exposes LedSet command.
	LedSetCmd = ishell.Cmd{
		Name:    "led.set",
		Aliases: []string{"set"},
		Help:    ledNames() + " " + stateNames(),
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			cmd, err := CommandFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintCommand(c, msgs.LedSetFrom(cmd))
		}),
	}

	// LedStatusCmd exposes LedStatusQuery command.
	LedStatusCmd = ishell.Cmd{
		Name:    "led.status",
		Aliases: []string{"status", "st"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if sh.ShellFrom(c).OutputJSON {
				sh.PrintCommand(c, &msgs.LedStatusQuery{})
				return
			}
			reply, err := sh.DoCommand(c, &msgs.LedStatusQuery{})
			if err != nil {
				return
			}
			status, ok := reply.(*msgs.LedStatus)
			if !ok {
				c.Println(sh.FormatMsg(reply))
				return
			}
			items := make([]string, 0, len(status.Leds))
			for _, entry := range status.Leds {
				items = append(items, FormatState(ledcmd.Led(entry.Led), ledcmd.StateOf(entry.On)))
			}
			c.Println(strings.Join(items, " "))
			c.Printf("frames: %d accepted, %d rejected\n", status.FramesAccepted, status.FramesRejected)
		}),
	}

	// LedRawCmd sends raw input for the device to parse and apply.
	LedRawCmd = ishell.Cmd{
		Name:    "led.raw",
		Aliases: []string{"raw"},
		Help:    textHelp,
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			doParse(c, true)
		}),
	}

	// LedCheckCmd sends raw input for the device to parse only.
	LedCheckCmd = ishell.Cmd{
		Name:    "led.check",
		Aliases: []string{"check"},
		Help:    textHelp,
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			doParse(c, false)
		}),
	}

	// UartSendCmd writes a frame to a local serial port.
	UartSendCmd = ishell.Cmd{
		Name:    "uart.send",
		Aliases: []string{"send"},
		Help:    "PORT LED STATE | PORT " + textHelp,
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("PORT and TEXT required"))
				return
			}
			frame, err := TextFromArgs(c.Args[1:])
			if err != nil {
				c.Err(err)
				return
			}
			if cmd, err := CommandFromArgs(c.Args[1:]); err == nil {
				frame = []byte(cmd.Format())
			}
			port, err := uart.OpenPort(uart.PortConfig{Name: c.Args[0]})
			if err != nil {
				c.Err(err)
				return
			}
			defer port.Close()
			if err = uart.NewLink(port, 0).Send(frame); err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent %q\n", frame)
		},
	}
)

func doParse(c *ishell.Context, apply bool) {
	text, err := TextFromArgs(c.Args)
	if err != nil {
		c.Err(err)
		return
	}
	req := msgs.NewParseRequest(text, apply)
	if sh.ShellFrom(c).OutputJSON {
		sh.PrintCommand(c, req)
		return
	}
	reply, err := sh.DoCommand(c, req)
	if err != nil {
		return
	}
	if parsed, ok := reply.(*msgs.ParseReply); ok {
		printReply(c, parsed)
		return
	}
	c.Println(sh.FormatMsg(reply))
}

func init() {
	sh.AddCmds(
		&ParseCmd,
		&LedSetCmd,
		&LedStatusCmd,
		&LedRawCmd,
		&LedCheckCmd,
		&UartSendCmd,
	)
}
