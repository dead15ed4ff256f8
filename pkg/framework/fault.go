package framework

import (
	"fmt"
	"os"

	"github.com/golang/glog"
)

// FaultHandler is invoked on an unrecoverable runtime fault.
// It's not expected to return. If it does, the faulting operation is
// abandoned and reports its zero result.
type FaultHandler interface {
	HandleFault(fault interface{})
}

// FaultHandlerFunc is the func form of FaultHandler.
type FaultHandlerFunc func(interface{})

// HandleFault implements FaultHandler.
func (f FaultHandlerFunc) HandleFault(fault interface{}) {
	f(fault)
}

var (
	// Halt logs the fault and blocks the faulting goroutine forever,
	// the same as a firmware panic handler spinning in a loop.
	Halt FaultHandler = FaultHandlerFunc(func(fault interface{}) {
		glog.Errorf("fault: %v, halted", fault)
		glog.Flush()
		select {}
	})

	// Exit logs the fault and exits the process, leaving the restart
	// to the supervisor.
	Exit FaultHandler = FaultHandlerFunc(func(fault interface{}) {
		glog.Errorf("fault: %v, exiting", fault)
		glog.Flush()
		os.Exit(2)
	})
)

// FaultHandlerByName selects a predefined FaultHandler: "halt" or "exit".
func FaultHandlerByName(name string) (FaultHandler, error) {
	switch name {
	case "halt":
		return Halt, nil
	case "exit":
		return Exit, nil
	default:
		return nil, fmt.Errorf("unknown fault policy: %q", name)
	}
}

// Guard runs fn and hands a panic from it to h.
// It returns true if fn completed normally.
func Guard(h FaultHandler, fn func()) (ok bool) {
	defer func() {
		if !ok {
			if r := recover(); r != nil {
				h.HandleFault(r)
			}
		}
	}()
	fn()
	return true
}
