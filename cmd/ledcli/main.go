package main

import (
	"github.com/robotalks/uartled/pkg/cli/sh"
	env "github.com/robotalks/uartled/pkg/l1/env/connector"

	_ "github.com/robotalks/uartled/pkg/cli/cmds/led"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
