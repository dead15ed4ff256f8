package main

import (
	"flag"
	"log"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/golang/glog"

	fx "github.com/robotalks/uartled/pkg/framework"
	env "github.com/robotalks/uartled/pkg/l1/env/device"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.MustLoad().MustNewEnv()
	defer e.Close()
	glog.Infof("device %s starting", e.Info.Ref.Name())

	runner := fx.NewRunner().HandleSignals().WithFaultHandler(e.Faults)
	runner.Go(e.Runnables()...)
	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		glog.Warningf("notify systemd failed: %v", err)
	} else if sent {
		glog.V(2).Info("systemd notified")
	}

	err := runner.Wait()
	daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil {
		glog.Flush()
		log.Fatalln(err)
	}
}
