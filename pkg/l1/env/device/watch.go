package device

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// DefaultDebounce is the quiet time after a change before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the config file on change and calls onChange with the
// result, until ctx is done. The file is loaded with LoadWithFlags.
// The directory is watched as editors often replace the file.
func Watch(ctx context.Context, fn string, debounce time.Duration, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err = watcher.Add(filepath.Dir(fn)); err != nil {
		return err
	}
	name := filepath.Clean(fn)

	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name ||
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			glog.V(2).Infof("config %s: %s", fn, event.Op)
			timerC = time.After(debounce)
		case <-timerC:
			timerC = nil
			conf, err := LoadWithFlags(fn)
			if err != nil {
				glog.Warningf("reload config failed: %v", err)
				continue
			}
			onChange(conf)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			glog.Warningf("config watcher error: %v", err)
		}
	}
}
