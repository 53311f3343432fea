// Package watch implements the script auto-reload feature of
// cmd/sflheap's batch runner: when run with -watch, the runner
// re-executes the script against a fresh heap every time the file is
// written, without restarting the process.
package watch

import "github.com/fsnotify/fsnotify"

// ScriptWatcher notifies on every write to a single script file.
type ScriptWatcher struct {
	w    *fsnotify.Watcher
	evC  chan struct{}
	errC chan error
}

// NewScriptWatcher starts watching path for writes.
func NewScriptWatcher(path string) (*ScriptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	sw := &ScriptWatcher{
		w:    w,
		evC:  make(chan struct{}, 1),
		errC: make(chan error, 1),
	}
	go sw.loop()
	return sw, nil
}

func (sw *ScriptWatcher) loop() {
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Coalesce bursts of writes (many editors save via
				// truncate+write+rename) into a single pending reload.
				select {
				case sw.evC <- struct{}{}:
				default:
				}
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			select {
			case sw.errC <- err:
			default:
			}
		}
	}
}

// Reloads signals once per observed write/create event on the watched
// file, coalescing bursts.
func (sw *ScriptWatcher) Reloads() <-chan struct{} { return sw.evC }

// Errors surfaces watcher errors (e.g. the watched file was removed).
func (sw *ScriptWatcher) Errors() <-chan error { return sw.errC }

// Close stops the watcher.
func (sw *ScriptWatcher) Close() error { return sw.w.Close() }
