package datafiles

import (
	"context"
	"errors"

	"github.com/fsnotify/fsnotify"

	"tes3mpctl/pkg/logging"
)

// WaitForMarker blocks until Morrowind.esm appears in dir or ctx ends.
// It backs `datafiles --watch`, which lets the user start the tool first
// and copy the game files in afterwards.
func WaitForMarker(ctx context.Context, dir string) error {
	if Validate(dir) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	// The file may have landed between the first check and the watch
	// registration.
	if Validate(dir) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			logging.Debug("datafiles", "fs event: %s", event)
			// Copies can surface as create, write or rename depending
			// on the tool used; revalidate on any of them.
			if Validate(dir) {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return werr
		}
	}
}
