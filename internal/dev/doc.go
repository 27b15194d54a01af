// Package dev provides development-time helpers for the tagkit command.
//
// Watcher reports changes to a set of files, debounced so that an editor
// writing a file in several steps produces a single change:
//
//	w := dev.NewWatcher(dev.WatcherConfig{Paths: []string{"tagkit.toml"}})
//	w.OnChange(func(c dev.Change) {
//	    cfg, err := config.Load(c.Path)
//	    ...
//	})
//	go w.Start(ctx)
package dev
