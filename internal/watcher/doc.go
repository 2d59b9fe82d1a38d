// Package watcher runs the auto-import loop: it watches the active category
// roots for new folders and triggers an importer scan after a quiet period.
package watcher
