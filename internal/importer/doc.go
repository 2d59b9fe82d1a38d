// Package importer discovers existing project folders on disk and registers
// them in the project database.
//
// It walks the active and archive roots for every configured category,
// including the _Personal subfolders, and parses folder names with the
// per-category naming patterns. Already-registered paths are skipped and all
// new registrations are written in a single database save.
package importer
