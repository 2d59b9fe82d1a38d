// Package winpath implements the path rewriting rules the project database
// relies on.
//
// Stored paths are always Windows-style under the active base (for example
// D:\_work\Active\Visual\...). Rules collapses mapped drive aliases such as
// I:\ back into the active base, translates WSL /mnt paths, and converts
// stored paths into work-drive or platform form for display and folder
// opening. Normalize is idempotent; callers can re-normalize freely.
package winpath
