// Package config loads, normalizes, and validates FastRak configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the drive
// layout, per-category subpaths, software version defaults, and storage
// locations the CLI needs.
//
// Drive-side values (active base, archive base, work drive) stay in Windows
// path form because that is the format the project database stores; only
// local paths such as the database file and log directory are expanded for
// the running platform.
package config
