// Package archive moves project folders between the active and archive
// trees and keeps the project database in step with every move.
//
// Moves are ordinary directory renames with a copy+delete fallback for
// cross-device targets. When the database update after a move fails the
// folder is moved back so disk and database do not drift apart.
package archive
