// Command fastrak is the project pipeline CLI: it tracks client and personal
// projects in a JSON database, scaffolds folder structures from tree
// templates, archives and restores project folders, and imports existing
// folders found under the configured category roots.
package main
