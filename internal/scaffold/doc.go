// Package scaffold creates project folder structures from tree templates.
//
// Templates are Windows "tree /a /f" listings, one per project type, either
// embedded in the binary or overridden from a template directory. Folder
// names in a template may carry a [CONDITIONAL:tag] suffix; tagged folders
// and their children are skipped when the tag is off. Leaf directories get
// a .gitkeep file so empty structure survives version control.
package scaffold
