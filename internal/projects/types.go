package projects

import "strings"

// Canonical project types.
const (
	TypeGD       = "GD"
	TypeVFX      = "VFX"
	TypeVJ       = "VJ"
	TypeGodot    = "Godot"
	TypeTD       = "TD"
	TypeAudio    = "Audio"
	TypePhysical = "Physical"
	TypePhoto    = "Photo"
	TypeWeb      = "Web"
)

// categoryForType folds project types, including legacy spellings kept for
// databases written by earlier releases, into their storage category.
var categoryForType = map[string]string{
	"visual-graphic design": "Visual",
	"visual-visual effects": "Visual",
	"visual-live video":     "Visual",
	"gd":                    "Visual",
	"fx":                    "Visual",
	"vfx":                   "Visual",
	"vj":                    "Visual",
	// Oldest legacy names.
	"visual-computer graphics": "Visual",
	"visual-vj":                "Visual",
	"godot":                    "RealTime",
	"td":                       "RealTime",
	"realtime":                 "RealTime",
	"audio":                    "Audio",
	"physical":                 "Physical",
	"photo":                    "Photo",
	"web":                      "Web",
}

// CategoryForType returns the category a project type files under. Unknown
// types map to "Other" so they never silently land in a real category root.
func CategoryForType(projectType string) string {
	if category, ok := categoryForType[strings.ToLower(strings.TrimSpace(projectType))]; ok {
		return category
	}
	return "Other"
}

// KnownTypes returns the canonical project types in display order.
func KnownTypes() []string {
	return []string{TypeGD, TypeVFX, TypeVJ, TypeGodot, TypeTD, TypeAudio, TypePhysical, TypePhoto, TypeWeb}
}

// IsKnownType reports whether the value maps to a category, including
// legacy spellings.
func IsKnownType(projectType string) bool {
	_, ok := categoryForType[strings.ToLower(strings.TrimSpace(projectType))]
	return ok
}
