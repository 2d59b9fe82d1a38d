package config

const (
	defaultDatabasePath     = "~/.local/share/fastrak/projects.json"
	defaultLogDir           = "~/.local/share/fastrak/logs"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultLogRetentionDays = 60
	defaultWorkDrive        = "I:"
	defaultActiveBase       = `D:\_work\Active`
	defaultArchiveBase      = `D:\_work\Archive`
	defaultWatchDebounce    = 2
)

// categoryOrder fixes the display order for the built-in categories.
var categoryOrder = []string{"Visual", "RealTime", "Audio", "Physical", "Photo", "Web"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			DatabasePath:     defaultDatabasePath,
			LogDir:           defaultLogDir,
			LogLevel:         defaultLogLevel,
			LogFormat:        defaultLogFormat,
			LogRetentionDays: defaultLogRetentionDays,
		},
		Drives: Drives{
			Work:        defaultWorkDrive,
			ActiveBase:  defaultActiveBase,
			ArchiveBase: defaultArchiveBase,
			Aliases:     []string{"I:", "P:"},
		},
		Categories: map[string]Category{
			"Visual": {
				WorkSubpath:    "Visual",
				ArchiveSubpath: "Visual",
				Subcategories:  []string{"GD", "VFX", "VJ"},
			},
			"RealTime": {
				WorkSubpath:    "RealTime",
				ArchiveSubpath: "RealTime",
				Subcategories:  []string{"Godot", "TD"},
			},
			"Audio": {
				WorkSubpath:    "Audio",
				ArchiveSubpath: "Audio",
			},
			"Physical": {
				WorkSubpath:    "Physical",
				ArchiveSubpath: "Physical",
			},
			"Photo": {
				WorkSubpath:    "Photo",
				ArchiveSubpath: "Photo",
			},
			"Web": {
				WorkSubpath:    "Web",
				ArchiveSubpath: "Web",
			},
		},
		Software: map[string]string{
			"houdini":       "20.5",
			"blender":       "4.4",
			"fusion":        "19",
			"resolume":      "Arena 7",
			"after_effects": "2024",
			"touchdesigner": "2023.11760",
			"godot":         "4.3",
			"ableton":       "12",
			"reaper":        "7",
			"python":        "3.11",
			"slicer":        "Bambu Studio",
			"printer":       "Bambu Lab X1 Carbon",
			"platform":      "PC/Desktop",
			"renderer":      "Forward+",
			"resolution":    "1920x1080",
		},
		Watch: Watch{
			DebounceSeconds: defaultWatchDebounce,
		},
	}
}
