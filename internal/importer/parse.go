package importer

import (
	"regexp"
	"time"

	"fastrak/internal/projects"
)

// parsed holds the project fields extracted from a folder name.
type parsed struct {
	Date     string
	Client   string
	Project  string
	Type     string
	Personal bool
}

var (
	vjClientRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_VJ_([^_]+)_(.+)$`)
	vjRe         = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_VJ_(.+)$`)
	fxClientRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_(?:FX|CG)_([^_]+)_(.+)$`)
	fxRe         = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_(?:FX|CG)_(.+)$`)
	printRe      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_3DPrint_([^_]+)_(.+)$`)
	technicalRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_Technical_(.+)$`)
	godotRe      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_Godot_([^_]+)_(.+)$`)
	tdRe         = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_TD_([^_]+)_(.+)$`)
	dateClientRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_([^_]+)_(.+)$`)
	dateOnlyRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_(.+)$`)
)

// parseFolderName extracts project fields from a folder name using the
// category's naming patterns. It returns nil when the name does not match.
func parseFolderName(name, category string, personal bool) *parsed {
	client := func(match string) string {
		if personal {
			return projects.PersonalClientName
		}
		return match
	}

	switch category {
	case "Visual":
		if m := vjClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeVJ, Personal: personal}
		}
		if m := vjRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: projects.TypeVJ, Personal: true}
		}
		if m := fxClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeVFX, Personal: personal}
		}
		if m := fxRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: projects.TypeVFX, Personal: true}
		}
		if m := dateClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeGD, Personal: personal}
		}

	case "Physical":
		if m := printRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypePhysical, Personal: personal}
		}
		// Older archives used a Technical_ prefix.
		if m := technicalRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: projects.TypePhysical, Personal: true}
		}

	case "RealTime":
		if m := godotRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeGodot, Personal: personal}
		}
		if m := tdRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeTD, Personal: personal}
		}
		if m := fxClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: "RealTime", Personal: personal}
		}
		if m := fxRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: "RealTime", Personal: true}
		}
		if m := dateOnlyRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: "RealTime", Personal: true}
		}

	case "Audio":
		if m := dateClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: projects.TypeAudio, Personal: personal}
		}
		if m := dateOnlyRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: projects.TypeAudio, Personal: true}
		}

	case "Photo":
		if m := dateOnlyRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: "Photo", Project: m[2], Type: projects.TypePhoto, Personal: personal}
		}

	case "Web":
		if m := dateOnlyRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: "Web", Project: m[2], Type: projects.TypeWeb, Personal: personal}
		}
		// Web folders often carry no date prefix at all.
		return &parsed{
			Date:     time.Now().Format("2006-01-02"),
			Client:   "Web",
			Project:  name,
			Type:     projects.TypeWeb,
			Personal: personal,
		}

	default:
		// Custom categories fall back to the generic naming forms.
		if m := dateClientRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: client(m[2]), Project: m[3], Type: category, Personal: personal}
		}
		if m := dateOnlyRe.FindStringSubmatch(name); m != nil {
			return &parsed{Date: m[1], Client: projects.PersonalClientName, Project: m[2], Type: category, Personal: true}
		}
	}
	return nil
}
