package winpath

import (
	"runtime"
	"strings"
)

// Rules captures the drive layout used to canonicalize stored paths.
type Rules struct {
	// Aliases are drive prefixes (e.g. "I:", "P:") that mirror the active
	// base via subst-style mapping and are collapsed during Normalize.
	Aliases []string
	// ActiveBase is the real path behind the aliases (e.g. `D:\_work\Active`).
	ActiveBase string
	// WorkDrive is the drive letter presented to the user (e.g. "I:").
	WorkDrive string
}

// Normalize rewrites a path into the canonical form used for database
// storage: backslashes, WSL mounts resolved, alias drives collapsed into the
// active base. Rooted non-mount paths (native installs) pass through with
// only the trailing separator trimmed. Empty input is returned unchanged.
func (r Rules) Normalize(path string) string {
	if path == "" {
		return path
	}

	// WSL mounts first: /mnt/d/_work/... -> D:\_work\...
	if strings.HasPrefix(path, "/mnt/") {
		parts := strings.Split(path, "/")
		if len(parts) >= 3 && parts[2] != "" {
			drive := strings.ToUpper(parts[2])
			rest := strings.Join(parts[3:], `\`)
			path = drive + `:\` + rest
		}
	} else if strings.HasPrefix(path, "/") {
		if path == "/" {
			return path
		}
		return strings.TrimSuffix(path, "/")
	}

	path = strings.ReplaceAll(path, "/", `\`)

	upper := strings.ToUpper(path)
	for _, alias := range r.Aliases {
		prefix := strings.ToUpper(strings.TrimSuffix(alias, `\`))
		if !strings.HasSuffix(prefix, ":") {
			prefix += ":"
		}
		if strings.HasPrefix(upper, prefix+`\`) {
			return r.joinBase(path[len(prefix)+1:])
		}
		if upper == prefix || upper == prefix+`\` {
			return r.activeBase()
		}
	}
	return path
}

func (r Rules) joinBase(rest string) string {
	base := r.activeBase()
	if rest == "" {
		return base
	}
	if strings.HasPrefix(base, "/") {
		return base + "/" + strings.ReplaceAll(rest, `\`, "/")
	}
	return base + `\` + rest
}

// ToWorkDrive converts a stored active-base path into the mapped work drive
// form used for display and folder opening. Paths outside the active base are
// returned unchanged, as is everything when the active base is a rooted path
// (native installs have no subst drive).
func (r Rules) ToWorkDrive(path string) string {
	if path == "" || r.WorkDrive == "" {
		return path
	}
	base := r.activeBase()
	if strings.HasPrefix(base, "/") {
		return path
	}
	candidate := strings.ReplaceAll(path, "/", `\`)
	if !strings.HasPrefix(strings.ToLower(candidate), strings.ToLower(base)) {
		return path
	}
	rest := candidate[len(base):]
	// The match must end on a separator. A sibling folder whose name merely
	// starts with the base (Active_old next to Active) is outside the mapping.
	if rest != "" && rest[0] != '\\' {
		return path
	}
	rest = strings.TrimLeft(rest, `\`)
	drive := strings.TrimSuffix(r.WorkDrive, `\`)
	if rest == "" {
		return drive
	}
	return drive + `\` + strings.ReplaceAll(rest, "/", `\`)
}

// ToPlatform converts a Windows-style path into a form usable on the current
// platform. On Windows the input is returned as-is; elsewhere drive letters
// map onto /mnt mounts (D:\x -> /mnt/d/x).
func (r Rules) ToPlatform(path string) string {
	if runtime.GOOS == "windows" {
		return path
	}
	return ToWSL(path)
}

// ToWSL rewrites a Windows path into its /mnt equivalent. Non-drive paths are
// returned with separators normalized only.
func ToWSL(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	if len(p) >= 2 && p[1] == ':' {
		drive := strings.ToLower(p[:1])
		rest := strings.TrimPrefix(p[2:], "/")
		if rest == "" {
			return "/mnt/" + drive
		}
		return "/mnt/" + drive + "/" + rest
	}
	return p
}

// Join appends path segments to a canonical base using the base's separator
// style. Empty segments are skipped.
func Join(base string, elems ...string) string {
	sep := `\`
	if strings.HasPrefix(base, "/") {
		sep = "/"
	}
	joined := strings.TrimSuffix(base, sep)
	for _, elem := range elems {
		elem = strings.Trim(strings.ReplaceAll(strings.ReplaceAll(elem, "/", sep), `\`, sep), sep)
		if elem == "" {
			continue
		}
		joined += sep + elem
	}
	return joined
}

// Base returns the final path segment regardless of separator style.
func Base(path string) string {
	trimmed := strings.TrimRight(path, `\/`)
	if idx := strings.LastIndexAny(trimmed, `\/`); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// Display renders a stored path with forward slashes for cleaner output.
func Display(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// DriveOf returns the uppercase drive prefix ("D:") of a Windows path, or an
// empty string when the path has no drive component.
func DriveOf(path string) string {
	p := strings.ReplaceAll(path, "/", `\`)
	if len(p) >= 2 && p[1] == ':' {
		return strings.ToUpper(p[:2])
	}
	return ""
}

// IsWindowsPath reports whether the value looks like a drive-letter path.
func IsWindowsPath(path string) bool {
	return DriveOf(path) != ""
}

func (r Rules) activeBase() string {
	if strings.HasPrefix(r.ActiveBase, "/") {
		return strings.TrimSuffix(r.ActiveBase, "/")
	}
	base := strings.ReplaceAll(r.ActiveBase, "/", `\`)
	return strings.TrimSuffix(base, `\`)
}
