package evidence

import (
	"laporantdx/backend/internal/config"
	"strconv"
	"strings"
	"unicode"
)

const fallbackName = "bukti"

const unsafeChars = `/\:*?"<>|#%&{}$!'@+=` + "`"

// Sanitize turns a free-text label into a single safe object-name component:
// path separators, URL-hostile and control characters are dropped, whitespace
// runs become one underscore, and the result is capped.
func Sanitize(label string) string {
	if out := clean(label); out != "" {
		return out
	}
	return fallbackName
}

func clean(label string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range label {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case unicode.IsControl(r), strings.ContainsRune(unsafeChars, r):
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	out := b.String()
	for strings.Contains(out, "..") {
		out = strings.ReplaceAll(out, "..", ".")
	}
	out = strings.Trim(out, "._-")

	if runes := []rune(out); len(runes) > config.EvidenceNameMaxRunes {
		out = strings.TrimRight(string(runes[:config.EvidenceNameMaxRunes]), "._-")
	}
	return out
}

// ObjectName is the deterministic name for an evidence image. attempt > 1
// appends a numeric suffix, used when the plain name is already taken.
func ObjectName(folder, category, timeLabel string, attempt int) string {
	base := Sanitize(category) + "_" + Sanitize(timeLabel)
	if attempt > 1 {
		base += "_" + strconv.Itoa(attempt)
	}
	name := base + ".jpg"
	if folder = cleanFolder(folder); folder != "" {
		return folder + "/" + name
	}
	return name
}

// cleanFolder sanitizes each segment and drops the ones that reduce to
// nothing, so "..", "." and empty segments cannot escape the prefix.
func cleanFolder(folder string) string {
	parts := strings.Split(folder, "/")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := clean(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "/")
}
