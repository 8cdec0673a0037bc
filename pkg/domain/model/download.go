package model

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	httpURLPattern = regexp.MustCompile(`^https?://`)
	unsafeChars    = regexp.MustCompile(`[^\w.-]`)
	imageExt       = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)
)

// IsDownloadURL is the prefix test applied to pasted cell values.
func IsDownloadURL(value string) bool {
	return httpURLPattern.MatchString(value)
}

// FetchResult is the outcome of a single image fetch. Non-2xx statuses are
// reported here rather than as errors so callers can log and move on.
type FetchResult struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the fetch returned a 2xx status.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SanitizeFileName replaces every character outside [\w.-] with an
// underscore.
func SanitizeFileName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// ExtensionForContentType derives a file extension from the response
// content type. Unrecognized types default to jpg.
func ExtensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return "jpg"
	}
}

// FileNameFromLabel derives a filename from a name-source cell value.
// The caller must pass a trimmed, non-empty label.
func FileNameFromLabel(label, contentType string) string {
	return SanitizeFileName(label) + "." + ExtensionForContentType(contentType)
}

// FileNameFromURL derives a filename from the URL itself: the segment after
// the final slash with any querystring stripped, sanitized, falling back to
// image_row_<row> when nothing is left. A content-type extension is appended
// only when the base does not already carry a recognized image extension.
func FileNameFromURL(rawURL string, row int, contentType string) string {
	base := rawURL
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	base = SanitizeFileName(base)
	if base == "" {
		base = "image_row_" + strconv.Itoa(row)
	}
	if !imageExt.MatchString(base) {
		base += "." + ExtensionForContentType(contentType)
	}
	return base
}
