package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Normalize converts one raw record into a Resource. It is a pure function:
// no I/O, no access to shared state.
//
// Subtype handling covers both API schema revisions: a resource_subtypes
// array (bare scalars coerced into one-element lists) and the legacy
// resource_subtype scalar. The canonical form is always a non-nil slice, so
// nothing downstream branches on API version.
func Normalize(raw RawResource) (Resource, error) {
	if raw.UUID == "" {
		return Resource{}, fmt.Errorf("record without uuid (name %q)", raw.Name)
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Resource{}, fmt.Errorf("record %s: empty name", raw.UUID)
	}
	if raw.Type == "" {
		return Resource{}, fmt.Errorf("record %s: empty resource_type", raw.UUID)
	}

	uploadDate, err := ParseUploadDate(raw.UploadDate)
	if err != nil {
		return Resource{}, fmt.Errorf("record %s: %w", raw.UUID, err)
	}

	return Resource{
		UUID:          raw.UUID,
		Name:          name,
		Creator:       strings.TrimSpace(raw.Creator),
		Type:          raw.Type,
		Subtypes:      normalizeSubtypes(raw),
		UploadDate:    uploadDate,
		DownloadCount: raw.DownloadCount,
		Description:   raw.Description,
		Dependencies:  raw.Dependencies,
		File:          raw.File,
		Thumbnail:     raw.Thumbnail,
	}, nil
}

// normalizeSubtypes resolves the dual-path subtype schema. The new array
// field wins when present; the legacy scalar is wrapped if non-empty.
func normalizeSubtypes(raw RawResource) []string {
	if len(raw.Subtypes) > 0 && string(raw.Subtypes) != "null" {
		var list []string
		if err := json.Unmarshal(raw.Subtypes, &list); err == nil {
			if list == nil {
				return []string{}
			}
			return list
		}
		var single string
		if err := json.Unmarshal(raw.Subtypes, &single); err == nil && single != "" {
			return []string{single}
		}
		return []string{}
	}
	if raw.Subtype != "" {
		return []string{raw.Subtype}
	}
	return []string{}
}

// uploadDateLayouts covers the stamps the Hub has emitted over time: full
// RFC 3339 with offset, fractional seconds, and naive (offset-less) values.
var uploadDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseUploadDate parses an ISO-8601 stamp. A trailing literal 'Z' is
// rewritten to "+00:00" before parsing, mirroring how the plugin supported
// date parsers that predate 'Z' suffix handling.
func ParseUploadDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty upload_date")
	}
	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+00:00"
	}
	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable upload_date %q", s)
}

// NormalizeAll batch-normalizes a listing's records. Malformed records are
// skipped, not fatal: one bad record must not hide the rest of the catalog.
// The skipped count is reported so callers can log it.
func NormalizeAll(raws []RawResource) ([]Resource, int) {
	resources := make([]Resource, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		r, err := Normalize(raw)
		if err != nil {
			skipped++
			continue
		}
		resources = append(resources, r)
	}
	return resources, skipped
}
