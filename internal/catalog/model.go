package catalog

import (
	"encoding/json"
	"time"
)

// Resource is one normalized QGIS Hub catalog item. Resources are value
// objects: created once per catalog refresh, immutable afterward, and
// discarded wholesale on the next refresh.
type Resource struct {
	UUID          string
	Name          string // trimmed; full value, never truncated
	Creator       string
	Type          string // open-ended tag, not a closed enum
	Subtypes      []string
	UploadDate    time.Time
	DownloadCount int
	Description   string // HTML-safe rich text, opaque here
	Dependencies  []string
	File          string // downloadable asset URL
	Thumbnail     string // preview image URL, possibly empty
}

// Subtype is the legacy single-subtype accessor: the first subtype, or ""
// when the resource carries none.
func (r Resource) Subtype() string {
	if len(r.Subtypes) == 0 {
		return ""
	}
	return r.Subtypes[0]
}

// DisplayName is the presentation form of Name: truncated to 50 runes plus
// "..." when longer. The full Name is retained for tooltips, searches, and
// file paths.
func (r Resource) DisplayName() string {
	runes := []rune(r.Name)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return r.Name
}

// Tooltip is the "{name} by {creator}" string shown on hover in list views.
func (r Resource) Tooltip() string {
	return r.Name + " by " + r.Creator
}

// Snapshot is one immutable, fully fetched copy of the remote listing plus
// its pagination metadata. The Store owns replacement; consumers only read.
type Snapshot struct {
	Total     int
	Next      string
	Previous  string
	Resources []Resource
	// Skipped counts raw records dropped during normalization.
	Skipped int
}

// ByUUID returns the resource with the given uuid, or nil.
func (s *Snapshot) ByUUID(uuid string) *Resource {
	for i := range s.Resources {
		if s.Resources[i].UUID == uuid {
			return &s.Resources[i]
		}
	}
	return nil
}

// listingResponse mirrors the remote listing endpoint body.
type listingResponse struct {
	Total    int           `json:"total"`
	Next     string        `json:"next"`
	Previous string        `json:"previous"`
	Results  []RawResource `json:"results"`
}

// RawResource is one wire-format record, kept loose enough to cover both
// known API schema revisions. Only Normalize should consume it.
type RawResource struct {
	UUID          string          `json:"uuid"`
	Name          string          `json:"name"`
	Creator       string          `json:"creator"`
	Type          string          `json:"resource_type"`
	Subtypes      json.RawMessage `json:"resource_subtypes"` // new schema: array (or bare scalar)
	Subtype       string          `json:"resource_subtype"`  // legacy schema: single string
	UploadDate    string          `json:"upload_date"`
	DownloadCount int             `json:"download_count"`
	Description   string          `json:"description"`
	Dependencies  []string        `json:"dependencies"`
	File          string          `json:"file"`
	Thumbnail     string          `json:"thumbnail"`
}
