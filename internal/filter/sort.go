package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/qgis-contrib/hubctl/internal/catalog"
)

// Column identifies a sortable attribute of the resource list.
type Column string

const (
	ColumnName      Column = "name"
	ColumnCreator   Column = "creator"
	ColumnType      Column = "type"
	ColumnDownloads Column = "downloads"
	ColumnUploaded  Column = "uploaded"
)

// Columns lists the sortable columns in display order.
var Columns = []Column{ColumnName, ColumnCreator, ColumnType, ColumnDownloads, ColumnUploaded}

// ParseColumn resolves a user-supplied column name.
func ParseColumn(s string) (Column, error) {
	for _, c := range Columns {
		if string(c) == strings.ToLower(s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown sort column %q (one of: name, creator, type, downloads, uploaded)", s)
}

// Cell pairs what a column shows with what it sorts by. The two are
// independent: "42 downloads" displays while int64(42) compares, a pretty
// date displays while the timestamp compares.
type Cell struct {
	Display string
	Key     interface{}
}

// CellFor produces the display string and sort key of a resource for a
// column.
func CellFor(r catalog.Resource, col Column) Cell {
	switch col {
	case ColumnCreator:
		return Cell{Display: r.Creator, Key: r.Creator}
	case ColumnType:
		return Cell{Display: r.Type, Key: r.Type}
	case ColumnDownloads:
		return Cell{Display: fmt.Sprintf("%d downloads", r.DownloadCount), Key: int64(r.DownloadCount)}
	case ColumnUploaded:
		return Cell{Display: r.UploadDate.Format("2006-01-02"), Key: r.UploadDate}
	default:
		return Cell{Display: r.DisplayName(), Key: r.Name}
	}
}

// Compare orders two cells by their sort keys, never their display
// strings. Mismatched or unsupported key types fall back to natural string
// comparison of the keys; it never panics on an unexpected type.
func Compare(a, b Cell) int {
	switch ak := a.Key.(type) {
	case int64:
		if bk, ok := b.Key.(int64); ok {
			switch {
			case ak < bk:
				return -1
			case ak > bk:
				return 1
			}
			return 0
		}
	case time.Time:
		if bk, ok := b.Key.(time.Time); ok {
			switch {
			case ak.Before(bk):
				return -1
			case ak.After(bk):
				return 1
			}
			return 0
		}
	case string:
		if bk, ok := b.Key.(string); ok {
			return strings.Compare(strings.ToLower(ak), strings.ToLower(bk))
		}
	}
	return strings.Compare(fmt.Sprint(a.Key), fmt.Sprint(b.Key))
}

// Sort returns a new slice ordered by the column's sort key. The input is
// left untouched: sorting is a view over the immutable snapshot.
func Sort(resources []catalog.Resource, col Column, descending bool) []catalog.Resource {
	out := make([]catalog.Resource, len(resources))
	copy(out, resources)
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(CellFor(out[i], col), CellFor(out[j], col))
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}
