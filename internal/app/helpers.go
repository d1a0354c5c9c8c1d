package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/qgis-contrib/hubctl/internal/catalog"
)

// loadSnapshot fetches or re-reads the listing and warns about conditions
// that deserve eyes but should not stop the command.
func loadSnapshot(ctx context.Context, force bool) (*catalog.Snapshot, error) {
	snap, err := store.Listing(ctx, force)
	if err != nil {
		return nil, err
	}
	if snap.Skipped > 0 {
		warn("Skipped %d malformed record(s) in the listing", snap.Skipped)
	}
	if snap.Next != "" {
		// The page limit is supposed to cover the whole catalog in one page.
		warn("Listing reports another page (limit too small for %d resources?)", snap.Total)
	}
	return snap, nil
}

// findResource resolves a uuid or (case-insensitive) exact name to one
// resource from the current snapshot.
func findResource(snap *catalog.Snapshot, idOrName string) (*catalog.Resource, error) {
	if r := snap.ByUUID(idOrName); r != nil {
		return r, nil
	}

	var matches []*catalog.Resource
	for i := range snap.Resources {
		if strings.EqualFold(snap.Resources[i].Name, idOrName) {
			matches = append(matches, &snap.Resources[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no resource with uuid or name %q (try 'hubctl search')", idOrName)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.UUID
		}
		return nil, fmt.Errorf("name %q is ambiguous, use a uuid: %s", idOrName, strings.Join(names, ", "))
	}
}
