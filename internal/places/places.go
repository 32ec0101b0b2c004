// Package places holds the named locations that can stand in for a lat/lon.
package places

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naveenspark/tilegrab/pkg/domain"
)

// Place is a named location.
type Place struct {
	Slug     string
	Name     string
	Location domain.LatLon
}

var all = []Place{
	{"banyan-court-park", "Lahaina Banyan Court Park", domain.LatLon{Lat: 20.871660992482585, Lon: -156.6779217812668}},
	{"historic-district", "Lahaina Historic District", domain.LatLon{Lat: 20.875698021019634, Lon: -156.67665500607714}},
	{"jodo-mission", "Lahaina Jodo Mission", domain.LatLon{Lat: 20.882715610556918, Lon: -156.68738910041318}},
	{"kamehameha-iii-school", "Kamehameha III School", domain.LatLon{Lat: 20.87048936379182, Lon: -156.67687099268292}},
	{"front-street", "Lahaina's Front Street", domain.LatLon{Lat: 20.872279930692464, Lon: -156.67749607658604}},
	{"maui-theatre", "Ulalena at Maui Theatre", domain.LatLon{Lat: 20.876752716785354, Lon: -156.6799569299401}},
}

// All returns every known place sorted by slug.
func All() []Place {
	out := make([]Place, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Lookup finds a place by slug, ignoring case.
func Lookup(slug string) (Place, error) {
	for _, p := range all {
		if strings.EqualFold(p.Slug, slug) {
			return p, nil
		}
	}
	slugs := make([]string, 0, len(all))
	for _, p := range All() {
		slugs = append(slugs, p.Slug)
	}
	return Place{}, fmt.Errorf("unknown place %q (known: %s)", slug, strings.Join(slugs, ", "))
}
