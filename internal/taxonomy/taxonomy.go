// Package taxonomy is the static catalogue of professional domains the
// assessment engine scores answers against. Everything here is read-only.
package taxonomy

import (
	"strings"

	"github.com/spigell/orienta/internal/similarity"
)

// Role is the finest level of the area -> sub-area -> role path.
type Role struct {
	Name     string
	Keywords []string
}

// SubArea groups roles inside a domain.
type SubArea struct {
	Name     string
	Keywords []string
	Roles    []Role
}

// Domain is one professional category of the taxonomy.
type Domain struct {
	Key      string
	Label    string
	Keywords []string
	SubAreas []SubArea

	// Used by the deterministic recommendations.
	Sector         string
	EducationLevel string
	Careers        []string
	Skills         []string
	StudyPaths     []string
}

var (
	byKey   map[string]*Domain
	byLabel map[string]*Domain
)

func init() {
	byKey = make(map[string]*Domain, len(domains))
	byLabel = make(map[string]*Domain, len(domains))
	for i := range domains {
		byKey[domains[i].Key] = &domains[i]
		byLabel[similarity.Normalize(domains[i].Label)] = &domains[i]
	}
}

// All returns every domain in catalogue order.
func All() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// Keys returns the keys of every domain in catalogue order.
func Keys() []string {
	keys := make([]string, 0, len(domains))
	for _, d := range domains {
		keys = append(keys, d.Key)
	}
	return keys
}

// Required returns the keys of the domains that must be explored before the
// interview may specialize.
func Required() []string {
	out := make([]string, len(required))
	copy(out, required)
	return out
}

// ByKey looks a domain up by its key.
func ByKey(key string) (Domain, bool) {
	d, ok := byKey[strings.TrimSpace(key)]
	if !ok {
		return Domain{}, false
	}
	return *d, true
}

// ByLabel looks a domain up by its display label, ignoring case and accents.
func ByLabel(label string) (Domain, bool) {
	d, ok := byLabel[similarity.Normalize(label)]
	if !ok {
		return Domain{}, false
	}
	return *d, true
}

// Label returns the display label for key, or key itself when unknown.
func Label(key string) string {
	if d, ok := byKey[key]; ok {
		return d.Label
	}
	return key
}

// SubArea returns the named sub-area of d.
func (d Domain) SubArea(name string) (SubArea, bool) {
	want := similarity.Normalize(name)
	for _, sub := range d.SubAreas {
		if similarity.Normalize(sub.Name) == want {
			return sub, true
		}
	}
	return SubArea{}, false
}
