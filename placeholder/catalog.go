package placeholder

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Catalog maps placeholder names to the locations they occur at.
type Catalog map[string][]Location

// Add records that name occurs at loc. Recording the same pair twice is a
// no-op.
func (c Catalog) Add(name string, loc Location) {
	if slices.Contains(c[name], loc) {
		return
	}
	c[name] = append(c[name], loc)
}

// AddAll records that every one of names occurs at loc.
func (c Catalog) AddAll(loc Location, names ...string) {
	for _, name := range names {
		c.Add(name, loc)
	}
}

// Names returns the placeholder names in sorted order. Rendering follows
// this order.
func (c Catalog) Names() []string {
	names := maps.Keys(c)
	slices.Sort(names)
	return names
}

func (c Catalog) Locations(name string) []Location {
	return c[name]
}

func (c Catalog) Len() int {
	return len(c)
}
