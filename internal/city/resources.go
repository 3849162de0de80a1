// Package city implements the settlement economy: named resource stocks,
// buildings that produce on a timer while staffed, and the city that owns
// them.
package city

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Resources maps a resource name (food, wood, rock...) to an amount.
type Resources map[string]decimal.Decimal

// ResourcesFromFloats converts configuration amounts into Resources.
func ResourcesFromFloats(amounts map[string]float64) Resources {
	r := make(Resources, len(amounts))
	for name, amount := range amounts {
		r[name] = decimal.NewFromFloat(amount)
	}
	return r
}

// Get returns the amount of a resource (zero if absent).
func (r Resources) Get(name string) decimal.Decimal {
	return r[name]
}

// Clone returns an independent copy.
func (r Resources) Clone() Resources {
	c := make(Resources, len(r))
	for name, amount := range r {
		c[name] = amount
	}
	return c
}

// Add merges other into r.
func (r Resources) Add(other Resources) {
	for name, amount := range other {
		r[name] = r[name].Add(amount)
	}
}

// IsZero reports whether every amount is zero.
func (r Resources) IsZero() bool {
	for _, amount := range r {
		if !amount.IsZero() {
			return false
		}
	}
	return true
}

// Names returns the resource names in sorted order.
func (r Resources) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String formats the resources as "food: 10, wood: 20".
func (r Resources) String() string {
	parts := make([]string, 0, len(r))
	for _, name := range r.Names() {
		parts = append(parts, name+": "+r[name].String())
	}
	return strings.Join(parts, ", ")
}
