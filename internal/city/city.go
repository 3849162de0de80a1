package city

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Config holds the starting conditions of a city.
type Config struct {
	Resources  map[string]float64
	Population int
	Blueprints []Blueprint
}

// City owns the resource stocks, the population and every placed building.
// Stocks never go negative and assigned workers never exceed the population.
type City struct {
	resources  Resources
	population int
	workers    int

	buildings []*Building
	byID      map[uuid.UUID]*Building

	catalog map[string]Blueprint
	order   []string

	log logrus.FieldLogger

	// OnChange is called after stocks, buildings or workers change.
	OnChange func()
}

// New creates a city from its starting configuration.
func New(cfg Config, log logrus.FieldLogger) (*City, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Population < 0 {
		return nil, fmt.Errorf("invalid population: %d", cfg.Population)
	}

	c := &City{
		resources:  ResourcesFromFloats(cfg.Resources),
		population: cfg.Population,
		byID:       make(map[uuid.UUID]*Building),
		catalog:    make(map[string]Blueprint),
		log:        log.WithField("component", "city"),
	}

	for name, amount := range c.resources {
		if amount.IsNegative() {
			return nil, fmt.Errorf("invalid starting amount for %s: %s", name, amount)
		}
	}

	for _, bp := range cfg.Blueprints {
		if err := bp.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.catalog[bp.Name]; exists {
			return nil, fmt.Errorf("duplicate blueprint %s", bp.Name)
		}
		c.catalog[bp.Name] = bp
		c.order = append(c.order, bp.Name)
	}

	return c, nil
}

func (c *City) notifyChange() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// CanAfford reports whether every positive amount in cost is covered.
func (c *City) CanAfford(cost Resources) bool {
	for name, amount := range cost {
		if !amount.IsPositive() {
			continue
		}
		if c.resources[name].LessThan(amount) {
			return false
		}
	}
	return true
}

// Spend deducts cost if the city can afford all of it. Either every amount
// is deducted or none is.
func (c *City) Spend(cost Resources) bool {
	if !c.CanAfford(cost) {
		return false
	}
	for name, amount := range cost {
		if !amount.IsPositive() {
			continue
		}
		c.resources[name] = c.resources[name].Sub(amount)
	}
	c.notifyChange()
	return true
}

// Gain adds the positive amounts of r to the stocks.
func (c *City) Gain(r Resources) {
	changed := false
	for name, amount := range r {
		if !amount.IsPositive() {
			continue
		}
		c.resources[name] = c.resources[name].Add(amount)
		changed = true
	}
	if changed {
		c.notifyChange()
	}
}

// Build pays for and places a new building. The building starts unstaffed
// and paused.
func (c *City) Build(bp Blueprint, now time.Duration) (*Building, bool) {
	if !c.Spend(bp.Cost) {
		c.log.WithField("blueprint", bp.Name).Debugf("Cannot afford %s", bp.Cost)
		return nil, false
	}

	b := NewBuilding(bp, now)
	c.buildings = append(c.buildings, b)
	c.byID[b.ID] = b

	c.log.WithFields(logrus.Fields{"blueprint": bp.Name, "id": b.ID}).Info("Building placed")
	c.notifyChange()
	return b, true
}

// Production advances every building to now, adds whatever they yield to the
// stocks and returns the combined yield.
func (c *City) Production(now time.Duration) Resources {
	total := make(Resources)
	for _, b := range c.buildings {
		if yield, ok := b.Produce(now); ok {
			total.Add(yield)
		}
	}
	if len(total) > 0 {
		c.Gain(total)
		c.log.Debugf("Produced %s", total)
	}
	return total
}

// AssignWorker moves an idle citizen into the building. It fails when the
// building is unknown or full, or nobody is idle.
func (c *City) AssignWorker(id uuid.UUID, now time.Duration) bool {
	b, ok := c.byID[id]
	if !ok {
		return false
	}
	if c.workers >= c.population {
		c.log.Debug("No idle citizens to assign")
		return false
	}
	if !b.AssignWorker(now) {
		return false
	}
	c.workers++
	c.notifyChange()
	return true
}

// RemoveWorker releases a worker from the building back to the idle pool.
func (c *City) RemoveWorker(id uuid.UUID, now time.Duration) bool {
	b, ok := c.byID[id]
	if !ok {
		return false
	}
	if !b.RemoveWorker(now) {
		return false
	}
	c.workers--
	c.notifyChange()
	return true
}

// Building looks up a placed building.
func (c *City) Building(id uuid.UUID) (*Building, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Buildings returns the placed buildings in construction order.
func (c *City) Buildings() []*Building {
	return append([]*Building(nil), c.buildings...)
}

// Blueprint looks up a blueprint by name.
func (c *City) Blueprint(name string) (Blueprint, bool) {
	bp, ok := c.catalog[name]
	return bp, ok
}

// Blueprints returns the catalog in configuration order.
func (c *City) Blueprints() []Blueprint {
	out := make([]Blueprint, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.catalog[name])
	}
	return out
}

// Resources returns a copy of the current stocks.
func (c *City) Resources() Resources {
	return c.resources.Clone()
}

// Amount returns the stock of a single resource.
func (c *City) Amount(name string) decimal.Decimal {
	return c.resources[name]
}

// Population returns the number of citizens.
func (c *City) Population() int { return c.population }

// Workers returns the number of citizens assigned to buildings.
func (c *City) Workers() int { return c.workers }

// Idle returns the number of unassigned citizens.
func (c *City) Idle() int { return c.population - c.workers }

// Report renders a plain-text summary of the city at now.
func (c *City) Report(now time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Population: %d (%d working, %d idle)\n", c.population, c.workers, c.Idle())
	fmt.Fprintf(&sb, "Resources: %s\n", c.resources)
	fmt.Fprintf(&sb, "Buildings: %d\n", len(c.buildings))
	for _, b := range c.buildings {
		state := "running"
		if b.Paused() {
			state = "paused"
		}
		fmt.Fprintf(&sb, "- %s %s: %d/%d workers, %s, %.0f%%\n",
			b.Blueprint.Name, b.ID.String()[:8], b.Workers(), b.Blueprint.MaxWorkers, state, b.Progress(now)*100)
	}
	return sb.String()
}
