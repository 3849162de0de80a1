// Package ui mounts at most one tile-bound panel at a time and routes clicks
// and panel events back to the world.
package ui

import (
	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/world"
)

// ClickEvent is a click on the map surface, in screen pixels.
type ClickEvent struct {
	X, Y int
}

// BuildRequest asks for a building to be placed on the bound tile.
type BuildRequest struct {
	Blueprint string
}

// ComponentEvents are the callbacks a component may fire. Nil callbacks are
// skipped.
type ComponentEvents struct {
	OnClose        func()
	OnBuild        func(BuildRequest)
	OnAddWorker    func()
	OnRemoveWorker func()
}

// Component is a panel that can be bound to a tile.
type Component interface {
	Key() string
	Init(data any)
	Update(data any)
	Subscribe(events ComponentEvents) (unsubscribe func())
	Contains(x, y int) bool
	Click(x, y int)
	Draw(screen render.Image)
}

// Binding is the tile side of a mount: it fills the component on open and
// hands back the tile state on close.
type Binding interface {
	Component() string
	Open(c Component, state world.TileState) bool
	Refresh(c Component)
	Close(c Component) world.TileState
}

// Handlers receive the manager's outbound events. Nil handlers are skipped.
type Handlers struct {
	OnClick        func(ClickEvent)
	OnClose        func(world.TileState)
	OnBuild        func(world.TileState, BuildRequest)
	OnAddWorker    func(world.TileState)
	OnRemoveWorker func(world.TileState)
}

type mount struct {
	binding     Binding
	component   Component
	state       world.TileState
	unsubscribe func()
}

// Manager owns the Unmounted/Mounted state machine. Opening while mounted
// closes the current binding first.
type Manager struct {
	components map[string]Component
	handlers   Handlers
	active     *mount
	log        logrus.FieldLogger
}

// NewManager creates an unmounted manager.
func NewManager(handlers Handlers, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		components: make(map[string]Component),
		handlers:   handlers,
		log:        log.WithField("component", "ui"),
	}
}

// SetHandlers replaces the outbound handlers.
func (m *Manager) SetHandlers(handlers Handlers) {
	m.handlers = handlers
}

// Register makes a component available under its key.
func (m *Manager) Register(c Component) {
	m.components[c.Key()] = c
}

// Mounted reports whether a binding is active.
func (m *Manager) Mounted() bool {
	return m.active != nil
}

// Active returns the mounted component and its tile state.
func (m *Manager) Active() (Component, world.TileState, bool) {
	if m.active == nil {
		return nil, world.TileState{}, false
	}
	return m.active.component, m.active.state, true
}

// Open binds the tile to its component. It fails, leaving the manager
// unmounted, when the component key is unknown or the tile refuses.
func (m *Manager) Open(b Binding, state world.TileState) bool {
	if m.active != nil {
		m.log.Debug("Closing mounted panel before opening another")
		m.Close()
	}

	key := b.Component()
	c, ok := m.components[key]
	if !ok {
		m.log.WithField("key", key).Warn("No component registered for key")
		return false
	}

	active := &mount{binding: b, component: c, state: state}
	active.unsubscribe = c.Subscribe(ComponentEvents{
		OnClose: func() {
			if m.active == active {
				m.Close()
			}
		},
		OnBuild: func(req BuildRequest) {
			if m.active == active && m.handlers.OnBuild != nil {
				m.handlers.OnBuild(active.state, req)
			}
		},
		OnAddWorker: func() {
			if m.active == active && m.handlers.OnAddWorker != nil {
				m.handlers.OnAddWorker(active.state)
			}
		},
		OnRemoveWorker: func() {
			if m.active == active && m.handlers.OnRemoveWorker != nil {
				m.handlers.OnRemoveWorker(active.state)
			}
		},
	})

	if !b.Open(c, state) {
		active.unsubscribe()
		m.log.WithFields(logrus.Fields{"key": key, "col": state.Col, "row": state.Row}).Warn("Tile refused to open panel")
		return false
	}

	m.active = active
	m.log.WithFields(logrus.Fields{"key": key, "col": state.Col, "row": state.Row}).Debug("Mounted panel")
	return true
}

// Close unbinds the active panel and reports the tile's final state, which
// is also passed to Handlers.OnClose. It returns false when nothing was
// mounted.
func (m *Manager) Close() (world.TileState, bool) {
	if m.active == nil {
		return world.TileState{}, false
	}

	active := m.active
	m.active = nil

	state := active.binding.Close(active.component)
	active.unsubscribe()

	m.log.WithFields(logrus.Fields{"key": active.component.Key(), "col": state.Col, "row": state.Row}).Debug("Unmounted panel")
	if m.handlers.OnClose != nil {
		m.handlers.OnClose(state)
	}
	return state, true
}

// Refresh asks the bound tile to push fresh data to its component.
func (m *Manager) Refresh() {
	if m.active == nil {
		return
	}
	m.active.binding.Refresh(m.active.component)
}

// UpdateState replaces the tile state carried by the active mount.
func (m *Manager) UpdateState(state world.TileState) {
	if m.active != nil {
		m.active.state = state
	}
}

// HandleClick routes a click to the mounted panel when it lands on it;
// otherwise the click goes to the map.
func (m *Manager) HandleClick(x, y int) {
	if m.active != nil && m.active.component.Contains(x, y) {
		m.active.component.Click(x, y)
		return
	}
	if m.handlers.OnClick != nil {
		m.handlers.OnClick(ClickEvent{X: x, Y: y})
	}
}

// Draw draws the mounted panel.
func (m *Manager) Draw(screen render.Image) {
	if m.active != nil {
		m.active.component.Draw(screen)
	}
}
