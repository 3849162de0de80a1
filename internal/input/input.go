// Package input turns raw key, mouse and touch state into viewport
// displacement.
package input

import (
	"image"
	"time"

	"chosenoffset.com/tilecity/internal/render"
)

// Device reports whether the user is scrolling and by how much.
type Device interface {
	// Poll samples the underlying input state. Call once per step.
	Poll()
	IsMoving() bool
	// Distance returns the displacement in pixels for a step of delta.
	Distance(delta time.Duration) (dx, dy int)
}

// direction is a per-axis unit direction in {-1, 0, 1}.
type direction struct {
	x, y int
}

func (d direction) moving() bool {
	return d.x != 0 || d.y != 0
}

// distance scales the direction by speed (pixels per millisecond) over
// delta.
func (d direction) distance(delta time.Duration, speed float64) (dx, dy float64) {
	ms := float64(delta) / float64(time.Millisecond)
	return float64(d.x) * ms * speed, float64(d.y) * ms * speed
}

// carry accumulates sub-pixel movement on one axis.
type carry float64

// add adds v and returns the whole pixels, keeping the fraction.
func (c *carry) add(v float64) int {
	total := float64(*c) + v
	n := int(total)
	*c = carry(total - float64(n))
	return n
}

// Keyboard scrolls with the arrow keys or WASD at a constant speed.
type Keyboard struct {
	input render.InputManager
	speed float64
	dir   direction

	carryX, carryY carry
}

// NewKeyboard creates a keyboard device moving speed pixels per millisecond.
func NewKeyboard(input render.InputManager, speed float64) *Keyboard {
	return &Keyboard{input: input, speed: speed}
}

func (k *Keyboard) pressed(keys ...render.Key) bool {
	for _, key := range keys {
		if k.input.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// Poll reads the held keys. Opposing keys cancel out. Leftover sub-pixel
// movement is dropped when an axis stops or turns around.
func (k *Keyboard) Poll() {
	prev := k.dir
	k.dir = direction{}
	if k.pressed(render.KeyLeft, render.KeyA) {
		k.dir.x--
	}
	if k.pressed(render.KeyRight, render.KeyD) {
		k.dir.x++
	}
	if k.pressed(render.KeyUp, render.KeyW) {
		k.dir.y--
	}
	if k.pressed(render.KeyDown, render.KeyS) {
		k.dir.y++
	}
	if k.dir.x != prev.x {
		k.carryX = 0
	}
	if k.dir.y != prev.y {
		k.carryY = 0
	}
}

// IsMoving reports whether any direction key is held.
func (k *Keyboard) IsMoving() bool { return k.dir.moving() }

// Distance returns direction * delta * speed in whole pixels. The fraction
// carries over to the next call so slow speeds still scroll evenly.
func (k *Keyboard) Distance(delta time.Duration) (dx, dy int) {
	fx, fy := k.dir.distance(delta, k.speed)
	return k.carryX.add(fx), k.carryY.add(fy)
}

// Pointer scrolls by dragging: a touch, or the mouse with the right button
// held. The world follows the finger, so dragging left moves the viewport
// right.
type Pointer struct {
	input render.InputManager

	dragging bool
	start    [2]int
	current  [2]int
}

// NewPointer creates a drag-to-scroll device.
func NewPointer(input render.InputManager) *Pointer {
	return &Pointer{input: input}
}

func (p *Pointer) position() (x, y int, ok bool) {
	if x, y, ok := p.input.TouchPosition(); ok {
		return x, y, true
	}
	if p.input.IsMouseButtonPressed(render.MouseButtonRight) {
		x, y := p.input.GetCursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// Poll tracks the drag. A new drag starts where the pointer went down.
func (p *Pointer) Poll() {
	x, y, ok := p.position()
	if !ok {
		p.dragging = false
		return
	}
	if !p.dragging {
		p.dragging = true
		p.start = [2]int{x, y}
	}
	p.current = [2]int{x, y}
}

// IsMoving reports whether the pointer moved since the last Distance call.
func (p *Pointer) IsMoving() bool {
	return p.dragging && p.start != p.current
}

// Distance returns the drag since the last call and consumes it. Dragging
// is position based, so delta is ignored.
func (p *Pointer) Distance(delta time.Duration) (dx, dy int) {
	if !p.dragging {
		return 0, 0
	}
	dx, dy = p.start[0]-p.current[0], p.start[1]-p.current[1]
	p.start = p.current
	return dx, dy
}

// TapSlop is how far a touch may wander, in pixels, and still count as a tap.
const TapSlop = 8

// Tap turns a short touch without dragging into a click.
type Tap struct {
	input render.InputManager

	down  bool
	moved bool
	start image.Point
	last  image.Point
}

// NewTap creates a tap detector.
func NewTap(input render.InputManager) *Tap {
	return &Tap{input: input}
}

// Poll samples the touch state once per frame. It returns the release
// position when a touch ends within TapSlop of where it began.
func (t *Tap) Poll() (x, y int, ok bool) {
	tx, ty, touching := t.input.TouchPosition()
	if touching {
		p := image.Pt(tx, ty)
		if !t.down {
			t.down, t.moved = true, false
			t.start = p
		}
		d := p.Sub(t.start)
		if d.X*d.X+d.Y*d.Y > TapSlop*TapSlop {
			t.moved = true
		}
		t.last = p
		return 0, 0, false
	}
	if !t.down {
		return 0, 0, false
	}
	t.down = false
	if t.moved {
		return 0, 0, false
	}
	return t.last.X, t.last.Y, true
}

// Multi combines devices. The first moving device wins each step.
type Multi []Device

// Poll polls every device.
func (m Multi) Poll() {
	for _, d := range m {
		d.Poll()
	}
}

// IsMoving reports whether any device is moving.
func (m Multi) IsMoving() bool {
	for _, d := range m {
		if d.IsMoving() {
			return true
		}
	}
	return false
}

// Distance returns the displacement of the first moving device.
func (m Multi) Distance(delta time.Duration) (dx, dy int) {
	for _, d := range m {
		if d.IsMoving() {
			return d.Distance(delta)
		}
	}
	return 0, 0
}
