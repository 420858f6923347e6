// SPDX-License-Identifier: Unlicense OR MIT

package interaction

// KeyboardKey is a pan key the controller understands: arrow keys and
// WASD, collapsed to the four cardinal directions.
type KeyboardKey int

const (
	ArrowUp KeyboardKey = iota
	ArrowDown
	ArrowLeft
	ArrowRight
	KeyW
	KeyA
	KeyS
	KeyD
)

// KeyboardState tracks which of the four pan directions are currently held,
// independent of which key(s) produced that direction.
type KeyboardState struct {
	Up, Down, Left, Right bool
}

// Set applies a key transition to the direction(s) it maps to.
func (s *KeyboardState) Set(key KeyboardKey, pressed bool) {
	switch key {
	case ArrowUp, KeyW:
		s.Up = pressed
	case ArrowDown, KeyS:
		s.Down = pressed
	case ArrowLeft, KeyA:
		s.Left = pressed
	case ArrowRight, KeyD:
		s.Right = pressed
	}
}

// Active reports whether any direction is currently held.
func (s KeyboardState) Active() bool {
	return s.Up || s.Down || s.Left || s.Right
}
