// SPDX-License-Identifier: Unlicense OR MIT

package interaction

// MouseButton is the subset of mouse buttons the controller distinguishes.
// Only Left drives dragging; Right and Middle are reported but ignored.
type MouseButton int

const (
	Left MouseButton = iota
	Right
	Middle
)
