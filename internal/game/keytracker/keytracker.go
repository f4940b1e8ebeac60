// Package keytracker turns held-key state into single key presses.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Observe(ebiten.IsKeyPressed(key))
}

// Observe records the current state and reports a press edge.
func (k *KeyStateTracker) Observe(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Bindings maps keys to actions, each key with its own tracker.
type Bindings[A any] struct {
	keys     []ebiten.Key
	actions  []A
	trackers []KeyStateTracker
}

// Bind adds a key for action. A key may be bound more than once.
func (b *Bindings[A]) Bind(key ebiten.Key, action A) {
	b.keys = append(b.keys, key)
	b.actions = append(b.actions, action)
	b.trackers = append(b.trackers, KeyStateTracker{})
}

// Poll appends to out the actions whose key went down since the last poll.
// pressed reports the current key state (ebiten.IsKeyPressed in the game).
func (b *Bindings[A]) Poll(pressed func(ebiten.Key) bool, out []A) []A {
	for i, key := range b.keys {
		if b.trackers[i].Observe(pressed(key)) {
			out = append(out, b.actions[i])
		}
	}
	return out
}
