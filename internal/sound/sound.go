// Package sound defines how the game reacts to events with sound. Audio
// output lives in the beeper subpackage so headless hosts stay free of the
// speaker driver.
package sound

import "sync"

// Player reacts to game events with sound.
type Player interface {
	Eat()
	Crash()
}

// Silent plays nothing.
type Silent struct{}

func (Silent) Eat()   {}
func (Silent) Crash() {}

// Recorder counts events; used by tests.
type Recorder struct {
	mu      sync.Mutex
	Eats    int
	Crashes int
}

func (r *Recorder) Eat() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Eats++
}

func (r *Recorder) Crash() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Crashes++
}
