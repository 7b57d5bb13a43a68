package sound

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ Player = Silent{}
	_ Player = (*Recorder)(nil)
)

func TestRecorderIsSafeForConcurrentUse(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Eat()
			r.Crash()
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, r.Eats)
	assert.Equal(t, 10, r.Crashes)
}
