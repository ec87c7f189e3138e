package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicBool(t *testing.T) {
	ass := assert.New(t)

	b := NewAtomicBool(false)
	ass.Equal(false, b.Load())
	ass.NotPanics(func() {
		b.Store(true)
	})
	ass.Equal(true, b.Load())

	b.Store(false)
	ass.Equal(true, b.StoreIf(false, true))
	ass.Equal(true, b.Load())
	ass.Equal(false, b.StoreIf(false, true))
	ass.Equal(true, b.Load())
	ass.Equal(true, b.StoreIf(true, false))
	ass.Equal(false, b.Load())
}

func TestAtomicBool_SingleTransition(t *testing.T) {
	// many racers, only one may observe the false -> true transition
	var (
		b       = NewAtomicBool(false)
		winners int32
		mu      sync.Mutex
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.StoreIf(false, true) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
	assert.Equal(t, true, b.Load())
}

func BenchmarkAtomicBool(b *testing.B) {
	ab := NewAtomicBool(false)

	for i := 0; i < b.N; i++ {
		ab.Store(!ab.Load())
	}
}
