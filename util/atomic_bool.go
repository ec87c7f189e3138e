package util

import "sync/atomic"

// AtomicBool is a boolean flag which can be read and written without locking.
// It has exactly the semantics of a uint32 accessed through sync/atomic.
type AtomicBool uint32

func b2i(value bool) uint32 {
	if value {
		return 1
	}
	return 0
}

// NewAtomicBool creates an AtomicBool with the specified initial value
func NewAtomicBool(value bool) AtomicBool {
	return AtomicBool(b2i(value))
}

// Store atomically sets the value of the AtomicBool
func (b *AtomicBool) Store(value bool) {
	atomic.StoreUint32((*uint32)(b), b2i(value))
}

// Load atomically reads the value of the AtomicBool
func (b *AtomicBool) Load() (value bool) {
	return atomic.LoadUint32((*uint32)(b)) != 0
}

// StoreIf atomically stores value only if the current value is expected.
// It returns true if the store happened.
func (b *AtomicBool) StoreIf(expected bool, value bool) (stored bool) {
	return atomic.CompareAndSwapUint32((*uint32)(b), b2i(expected), b2i(value))
}
