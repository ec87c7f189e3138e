package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLineInterface is a LineInterface for tests (and for running off-Pi)
// which keeps line levels in memory. A write failure can be injected into a
// specific SetLevels call.
type MockLineInterface struct {
	levels  []bool
	history []LineSet
	deinits int

	// failOn is the 1-based SetLevels call index that fails with failErr,
	// once. Zero means never fail.
	failOn    int
	failErr   error
	callCount int

	mock.Mock
}

var _ LineInterface = (*MockLineInterface)(nil)

func NewMockLineInterface(count int) *MockLineInterface {
	return &MockLineInterface{
		levels: make([]bool, count),
	}
}

func (m *MockLineInterface) Name() string {
	return "mock"
}

func (m *MockLineInterface) Initialize() error {
	for i := range m.levels {
		m.levels[i] = false
	}
	return nil
}

func (m *MockLineInterface) Deinitialize() error {
	for i := range m.levels {
		m.levels[i] = false
	}
	m.deinits++
	return nil
}

func (m *MockLineInterface) Count() LineID {
	return (LineID)(len(m.levels))
}

func (m *MockLineInterface) Set(id LineID, level bool) {
	m.Called(id, level)
	m.levels[id] = level
}

func (m *MockLineInterface) Get(id LineID) bool {
	return m.levels[id]
}

func (m *MockLineInterface) SetLevels(active LineSet) error {
	m.callCount++
	if m.failOn != 0 && m.callCount == m.failOn {
		m.failOn = 0
		return m.failErr
	}
	for id := range m.levels {
		m.levels[id] = active.Has(LineID(id))
	}
	m.history = append(m.history, active)
	return nil
}

// FailOnCall makes the n-th (1-based) SetLevels call return err, once
func (m *MockLineInterface) FailOnCall(n int, err error) {
	m.failOn = n
	m.failErr = err
}

// Levels returns a copy of the current line levels
func (m *MockLineInterface) Levels() []bool {
	levels := make([]bool, len(m.levels))
	copy(levels, m.levels)
	return levels
}

// History returns every LineSet successfully applied, in order
func (m *MockLineInterface) History() []LineSet {
	return m.history
}

// DeinitCount returns how many times Deinitialize has been called
func (m *MockLineInterface) DeinitCount() int {
	return m.deinits
}

// SetupAllReturns registers expectations for Set on every line in both levels
func (m *MockLineInterface) SetupAllReturns() {
	for i := range m.levels {
		m.On("Set", (LineID)(i), true).Return()
		m.On("Set", (LineID)(i), false).Return()
	}
}

// AssertAllOff asserts that every line is at the inactive level
func (m *MockLineInterface) AssertAllOff(t *testing.T) {
	for id, level := range m.levels {
		assert.False(t, level, "line %s should be off", LineName(LineID(id)))
	}
}

// AssertAllCalled asserts that all registered expectations were met
func (m *MockLineInterface) AssertAllCalled(t *testing.T) {
	m.AssertExpectations(t)
}
