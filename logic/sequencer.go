package logic

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/UltimateSandbox/stoplight/util"
)

// PhaseUpdate is one progress observation, emitted on every phase transition
type PhaseUpdate struct {
	// Cycle is the 1-based number of the traversal this phase belongs to
	Cycle int64
	Phase Phase
}

// Sequencer runs the fixed phase cycle forever, driving a LineInterface,
// until stopped. It owns only its position in the phase table and the cycle
// counter; line state is owned by the LineInterface.
type Sequencer struct {
	lines  LineInterface
	phases []Phase

	cycles   int64
	stopping util.AtomicBool
	quit     chan struct{}
	done     chan error

	// OnPhaseUpdate, if set before Start, receives one PhaseUpdate per
	// transition. Sends never block: a full channel drops the update.
	OnPhaseUpdate chan<- PhaseUpdate

	log *logrus.Entry
}

// NewSequencer creates a Sequencer over the given lines and phase table
// without starting it. A nil phases table uses DefaultPhases.
func NewSequencer(lines LineInterface, phases []Phase) *Sequencer {
	if phases == nil {
		phases = DefaultPhases()
	}
	return &Sequencer{
		lines:  lines,
		phases: phases,
		quit:   make(chan struct{}),
		done:   make(chan error, 1),
		log:    util.Logger.WithField("module", "Sequencer"),
	}
}

// Start starts the background goroutine of the Sequencer
func (s *Sequencer) Start(wait *sync.WaitGroup) {
	if wait != nil {
		wait.Add(1)
	}
	go s.run(wait)
}

// Stop requests a graceful stop. The transition is monotonic: once requested
// it cannot be undone, and calling Stop again has no effect. The loop never
// starts another phase after the request, and never waits out a hold: the
// worst case latency is the in-flight line write plus the progress report.
func (s *Sequencer) Stop() {
	if s.stopping.StoreIf(false, true) {
		close(s.quit)
	}
}

// Done returns a chan which receives the fatal driver error, if any, and is
// closed when the loop has exited
func (s *Sequencer) Done() <-chan error {
	return s.done
}

// CycleCount returns the number of completed full traversals of the cycle
func (s *Sequencer) CycleCount() int64 {
	return atomic.LoadInt64(&s.cycles)
}

func (s *Sequencer) run(wait *sync.WaitGroup) {
	if wait != nil {
		defer wait.Done()
	}
	defer close(s.done)
	for {
		cycle := atomic.LoadInt64(&s.cycles) + 1
		for i, phase := range s.phases {
			if s.stopping.Load() {
				s.log.Debug("quiting sequencer")
				return
			}
			if err := s.lines.SetLevels(phase.ActiveLines()); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"phase": i, "cycle": cycle,
				}).Error("error driving lines")
				s.shutdown()
				s.done <- err
				return
			}
			s.report(cycle, phase)
			select {
			case <-s.quit:
				s.log.Debug("quiting sequencer")
				return
			case <-time.After(phase.Hold):
			}
		}
		atomic.AddInt64(&s.cycles, 1)
	}
}

func (s *Sequencer) report(cycle int64, phase Phase) {
	s.log.WithFields(logrus.Fields{
		"cycle": cycle, "roadA": phase.RoadA, "roadB": phase.RoadB,
	}).Info("phase")
	if s.OnPhaseUpdate != nil {
		select {
		case s.OnPhaseUpdate <- PhaseUpdate{Cycle: cycle, Phase: phase}:
		default:
			s.log.Debug("phase update dropped")
		}
	}
}

// shutdown forces every line inactive and releases the hardware, best effort.
// Continuing the cycle with unknown line state is never an option.
func (s *Sequencer) shutdown() {
	if err := s.lines.SetLevels(0); err != nil {
		s.log.WithError(err).Warn("error clearing lines during shutdown")
	}
	if err := s.lines.Deinitialize(); err != nil {
		s.log.WithError(err).Warn("error releasing lines during shutdown")
	}
}
