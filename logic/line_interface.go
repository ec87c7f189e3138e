package logic

// LineID indexes one of the six output lines, in road order:
// road A red, yellow, green, then road B red, yellow, green.
type LineID = uint16

const (
	LineARed LineID = iota
	LineAYellow
	LineAGreen
	LineBRed
	LineBYellow
	LineBGreen
	// LineCount is the number of output lines on a two-road intersection
	LineCount
)

var lineNames = [LineCount]string{
	"road A red", "road A yellow", "road A green",
	"road B red", "road B yellow", "road B green",
}

// LineName returns the human readable name of a line
func LineName(id LineID) string {
	if id >= LineCount {
		return "unknown line"
	}
	return lineNames[id]
}

// LineSet is a bit mask of LineIDs, mirroring the set/clear mask registers of
// the underlying GPIO block
type LineSet uint32

// With returns s with id added
func (s LineSet) With(id LineID) LineSet {
	return s | 1<<id
}

// Has reports whether id is in s
func (s LineSet) Has(id LineID) bool {
	return s&(1<<id) != 0
}

// LineInterface is implemented by structs which are able to drive the
// intersection's output lines. It is not necessarily backed by hardware
// (as in MockLineInterface).
type LineInterface interface {
	Name() string

	// Initialize claims every line as an output at the inactive level.
	// It is idempotent.
	Initialize() error
	// Deinitialize forces every line inactive and releases the hardware
	// resource. It is safe to call repeatedly.
	Deinitialize() error

	Count() LineID
	Set(id LineID, level bool)
	Get(id LineID) (level bool)

	// SetLevels drives exactly the lines in active to the active level and
	// every other line to inactive. All lines are cleared before the active
	// subset is raised, so conflicting lines are never lit together; the
	// resulting all-off window is far below visual persistence.
	SetLevels(active LineSet) error
}
