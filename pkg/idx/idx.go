package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is an opaque, type-prefixed identifier such as "usr_01J8X2K9QZ...".
// The prefix tells a human (and a debugger) what kind of record the id names;
// the ULID suffix makes it collision-resistant and lexicographically sortable
// within a kind.
type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// Kind is the short type prefix in front of the underscore.
type Kind string

const (
	KindUser   Kind = "usr"
	KindTicket Kind = "tkt"
)

// ErrInvalid reports a malformed identifier string.
var ErrInvalid = errors.New("idx: invalid id")

var (
	globalOnce sync.Once
	global     *generator
)

// generator is a tool to safely generate ULIDs concurrently using a monotonic
// source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) New(kind Kind) ID {
	return g.NewAt(kind, time.Now().UTC())
}

func (g *generator) NewAt(kind Kind, t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t), g.entropy)
	return ID(string(kind) + "_" + u.String())
}

func initGlobal() {
	src := ulid.Monotonic(rand.Reader, 0) // Max Monotonic Window
	global = &generator{entropy: src}
}

// New returns a fresh ID of the given kind using the current time in UTC and
// a monotonic entropy source.
func New(kind Kind) ID {
	globalOnce.Do(initGlobal)
	return global.New(kind)
}

// NewAt generates an ID at the provided time (UTC), useful for tests or
// constructing time-bounded fixtures.
func NewAt(kind Kind, t time.Time) ID {
	globalOnce.Do(initGlobal)
	return global.NewAt(kind, t)
}

// Parse parses a prefixed identifier string and validates its form.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	prefix, rest, ok := strings.Cut(s, "_")
	if !ok || prefix == "" {
		return Zero, ErrInvalid
	}

	if _, err := ulid.ParseStrict(rest); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// MustParse parses or panics. Useful for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		// Panic here so we don't put the program into an unknown state
		panic(err)
	}
	return id
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Kind extracts the type prefix, or "" for a zero or unprefixed id.
func (id ID) Kind() Kind {
	prefix, _, ok := strings.Cut(string(id), "_")
	if !ok {
		return ""
	}
	return Kind(prefix)
}

// Time extracts the embedded UTC timestamp from the ID.
// If the ID is invalid or zero, it returns the zero time.
func (id ID) Time() time.Time {
	_, rest, ok := strings.Cut(string(id), "_")
	if !ok {
		return time.Time{}
	}

	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return time.Time{}
	}

	// ULID time component is in ms since epoch.
	return ulid.Time(u.Time())
}
