// Package state holds what the display shows. The UDP listener is the only
// writer; the UI reads consistent copies through Snapshot.
package state

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"contestmon/event"
)

var (
	ErrUnknownRadio = errors.New("radio number out of range")
	ErrBadSerial    = errors.New("serial number out of range")
)

const NumRadios = 2

// Radio is the display text for one radio.
type Radio struct {
	Frequency string // formatted, see FormatFrequency
	Mode      string
}

// Text is the frequency and mode as one line.
func (r Radio) Text() string {
	return RadioText(r.Frequency, r.Mode)
}

// Contact is the last QSO logged.
type Contact struct {
	Call             string
	ReceivedExchange string
	BandMode         string
}

// Snapshot is a point-in-time copy of the display state. It shares no
// memory with the Store.
type Snapshot struct {
	HasSerial  bool
	NextSerial int

	Radios [NumRadios]Radio

	HasContact  bool
	LastContact Contact

	// Spots are in arrival order, oldest first.
	Spots []event.SpotReceived

	Unrecognized     uint64
	LastUnrecognized string
}

// SerialText is the next serial number as displayed, or "----" before the
// first contact.
func (s Snapshot) SerialText() string {
	if !s.HasSerial {
		return "----"
	}
	return FormatSerial(s.NextSerial)
}

// Store is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	cur          Snapshot
	spotCapacity int
	changes      chan struct{}
}

// New creates an empty store keeping at most spotCapacity recent spots.
func New(spotCapacity int) *Store {
	if spotCapacity < 1 {
		spotCapacity = 1
	}

	return &Store{
		spotCapacity: spotCapacity,
		cur: Snapshot{
			Spots: make([]event.SpotReceived, 0, spotCapacity),
		},
		changes: make(chan struct{}, 1),
	}
}

// SpotCapacity returns the configured size of the spot feed.
func (s *Store) SpotCapacity() int {
	return s.spotCapacity
}

// Changes delivers a signal after each applied event. Signals coalesce, so a
// slow reader sees one pending notification and should call Snapshot.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Apply folds one event into the state. Values are last-write-wins; nothing
// is rejected as stale.
func (s *Store) Apply(ev event.Event) error {
	s.mu.Lock()
	err := s.apply(ev)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	select {
	case s.changes <- struct{}{}:
	default:
	}

	return nil
}

func (s *Store) apply(ev event.Event) error {
	switch ev := ev.(type) {
	case event.ContactLogged:
		if ev.LastSentSerial < 0 || ev.LastSentSerial == math.MaxInt {
			return fmt.Errorf("%w: %d", ErrBadSerial, ev.LastSentSerial)
		}
		s.cur.HasSerial = true
		s.cur.NextSerial = ev.LastSentSerial + 1
		s.cur.HasContact = true
		s.cur.LastContact = Contact{
			Call:             ev.Call,
			ReceivedExchange: joinNonEmpty(ev.ReceivedSerial, ev.Exchange),
			BandMode:         joinNonEmpty(ev.Band, ev.Mode),
		}

	case event.RadioStatus:
		if ev.Radio < 1 || ev.Radio > NumRadios {
			return fmt.Errorf("%w: %d", ErrUnknownRadio, ev.Radio)
		}
		freq, err := FormatFrequency(ev.FrequencyRaw)
		if err != nil {
			return err
		}
		s.cur.Radios[ev.Radio-1] = Radio{Frequency: freq, Mode: ev.Mode}

	case event.SpotReceived:
		if len(s.cur.Spots) >= s.spotCapacity {
			// shift left in place, dropping the oldest
			n := copy(s.cur.Spots, s.cur.Spots[len(s.cur.Spots)-s.spotCapacity+1:])
			s.cur.Spots = s.cur.Spots[:n]
		}
		s.cur.Spots = append(s.cur.Spots, ev)

	case event.Unrecognized:
		s.cur.Unrecognized++
		s.cur.LastUnrecognized = ev.Tag

	default:
		return fmt.Errorf("unsupported event %T", ev)
	}

	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.cur
	snap.Spots = make([]event.SpotReceived, len(s.cur.Spots))
	copy(snap.Spots, s.cur.Spots)

	return snap
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
