package event

// Kind identifies which broadcast frame an Event came from.
type Kind int

const (
	KindContact      Kind = iota // <contactinfo>, a QSO was logged
	KindRadio                    // <RadioInfo>, radio frequency/mode update
	KindSpot                     // <spot>, a cluster spot
	KindUnrecognized             // any other root tag
)

func (k Kind) String() string {
	switch k {
	case KindContact:
		return "contact"
	case KindRadio:
		return "radio"
	case KindSpot:
		return "spot"
	default:
		return "unrecognized"
	}
}

// Event is one decoded broadcast frame. The concrete type is one of
// ContactLogged, RadioStatus, SpotReceived or Unrecognized.
type Event interface {
	Kind() Kind
}

// ContactLogged is produced for every <contactinfo> frame.
type ContactLogged struct {
	LastSentSerial int // sntnr, the last serial number sent
	Call           string
	Band           string
	Mode           string
	ReceivedSerial string // rcvnr
	Exchange       string // exchange1
}

// RadioStatus is produced for every <RadioInfo> frame.
type RadioStatus struct {
	Radio        int    // 1 or 2
	FrequencyRaw string // digits, in units of 10 Hz
	Mode         string
}

// SpotReceived is produced for every <spot> frame.
type SpotReceived struct {
	DXCall    string
	Frequency string
	Mode      string
	Spotter   string // optional
}

// Unrecognized carries only the root tag of a frame we don't handle.
type Unrecognized struct {
	Tag string
}

func (ContactLogged) Kind() Kind { return KindContact }
func (RadioStatus) Kind() Kind   { return KindRadio }
func (SpotReceived) Kind() Kind  { return KindSpot }
func (Unrecognized) Kind() Kind  { return KindUnrecognized }
