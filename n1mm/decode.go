// Package n1mm decodes the XML frames N1MM Logger+ broadcasts over UDP.
package n1mm

import (
	"strconv"

	"contestmon/event"
)

// Root tags of the frames we understand. Matching is case-sensitive.
const (
	TagContact = "contactinfo"
	TagRadio   = "RadioInfo"
	TagSpot    = "spot"
)

// Decode takes one raw datagram and returns the event it describes.
// Frames with an unknown root tag decode to event.Unrecognized, not an error.
// All returned errors are *DecodeError.
func Decode(data []byte) (event.Event, error) {
	f, err := ParseFrame(data)
	if err != nil {
		return nil, err
	}

	switch f.Tag {
	case TagContact:
		return decodeContact(f)
	case TagRadio:
		return decodeRadio(f)
	case TagSpot:
		return decodeSpot(f)
	default:
		return event.Unrecognized{Tag: f.Tag}, nil
	}
}

// fields pulls the named fields out of f in order, failing on the first
// one that is absent.
func fields(f Frame, names ...string) ([]string, error) {
	vals := make([]string, len(names))
	for i, name := range names {
		v, ok := f.Get(name)
		if !ok {
			return nil, missing(f.Tag, name)
		}
		vals[i] = v
	}
	return vals, nil
}

func decodeContact(f Frame) (event.Event, error) {
	v, err := fields(f, "sntnr", "call", "band", "mode", "rcvnr", "exchange1")
	if err != nil {
		return nil, err
	}

	// 31 bits keeps sntnr+1 well inside int
	sent, err := strconv.ParseUint(v[0], 10, 31)
	if err != nil {
		return nil, unexpected(f.Tag, "sntnr", v[0], err)
	}

	return event.ContactLogged{
		LastSentSerial: int(sent),
		Call:           v[1],
		Band:           v[2],
		Mode:           v[3],
		ReceivedSerial: v[4],
		Exchange:       v[5],
	}, nil
}

func decodeRadio(f Frame) (event.Event, error) {
	v, err := fields(f, "RadioNr", "Freq", "Mode")
	if err != nil {
		return nil, err
	}

	var radio int
	switch v[0] {
	case "1":
		radio = 1
	case "2":
		radio = 2
	default:
		return nil, unexpected(f.Tag, "RadioNr", v[0], nil)
	}

	if !isDigits(v[1]) {
		return nil, unexpected(f.Tag, "Freq", v[1], nil)
	}

	return event.RadioStatus{
		Radio:        radio,
		FrequencyRaw: v[1],
		Mode:         v[2],
	}, nil
}

func decodeSpot(f Frame) (event.Event, error) {
	v, err := fields(f, "dxcall", "frequency", "mode")
	if err != nil {
		return nil, err
	}

	spotter, _ := f.Get("spottercall")

	return event.SpotReceived{
		DXCall:    v[0],
		Frequency: v[1],
		Mode:      v[2],
		Spotter:   spotter,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
