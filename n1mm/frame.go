package n1mm

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Frame is a flat view of one broadcast: the root tag and the text of each
// direct child element.
type Frame struct {
	Tag    string
	Fields map[string]string
}

// Get returns the trimmed text of the named child and whether it was present.
func (f Frame) Get(name string) (string, bool) {
	v, ok := f.Fields[name]
	return v, ok
}

type xmlFrame struct {
	XMLName  xml.Name
	Children []xmlChild `xml:",any"`
}

type xmlChild struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// ParseFrame parses data as a single XML element with text-valued children.
// Only the first root element is read; when a child name repeats, the
// first occurrence wins.
func ParseFrame(data []byte) (Frame, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Frame{}, &DecodeError{Reason: Malformed}
	}

	var raw xmlFrame
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Frame{}, &DecodeError{Reason: Malformed, Err: err}
	}

	f := Frame{
		Tag:    raw.XMLName.Local,
		Fields: make(map[string]string, len(raw.Children)),
	}
	for _, c := range raw.Children {
		name := c.XMLName.Local
		if _, seen := f.Fields[name]; seen {
			continue
		}
		f.Fields[name] = strings.TrimSpace(c.Text)
	}

	return f, nil
}
