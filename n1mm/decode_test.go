package n1mm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestmon/event"
)

const contactFrame = `<?xml version="1.0" encoding="utf-8"?>
<contactinfo>
	<app>N1MM</app>
	<contestname>CQWWSSB</contestname>
	<timestamp>2024-02-24 20:25:05</timestamp>
	<mycall>KN4FTT</mycall>
	<band>14</band>
	<rxfreq>1420000</rxfreq>
	<txfreq>1420000</txfreq>
	<call>W1AW</call>
	<mode>USB</mode>
	<snt>59</snt>
	<sntnr>41</sntnr>
	<rcv>59</rcv>
	<rcvnr>17</rcvnr>
	<exchange1>CT</exchange1>
</contactinfo>`

const radioFrame = `<?xml version="1.0" encoding="utf-8"?>
<RadioInfo>
	<app>N1MM</app>
	<StationName>SHACK</StationName>
	<RadioNr>2</RadioNr>
	<Freq>1402550</Freq>
	<TXFreq>1402550</TXFreq>
	<Mode>CW</Mode>
	<IsRunning>False</IsRunning>
</RadioInfo>`

const spotFrame = `<?xml version="1.0" encoding="utf-8"?>
<spot>
	<app>N1MM</app>
	<action>add</action>
	<dxcall>DL1ABC</dxcall>
	<frequency>7012.5</frequency>
	<spottercall>K1TTT</spottercall>
	<comment>CQ</comment>
	<mode>CW</mode>
	<timestamp>2024-02-24 20:25:05</timestamp>
</spot>`

func TestDecodeContact(t *testing.T) {
	ev, err := Decode([]byte(contactFrame))
	require.NoError(t, err)

	assert.Equal(t, event.ContactLogged{
		LastSentSerial: 41,
		Call:           "W1AW",
		Band:           "14",
		Mode:           "USB",
		ReceivedSerial: "17",
		Exchange:       "CT",
	}, ev)
	assert.Equal(t, event.KindContact, ev.Kind())
}

func TestDecodeRadio(t *testing.T) {
	ev, err := Decode([]byte(radioFrame))
	require.NoError(t, err)

	assert.Equal(t, event.RadioStatus{Radio: 2, FrequencyRaw: "1402550", Mode: "CW"}, ev)
}

func TestDecodeSpot(t *testing.T) {
	ev, err := Decode([]byte(spotFrame))
	require.NoError(t, err)

	assert.Equal(t, event.SpotReceived{
		DXCall:    "DL1ABC",
		Frequency: "7012.5",
		Mode:      "CW",
		Spotter:   "K1TTT",
	}, ev)
}

func TestDecodeSpotWithoutSpotter(t *testing.T) {
	ev, err := Decode([]byte(`<spot><dxcall>JA1XYZ</dxcall><frequency>21025.0</frequency><mode>CW</mode></spot>`))
	require.NoError(t, err)

	assert.Equal(t, event.SpotReceived{DXCall: "JA1XYZ", Frequency: "21025.0", Mode: "CW"}, ev)
}

func TestDecodeUnrecognized(t *testing.T) {
	for _, s := range []string{
		`<heartbeat/>`,
		`<contactreplace><call>W1AW</call></contactreplace>`,
		`<radioinfo><RadioNr>1</RadioNr></radioinfo>`, // tags are case-sensitive
	} {
		ev, err := Decode([]byte(s))
		require.NoError(t, err, s)
		assert.Equal(t, event.KindUnrecognized, ev.Kind(), s)
	}

	ev, _ := Decode([]byte(`<heartbeat/>`))
	assert.Equal(t, event.Unrecognized{Tag: "heartbeat"}, ev)
}

func TestDecodeIsIdempotent(t *testing.T) {
	a, err := Decode([]byte(contactFrame))
	require.NoError(t, err)
	b, err := Decode([]byte(contactFrame))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDecodeMalformed(t *testing.T) {
	for _, s := range []string{
		``,
		`   `,
		`not xml at all`,
		`<contactinfo><sntnr>41</sntnr><call>W1A`,
		`<RadioInfo><RadioNr>1</Radio></RadioInfo>`,
	} {
		ev, err := Decode([]byte(s))
		assert.Nil(t, ev, s)
		assert.ErrorIs(t, err, ErrMalformed, s)
		assert.NotErrorIs(t, err, ErrMissingField, s)
	}
}

func TestDecodeMissingField(t *testing.T) {
	tests := []struct {
		frame string
		field string
	}{
		{`<contactinfo><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`, "sntnr"},
		{`<contactinfo><sntnr>1</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr></contactinfo>`, "exchange1"},
		{`<RadioInfo><Freq>1402550</Freq><Mode>CW</Mode></RadioInfo>`, "RadioNr"},
		{`<RadioInfo><RadioNr>1</RadioNr><Mode>CW</Mode></RadioInfo>`, "Freq"},
		{`<spot><dxcall>DL1ABC</dxcall><frequency>7012.5</frequency></spot>`, "mode"},
	}

	for _, tt := range tests {
		_, err := Decode([]byte(tt.frame))
		require.ErrorIs(t, err, ErrMissingField)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, tt.field, de.Field)
		assert.Equal(t, MissingField, de.Reason)
	}
}

func TestDecodeUnexpectedValue(t *testing.T) {
	tests := []struct {
		frame string
		field string
	}{
		{`<RadioInfo><RadioNr>3</RadioNr><Freq>1402550</Freq><Mode>CW</Mode></RadioInfo>`, "RadioNr"},
		{`<RadioInfo><RadioNr>0</RadioNr><Freq>1402550</Freq><Mode>CW</Mode></RadioInfo>`, "RadioNr"},
		{`<RadioInfo><RadioNr></RadioNr><Freq>1402550</Freq><Mode>CW</Mode></RadioInfo>`, "RadioNr"},
		{`<RadioInfo><RadioNr>1</RadioNr><Freq>14025.50</Freq><Mode>CW</Mode></RadioInfo>`, "Freq"},
		{`<RadioInfo><RadioNr>1</RadioNr><Freq></Freq><Mode>CW</Mode></RadioInfo>`, "Freq"},
		{`<contactinfo><sntnr>abc</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`, "sntnr"},
		{`<contactinfo><sntnr>9223372036854775807</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`, "sntnr"},
		{`<contactinfo><sntnr>2147483648</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`, "sntnr"},
		{`<contactinfo><sntnr>-4</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`, "sntnr"},
	}

	for _, tt := range tests {
		ev, err := Decode([]byte(tt.frame))
		assert.Nil(t, ev)
		require.ErrorIs(t, err, ErrUnexpectedValue, tt.frame)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, tt.field, de.Field)
	}
}

func TestParseFrameFirstChildWins(t *testing.T) {
	f, err := ParseFrame([]byte(`<spot><mode> CW </mode><mode>SSB</mode></spot>`))
	require.NoError(t, err)

	assert.Equal(t, "spot", f.Tag)
	mode, ok := f.Get("mode")
	assert.True(t, ok)
	assert.Equal(t, "CW", mode)

	_, ok = f.Get("dxcall")
	assert.False(t, ok)
}

func TestDecodeErrorMessages(t *testing.T) {
	_, err := Decode([]byte(`<RadioInfo><RadioNr>7</RadioNr><Freq>1</Freq><Mode>CW</Mode></RadioInfo>`))
	assert.EqualError(t, err, `RadioInfo: unexpected value "7" in <RadioNr>`)

	_, err = Decode([]byte(`<spot><dxcall>X</dxcall></spot>`))
	assert.EqualError(t, err, `spot: missing field <frequency>`)
}

func TestDecodeLargestSerial(t *testing.T) {
	ev, err := Decode([]byte(`<contactinfo><sntnr>2147483647</sntnr><call>W1AW</call><band>14</band><mode>CW</mode><rcvnr>1</rcvnr><exchange1>CT</exchange1></contactinfo>`))
	require.NoError(t, err)

	c, ok := ev.(event.ContactLogged)
	require.True(t, ok)
	assert.Equal(t, 2147483647, c.LastSentSerial)
	assert.Greater(t, c.LastSentSerial+1, c.LastSentSerial)
}
