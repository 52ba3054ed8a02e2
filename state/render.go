package state

import (
	"fmt"
	"strconv"
)

// kHzWidth is wide enough for 2m (144000 kHz) so HF and VHF values line up.
const kHzWidth = 6

// FormatSerial renders a serial number with at least four digits.
// Numbers past 9999 keep growing; they never wrap.
func FormatSerial(n int) string {
	return fmt.Sprintf("%04d", n)
}

// FormatFrequency renders a RadioInfo Freq value, which counts 10 Hz steps,
// as kHz with two decimals and a fixed-width integer part, e.g.
// "1402550" -> " 14025.50".
func FormatFrequency(raw string) (string, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad frequency %q: %w", raw, err)
	}

	return fmt.Sprintf("%*d.%02d", kHzWidth, v/100, v%100), nil
}

// RadioText is what a radio box shows: frequency followed by mode.
func RadioText(freq, mode string) string {
	if mode == "" {
		return freq
	}
	return freq + " " + mode
}
