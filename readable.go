// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func readableDefault(_ uint16, v Value) (string, bool) {
	return v.String(), true
}

func readableUnknown(tag uint16, v Value) (string, bool) {
	return fmt.Sprintf("[tag=%04x] %s", tag, v), true
}

// readableEnum maps the first integer element of a value to a name.
func readableEnum(names map[int64]string) ReadableFunc {
	return func(tag uint16, v Value) (string, bool) {
		n, ok := ValueInt64(v, 0)
		if !ok {
			return "", false
		}
		if s, found := names[n]; found {
			return s, true
		}
		return fmt.Sprintf("Unknown (%04x=%d)", tag, n), true
	}
}

// readableASCIIEnum maps an ASCII value to a name.
func readableASCIIEnum(names map[string]string) ReadableFunc {
	return func(_ uint16, v Value) (string, bool) {
		s, ok := v.(ASCIIValue)
		if !ok {
			return "", false
		}
		if name, found := names[string(s)]; found {
			return name, true
		}
		return fmt.Sprintf("Unknown (%s)", s), true
	}
}

// readableFirstFloat formats the first element of a rational or float value.
func readableFirstFloat(format string) ReadableFunc {
	return func(_ uint16, v Value) (string, bool) {
		f, ok := firstRational(v)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(format, f), true
	}
}

func firstRational(v Value) (float64, bool) {
	switch v.(type) {
	case URationalValue, IRationalValue:
		return ValueFloat64(v, 0)
	}
	return 0, false
}

var (
	readableOrientation = readableEnum(map[int64]string{
		1: "Straight",
		3: "Upside down",
		6: "Rotated to left",
		8: "Rotated to right",
		9: "Undefined",
	})

	readableResolutionUnit = readableEnum(map[int64]string{
		1: "Unitless",
		2: "in",
		3: "cm",
	})

	readableSensitivityType = readableEnum(map[int64]string{
		0: "Unknown",
		1: "Standard output sensitivity (SOS)",
		2: "Recommended exposure index (REI)",
		3: "ISO speed",
		4: "Standard output sensitivity (SOS) and recommended exposure index (REI)",
		5: "Standard output sensitivity (SOS) and ISO speed",
		6: "Recommended exposure index (REI) and ISO speed",
		7: "Standard output sensitivity (SOS) and recommended exposure index (REI) and ISO speed",
	})

	readableExposureProgram = readableEnum(map[int64]string{
		1: "Manual control",
		2: "Program control",
		3: "Aperture priority",
		4: "Shutter priority",
		5: "Program creative (slow program)",
		6: "Program creative (high-speed program)",
		7: "Portrait mode",
		8: "Landscape mode",
	})

	readableMeteringMode = readableEnum(map[int64]string{
		0:   "Unknown",
		1:   "Average",
		2:   "Center-weighted average",
		3:   "Spot",
		4:   "Multi-spot",
		5:   "Pattern",
		6:   "Partial",
		255: "Other",
	})

	readableLightSource = readableEnum(map[int64]string{
		0:   "Unknown",
		1:   "Daylight",
		2:   "Fluorescent",
		3:   "Tungsten",
		4:   "Flash",
		9:   "Fine weather",
		10:  "Cloudy weather",
		11:  "Shade",
		12:  "Daylight fluorescent (D)",
		13:  "Day white fluorescent (N)",
		14:  "Cool white fluorescent (W)",
		15:  "White fluorescent (WW)",
		17:  "Standard light A",
		18:  "Standard light B",
		19:  "Standard light C",
		20:  "D55",
		21:  "D65",
		22:  "D75",
		23:  "D50",
		24:  "ISO studio tungsten",
		255: "Other",
	})

	readableColorSpace = readableEnum(map[int64]string{
		1:      "sRGB",
		0xffff: "Uncalibrated",
	})

	readableSensingMethod = readableEnum(map[int64]string{
		1: "Not defined",
		2: "One-chip color area sensor",
		3: "Two-chip color area sensor",
		4: "Three-chip color area sensor",
		5: "Color sequential area sensor",
		7: "Trilinear sensor",
		8: "Color sequential linear sensor",
	})

	readableSceneType = readableEnum(map[int64]string{
		1: "Directly photographed image",
	})

	readableCustomRendered = readableEnum(map[int64]string{
		0: "Normal",
		1: "Custom",
	})

	readableExposureMode = readableEnum(map[int64]string{
		0: "Auto exposure",
		1: "Manual exposure",
		2: "Auto bracket",
	})

	readableWhiteBalance = readableEnum(map[int64]string{
		0: "Auto",
		1: "Manual",
	})

	readableSceneCaptureType = readableEnum(map[int64]string{
		0: "Standard",
		1: "Landscape",
		2: "Portrait",
		3: "Night scene",
	})

	readableGainControl = readableEnum(map[int64]string{
		0: "None",
		1: "Low gain up",
		2: "High gain up",
		3: "Low gain down",
		4: "High gain down",
	})

	readableContrast = readableEnum(map[int64]string{
		0: "Normal",
		1: "Soft",
		2: "Hard",
	})

	readableSaturation = readableEnum(map[int64]string{
		0: "Normal",
		1: "Low",
		2: "High",
	})

	readableSharpness = readableEnum(map[int64]string{
		0: "Normal",
		1: "Soft",
		2: "Hard",
	})

	readableSubjectDistanceRange = readableEnum(map[int64]string{
		0: "Unknown",
		1: "Macro",
		2: "Close view",
		3: "Distant view",
	})

	readableGPSDifferential = readableEnum(map[int64]string{
		0: "Measurement without differential correction",
		1: "Differential correction applied",
	})

	readableGPSStatus = readableASCIIEnum(map[string]string{
		"A": "Measurement in progress",
		"V": "Measurement interoperability",
	})

	readableGPSMeasureMode = readableASCIIEnum(map[string]string{
		"2": "2-dimension",
		"3": "3-dimension",
	})

	readableGPSSpeedRef = readableASCIIEnum(map[string]string{
		"K": "km/h",
		"M": "mi/h",
		"N": "kn",
	})

	readableGPSDestDistanceRef = readableASCIIEnum(map[string]string{
		"K": "km",
		"M": "mi",
		"N": "kn",
	})

	readableGPSBearingRef = readableASCIIEnum(map[string]string{
		"T": "True bearing",
		"M": "Magnetic bearing",
	})

	readableFNumber         = readableFirstFloat("f/%.1f")
	readableMeters          = readableFirstFloat("%.1f m")
	readableApexTv          = readableFirstFloat("%.1f Tv APEX")
	readableApexAv          = readableFirstFloat("%.1f Av APEX")
	readableApexEV          = readableFirstFloat("%.2f EV APEX")
	readableGPSSpeed        = readableFirstFloat("%.1f")
	readableGPSDestDistance = readableFirstFloat("%.3f")
	readableGPSBearing      = readableFirstFloat("%.2f°")
)

func readableRational(_ uint16, v Value) (string, bool) {
	f, ok := firstRational(v)
	if !ok {
		return "", false
	}
	return formatFloat(f), true
}

func readableRationals(_ uint16, v Value) (string, bool) {
	r, ok := v.(URationalValue)
	if !ok {
		return "", false
	}
	floats := make([]string, len(r))
	for i, vv := range r {
		floats[i] = formatFloat(vv.Float64())
	}
	return strings.Join(floats, ", "), true
}

func readableFocalLength(_ uint16, v Value) (string, bool) {
	f, ok := firstRational(v)
	if !ok {
		return "", false
	}
	return formatFloat(f) + " mm", true
}

func readableFlashEnergy(_ uint16, v Value) (string, bool) {
	f, ok := firstRational(v)
	if !ok {
		return "", false
	}
	return formatFloat(f) + " BCPS", true
}

func readableFocalLength35(_ uint16, v Value) (string, bool) {
	u, ok := v.(U16Value)
	if !ok || len(u) == 0 {
		return "", false
	}
	return fmt.Sprintf("%d mm", u[0]), true
}

func readableExposureTime(_ uint16, v Value) (string, bool) {
	r, ok := v.(URationalValue)
	if !ok || len(r) == 0 {
		return "", false
	}
	first := r[0]
	f := first.Float64()
	switch {
	case first.Num == 1 && first.Den > 1:
		// Already in the conventional 1/x form.
		return first.String() + " s", true
	case f < 0.1:
		return fmt.Sprintf("1/%.0f s", 1/f), true
	case f < 1:
		return fmt.Sprintf("1/%.1f s", 1/f), true
	default:
		return fmt.Sprintf("%.1f s", f), true
	}
}

func readableApexBrightness(_ uint16, v Value) (string, bool) {
	r, ok := v.(IRationalValue)
	if !ok || len(r) == 0 {
		return "", false
	}
	// A numerator of 0xffffffff means unknown.
	if r[0].Num == -1 {
		return "Unknown", true
	}
	return fmt.Sprintf("%.1f APEX", r[0].Float64()), true
}

func readableISOSpeeds(_ uint16, v Value) (string, bool) {
	u, ok := v.(U16Value)
	if !ok {
		return "", false
	}
	switch len(u) {
	case 1:
		return fmt.Sprintf("ISO %d", u[0]), true
	case 2, 3:
		return fmt.Sprintf("ISO %d latitude %d", u[0], u[1]), true
	default:
		return fmt.Sprintf("Unknown (%s)", u), true
	}
}

func readableDMS(_ uint16, v Value) (string, bool) {
	r, ok := v.(URationalValue)
	if !ok || len(r) < 3 {
		return "", false
	}
	d, m, s := r[0], r[1], r[2]
	switch {
	case d.Den == 1 && m.Den == 1:
		return fmt.Sprintf("%s°%s'%.2f\"", formatFloat(d.Float64()), formatFloat(m.Float64()), s.Float64()), true
	case d.Den == 1:
		return fmt.Sprintf("%s°%.4f'", formatFloat(d.Float64()), m.Float64()+s.Float64()/60), true
	default:
		return fmt.Sprintf("%.7f°", d.Float64()+m.Float64()/60+s.Float64()/3600), true
	}
}

func readableGPSAltitudeRef(_ uint16, v Value) (string, bool) {
	u, ok := v.(U8Value)
	if !ok || len(u) == 0 {
		return "", false
	}
	switch u[0] {
	case 0:
		return "Above sea level", true
	case 1:
		return "Below sea level", true
	default:
		return fmt.Sprintf("Unknown, assumed below sea level (%d)", u[0]), true
	}
}

func readableGPSTimeStamp(_ uint16, v Value) (string, bool) {
	r, ok := v.(URationalValue)
	if !ok || len(r) < 3 {
		return "", false
	}
	return fmt.Sprintf("%02.0f:%02.0f:%04.1f UTC", r[0].Float64(), r[1].Float64(), r[2].Float64()), true
}

func readableFlash(_ uint16, v Value) (string, bool) {
	n, ok := ValueInt64(v, 0)
	if !ok {
		return "", false
	}

	if n&(1<<5) != 0 {
		return "Does not have a flash.", true
	}

	var parts []string
	fired := n&1 != 0
	if fired {
		parts = append(parts, "Fired.")
		switch (n >> 1) & 3 {
		case 2:
			parts = append(parts, "Strobe return not detected.")
		case 3:
			parts = append(parts, "Strobe return detected.")
		}
	} else {
		parts = append(parts, "Did not fire.")
	}

	switch (n >> 3) & 3 {
	case 1:
		parts = append(parts, "Forced fire.")
	case 2:
		parts = append(parts, "Forced suppression.")
	case 3:
		parts = append(parts, "Auto mode.")
	}

	if fired {
		if n&(1<<6) != 0 {
			parts = append(parts, "Red-eye reduction.")
		} else {
			parts = append(parts, "No red-eye reduction.")
		}
	}

	return strings.Join(parts, " "), true
}

func readableSubjectArea(_ uint16, v Value) (string, bool) {
	u, ok := v.(U16Value)
	if !ok {
		return "", false
	}
	switch len(u) {
	case 2:
		return fmt.Sprintf("at pixel %d,%d", u[0], u[1]), true
	case 3:
		return fmt.Sprintf("at center %d,%d radius %d", u[0], u[1], u[2]), true
	case 4:
		return fmt.Sprintf("at rectangle %d,%d width %d height %d", u[0], u[1], u[2], u[3]), true
	default:
		return fmt.Sprintf("Unknown (%s)", u), true
	}
}

func readableSubjectLocation(_ uint16, v Value) (string, bool) {
	u, ok := v.(U16Value)
	if !ok || len(u) < 2 {
		return "", false
	}
	return fmt.Sprintf("at pixel %d,%d", u[0], u[1]), true
}

func readableLensSpec(_ uint16, v Value) (string, bool) {
	r, ok := v.(URationalValue)
	if !ok || len(r) < 4 {
		return "", false
	}
	f0, f1 := formatFloat(r[0].Float64()), formatFloat(r[1].Float64())
	a0, a1 := r[2], r[3]

	if r[0] == r[1] {
		if !a0.IsFinite() {
			return f0 + " mm f/unknown", true
		}
		return fmt.Sprintf("%s mm f/%.1f", f0, a0.Float64()), true
	}
	if !a0.IsFinite() || !a1.IsFinite() {
		return fmt.Sprintf("%s-%s mm f/unknown", f0, f1), true
	}
	return fmt.Sprintf("%s-%s mm f/%.1f-%.1f", f0, f1, a0.Float64(), a1.Float64()), true
}

func undefinedBytes(v Value) ([]byte, bool, bool) {
	u, ok := v.(UndefinedValue)
	return u.Bytes, u.LittleEndian, ok
}

func readableUndefinedASCII(_ uint16, v Value) (string, bool) {
	b, _, ok := undefinedBytes(v)
	if !ok {
		return "", false
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError)), true
}

func readableUndefinedBytes(_ uint16, v Value) (string, bool) {
	b, _, ok := undefinedBytes(v)
	if !ok {
		return "", false
	}
	return joinValues(b), true
}

func readableBlob(_ uint16, v Value) (string, bool) {
	b, _, ok := undefinedBytes(v)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Blob of %d bytes", len(b)), true
}

func readableFileSource(_ uint16, v Value) (string, bool) {
	b, _, ok := undefinedBytes(v)
	if !ok {
		return "", false
	}
	if len(b) > 0 && b[0] == 3 {
		return "DSC", true
	}
	return "Unknown", true
}

// Character code prefixes of UserComment and friends.
var (
	encodingPrefixASCII   = []byte("ASCII\x00\x00\x00")
	encodingPrefixJIS     = []byte("JIS\x00\x00\x00\x00\x00")
	encodingPrefixUnicode = []byte("UNICODE\x00")
)

const encodingPrefixLen = 8

func readableEncodedString(_ uint16, v Value) (string, bool) {
	b, le, ok := undefinedBytes(v)
	if !ok {
		return "", false
	}
	if len(b) < encodingPrefixLen {
		return fmt.Sprintf("String w/ truncated preamble %s", joinValues(b)), true
	}

	prefix, text := b[:encodingPrefixLen], b[encodingPrefixLen:]
	switch {
	case bytes.Equal(prefix, encodingPrefixASCII):
		return decodeLatin1(text), true
	case bytes.Equal(prefix, encodingPrefixJIS):
		if s, err := decodeJIS(text); err == nil {
			return s, true
		}
		return fmt.Sprintf("JIS string %s", joinValues(text)), true
	case bytes.Equal(prefix, encodingPrefixUnicode):
		if s, err := decodeUTF16(text, le); err == nil {
			return s, true
		}
		return fmt.Sprintf("UNICODE string %s", joinValues(text)), true
	default:
		return fmt.Sprintf("String w/ undefined encoding %s", joinValues(b)), true
	}
}

// decodeLatin1 decodes text declared as ASCII. Writers often put UTF-8 or
// Latin-1 in there; valid UTF-8 is kept as is. Padding is removed.
func decodeLatin1(text []byte) string {
	if utf8.Valid(text) {
		return printableString(string(text))
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(text)
	if err != nil {
		return printableString(strings.ToValidUTF8(string(text), string(utf8.RuneError)))
	}
	return printableString(string(s))
}

// decodeJIS decodes JIS X 0208 text by mapping it onto EUC-JP.
func decodeJIS(text []byte) (string, error) {
	text = trimTrailingNulls(text)
	euc := make([]byte, len(text))
	for i, c := range text {
		euc[i] = c | 0x80
	}
	s, err := japanese.EUCJP.NewDecoder().Bytes(euc)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// decodeUTF16 decodes UCS-2 text in the byte order of the entry unless
// the text starts with a byte order mark.
func decodeUTF16(text []byte, le bool) (string, error) {
	endianness := unicode.BigEndian
	if le {
		endianness = unicode.LittleEndian
	}
	s, err := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder().Bytes(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(s), "\x00"), nil
}
