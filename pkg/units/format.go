package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit string formats.
const (
	FormatGeneric = "generic"
	FormatCDS     = "cds"
	FormatFITS    = "fits"
	FormatUnicode = "unicode"
	FormatLaTeX   = "latex"
)

var toSuperscript = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// Format renders the unit in the named format. The generic, fits, cds and unicode forms can be
// parsed back with Parse.
func (u Unit) Format(format string) (string, error) {
	switch format {
	case "", FormatGeneric, FormatFITS:
		return u.String(), nil

	case FormatCDS:
		return u.join(".", func(p int) string { return strconv.Itoa(p) }), nil

	case FormatUnicode:
		return u.join(" ", func(p int) string {
			return strings.Map(func(r rune) rune { return toSuperscript[r] }, strconv.Itoa(p))
		}), nil

	case FormatLaTeX:
		s := u.join(`\,`, func(p int) string { return fmt.Sprintf("^{%d}", p) })
		if len(u.factors) == 0 {
			s = ""
		}
		return fmt.Sprintf(`$\mathrm{%s}$`, s), nil
	}

	return "", NewConversionError(fmt.Errorf("unknown unit format %q", format))
}

func (u Unit) join(sep string, power func(int) string) string {
	if len(u.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(u.factors))
	for i, f := range u.factors {
		parts[i] = f.Symbol
		if f.Power != 1 {
			parts[i] += power(f.Power)
		}
	}
	return strings.Join(parts, sep)
}
