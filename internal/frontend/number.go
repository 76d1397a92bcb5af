package frontend

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Xevion/go-ha-number-card/types"
)

const defaultMaxFractionDigits = 2

// FormatNumber formats value for locale honoring the fraction digit options.
// Ties round away from zero, as the browser's Intl formatter does.
func (f *Frontend) FormatNumber(value float64, locale types.Locale, opts types.NumberFormatOptions) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	maxDigits := defaultMaxFractionDigits
	if opts.MaximumFractionDigits != nil {
		maxDigits = *opts.MaximumFractionDigits
	}
	value = roundHalfAway(value, maxDigits)

	if locale.NumberFormat == types.NumberFormatNone {
		return formatPlain(value, opts)
	}

	options := []number.Option{number.MaxFractionDigits(maxDigits)}
	if opts.MinimumFractionDigits != nil {
		options = append(options, number.MinFractionDigits(*opts.MinimumFractionDigits))
	}

	p := message.NewPrinter(numberTag(locale))
	return p.Sprint(number.Decimal(value, options...))
}

// numberTag maps the user's number format preference to a language whose
// separators match it.
func numberTag(locale types.Locale) language.Tag {
	switch locale.NumberFormat {
	case types.NumberFormatCommaDecimal:
		return language.AmericanEnglish
	case types.NumberFormatDecimalComma:
		return language.German
	case types.NumberFormatSpaceComma:
		return language.French
	}
	if locale.Language == "" {
		return language.English
	}
	tag, err := language.Parse(locale.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// roundHalfAway rounds value to digits fraction digits on its shortest
// decimal form, so 2.5 becomes 3 and 1.005 becomes 1.01.
func roundHalfAway(value float64, digits int) float64 {
	if digits < 0 {
		return value
	}
	s := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) <= digits {
		return value
	}

	rounded, err := strconv.ParseFloat(whole+"."+frac[:digits], 64)
	if err != nil {
		return value
	}
	if frac[digits] >= '5' {
		rounded += math.Pow10(-digits)
	}
	return math.Copysign(rounded, value)
}

// formatPlain renders value without grouping and with a dot separator.
func formatPlain(value float64, opts types.NumberFormatOptions) string {
	maxDigits := defaultMaxFractionDigits
	if opts.MaximumFractionDigits != nil {
		maxDigits = *opts.MaximumFractionDigits
	}
	minDigits := 0
	if opts.MinimumFractionDigits != nil {
		minDigits = *opts.MinimumFractionDigits
	}

	s := strconv.FormatFloat(value, 'f', maxDigits, 64)
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return s
	}
	for len(frac) > minDigits && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// NumberFormatOptions returns entity specific options: the registry display
// precision when set, otherwise zero fraction digits when both the step and
// the state are integers. It returns nil when the entity has no preference.
func (f *Frontend) NumberFormatOptions(entity types.Entity, entry *types.EntityRegistryEntry) *types.NumberFormatOptions {
	if entry != nil && entry.DisplayPrecision != nil {
		p := *entry.DisplayPrecision
		return &types.NumberFormatOptions{MinimumFractionDigits: &p, MaximumFractionDigits: &p}
	}

	step, ok := entity.Attribute("step")
	if !ok {
		return nil
	}
	if isInteger(step) && isInteger(entity.State) {
		zero := 0
		return &types.NumberFormatOptions{MaximumFractionDigits: &zero}
	}
	return nil
}

// DefaultFormatOptions derives options from the raw state string: as many
// fraction digits as the state itself carries.
func (f *Frontend) DefaultFormatOptions(state string) types.NumberFormatOptions {
	digits := 0
	if _, frac, found := strings.Cut(state, "."); found {
		digits = len(frac)
	}
	return types.NumberFormatOptions{MinimumFractionDigits: &digits, MaximumFractionDigits: &digits}
}

func isInteger(v any) bool {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		return true
	case int64:
		return true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return false
		}
		n = parsed
	default:
		return false
	}
	return !math.IsInf(n, 0) && n == math.Trunc(n)
}
