package numbercard

import (
	"math"
	"strconv"
	"strings"

	"github.com/Xevion/go-ha-number-card/types"
)

const defaultStep = 1

// stepValue returns current moved one step of entity up or down, clamped to
// the entity's min and max and rounded to the step's precision. changed is
// false when current already sits on the bound.
func stepValue(entity types.Entity, current float64, up bool) (next float64, changed bool) {
	step := numberAttribute(entity, "step", defaultStep)
	if step <= 0 {
		step = defaultStep
	}

	if up {
		next = current + step
	} else {
		next = current - step
	}
	next = roundToStep(next, step)

	if v, ok := entity.Attribute("min"); ok {
		if lo, ok := toFloat(v); ok && next < lo {
			next = lo
		}
	}
	if v, ok := entity.Attribute("max"); ok {
		if hi, ok := toFloat(v); ok && next > hi {
			next = hi
		}
	}
	return next, next != current
}

func numberAttribute(entity types.Entity, key string, fallback float64) float64 {
	v, ok := entity.Attribute(key)
	if !ok {
		return fallback
	}
	f, ok := toFloat(v)
	if !ok {
		return fallback
	}
	return f
}

// roundToStep drops float noise so 0.1 + 0.2 comes out as 0.3.
func roundToStep(v, step float64) float64 {
	_, frac, _ := strings.Cut(strconv.FormatFloat(step, 'f', -1, 64), ".")
	scale := math.Pow10(len(frac))
	return math.Round(v*scale) / scale
}
