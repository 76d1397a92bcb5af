package frontend

import (
	"time"

	"github.com/golang-module/carbon"

	"github.com/Xevion/go-ha-number-card/types"
)

// RelativeTime renders t relative to now, e.g. "3 minutes ago".
// A zero time renders as "".
func (f *Frontend) RelativeTime(hass *types.Hass, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return carbon.Time2Carbon(t).DiffForHumans()
}
