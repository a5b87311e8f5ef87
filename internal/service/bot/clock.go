package bot

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/goodsign/monday"

	"github.com/zhouzirui/z-whatsapp/backend/internal/config"
)

const longDateLayout = "Monday, 2 de January de 2006"

// FormatNow renders now as a long Spanish date with a 12-hour clock in
// timeZone, e.g. "lunes, 19 de octubre de 2026, 2:03:05 p. m.". An unknown zone
// falls back to the default zone, and if that also fails to the Go default
// representation.
func FormatNow(timeZone string, now time.Time) string {
	loc, err := loadLocation(timeZone)
	if err != nil {
		loc, err = loadLocation(config.DefaultTimeZone)
		if err != nil {
			return now.String()
		}
	}

	t := now.In(loc)
	return fmt.Sprintf("%s, %s %s",
		monday.Format(t, longDateLayout, monday.LocaleEsES),
		t.Format("3:04:05"), meridiem(t))
}

func meridiem(t time.Time) string {
	if t.Hour() < 12 {
		return "a. m."
	}
	return "p. m."
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("empty time zone")
	}
	return time.LoadLocation(name)
}
