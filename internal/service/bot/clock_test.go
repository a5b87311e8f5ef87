package bot

import (
	"testing"
	"time"
)

func TestFormatNowInZone(t *testing.T) {
	now := time.Date(2026, 1, 3, 6, 7, 8, 0, time.UTC)

	got := FormatNow("Europe/Madrid", now)
	if got != "sábado, 3 de enero de 2026, 7:07:08 a. m." {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatNowTwelveHourClock(t *testing.T) {
	cases := map[time.Time]string{
		time.Date(2026, 10, 19, 20, 3, 5, 0, time.UTC):  "lunes, 19 de octubre de 2026, 2:03:05 p. m.",
		time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC):   "lunes, 19 de octubre de 2026, 12:00:00 a. m.",
		time.Date(2026, 10, 19, 18, 30, 0, 0, time.UTC): "lunes, 19 de octubre de 2026, 12:30:00 p. m.",
	}
	for now, want := range cases {
		if got := FormatNow("America/Costa_Rica", now); got != want {
			t.Fatalf("FormatNow(%s) = %q, want %q", now, got, want)
		}
	}
}

func TestFormatNowFallsBackToDefaultZone(t *testing.T) {
	now := time.Date(2026, 10, 19, 20, 3, 5, 0, time.UTC)

	want := FormatNow("America/Costa_Rica", now)
	for _, zone := range []string{"Mars/Olympus_Mons", ""} {
		if got := FormatNow(zone, now); got != want {
			t.Fatalf("zone %q: expected fallback %q, got %q", zone, want, got)
		}
	}
}
