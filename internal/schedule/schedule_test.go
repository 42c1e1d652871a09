package schedule

import (
	"testing"
	"time"
)

type alwaysAvailable struct{}

func (alwaysAvailable) IsAvailable(string, time.Time, string) bool { return true }

type neverAvailable struct{}

func (neverAvailable) IsAvailable(string, time.Time, string) bool { return false }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestSlotsSaturday(t *testing.T) {
	sat := mustDate(t, "2025-06-07") // sábado
	slots := Slots(sat, "u1", alwaysAvailable{})
	if len(slots) != 10 {
		t.Fatalf("saturday slots = %d, want 10", len(slots))
	}
	if slots[0].Time != "07:00" {
		t.Errorf("first slot = %q, want 07:00", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "11:30" {
		t.Errorf("last slot = %q, want 11:30", slots[len(slots)-1].Time)
	}
}

func TestSlotsWeekday(t *testing.T) {
	for _, day := range []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06"} {
		slots := Slots(mustDate(t, day), "u1", alwaysAvailable{})
		if len(slots) != 24 {
			t.Fatalf("%s: slots = %d, want 24", day, len(slots))
		}
		if slots[0].Time != "07:00" || slots[len(slots)-1].Time != "18:30" {
			t.Errorf("%s: range %q..%q, want 07:00..18:30", day, slots[0].Time, slots[len(slots)-1].Time)
		}
	}
}

func TestSlotsZeroPaddedAndStep(t *testing.T) {
	slots := Slots(mustDate(t, "2025-06-03"), "u1", alwaysAvailable{})
	want := []string{"07:00", "07:30", "08:00", "08:30", "09:00"}
	for i, w := range want {
		if slots[i].Time != w {
			t.Errorf("slot[%d] = %q, want %q", i, slots[i].Time, w)
		}
	}
}

func TestSlotsAvailabilityComesFromSource(t *testing.T) {
	for _, s := range Slots(mustDate(t, "2025-06-03"), "u1", neverAvailable{}) {
		if s.Available {
			t.Fatalf("slot %s available with neverAvailable source", s.Time)
		}
	}
	for _, s := range Slots(mustDate(t, "2025-06-03"), "u1", alwaysAvailable{}) {
		if !s.Available {
			t.Fatalf("slot %s unavailable with alwaysAvailable source", s.Time)
		}
	}
}

func TestRandomSourceSeeded(t *testing.T) {
	date := mustDate(t, "2025-06-03")
	a := Slots(date, "u1", NewSeededSource(42))
	b := Slots(date, "u1", NewSeededSource(42))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded sources diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAvailableDatesExcludesSundays(t *testing.T) {
	now := mustDate(t, "2025-06-01") // domingo
	dates := AvailableDates(now)
	if len(dates) == 0 {
		t.Fatal("no dates")
	}
	for _, ds := range dates {
		d := mustDate(t, ds)
		if d.Weekday() == time.Sunday {
			t.Fatalf("date %s is a Sunday", ds)
		}
	}
}

func TestAvailableDatesWindow(t *testing.T) {
	now := mustDate(t, "2025-06-02") // segunda
	dates := AvailableDates(now)
	if dates[0] != "2025-06-03" {
		t.Errorf("first date = %s, want tomorrow 2025-06-03", dates[0])
	}
	last := dates[len(dates)-1]
	if last != "2025-07-02" {
		t.Errorf("last date = %s, want 2025-07-02 (now+30d)", last)
	}
	// 30 dias corridos menos os domingos no intervalo (08, 15, 22, 29/06)
	if len(dates) != 26 {
		t.Errorf("len(dates) = %d, want 26", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !(dates[i] > dates[i-1]) {
			t.Fatalf("dates not ascending at %d: %s <= %s", i, dates[i], dates[i-1])
		}
	}
}

func TestIsBookable(t *testing.T) {
	now := mustDate(t, "2025-06-02")
	cases := []struct {
		date string
		want bool
	}{
		{"2025-06-03", true},
		{"2025-06-02", false}, // hoje
		{"2025-06-01", false}, // passado
		{"2025-06-08", false}, // domingo
		{"2025-07-02", true},  // limite da janela
		{"2025-07-03", false}, // fora da janela
	}
	for _, c := range cases {
		if got := IsBookable(mustDate(t, c.date), now); got != c.want {
			t.Errorf("IsBookable(%s) = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestClosingHour(t *testing.T) {
	if got := ClosingHour(mustDate(t, "2025-06-07")); got != 12 {
		t.Errorf("saturday closing = %d, want 12", got)
	}
	if got := ClosingHour(mustDate(t, "2025-06-04")); got != 19 {
		t.Errorf("weekday closing = %d, want 19", got)
	}
}

func TestValidSlot(t *testing.T) {
	weekday := mustDate(t, "2025-06-04")
	saturday := mustDate(t, "2025-06-07")
	cases := []struct {
		date time.Time
		slot string
		want bool
	}{
		{weekday, "07:00", true},
		{weekday, "18:30", true},
		{weekday, "19:00", false}, // fechamento é exclusivo
		{weekday, "06:30", false},
		{weekday, "08:15", false}, // fora da grade de 30min
		{weekday, "8:00", false},  // sem zero à esquerda
		{saturday, "11:30", true},
		{saturday, "12:00", false},
		{weekday, "nope", false},
	}
	for _, c := range cases {
		if got := ValidSlot(c.date, c.slot); got != c.want {
			t.Errorf("ValidSlot(%s, %q) = %v, want %v", c.date.Format("2006-01-02"), c.slot, got, c.want)
		}
	}
}
