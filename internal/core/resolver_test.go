package core

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) LocalTime {
	t.Helper()
	lt, err := ParseLocalTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return lt
}

func newLeg(t *testing.T, id, src, dst, dep, arr string, economy, business, first float64) FlightLeg {
	t.Helper()
	return FlightLeg{
		ID:              id,
		FlightNumber:    "FN" + id,
		Source:          src,
		Destination:     dst,
		DepartureTime:   mustTime(t, dep),
		ArrivalTime:     mustTime(t, arr),
		EconomyPrice:    economy,
		BusinessPrice:   business,
		FirstClassPrice: first,
	}
}

func directLegs(t *testing.T, n int, src, dst string) []FlightLeg {
	t.Helper()
	var legs []FlightLeg
	for i := 0; i < n; i++ {
		legs = append(legs, newLeg(t, fmt.Sprintf("d%d", i), src, dst,
			fmt.Sprintf("2026-06-12T%02d:00:00", 6+i), fmt.Sprintf("2026-06-12T%02d:30:00", 8+i),
			300+float64(i), 900, 1500))
	}
	return legs
}

func countKinds(options []FlightOption) map[OptionKind]int {
	counts := map[OptionKind]int{}
	for _, o := range options {
		counts[o.Kind]++
	}
	return counts
}

func TestResolve_BrowseAllWithoutEndpoints(t *testing.T) {
	legs := []FlightLeg{
		newLeg(t, "1", "Paris", "London", "2026-06-12T08:00", "2026-06-12T09:00", 100, 300, 600),
		{ID: "broken", Source: "Rome", Destination: "Oslo"},
		newLeg(t, "2", "Tokyo", "Dubai", "2026-06-12T10:00", "2026-06-12T18:00", 500, 1300, 2400),
	}
	r := NewResolver(WithSeed(1))

	for _, q := range []Query{
		{Origin: "", Destination: "London"},
		{Origin: "Paris", Destination: "   "},
		{},
	} {
		options := r.Resolve(legs, q)
		if len(options) != len(legs) {
			t.Fatalf("query %+v: expected %d options, got %d", q, len(legs), len(options))
		}
		for i, o := range options {
			if o.ID != legs[i].ID {
				t.Errorf("query %+v: option %d id %s, want %s", q, i, o.ID, legs[i].ID)
			}
			if o.Kind != KindDirect {
				t.Errorf("query %+v: option %d kind %s, want direct", q, i, o.Kind)
			}
		}
	}
}

func TestResolve_EnoughDirectMatches(t *testing.T) {
	legs := directLegs(t, 6, "Paris", "London")
	legs = append(legs,
		newLeg(t, "hub1", "Paris", "Brussels", "2026-06-12T06:00", "2026-06-12T07:00", 80, 200, 400),
		newLeg(t, "hub2", "Brussels", "London", "2026-06-12T09:00", "2026-06-12T10:00", 90, 220, 420),
	)

	options := NewResolver().Resolve(legs, Query{Origin: "Paris", Destination: "London"})
	if len(options) != 6 {
		t.Fatalf("expected 6 direct options, got %d", len(options))
	}
	for i, o := range options {
		if o.Kind != KindDirect {
			t.Errorf("option %d: expected direct, got %s", i, o.Kind)
		}
		if o.ID != fmt.Sprintf("d%d", i) {
			t.Errorf("option %d: expected d%d, got %s", i, i, o.ID)
		}
	}
}

func TestResolve_CaseInsensitiveTrimmedEndpoints(t *testing.T) {
	legs := directLegs(t, 5, "New York", "Montreal")

	options := NewResolver().Resolve(legs, Query{Origin: "  new york ", Destination: "MONTREAL"})
	if got := countKinds(options)[KindDirect]; got != 5 {
		t.Fatalf("expected 5 direct options, got %d", got)
	}
	if options[0].Source != "New York" {
		t.Errorf("direct options keep the leg's spelling, got %q", options[0].Source)
	}
}

func TestResolve_OneStopConnection(t *testing.T) {
	legs := []FlightLeg{
		newLeg(t, "L1", "A", "C", "2026-06-12T08:00:00", "2026-06-12T10:00:00", 100, 400, 800),
		newLeg(t, "L2", "C", "B", "2026-06-12T11:00:00", "2026-06-12T13:30:00", 150.5, 500, 900),
	}

	options := NewResolver(WithSeed(3)).Resolve(legs, Query{Origin: "A", Destination: "B", Date: "2026-06-12"})

	kinds := countKinds(options)
	if kinds[KindConnection] != 1 || kinds[KindDirect] != 0 || kinds[KindSynthetic] != 4 {
		t.Fatalf("unexpected kinds %v", kinds)
	}

	conn := options[0]
	if conn.Kind != KindConnection {
		t.Fatalf("expected the connection first, got %s", conn.Kind)
	}
	if conn.ID != "conn-L1-L2" {
		t.Errorf("unexpected id %s", conn.ID)
	}
	if conn.FlightNumber != "FNL1 + FNL2" {
		t.Errorf("unexpected flight number %q", conn.FlightNumber)
	}
	if conn.Source != "A" || conn.Destination != "B" || conn.StopCity != "C" {
		t.Errorf("unexpected endpoints %s -> %s via %s", conn.Source, conn.Destination, conn.StopCity)
	}
	if conn.EconomyPrice != 250.5 || conn.BusinessPrice != 900 || conn.FirstClassPrice != 1700 {
		t.Errorf("unexpected prices %v/%v/%v", conn.EconomyPrice, conn.BusinessPrice, conn.FirstClassPrice)
	}
	if !conn.DepartureTime.Equal(legs[0].DepartureTime.Time) || !conn.ArrivalTime.Equal(legs[1].ArrivalTime.Time) {
		t.Errorf("unexpected times %s -> %s", conn.DepartureTime, conn.ArrivalTime)
	}
	if !reflect.DeepEqual(conn.LegIDs, []string{"L1", "L2"}) {
		t.Errorf("unexpected leg ids %v", conn.LegIDs)
	}
}

func TestResolve_ConnectionFirstMatchWins(t *testing.T) {
	legs := []FlightLeg{
		newLeg(t, "start", "A", "C", "2026-06-12T08:00", "2026-06-12T10:00", 100, 400, 800),
		newLeg(t, "early", "C", "B", "2026-06-12T09:00", "2026-06-12T11:00", 50, 100, 200),
		newLeg(t, "same", "C", "B", "2026-06-12T10:00", "2026-06-12T12:00", 50, 100, 200),
		newLeg(t, "pricey", "C", "B", "2026-06-12T12:00", "2026-06-12T14:00", 900, 900, 900),
		newLeg(t, "cheap", "C", "B", "2026-06-12T11:00", "2026-06-12T13:00", 10, 10, 10),
	}

	options := NewResolver(WithSeed(1)).Resolve(legs, Query{Origin: "a", Destination: "b"})

	var conns []FlightOption
	for _, o := range options {
		if o.Kind == KindConnection {
			conns = append(conns, o)
		}
	}
	if len(conns) != 1 {
		t.Fatalf("expected exactly one connection per start leg, got %d", len(conns))
	}
	if conns[0].ID != "conn-start-pricey" {
		t.Errorf("expected first qualifying end leg, got %s", conns[0].ID)
	}
}

func TestResolve_ConnectionsFollowStartLegOrder(t *testing.T) {
	legs := []FlightLeg{
		newLeg(t, "s1", "A", "X", "2026-06-12T06:00", "2026-06-12T07:00", 100, 200, 300),
		newLeg(t, "direct", "A", "B", "2026-06-12T06:00", "2026-06-12T09:00", 100, 200, 300),
		newLeg(t, "s2", "A", "Y", "2026-06-12T06:00", "2026-06-12T07:00", 100, 200, 300),
		newLeg(t, "y1", "Y", "B", "2026-06-12T08:00", "2026-06-12T09:00", 100, 200, 300),
		newLeg(t, "x1", "X", "B", "2026-06-12T08:00", "2026-06-12T09:00", 100, 200, 300),
	}

	options := NewResolver(WithSeed(1)).Resolve(legs, Query{Origin: "A", Destination: "B"})

	want := []string{"direct", "conn-s1-x1", "conn-s2-y1"}
	for i, id := range want {
		if options[i].ID != id {
			t.Errorf("option %d: expected %s, got %s", i, id, options[i].ID)
		}
	}
	for _, o := range options[len(want):] {
		if o.Kind != KindSynthetic {
			t.Errorf("expected synthetic after real options, got %s", o.Kind)
		}
	}
}

func TestResolve_BoundaryCounts(t *testing.T) {
	hub := func(t *testing.T) []FlightLeg {
		return []FlightLeg{
			newLeg(t, "h1", "Paris", "Brussels", "2026-06-12T06:00", "2026-06-12T07:00", 80, 200, 400),
			newLeg(t, "h2", "Brussels", "London", "2026-06-12T09:00", "2026-06-12T10:00", 90, 220, 420),
		}
	}

	tests := []struct {
		name      string
		legs      []FlightLeg
		synthetic int
		total     int
	}{
		{"five direct", directLegs(t, 5, "Paris", "London"), 0, 5},
		{"four direct and one connection", append(directLegs(t, 4, "Paris", "London"), hub(t)...), 0, 5},
		{"four direct", directLegs(t, 4, "Paris", "London"), 1, 5},
		{"one connection", hub(t), 4, 5},
		{"no legs", nil, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := NewResolver(WithSeed(9)).Resolve(tt.legs, Query{Origin: "Paris", Destination: "London"})
			if len(options) != tt.total {
				t.Fatalf("expected %d options, got %d", tt.total, len(options))
			}
			if got := countKinds(options)[KindSynthetic]; got != tt.synthetic {
				t.Errorf("expected %d synthetic options, got %d", tt.synthetic, got)
			}
		})
	}
}

func TestResolve_MalformedLegsFallThrough(t *testing.T) {
	legs := []FlightLeg{
		newLeg(t, "noprice", "A", "B", "2026-06-12T08:00", "2026-06-12T10:00", 0, 400, 800),
		newLeg(t, "reversed", "A", "B", "2026-06-12T10:00", "2026-06-12T08:00", 100, 400, 800),
		{ID: "notimes", Source: "A", Destination: "B", EconomyPrice: 1, BusinessPrice: 1, FirstClassPrice: 1},
		newLeg(t, "leg1", "A", "C", "2026-06-12T08:00", "2026-06-12T10:00", 100, 400, 800),
		{ID: "leg2", Source: "C", Destination: "B", EconomyPrice: 1, BusinessPrice: 1, FirstClassPrice: 1},
	}

	options := NewResolver(WithSeed(5)).Resolve(legs, Query{Origin: "A", Destination: "B"})
	if len(options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(options))
	}
	for _, o := range options {
		if o.Kind != KindSynthetic {
			t.Errorf("expected only synthetic options, got %s %s", o.Kind, o.ID)
		}
	}
}

func TestResolve_SyntheticRanges(t *testing.T) {
	legIDs := map[string]bool{}
	for seed := int64(1); seed <= 40; seed++ {
		options := NewResolver(WithSeed(seed)).Resolve(nil, Query{Origin: " Paris ", Destination: "Tokyo", Date: "2026-06-12"})
		if len(options) != 5 {
			t.Fatalf("seed %d: expected 5 synthetic options, got %d", seed, len(options))
		}

		ids := map[string]bool{}
		for i, o := range options {
			if o.Kind != KindSynthetic {
				t.Fatalf("seed %d: option %d kind %s", seed, i, o.Kind)
			}
			if o.Source != "Paris" || o.Destination != "Tokyo" {
				t.Errorf("seed %d: unexpected endpoints %q -> %q", seed, o.Source, o.Destination)
			}
			if !strings.HasPrefix(o.ID, "syn-") || ids[o.ID] || legIDs[o.ID] {
				t.Errorf("seed %d: bad or duplicate id %q", seed, o.ID)
			}
			ids[o.ID] = true

			anchor := syntheticAnchors[i]
			dep := o.DepartureTime.Hour()
			if (dep-anchor+24)%24 > 2 {
				t.Errorf("seed %d: option %d departs at %d, anchor %d", seed, i, dep, anchor)
			}
			duration := (o.ArrivalTime.Hour() - dep + 24) % 24
			if duration < 2 || duration > 4 {
				t.Errorf("seed %d: option %d duration %dh outside [2,5)", seed, i, duration)
			}
			if o.ArrivalTime.Minute() != o.DepartureTime.Minute() {
				t.Errorf("seed %d: option %d minutes differ", seed, i)
			}
			y, m, d := o.DepartureTime.Date()
			if y != 2026 || m != time.June || d != 12 {
				t.Errorf("seed %d: option %d on wrong day %s", seed, i, o.DepartureTime)
			}
			ay, am, ad := o.ArrivalTime.Date()
			if ay != y || am != m || ad != d {
				t.Errorf("seed %d: option %d arrival moved to another day", seed, i)
			}

			jitter := int(o.EconomyPrice) - (450 + 20*i)
			if jitter < -50 || jitter > 50 {
				t.Errorf("seed %d: option %d economy jitter %d", seed, i, jitter)
			}
			if int(o.BusinessPrice)-(1200+50*i) != jitter || int(o.FirstClassPrice)-(2000+100*i) != jitter {
				t.Errorf("seed %d: option %d classes use different jitter", seed, i)
			}
			if o.EconomyPrice < 200 || o.BusinessPrice < 500 || o.FirstClassPrice < 1000 {
				t.Errorf("seed %d: option %d below price floor", seed, i)
			}
		}
	}
}

func TestResolve_SyntheticArrivalWrapsWithoutDateChange(t *testing.T) {
	// The late anchor can wrap past midnight; the arrival keeps the
	// departure date, so its clock reads earlier than the departure.
	for seed := int64(1); seed <= 200; seed++ {
		options := NewResolver(WithSeed(seed)).Resolve(nil, Query{Origin: "A", Destination: "B", Date: "2026-06-12"})
		late := options[4]
		if late.DepartureTime.Hour() != 23 {
			continue
		}
		if !late.ArrivalTime.Before(late.DepartureTime.Time) {
			t.Fatalf("seed %d: expected wrapped arrival before departure, got %s -> %s",
				seed, late.DepartureTime, late.ArrivalTime)
		}
		if late.ArrivalTime.Day() != 12 {
			t.Fatalf("seed %d: arrival should stay on the departure date", seed)
		}
		return
	}
	t.Fatal("no seed produced a 23:xx departure")
}

func TestResolve_SyntheticIDsAvoidLegIDs(t *testing.T) {
	// Same seed, same stream: the first id drawn collides with a leg id
	// and must be regenerated.
	probe := NewResolver(WithSeed(11)).Resolve(nil, Query{Origin: "A", Destination: "B"})
	taken := probe[0].ID

	legs := []FlightLeg{{ID: taken, Source: "X", Destination: "Y"}}
	options := NewResolver(WithSeed(11)).Resolve(legs, Query{Origin: "A", Destination: "B"})
	for _, o := range options {
		if o.ID == taken {
			t.Fatalf("synthetic id %s collides with a leg id", taken)
		}
	}
}

func TestResolve_Reproducible(t *testing.T) {
	q := Query{Origin: "Paris", Destination: "London", Date: "2026-06-12"}

	a := NewResolver(WithSeed(42)).Resolve(nil, q)
	b := NewResolver(WithSeed(42)).Resolve(nil, q)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical synthetic options")
	}

	c := NewResolver(WithSeed(43)).Resolve(nil, q)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should vary synthetic options")
	}

	legs := directLegs(t, 5, "Paris", "London")
	r := NewResolver()
	if !reflect.DeepEqual(r.Resolve(legs, q), r.Resolve(legs, q)) {
		t.Error("resolution without synthetic options should be identical across calls")
	}
}

func TestResolve_DefaultSeedVariesAcrossCalls(t *testing.T) {
	r := NewResolver()
	q := Query{Origin: "A", Destination: "B", Date: "2026-06-12"}
	first := r.Resolve(nil, q)
	second := r.Resolve(nil, q)
	if first[0].ID == second[0].ID {
		t.Error("expected fresh synthetic ids per call")
	}
}

func TestResolve_DateFallsBackToClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2027, time.March, 3, 17, 45, 0, 0, time.UTC) }
	r := NewResolver(WithSeed(2), WithClock(clock))

	for _, date := range []string{"", "not-a-date"} {
		options := r.Resolve(nil, Query{Origin: "A", Destination: "B", Date: date})
		y, m, d := options[0].DepartureTime.Date()
		if y != 2027 || m != time.March || d != 3 {
			t.Errorf("date %q: expected clock date, got %s", date, options[0].DepartureTime)
		}
	}
}

func TestResolve_MinOptions(t *testing.T) {
	r := NewResolver(WithSeed(1), WithMinOptions(3))
	if r.MinOptions() != 3 {
		t.Fatalf("expected min 3, got %d", r.MinOptions())
	}
	if got := len(r.Resolve(nil, Query{Origin: "A", Destination: "B"})); got != 3 {
		t.Errorf("expected 3 options, got %d", got)
	}

	if NewResolver(WithMinOptions(0)).MinOptions() != DefaultMinOptions {
		t.Error("non-positive minimum should keep the default")
	}
}

func TestResolve_ConcurrentSearches(t *testing.T) {
	r := NewResolver()
	legs := directLegs(t, 2, "A", "B")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			options := r.Resolve(legs, Query{Origin: "A", Destination: "B"})
			if len(options) != 5 {
				t.Errorf("expected 5 options, got %d", len(options))
			}
		}()
	}
	wg.Wait()
}
