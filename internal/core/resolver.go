package core

import (
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultMinOptions is the smallest result a search with both endpoints
// returns.
const DefaultMinOptions = 5

// DateLayout is the format of Query.Date.
const DateLayout = "2006-01-02"

// Resolver turns a leg snapshot into the ordered flight options for a route.
// A Resolver holds no per-search state and is safe for concurrent use.
type Resolver struct {
	minOptions int
	seed       func() int64
	now        func() time.Time
}

type ResolverOption func(*Resolver)

func WithMinOptions(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.minOptions = n
		}
	}
}

// WithSeed fixes the random source of every search, making synthetic
// options reproducible.
func WithSeed(seed int64) ResolverOption {
	return func(r *Resolver) {
		r.seed = func() int64 { return seed }
	}
}

func WithSeedFunc(fn func() int64) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.seed = fn
		}
	}
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	var counter atomic.Int64
	r := &Resolver{
		minOptions: DefaultMinOptions,
		seed: func() int64 {
			return time.Now().UnixNano() + counter.Add(1)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) MinOptions() int {
	return r.minOptions
}

// Resolve returns direct options first, then one-stop connections, then
// synthetic filler up to the minimum. Without both endpoints every leg is
// returned as a direct option.
func (r *Resolver) Resolve(legs []FlightLeg, q Query) []FlightOption {
	origin := strings.TrimSpace(q.Origin)
	destination := strings.TrimSpace(q.Destination)
	if origin == "" || destination == "" {
		return browseAll(legs)
	}

	from, to := cityKey(origin), cityKey(destination)

	options := directOptions(legs, from, to)
	if len(options) < r.minOptions {
		options = append(options, connectionOptions(legs, from, to)...)
	}

	if missing := r.minOptions - len(options); missing > 0 {
		rng := rand.New(rand.NewSource(r.seed()))
		gen := newSyntheticGenerator(rng, usedIDs(legs, options))
		day := SearchDay(q.Date, r.now())
		for i := 0; i < missing; i++ {
			options = append(options, gen.option(i, origin, destination, day))
		}
	}

	return options
}

// SearchDay returns midnight of the query date, or of now's calendar day
// when the date is empty or malformed.
func SearchDay(date string, now time.Time) time.Time {
	if date = strings.TrimSpace(date); date != "" {
		if d, err := time.Parse(DateLayout, date); err == nil {
			return d
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func browseAll(legs []FlightLeg) []FlightOption {
	options := make([]FlightOption, 0, len(legs))
	for _, l := range legs {
		options = append(options, directOption(l))
	}
	return options
}

func directOptions(legs []FlightLeg, from, to string) []FlightOption {
	var options []FlightOption
	for _, l := range legs {
		if !l.usable() {
			continue
		}
		if cityKey(l.Source) == from && cityKey(l.Destination) == to {
			options = append(options, directOption(l))
		}
	}
	return options
}

// connectionOptions pairs each start leg with the first end leg that leaves
// its arrival city after it lands. Only one connection is taken per start
// leg, in start-leg order.
func connectionOptions(legs []FlightLeg, from, to string) []FlightOption {
	var startLegs, endLegs []FlightLeg
	for _, l := range legs {
		if !l.usable() {
			continue
		}
		if cityKey(l.Source) == from {
			startLegs = append(startLegs, l)
		}
		if cityKey(l.Destination) == to {
			endLegs = append(endLegs, l)
		}
	}

	var options []FlightOption
	for _, first := range startLegs {
		hub := cityKey(first.Destination)
		for _, second := range endLegs {
			if cityKey(second.Source) != hub {
				continue
			}
			if !second.DepartureTime.After(first.ArrivalTime.Time) {
				continue
			}
			options = append(options, connectionOption(first, second))
			break
		}
	}
	return options
}

func directOption(l FlightLeg) FlightOption {
	return FlightOption{
		ID:              l.ID,
		FlightNumber:    l.FlightNumber,
		Source:          l.Source,
		Destination:     l.Destination,
		DepartureTime:   l.DepartureTime,
		ArrivalTime:     l.ArrivalTime,
		EconomyPrice:    l.EconomyPrice,
		BusinessPrice:   l.BusinessPrice,
		FirstClassPrice: l.FirstClassPrice,
		Kind:            KindDirect,
	}
}

func connectionOption(first, second FlightLeg) FlightOption {
	return FlightOption{
		ID:              "conn-" + first.ID + "-" + second.ID,
		FlightNumber:    first.FlightNumber + " + " + second.FlightNumber,
		Source:          first.Source,
		Destination:     second.Destination,
		DepartureTime:   first.DepartureTime,
		ArrivalTime:     second.ArrivalTime,
		EconomyPrice:    roundCents(first.EconomyPrice + second.EconomyPrice),
		BusinessPrice:   roundCents(first.BusinessPrice + second.BusinessPrice),
		FirstClassPrice: roundCents(first.FirstClassPrice + second.FirstClassPrice),
		Kind:            KindConnection,
		StopCity:        first.Destination,
		LegIDs:          []string{first.ID, second.ID},
	}
}

func usedIDs(legs []FlightLeg, options []FlightOption) map[string]bool {
	used := make(map[string]bool, len(legs)+len(options))
	for _, l := range legs {
		used[l.ID] = true
	}
	for _, o := range options {
		used[o.ID] = true
	}
	return used
}

func cityKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
