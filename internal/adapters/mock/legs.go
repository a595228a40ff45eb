package mock

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/beetlebot/travel-options/internal/core"
)

// MockLegsProvider serves a deterministic leg snapshot for the search day:
// the query date, or the clock's current day without one. The same day
// always yields the same legs.
type MockLegsProvider struct {
	now func() time.Time
}

func NewMockLegsProvider(now func() time.Time) *MockLegsProvider {
	if now == nil {
		now = time.Now
	}
	return &MockLegsProvider{now: now}
}

func (a *MockLegsProvider) Name() string                    { return "mock_legs" }
func (a *MockLegsProvider) Tier() core.ProviderTier         { return core.TierEasySignup }
func (a *MockLegsProvider) Capabilities() []core.Capability { return []core.Capability{core.CapLegsSnapshot} }
func (a *MockLegsProvider) Available() (bool, string)       { return true, "" }

var mockAirlines = []struct {
	Code string
	Name string
}{
	{"AC", "Air Canada"},
	{"AF", "Air France"},
	{"UA", "United Airlines"},
	{"DL", "Delta Air Lines"},
	{"BA", "British Airways"},
	{"LH", "Lufthansa"},
	{"WS", "WestJet"},
	{"AA", "American Airlines"},
}

var mockCities = []string{
	"Montreal", "Toronto", "New York", "Paris", "London", "Frankfurt", "Dubai", "Tokyo",
}

// Hubs get extra departures so one-stop connections exist between most
// city pairs.
var mockHubs = map[string]bool{"Paris": true, "London": true, "New York": true}

func (a *MockLegsProvider) day(q core.Query) time.Time {
	return core.SearchDay(q.Date, a.now())
}

// SnapshotSource keys cached snapshots by day.
func (a *MockLegsProvider) SnapshotSource(q core.Query) string {
	return a.day(q).Format(core.DateLayout)
}

func (a *MockLegsProvider) Legs(ctx context.Context, q core.Query) ([]core.FlightLeg, error) {
	day := a.day(q)
	rng := rand.New(rand.NewSource(hashSeed(day.Format(core.DateLayout))))

	var legs []core.FlightLeg
	for _, from := range mockCities {
		for _, to := range mockCities {
			if from == to {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			departures := rng.Intn(2)
			if mockHubs[from] || mockHubs[to] {
				departures += 1 + rng.Intn(2)
			}
			for i := 0; i < departures; i++ {
				legs = append(legs, leg(rng, day, len(legs), from, to))
			}
		}
	}

	return legs, nil
}

func leg(rng *rand.Rand, day time.Time, seq int, from, to string) core.FlightLeg {
	al := mockAirlines[rng.Intn(len(mockAirlines))]
	durationMin := 60 + rng.Intn(600)
	departHour := 5 + rng.Intn(16)
	depart := day.Add(time.Duration(departHour)*time.Hour + time.Duration(rng.Intn(12)*5)*time.Minute)
	arrive := depart.Add(time.Duration(durationMin) * time.Minute)

	economy := 120.0 + float64(rng.Intn(700)) + float64(durationMin)/4
	economy = float64(int(economy*100)) / 100

	return core.FlightLeg{
		ID:              fmt.Sprintf("m_%s_%d", al.Code, 1000+seq),
		FlightNumber:    fmt.Sprintf("%s%d", al.Code, 100+rng.Intn(900)),
		Source:          from,
		Destination:     to,
		DepartureTime:   core.AsLocalTime(depart),
		ArrivalTime:     core.AsLocalTime(arrive),
		EconomyPrice:    economy,
		BusinessPrice:   float64(int(economy*2.6*100)) / 100,
		FirstClassPrice: float64(int(economy*4.2*100)) / 100,
	}
}

func hashSeed(s string) int64 {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
