package core

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Departure hour anchors, one per generated index, wrapping.
var syntheticAnchors = []int{6, 11, 15, 19, 23}

var syntheticCarriers = []string{"AC", "AF", "UA", "DL", "BA", "LH", "WS", "AA"}

const (
	syntheticMinHours = 2
	syntheticMaxHours = 5 // exclusive

	economyBase, economyStep, economyFloor    = 450, 20, 200
	businessBase, businessStep, businessFloor = 1200, 50, 500
	firstBase, firstStep, firstFloor          = 2000, 100, 1000

	priceJitter = 50
)

type syntheticGenerator struct {
	rng  *rand.Rand
	used map[string]bool
}

func newSyntheticGenerator(rng *rand.Rand, used map[string]bool) *syntheticGenerator {
	return &syntheticGenerator{rng: rng, used: used}
}

// option builds the i-th filler option. The arrival hour wraps at midnight
// without moving to the next day, so late departures can show an arrival
// clock earlier than the departure.
func (g *syntheticGenerator) option(i int, origin, destination string, day time.Time) FlightOption {
	depHour := (syntheticAnchors[i%len(syntheticAnchors)] + g.rng.Intn(3)) % 24
	minute := g.rng.Intn(60)
	hours := syntheticMinHours + g.rng.Intn(syntheticMaxHours-syntheticMinHours)
	arrHour := (depHour + hours) % 24

	jitter := g.rng.Intn(2*priceJitter+1) - priceJitter

	y, m, d := day.Date()
	return FlightOption{
		ID:              g.nextID(),
		FlightNumber:    fmt.Sprintf("%s%d", syntheticCarriers[g.rng.Intn(len(syntheticCarriers))], 100+g.rng.Intn(900)),
		Source:          origin,
		Destination:     destination,
		DepartureTime:   NewLocalTime(y, m, d, depHour, minute),
		ArrivalTime:     NewLocalTime(y, m, d, arrHour, minute),
		EconomyPrice:    float64(max(economyBase+economyStep*i+jitter, economyFloor)),
		BusinessPrice:   float64(max(businessBase+businessStep*i+jitter, businessFloor)),
		FirstClassPrice: float64(max(firstBase+firstStep*i+jitter, firstFloor)),
		Kind:            KindSynthetic,
	}
}

func (g *syntheticGenerator) nextID() string {
	for {
		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			id = uuid.New()
		}
		candidate := "syn-" + id.String()
		if !g.used[candidate] {
			g.used[candidate] = true
			return candidate
		}
	}
}
