package core

import (
	"context"
	"time"

	"github.com/beetlebot/travel-options/internal/config"
)

type Capability string

const (
	CapLegsSnapshot Capability = "legs.snapshot"
	CapLegsQuery    Capability = "legs.query"
)

type ProviderTier string

const (
	TierEasySignup ProviderTier = "easySignup"
	TierSelfHosted ProviderTier = "selfHosted"
)

// FlightLeg is one scheduled point-to-point flight as supplied by a leg provider.
type FlightLeg struct {
	ID              string    `json:"id" yaml:"id"`
	FlightNumber    string    `json:"flightNumber" yaml:"flightNumber"`
	Source          string    `json:"source" yaml:"source"`
	Destination     string    `json:"destination" yaml:"destination"`
	DepartureTime   LocalTime `json:"departureTime" yaml:"departureTime"`
	ArrivalTime     LocalTime `json:"arrivalTime" yaml:"arrivalTime"`
	EconomyPrice    float64   `json:"economyPrice" yaml:"economyPrice"`
	BusinessPrice   float64   `json:"businessPrice" yaml:"businessPrice"`
	FirstClassPrice float64   `json:"firstClassPrice" yaml:"firstClassPrice"`
}

// usable reports whether the leg can take part in direct or connection
// matching: priced in every class and departing before it arrives.
func (l FlightLeg) usable() bool {
	if l.EconomyPrice <= 0 || l.BusinessPrice <= 0 || l.FirstClassPrice <= 0 {
		return false
	}
	if l.DepartureTime.IsZero() || l.ArrivalTime.IsZero() {
		return false
	}
	return l.DepartureTime.Before(l.ArrivalTime.Time)
}

type OptionKind string

const (
	KindDirect     OptionKind = "direct"
	KindConnection OptionKind = "connection"
	KindSynthetic  OptionKind = "synthetic"
)

type FlightOption struct {
	ID              string     `json:"id"`
	FlightNumber    string     `json:"flightNumber"`
	Source          string     `json:"source"`
	Destination     string     `json:"destination"`
	DepartureTime   LocalTime  `json:"departureTime"`
	ArrivalTime     LocalTime  `json:"arrivalTime"`
	EconomyPrice    float64    `json:"economyPrice"`
	BusinessPrice   float64    `json:"businessPrice"`
	FirstClassPrice float64    `json:"firstClassPrice"`
	Kind            OptionKind `json:"kind"`
	StopCity        string     `json:"stopCity,omitempty"`
	LegIDs          []string   `json:"legIds,omitempty"`
}

// BasePrice returns the option's price for the given travel class.
func (o FlightOption) BasePrice(class CabinClass) (float64, error) {
	switch class {
	case ClassEconomy:
		return o.EconomyPrice, nil
	case ClassBusiness:
		return o.BusinessPrice, nil
	case ClassFirst:
		return o.FirstClassPrice, nil
	}
	return 0, ErrUnknownCabinClass
}

type Query struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date,omitempty"`
}

type SearchResult struct {
	Query      Query           `json:"query"`
	Mode       config.Mode     `json:"mode"`
	Providers  []string        `json:"providers"`
	Options    []FlightOption  `json:"options"`
	TotalFound int             `json:"totalFound"`
	Errors     []ProviderError `json:"errors,omitempty"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

type ProviderError struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
	Fallback string `json:"fallback,omitempty"`
}

type ProviderInfo struct {
	Name         string       `json:"name"`
	Capabilities []Capability `json:"capabilities"`
	Tier         ProviderTier `json:"tier"`
	Status       string       `json:"status"`
	Reason       string       `json:"reason,omitempty"`
}

type DoctorReport struct {
	Mode      config.Mode    `json:"mode"`
	Providers []ProviderInfo `json:"providers"`
	Healthy   bool           `json:"healthy"`
	Summary   string         `json:"summary"`
}

// LegProvider supplies the snapshot of known flight legs for a search.
// Providers backed by a fixed data set ignore the query.
type LegProvider interface {
	Name() string
	Tier() ProviderTier
	Capabilities() []Capability
	Available() (bool, string)
	Legs(ctx context.Context, q Query) ([]FlightLeg, error)
}

// SnapshotSource is implemented by providers whose snapshot depends on
// more than their name, such as a file path or the search day.
type SnapshotSource interface {
	SnapshotSource(q Query) string
}

// SnapshotCache stores serialized leg snapshots keyed by provider.
type SnapshotCache interface {
	Get(key string, ttl time.Duration) ([]byte, bool)
	Set(key string, data []byte) error
}
