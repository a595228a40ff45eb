package live

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/beetlebot/travel-options/internal/core"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const selectLegs = `
	SELECT id, flight_number, source, destination, departure_time, arrival_time,
	       economy_price, business_price, first_class_price
	FROM flights
	ORDER BY id`

// legRow mirrors a row of the flights table. Columns are nullable so one
// incomplete record does not fail the snapshot.
type legRow struct {
	ID              string          `db:"id"`
	FlightNumber    sql.NullString  `db:"flight_number"`
	Source          sql.NullString  `db:"source"`
	Destination     sql.NullString  `db:"destination"`
	DepartureTime   sql.NullTime    `db:"departure_time"`
	ArrivalTime     sql.NullTime    `db:"arrival_time"`
	EconomyPrice    sql.NullFloat64 `db:"economy_price"`
	BusinessPrice   sql.NullFloat64 `db:"business_price"`
	FirstClassPrice sql.NullFloat64 `db:"first_class_price"`
}

func (r legRow) toLeg() core.FlightLeg {
	leg := core.FlightLeg{
		ID:              r.ID,
		FlightNumber:    r.FlightNumber.String,
		Source:          r.Source.String,
		Destination:     r.Destination.String,
		EconomyPrice:    r.EconomyPrice.Float64,
		BusinessPrice:   r.BusinessPrice.Float64,
		FirstClassPrice: r.FirstClassPrice.Float64,
	}
	if r.DepartureTime.Valid {
		leg.DepartureTime = core.AsLocalTime(r.DepartureTime.Time)
	}
	if r.ArrivalTime.Valid {
		leg.ArrivalTime = core.AsLocalTime(r.ArrivalTime.Time)
	}
	return leg
}

// PostgresLegsProvider reads the flights table of the booking database.
// Set TRAVEL_DATABASE_URL or sources.databaseUrl to enable.
type PostgresLegsProvider struct {
	dsn string

	mu sync.Mutex
	db *sqlx.DB
}

func NewPostgresLegsProvider(dsn string) *PostgresLegsProvider {
	return &PostgresLegsProvider{dsn: dsn}
}

func (p *PostgresLegsProvider) Name() string            { return "postgres" }
func (p *PostgresLegsProvider) Tier() core.ProviderTier { return core.TierSelfHosted }
func (p *PostgresLegsProvider) Capabilities() []core.Capability {
	return []core.Capability{core.CapLegsSnapshot, core.CapLegsQuery}
}

func (p *PostgresLegsProvider) Available() (bool, string) {
	if p.dsn == "" {
		return false, "set TRAVEL_DATABASE_URL (postgres connection string)"
	}
	return true, ""
}

// SnapshotSource identifies the database without exposing credentials.
func (p *PostgresLegsProvider) SnapshotSource(core.Query) string {
	sum := sha256.Sum256([]byte(p.dsn))
	return hex.EncodeToString(sum[:8])
}

func (p *PostgresLegsProvider) Legs(ctx context.Context, _ core.Query) ([]core.FlightLeg, error) {
	db, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []legRow
	if err := db.SelectContext(ctx, &rows, selectLegs); err != nil {
		return nil, fmt.Errorf("postgres select flights: %w", err)
	}

	legs := make([]core.FlightLeg, 0, len(rows))
	for _, r := range rows {
		legs = append(legs, r.toLeg())
	}
	return legs, nil
}

func (p *PostgresLegsProvider) conn(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}
	if p.dsn == "" {
		return nil, fmt.Errorf("postgres not configured")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", p.dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	p.db = db
	return db, nil
}

func (p *PostgresLegsProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
