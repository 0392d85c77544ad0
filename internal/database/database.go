// Package database owns the in-memory store the API serves from.
//
// It handles:
//   - one Collection per resource (dishes, orders), guarded by its own mutex
//   - optional seeding from a YAML file at startup
//   - a Ping/Close lifecycle the server and health checks rely on
//
// Nothing is persisted; the data lives as long as the Database value.
package database

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/deppfellow/grubdash/internal/config"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrClosed is returned by Ping after Close.
var ErrClosed = errors.New("database is closed")

// Database holds the collections and a logger.
type Database struct {
	Dishes *Collection[model.Dish]
	Orders *Collection[model.Order]

	log    *zerolog.Logger
	closed atomic.Bool
}

// Seed is the shape of a seed file.
//
//	dishes:
//	  - id: "90c3d873684bf381dfab29034b5bba73"
//	    name: Falafel and tahini bagel
//	    description: A warm bagel filled with falafel and tahini
//	    price: 6
//	    image_url: https://images.example.com/falafel.jpg
//	orders:
//	  - id: "f6069a542257054114138301947672ba"
//	    deliverTo: 1600 Pennsylvania Avenue NW, Washington, DC 20500
//	    mobileNumber: (202) 456-1111
//	    status: out-for-delivery
//	    dishes:
//	      - dishId: "90c3d873684bf381dfab29034b5bba73"
//	        quantity: 1
type Seed struct {
	Dishes []model.Dish  `yaml:"dishes"`
	Orders []model.Order `yaml:"orders"`
}

// NewEmpty creates a Database with empty collections.
func NewEmpty(logger *zerolog.Logger) *Database {
	return &Database{
		Dishes: NewCollection(model.DishID, nil),
		Orders: NewCollection(model.OrderID, model.Order.Clone),
		log:    logger,
	}
}

// New creates the Database and loads cfg.Database.SeedFile when set.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	db := NewEmpty(logger)

	if cfg.Database.SeedFile != "" {
		seed, err := LoadSeedFile(cfg.Database.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := db.Load(seed); err != nil {
			return nil, errors.Wrapf(err, "failed to seed from %s", cfg.Database.SeedFile)
		}
	}

	logger.Info().
		Int("dishes", db.Dishes.Len()).
		Int("orders", db.Orders.Len()).
		Msg("in-memory database ready")

	return db, nil
}

// LoadSeedFile reads and parses a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read seed file %s", path)
	}
	return ParseSeed(data)
}

// ParseSeed parses YAML seed data.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed YAML")
	}

	// Orders without a status start pending.
	for i := range seed.Orders {
		if seed.Orders[i].Status == "" {
			seed.Orders[i].Status = model.OrderStatusPending
		}
	}

	return &seed, nil
}

// Load inserts every seed record. Ids must be non-empty and unique and
// order statuses must be known.
func (db *Database) Load(seed *Seed) error {
	for _, d := range seed.Dishes {
		if d.ID == "" {
			return errors.New("seed dish without id")
		}
		if err := db.Dishes.Insert(d); err != nil {
			return errors.Wrap(err, "seed dish")
		}
	}

	for _, o := range seed.Orders {
		if o.ID == "" {
			return errors.New("seed order without id")
		}
		if !o.Status.IsValid() {
			return errors.Errorf("seed order %q has unknown status %q", o.ID, o.Status)
		}
		if err := db.Orders.Insert(o); err != nil {
			return errors.Wrap(err, "seed order")
		}
	}

	return nil
}

// Ping reports whether the store is usable.
func (db *Database) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if db.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close marks the store closed. Records stay readable for in-flight requests.
func (db *Database) Close() error {
	db.log.Info().Msg("closing in-memory database")
	db.closed.Store(true)
	return nil
}
