// Package record provides the business API for the hospital records that
// are entered through the dashboard.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Set of error variables for CRUD operations.
var (
	ErrDuplicate         = errors.New("record already exists")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidAmount     = errors.New("amount is not a number")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	Create(ctx context.Context, r Record) error
	QueryByType(ctx context.Context, et EntityType) ([]Record, error)
	Close() error
}

// =============================================================================

// Core manages the set of APIs for record access.
type Core struct {
	log    *zap.SugaredLogger
	storer Storer
}

// NewCore constructs a core for record api access.
func NewCore(log *zap.SugaredLogger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// Create validates the entry and stores it as a new record.
func (c *Core) Create(ctx context.Context, ne NewEntry, now time.Time) (Record, error) {
	if err := ne.Validate(); err != nil {
		return Record{}, err
	}

	et, err := ParseEntityType(ne.EntityType)
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Type:        et,
		ID:          ne.ID,
		Name:        ne.Name,
		Extra1:      ne.Extra1,
		Extra2:      ne.Extra2,
		DateCreated: now.UTC(),
	}

	if err := c.storer.Create(ctx, r); err != nil {
		return Record{}, fmt.Errorf("create: %w", err)
	}

	c.log.Infow("record created", "type", r.Type, "id", r.ID)

	return r, nil
}

// QueryAll returns every stored record split by entity type.
func (c *Core) QueryAll(ctx context.Context) (Records, error) {
	rs := Records{
		Patients:        []Patient{},
		Doctors:         []Doctor{},
		InsuranceClaims: []InsuranceClaim{},
		PharmacyRecords: []PharmacyRecord{},
	}

	for _, et := range EntityTypes {
		recs, err := c.storer.QueryByType(ctx, et)
		if err != nil {
			return Records{}, fmt.Errorf("query: type[%s]: %w", et, err)
		}

		for _, r := range recs {
			rs.add(r)
		}
	}

	return rs, nil
}

// Count returns the number of records per entity type.
func (c *Core) Count(ctx context.Context) (Counts, error) {
	rs, err := c.QueryAll(ctx)
	if err != nil {
		return Counts{}, err
	}

	cnt := Counts{
		Patients:        len(rs.Patients),
		Doctors:         len(rs.Doctors),
		InsuranceClaims: len(rs.InsuranceClaims),
		PharmacyRecords: len(rs.PharmacyRecords),
	}

	return cnt, nil
}
