// Package sde resolves names and ids against the EVE static data export: solar
// systems, denormalized map locations, item types, and ship groups. The SDE
// schema is an external contract; table and column names here must match it
// exactly.
//
// Name matching uses Postgres ILIKE symmetric with the store's own tooling:
// resolution by full name is case-insensitive, and callers may pass their own
// '%' wildcards. When a pattern matches several rows the lowest id wins, which
// makes the historical first-match behavior deterministic.
package sde

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onnwee/evespai/lookup"
)

// SolarSystem is one row of mapSolarSystems.
type SolarSystem struct {
	ID       int64
	Name     string
	RegionID int64
	Security float64
}

// Location is one row of mapDenormalize: any map item (region, system,
// planet, moon, station). RegionID and Security are zero when the store has
// no value for them, e.g. for region rows themselves.
type Location struct {
	ID       int64
	Name     string
	RegionID int64
	Security float64
}

// ItemType is one row of invTypes.
type ItemType struct {
	ID      int64
	Name    string
	GroupID int64
}

// Group is one row of invGroups.
type Group struct {
	ID   int64
	Name string
}

// shipCategoryID is the invCategories id for ships in the SDE.
const shipCategoryID = 6

// Resolver performs id/name lookups against the SDE store.
type Resolver struct {
	db *sql.DB
}

// New builds a Resolver. db may be nil when the store connection failed at
// startup; every lookup then reports lookup.ErrUpstream instead of panicking.
func New(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) ready() error {
	if r.db == nil {
		return fmt.Errorf("sde store unavailable: %w", lookup.ErrUpstream)
	}
	return nil
}

// SolarSystem fetches a system record by id.
func (r *Resolver) SolarSystem(ctx context.Context, id int64) (SolarSystem, error) {
	if err := r.ready(); err != nil {
		return SolarSystem{}, err
	}
	var s SolarSystem
	err := r.db.QueryRowContext(ctx, `
		SELECT "solarSystemID", "solarSystemName", "regionID", "security"
		FROM "mapSolarSystems"
		WHERE "solarSystemID" = $1`, id).Scan(&s.ID, &s.Name, &s.RegionID, &s.Security)
	if errors.Is(err, sql.ErrNoRows) {
		return SolarSystem{}, fmt.Errorf("solar system %d: %w", id, lookup.ErrNotFound)
	}
	if err != nil {
		return SolarSystem{}, fmt.Errorf("fetch solar system %d: %w", id, err)
	}
	return s, nil
}

// LocationID resolves any map item name (region, system, moon, station) to its id.
func (r *Resolver) LocationID(ctx context.Context, name string) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT "itemID" FROM "mapDenormalize"
		WHERE "itemName" ILIKE $1
		ORDER BY "itemID" LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("location %q: %w", name, lookup.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve location %q: %w", name, err)
	}
	return id, nil
}

// Location fetches a map item record by id.
func (r *Resolver) Location(ctx context.Context, id int64) (Location, error) {
	if err := r.ready(); err != nil {
		return Location{}, err
	}
	var l Location
	err := r.db.QueryRowContext(ctx, `
		SELECT "itemID", "itemName", COALESCE("regionID", 0), COALESCE("security", 0)
		FROM "mapDenormalize"
		WHERE "itemID" = $1`, id).Scan(&l.ID, &l.Name, &l.RegionID, &l.Security)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, fmt.Errorf("location %d: %w", id, lookup.ErrNotFound)
	}
	if err != nil {
		return Location{}, fmt.Errorf("fetch location %d: %w", id, err)
	}
	return l, nil
}

// TypeID resolves an item type name to its id.
func (r *Resolver) TypeID(ctx context.Context, name string) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT "typeID" FROM "invTypes"
		WHERE "typeName" ILIKE $1
		ORDER BY "typeID" LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("type %q: %w", name, lookup.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve type %q: %w", name, err)
	}
	return id, nil
}

// Type fetches an item type record by id.
func (r *Resolver) Type(ctx context.Context, id int64) (ItemType, error) {
	if err := r.ready(); err != nil {
		return ItemType{}, err
	}
	var t ItemType
	err := r.db.QueryRowContext(ctx, `
		SELECT "typeID", "typeName", "groupID" FROM "invTypes"
		WHERE "typeID" = $1`, id).Scan(&t.ID, &t.Name, &t.GroupID)
	if errors.Is(err, sql.ErrNoRows) {
		return ItemType{}, fmt.Errorf("type %d: %w", id, lookup.ErrNotFound)
	}
	if err != nil {
		return ItemType{}, fmt.Errorf("fetch type %d: %w", id, err)
	}
	return t, nil
}

// ShipGroups returns every ship group whose name contains fragment. Callers
// branch on the result size: zero means no such group, one is a unique match,
// more than one needs user disambiguation.
func (r *Resolver) ShipGroups(ctx context.Context, fragment string) ([]Group, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT "groupID", "groupName" FROM "invGroups"
		WHERE "categoryID" = $1 AND "groupName" ILIKE $2
		ORDER BY "groupID"`, shipCategoryID, "%"+fragment+"%")
	if err != nil {
		return nil, fmt.Errorf("search ship groups %q: %w", fragment, err)
	}
	defer rows.Close()
	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan ship group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search ship groups %q: %w", fragment, err)
	}
	return groups, nil
}

// GroupTypeIDs returns the published item type ids belonging to a group.
func (r *Resolver) GroupTypeIDs(ctx context.Context, groupID int64) ([]int64, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT "typeID" FROM "invTypes"
		WHERE "groupID" = $1 AND published = true
		ORDER BY "typeID"`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list types for group %d: %w", groupID, err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan type id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list types for group %d: %w", groupID, err)
	}
	return ids, nil
}
