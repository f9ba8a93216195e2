// Package spinner reads the mutable corporation data maintained by
// stationspinner: starbases, member tracking, registered users and their
// characters, API refresh bookkeeping, and market snapshots. The schema is an
// external contract owned by stationspinner; queries must match it exactly.
//
// Every query is scoped to one corporation, resolved once at startup. A Store
// built with corporation id zero answers all owner-scoped lookups with
// lookup.ErrNotConfigured so the bot can keep serving universe-only commands
// when the corporation setting is missing or wrong.
package spinner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/onnwee/evespai/lookup"
)

// Starbase is one corporation_starbase row (a POS).
type Starbase struct {
	ID         int64
	LocationID int64
	MoonID     int64
	TypeID     int64
	State      int
}

// Member is one corporation_membertracking row: a character, the free-text
// description of where they are, and the ship they are in.
type Member struct {
	Name       string
	Location   string
	ShipType   string
	ShipTypeID int64
}

// User is one accounting_capsuler row.
type User struct {
	ID       int64
	Username string
}

// Character is one character_charactersheet row, with the corporation the
// character belonged to when the sheet was recorded.
type Character struct {
	Name            string
	CorporationName string
}

// APICallStatus reports when a corporation API call was last refreshed.
// LastUpdate is nil when the call has never been refreshed.
type APICallStatus struct {
	CallName   string
	LastUpdate *time.Time
}

// MarketItem is one evecentral_marketitem row: the best prices and volumes
// for a type at a location.
type MarketItem struct {
	LocationID int64
	TypeID     int64
	BuyMax     float64
	SellMin    float64
	BuyVolume  int64
	SellVolume int64
}

// ResolveCorporationID looks up the enabled corporation sheet for name.
func ResolveCorporationID(ctx context.Context, db *sql.DB, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("corporation name: %w", lookup.ErrNotConfigured)
	}
	var id int64
	err := db.QueryRowContext(ctx, `
		SELECT "corporationID" FROM corporation_corporationsheet
		WHERE "corporationName" = $1 AND enabled = true`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("corporation %q: %w", name, lookup.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve corporation %q: %w", name, err)
	}
	return id, nil
}

// Store performs corporation-scoped lookups against the stationspinner store.
type Store struct {
	db     *sql.DB
	corpID int64
}

// New builds a Store scoped to corpID. Pass zero when the corporation could
// not be resolved; owner-scoped methods will then report ErrNotConfigured.
// db may be nil when the store connection failed at startup; every lookup
// then reports lookup.ErrUpstream instead of panicking.
func New(db *sql.DB, corpID int64) *Store {
	return &Store{db: db, corpID: corpID}
}

// CorporationID returns the scope resolved at startup, zero if unresolved.
func (s *Store) CorporationID() int64 { return s.corpID }

func (s *Store) ready() error {
	if s.db == nil {
		return fmt.Errorf("stationspinner store unavailable: %w", lookup.ErrUpstream)
	}
	return nil
}

func (s *Store) scope() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.corpID == 0 {
		return fmt.Errorf("corporation scope: %w", lookup.ErrNotConfigured)
	}
	return nil
}

// Starbases lists the corporation's starbases, optionally filtered to one
// solar system. With locationID zero the full list is returned ordered by
// (location, moon).
func (s *Store) Starbases(ctx context.Context, locationID int64) ([]Starbase, error) {
	if err := s.scope(); err != nil {
		return nil, err
	}
	var (
		rows *sql.Rows
		err  error
	)
	if locationID != 0 {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, "locationID", "moonID", "typeID", state
			FROM corporation_starbase
			WHERE owner_id = $1 AND "locationID" = $2
			ORDER BY "moonID"`, s.corpID, locationID)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, "locationID", "moonID", "typeID", state
			FROM corporation_starbase
			WHERE owner_id = $1
			ORDER BY "locationID", "moonID"`, s.corpID)
	}
	if err != nil {
		return nil, fmt.Errorf("list starbases: %w", err)
	}
	defer rows.Close()
	var out []Starbase
	for rows.Next() {
		var b Starbase
		if err := rows.Scan(&b.ID, &b.LocationID, &b.MoonID, &b.TypeID, &b.State); err != nil {
			return nil, fmt.Errorf("scan starbase: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list starbases: %w", err)
	}
	return out, nil
}

// MembersByName finds members whose character name matches pattern
// (case-insensitive; the caller may include '%' wildcards).
func (s *Store) MembersByName(ctx context.Context, pattern string) ([]Member, error) {
	if err := s.scope(); err != nil {
		return nil, err
	}
	return s.members(ctx, `
		SELECT name, location, "shipType", "shipTypeID"
		FROM corporation_membertracking
		WHERE name ILIKE $1 AND owner_id = $2
		ORDER BY name`, pattern, s.corpID)
}

// MembersByLocation finds members whose free-text location contains fragment.
// Substring match, not fuzzy.
func (s *Store) MembersByLocation(ctx context.Context, fragment string) ([]Member, error) {
	if err := s.scope(); err != nil {
		return nil, err
	}
	return s.members(ctx, `
		SELECT name, location, "shipType", "shipTypeID"
		FROM corporation_membertracking
		WHERE location ILIKE $1 AND owner_id = $2
		ORDER BY name`, "%"+fragment+"%", s.corpID)
}

// MembersByShipTypes finds members currently boarded in any of the given ship types.
func (s *Store) MembersByShipTypes(ctx context.Context, typeIDs []int64) ([]Member, error) {
	if err := s.scope(); err != nil {
		return nil, err
	}
	if len(typeIDs) == 0 {
		return nil, nil
	}
	return s.members(ctx, `
		SELECT name, location, "shipType", "shipTypeID"
		FROM corporation_membertracking
		WHERE owner_id = $1 AND "shipTypeID" = ANY($2)
		ORDER BY name`, s.corpID, typeIDs)
}

func (s *Store) members(ctx context.Context, query string, args ...any) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()
	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Name, &m.Location, &m.ShipType, &m.ShipTypeID); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	return out, nil
}

// UserByUsername resolves a registered user by exact username.
func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username FROM accounting_capsuler
		WHERE username = $1`, username).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %q: %w", username, lookup.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return u, nil
}

// CharactersForUser lists the characters registered to a user.
func (s *Store) CharactersForUser(ctx context.Context, userID int64) ([]Character, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, "corporationName" FROM character_charactersheet
		WHERE owner_id = $1
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list characters for user %d: %w", userID, err)
	}
	defer rows.Close()
	var out []Character
	for rows.Next() {
		var c Character
		if err := rows.Scan(&c.Name, &c.CorporationName); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters for user %d: %w", userID, err)
	}
	return out, nil
}

// APICallStatus resolves a unique corporation API call by fuzzy name and
// reports its last refresh time. Zero matches yield ErrNotFound, several
// yield ErrAmbiguous. A call with no refresh row has a nil LastUpdate.
func (s *Store) APICallStatus(ctx context.Context, fragment string) (APICallStatus, error) {
	if err := s.scope(); err != nil {
		return APICallStatus{}, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM universe_apicall
		WHERE name ILIKE $1 AND type = 'Corporation'`, fragment)
	if err != nil {
		return APICallStatus{}, fmt.Errorf("search api calls %q: %w", fragment, err)
	}
	defer rows.Close()
	var (
		callID int64
		name   string
		count  int
	)
	for rows.Next() {
		count++
		if count > 1 {
			return APICallStatus{}, fmt.Errorf("api call %q: %w", fragment, lookup.ErrAmbiguous)
		}
		if err := rows.Scan(&callID, &name); err != nil {
			return APICallStatus{}, fmt.Errorf("scan api call: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return APICallStatus{}, fmt.Errorf("search api calls %q: %w", fragment, err)
	}
	if count == 0 {
		return APICallStatus{}, fmt.Errorf("api call %q: %w", fragment, lookup.ErrNotFound)
	}

	status := APICallStatus{CallName: name}
	var last sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		SELECT last_update FROM accounting_apiupdate
		WHERE apicall_id = $1 AND owner = $2`, callID, s.corpID).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return APICallStatus{}, fmt.Errorf("fetch api update for %q: %w", name, err)
	}
	if last.Valid {
		t := last.Time
		status.LastUpdate = &t
	}
	return status, nil
}

// MarketExists reports whether any market data has been collected for a location.
func (s *Store) MarketExists(ctx context.Context, locationID int64) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM evecentral_market WHERE "locationID" = $1)`,
		locationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check market %d: %w", locationID, err)
	}
	return exists, nil
}

// MarketItemAt fetches the market snapshot for (location, type). A location
// with market data but no snapshot for the type yields ErrDataUnavailable.
func (s *Store) MarketItemAt(ctx context.Context, locationID, typeID int64) (MarketItem, error) {
	if err := s.ready(); err != nil {
		return MarketItem{}, err
	}
	var m MarketItem
	err := s.db.QueryRowContext(ctx, `
		SELECT "locationID", "typeID", buy_max, sell_min, buy_volume, sell_volume
		FROM evecentral_marketitem
		WHERE "locationID" = $1 AND "typeID" = $2`, locationID, typeID).
		Scan(&m.LocationID, &m.TypeID, &m.BuyMax, &m.SellMin, &m.BuyVolume, &m.SellVolume)
	if errors.Is(err, sql.ErrNoRows) {
		return MarketItem{}, fmt.Errorf("market item %d at %d: %w", typeID, locationID, lookup.ErrDataUnavailable)
	}
	if err != nil {
		return MarketItem{}, fmt.Errorf("fetch market item %d at %d: %w", typeID, locationID, err)
	}
	return m, nil
}

// MarketLocationIDs lists every location with collected market data.
func (s *Store) MarketLocationIDs(ctx context.Context) ([]int64, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT "locationID" FROM evecentral_market
		ORDER BY "locationID"`)
	if err != nil {
		return nil, fmt.Errorf("list market locations: %w", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan market location: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list market locations: %w", err)
	}
	return out, nil
}
