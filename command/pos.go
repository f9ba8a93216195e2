package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/onnwee/evespai/lookup"
	"github.com/onnwee/evespai/sde"
	"github.com/onnwee/evespai/spinner"
)

// locCache holds the locations already resolved during one command execution
// so a report over many starbases in the same system does not repeat lookups.
// It is created per invocation and passed down explicitly; it must never
// become shared state across commands.
type locCache struct {
	systems map[int64]sde.SolarSystem
	places  map[int64]sde.Location
}

func newLocCache() *locCache {
	return &locCache{
		systems: map[int64]sde.SolarSystem{},
		places:  map[int64]sde.Location{},
	}
}

func (c *locCache) solarSystem(ctx context.Context, u Universe, id int64) (sde.SolarSystem, error) {
	if s, ok := c.systems[id]; ok {
		return s, nil
	}
	s, err := u.SolarSystem(ctx, id)
	if err != nil {
		return sde.SolarSystem{}, err
	}
	c.systems[id] = s
	return s, nil
}

func (c *locCache) location(ctx context.Context, u Universe, id int64) (sde.Location, error) {
	if l, ok := c.places[id]; ok {
		return l, nil
	}
	l, err := u.Location(ctx, id)
	if err != nil {
		return sde.Location{}, err
	}
	c.places[id] = l
	return l, nil
}

// Pos reports the corporation's starbases, optionally only those in one
// system. Each starbase line joins region, system, moon, tower type, and
// state.
func (b *Bot) Pos(ctx context.Context, inv Invocation) ([]string, error) {
	cache := newLocCache()
	var (
		lines      []string
		locationID int64
	)
	if inv.Text != "" {
		id, err := b.Universe.LocationID(ctx, inv.Text)
		if errors.Is(err, lookup.ErrNotFound) {
			return []string{"Unknown location"}, nil
		}
		if err != nil {
			return nil, err
		}
		system, err := cache.solarSystem(ctx, b.Universe, id)
		if errors.Is(err, lookup.ErrNotFound) {
			return []string{"Unknown location"}, nil
		}
		if err != nil {
			return nil, err
		}
		locationID = id
		bases, err := b.Corp.Starbases(ctx, locationID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("Found %d starbases in %s",
			len(bases), FormatSystem(system.Name, system.Security)))
		return b.starbaseLines(ctx, cache, lines, bases)
	}

	bases, err := b.Corp.Starbases(ctx, 0)
	if err != nil {
		return nil, err
	}
	lines = append(lines, fmt.Sprintf("Found %d starbases", len(bases)))
	return b.starbaseLines(ctx, cache, lines, bases)
}

func (b *Bot) starbaseLines(ctx context.Context, cache *locCache, lines []string, bases []spinner.Starbase) ([]string, error) {
	for _, base := range bases {
		system, err := cache.solarSystem(ctx, b.Universe, base.LocationID)
		if err != nil {
			return nil, err
		}
		region, err := cache.location(ctx, b.Universe, system.RegionID)
		if err != nil {
			return nil, err
		}
		// Unanchored towers have no moon; the location row simply isn't there.
		moonName := "Unanchored"
		if base.MoonID != 0 {
			moon, err := cache.location(ctx, b.Universe, base.MoonID)
			if err != nil && !errors.Is(err, lookup.ErrNotFound) {
				return nil, err
			}
			if err == nil {
				moonName = moon.Name
			} else {
				moonName = "Unknown"
			}
		}
		tower, err := b.Universe.Type(ctx, base.TypeID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%s :: %s :: %s :: %s :: %s",
			region.Name,
			FormatSystem(system.Name, system.Security),
			moonName,
			tower.Name,
			StarbaseState(base.State)))
	}
	return lines, nil
}
