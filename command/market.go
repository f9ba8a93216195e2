package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/onnwee/evespai/lookup"
)

// defaultMarket is where price checks go when no --location is given.
const defaultMarket = "Jita"

// Price reports the best buy and sell prices for an item at a market. The
// two "no data" cases are distinct: a location with no collected market data
// at all, and a known market missing a snapshot for this particular type.
func (b *Bot) Price(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: price [--location=<name>] <type>"}, nil
	}
	typeID, err := b.Universe.TypeID(ctx, inv.Text)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown type"}, nil
	}
	if err != nil {
		return nil, err
	}

	location := inv.Flag("location")
	if location == "" {
		location = defaultMarket
	}
	locationID, err := b.Universe.LocationID(ctx, location)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown location"}, nil
	}
	if err != nil {
		return nil, err
	}

	exists, err := b.Corp.MarketExists(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []string{"No data for that market"}, nil
	}

	item, err := b.Corp.MarketItemAt(ctx, locationID, typeID)
	if errors.Is(err, lookup.ErrDataUnavailable) {
		return []string{"Prices not updated yet"}, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("buy max: %s (volume: %s). sell min: %s (volume: %s).",
		formatISK(item.BuyMax), formatVolume(item.BuyVolume),
		formatISK(item.SellMin), formatVolume(item.SellVolume))}, nil
}

// Markets lists every location with collected market data, regions plain and
// systems decorated by security tier.
func (b *Bot) Markets(ctx context.Context, _ Invocation) ([]string, error) {
	ids, err := b.Corp.MarketLocationIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{"No market data collected yet"}, nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsRegionID(id) {
			region, err := b.Universe.Location(ctx, id)
			if err != nil {
				return nil, err
			}
			names = append(names, region.Name)
			continue
		}
		system, err := b.Universe.SolarSystem(ctx, id)
		if err != nil {
			return nil, err
		}
		names = append(names, FormatSystem(system.Name, system.Security))
	}
	return []string{"Markets: " + strings.Join(names, ", ")}, nil
}
