package command

import (
	"context"
	"errors"
	"strconv"

	"github.com/onnwee/evespai/lookup"
)

// The four resolver commands expose the name/id lookups directly.

func (b *Bot) LocationID(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: locationid <name>"}, nil
	}
	id, err := b.Universe.LocationID(ctx, inv.Text)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown location"}, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{strconv.FormatInt(id, 10)}, nil
}

func (b *Bot) LocationName(ctx context.Context, inv Invocation) ([]string, error) {
	id, err := strconv.ParseInt(inv.Text, 10, 64)
	if err != nil {
		return []string{"Usage: locationname <id>"}, nil
	}
	loc, err := b.Universe.Location(ctx, id)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown location"}, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{loc.Name}, nil
}

func (b *Bot) TypeID(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: typeid <name>"}, nil
	}
	id, err := b.Universe.TypeID(ctx, inv.Text)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown type"}, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{strconv.FormatInt(id, 10)}, nil
}

func (b *Bot) TypeName(ctx context.Context, inv Invocation) ([]string, error) {
	id, err := strconv.ParseInt(inv.Text, 10, 64)
	if err != nil {
		return []string{"Usage: typename <id>"}, nil
	}
	t, err := b.Universe.Type(ctx, id)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{"Unknown type"}, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{t.Name}, nil
}
