package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/onnwee/evespai/lookup"
	"github.com/onnwee/evespai/spinner"
)

// Whereis reports the location and boarded ship of every member whose name
// matches the argument.
func (b *Bot) Whereis(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: whereis <character>"}, nil
	}
	members, err := b.Corp.MembersByName(ctx, inv.Text)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []string{fmt.Sprintf("Found 0 characters with a name like %q", inv.Text)}, nil
	}
	lines := make([]string, 0, len(members))
	for _, m := range members {
		lines = append(lines, memberLine(m))
	}
	return lines, nil
}

// listOrSummarize applies the display-limit policy shared by whoat and ship:
// an empty result gets the zero line, a result within the threshold (or any
// non-empty result under --all) is listed in full, and anything longer
// collapses to the summary line.
func (b *Bot) listOrSummarize(members []spinner.Member, all bool, zero, summary string, prefix ...string) []string {
	n := len(members)
	switch {
	case n == 0:
		return []string{zero}
	case n <= b.MaxLines || all:
		lines := append([]string{}, prefix...)
		for _, m := range members {
			lines = append(lines, memberLine(m))
		}
		return lines
	default:
		return []string{summary}
	}
}

// Whoat lists members whose free-text location contains the given system
// name. Substring match, not fuzzy.
func (b *Bot) Whoat(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: whoat [--all] <system>"}, nil
	}
	members, err := b.Corp.MembersByLocation(ctx, inv.Text)
	if err != nil {
		return nil, err
	}
	return b.listOrSummarize(members, inv.HasFlag("all"),
		fmt.Sprintf("Found 0 characters in %q", inv.Text),
		fmt.Sprintf("Found %d characters in %q, but will not name them all", len(members), inv.Text),
	), nil
}

// Ship lists members flying a ship group or, when no group matches the
// fragment, a specific ship type. A fragment matching several groups asks the
// user to narrow it down instead of guessing.
func (b *Bot) Ship(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: ship [--all] <shiptype>"}, nil
	}
	groups, err := b.Universe.ShipGroups(ctx, inv.Text)
	if err != nil {
		return nil, err
	}

	var (
		label   string
		typeIDs []int64
	)
	switch {
	case len(groups) > 1:
		names := make([]string, 0, len(groups))
		for _, g := range groups {
			names = append(names, g.Name)
		}
		return []string{fmt.Sprintf("Found more than one shiptype: %s. Be more specific",
			strings.Join(names, ", "))}, nil
	case len(groups) == 1:
		label = groups[0].Name
		typeIDs, err = b.Universe.GroupTypeIDs(ctx, groups[0].ID)
		if err != nil {
			return nil, err
		}
	default:
		// No group matched; fall back to a literal, specific type name.
		typeID, err := b.Universe.TypeID(ctx, inv.Text)
		if errors.Is(err, lookup.ErrNotFound) {
			return []string{"Unknown shiptype"}, nil
		}
		if err != nil {
			return nil, err
		}
		t, err := b.Universe.Type(ctx, typeID)
		if err != nil {
			return nil, err
		}
		label = t.Name
		typeIDs = []int64{typeID}
	}

	members, err := b.Corp.MembersByShipTypes(ctx, typeIDs)
	if err != nil {
		return nil, err
	}
	return b.listOrSummarize(members, inv.HasFlag("all"),
		fmt.Sprintf("Found 0 characters in %s", label),
		fmt.Sprintf("Found %d characters in %s, but will not name them all", len(members), label),
		fmt.Sprintf("Found %d characters in %s", len(members), label),
	), nil
}
