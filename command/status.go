package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/onnwee/evespai/lookup"
)

// EveTime reports the current server time, whether Tranquility is open, and
// how many players are logged in. Registered as both evetime and status.
func (b *Bot) EveTime(ctx context.Context, _ Invocation) ([]string, error) {
	status, err := b.Status.Get(ctx)
	if err != nil {
		return nil, err
	}
	state := "offline"
	if status.Open {
		state = "online"
	}
	return []string{fmt.Sprintf("%s, Tranquility is %s with %d players logged in",
		status.CurrentTime.Format("15:04:05"), state, status.OnlinePlayers)}, nil
}

// Chars lists the characters registered to a user account.
func (b *Bot) Chars(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: chars <username>"}, nil
	}
	user, err := b.Corp.UserByUsername(ctx, inv.Text)
	if errors.Is(err, lookup.ErrNotFound) {
		return []string{fmt.Sprintf("Could not find user %q", inv.Text)}, nil
	}
	if err != nil {
		return nil, err
	}
	chars, err := b.Corp.CharactersForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return []string{fmt.Sprintf("User %q has 0 characters registered", user.Username)}, nil
	}
	entries := make([]string, 0, len(chars))
	for _, c := range chars {
		entries = append(entries, fmt.Sprintf("%s [%s]", c.Name, c.CorporationName))
	}
	return []string{fmt.Sprintf("Found %d characters: %s", len(chars), strings.Join(entries, ", "))}, nil
}

// Cache reports when a corporation API call was last refreshed. The name
// fragment must match exactly one call.
func (b *Bot) Cache(ctx context.Context, inv Invocation) ([]string, error) {
	if inv.Text == "" {
		return []string{"Usage: cache <apicall>"}, nil
	}
	status, err := b.Corp.APICallStatus(ctx, inv.Text)
	if errors.Is(err, lookup.ErrNotFound) || errors.Is(err, lookup.ErrAmbiguous) {
		return []string{fmt.Sprintf("Could not find a unique apicall for %q", inv.Text)}, nil
	}
	if err != nil {
		return nil, err
	}
	last := "never"
	if status.LastUpdate != nil {
		last = status.LastUpdate.UTC().Format("2006-01-02 15:04:05")
	}
	return []string{fmt.Sprintf("%s last updated %s", status.CallName, last)}, nil
}
