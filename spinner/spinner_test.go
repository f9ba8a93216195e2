package spinner

import (
	"context"
	"errors"
	"testing"

	"github.com/onnwee/evespai/lookup"
)

func TestNilStoreReportsUpstream(t *testing.T) {
	s := New(nil, 1000001)
	ctx := context.Background()

	checks := map[string]func() error{
		"Starbases":          func() error { _, err := s.Starbases(ctx, 0); return err },
		"MembersByName":      func() error { _, err := s.MembersByName(ctx, "Alice"); return err },
		"MembersByLocation":  func() error { _, err := s.MembersByLocation(ctx, "Jita"); return err },
		"MembersByShipTypes": func() error { _, err := s.MembersByShipTypes(ctx, []int64{12005}); return err },
		"UserByUsername":     func() error { _, err := s.UserByUsername(ctx, "avanto"); return err },
		"CharactersForUser":  func() error { _, err := s.CharactersForUser(ctx, 7); return err },
		"APICallStatus":      func() error { _, err := s.APICallStatus(ctx, "AccountBalance"); return err },
		"MarketExists":       func() error { _, err := s.MarketExists(ctx, 30000142); return err },
		"MarketItemAt":       func() error { _, err := s.MarketItemAt(ctx, 30000142, 34); return err },
		"MarketLocationIDs":  func() error { _, err := s.MarketLocationIDs(ctx); return err },
	}
	for name, call := range checks {
		if err := call(); !errors.Is(err, lookup.ErrUpstream) {
			t.Errorf("%s with nil db: err = %v, want ErrUpstream", name, err)
		}
	}
}

func TestCorporationIDAccessor(t *testing.T) {
	if got := New(nil, 1000001).CorporationID(); got != 1000001 {
		t.Errorf("CorporationID() = %d, want 1000001", got)
	}
	if got := New(nil, 0).CorporationID(); got != 0 {
		t.Errorf("CorporationID() = %d, want 0", got)
	}
}
