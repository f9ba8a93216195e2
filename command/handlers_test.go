package command

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/evespai/eveapi"
	"github.com/onnwee/evespai/lookup"
	"github.com/onnwee/evespai/sde"
	"github.com/onnwee/evespai/spinner"
)

// fakeUniverse implements Universe over in-memory fixtures.
type fakeUniverse struct {
	systems     map[int64]sde.SolarSystem
	locations   map[int64]sde.Location
	locationIDs map[string]int64
	typeIDs     map[string]int64
	types       map[int64]sde.ItemType
	groups      []sde.Group
	groupTypes  map[int64][]int64
}

func (f *fakeUniverse) SolarSystem(_ context.Context, id int64) (sde.SolarSystem, error) {
	s, ok := f.systems[id]
	if !ok {
		return sde.SolarSystem{}, fmt.Errorf("solar system %d: %w", id, lookup.ErrNotFound)
	}
	return s, nil
}

func (f *fakeUniverse) LocationID(_ context.Context, name string) (int64, error) {
	id, ok := f.locationIDs[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("location %q: %w", name, lookup.ErrNotFound)
	}
	return id, nil
}

func (f *fakeUniverse) Location(_ context.Context, id int64) (sde.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return sde.Location{}, fmt.Errorf("location %d: %w", id, lookup.ErrNotFound)
	}
	return l, nil
}

func (f *fakeUniverse) TypeID(_ context.Context, name string) (int64, error) {
	id, ok := f.typeIDs[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("type %q: %w", name, lookup.ErrNotFound)
	}
	return id, nil
}

func (f *fakeUniverse) Type(_ context.Context, id int64) (sde.ItemType, error) {
	t, ok := f.types[id]
	if !ok {
		return sde.ItemType{}, fmt.Errorf("type %d: %w", id, lookup.ErrNotFound)
	}
	return t, nil
}

func (f *fakeUniverse) ShipGroups(_ context.Context, fragment string) ([]sde.Group, error) {
	var out []sde.Group
	for _, g := range f.groups {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(fragment)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeUniverse) GroupTypeIDs(_ context.Context, groupID int64) ([]int64, error) {
	return f.groupTypes[groupID], nil
}

// fakeCorp implements CorpData over in-memory fixtures. With corpID zero the
// owner-scoped methods report ErrNotConfigured like the real store.
type fakeCorp struct {
	corpID        int64
	starbases     []spinner.Starbase
	members       []spinner.Member
	users         map[string]spinner.User
	chars         map[int64][]spinner.Character
	apiCalls      []spinner.APICallStatus
	marketLocs    []int64
	marketItems   map[[2]int64]spinner.MarketItem
	memberQueries int
}

func (f *fakeCorp) CorporationID() int64 { return f.corpID }

func (f *fakeCorp) scope() error {
	if f.corpID == 0 {
		return fmt.Errorf("corporation scope: %w", lookup.ErrNotConfigured)
	}
	return nil
}

func (f *fakeCorp) Starbases(_ context.Context, locationID int64) ([]spinner.Starbase, error) {
	if err := f.scope(); err != nil {
		return nil, err
	}
	if locationID == 0 {
		return f.starbases, nil
	}
	var out []spinner.Starbase
	for _, b := range f.starbases {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeCorp) MembersByName(_ context.Context, pattern string) ([]spinner.Member, error) {
	if err := f.scope(); err != nil {
		return nil, err
	}
	f.memberQueries++
	var out []spinner.Member
	for _, m := range f.members {
		if strings.EqualFold(m.Name, pattern) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCorp) MembersByLocation(_ context.Context, fragment string) ([]spinner.Member, error) {
	if err := f.scope(); err != nil {
		return nil, err
	}
	f.memberQueries++
	var out []spinner.Member
	for _, m := range f.members {
		if strings.Contains(strings.ToLower(m.Location), strings.ToLower(fragment)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCorp) MembersByShipTypes(_ context.Context, typeIDs []int64) ([]spinner.Member, error) {
	if err := f.scope(); err != nil {
		return nil, err
	}
	f.memberQueries++
	want := map[int64]bool{}
	for _, id := range typeIDs {
		want[id] = true
	}
	var out []spinner.Member
	for _, m := range f.members {
		if want[m.ShipTypeID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCorp) UserByUsername(_ context.Context, username string) (spinner.User, error) {
	u, ok := f.users[username]
	if !ok {
		return spinner.User{}, fmt.Errorf("user %q: %w", username, lookup.ErrNotFound)
	}
	return u, nil
}

func (f *fakeCorp) CharactersForUser(_ context.Context, userID int64) ([]spinner.Character, error) {
	return f.chars[userID], nil
}

func (f *fakeCorp) APICallStatus(_ context.Context, fragment string) (spinner.APICallStatus, error) {
	if err := f.scope(); err != nil {
		return spinner.APICallStatus{}, err
	}
	needle := strings.ToLower(strings.Trim(fragment, "%"))
	var matches []spinner.APICallStatus
	for _, c := range f.apiCalls {
		if strings.Contains(strings.ToLower(c.CallName), needle) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return spinner.APICallStatus{}, fmt.Errorf("api call %q: %w", fragment, lookup.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return spinner.APICallStatus{}, fmt.Errorf("api call %q: %w", fragment, lookup.ErrAmbiguous)
	}
}

func (f *fakeCorp) MarketExists(_ context.Context, locationID int64) (bool, error) {
	for _, id := range f.marketLocs {
		if id == locationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCorp) MarketItemAt(_ context.Context, locationID, typeID int64) (spinner.MarketItem, error) {
	m, ok := f.marketItems[[2]int64{locationID, typeID}]
	if !ok {
		return spinner.MarketItem{}, fmt.Errorf("market item %d at %d: %w", typeID, locationID, lookup.ErrDataUnavailable)
	}
	return m, nil
}

func (f *fakeCorp) MarketLocationIDs(_ context.Context) ([]int64, error) {
	return f.marketLocs, nil
}

// fakeStatus implements StatusAPI.
type fakeStatus struct {
	status eveapi.ServerStatus
	err    error
}

func (f *fakeStatus) Get(context.Context) (eveapi.ServerStatus, error) {
	return f.status, f.err
}

// Fixture ids. The Forge/Jita and Essence/Old Man Star with a starbase in
// each, three tracked members, one registered user, and market data at Jita
// and The Forge.
const (
	theForgeID   = 10000002
	essenceID    = 10000064
	jitaID       = 30000142
	oldManStarID = 30002537
	jitaMoonID   = 40009087
	omsMoonID    = 40161832

	caldariTowerID  = 16213
	gallenteTowerID = 20060
	ishtarID        = 12005
	cerberusID      = 11993
	capsuleID       = 670
	hacGroupID      = 358
	afGroupID       = 324
	tritaniumID     = 34
	corporationID   = 1000001
	jitaSecurity    = 0.945
	omsSecurity     = 0.336
)

func testUniverse() *fakeUniverse {
	return &fakeUniverse{
		systems: map[int64]sde.SolarSystem{
			jitaID:       {ID: jitaID, Name: "Jita", RegionID: theForgeID, Security: jitaSecurity},
			oldManStarID: {ID: oldManStarID, Name: "Old Man Star", RegionID: essenceID, Security: omsSecurity},
		},
		locations: map[int64]sde.Location{
			theForgeID: {ID: theForgeID, Name: "The Forge"},
			essenceID:  {ID: essenceID, Name: "Essence"},
			jitaID:     {ID: jitaID, Name: "Jita", RegionID: theForgeID, Security: jitaSecurity},
			jitaMoonID: {ID: jitaMoonID, Name: "Jita IV - Moon 4", RegionID: theForgeID},
			omsMoonID:  {ID: omsMoonID, Name: "Old Man Star VII - Moon 2", RegionID: essenceID},
		},
		locationIDs: map[string]int64{
			"jita":         jitaID,
			"old man star": oldManStarID,
			"the forge":    theForgeID,
		},
		typeIDs: map[string]int64{
			"ishtar":    ishtarID,
			"tritanium": tritaniumID,
		},
		types: map[int64]sde.ItemType{
			caldariTowerID:  {ID: caldariTowerID, Name: "Caldari Control Tower", GroupID: 365},
			gallenteTowerID: {ID: gallenteTowerID, Name: "Gallente Control Tower", GroupID: 365},
			ishtarID:        {ID: ishtarID, Name: "Ishtar", GroupID: hacGroupID},
			cerberusID:      {ID: cerberusID, Name: "Cerberus", GroupID: hacGroupID},
			tritaniumID:     {ID: tritaniumID, Name: "Tritanium", GroupID: 18},
		},
		groups: []sde.Group{
			{ID: afGroupID, Name: "Assault Frigate"},
			{ID: hacGroupID, Name: "Heavy Assault Cruiser"},
		},
		groupTypes: map[int64][]int64{
			hacGroupID: {cerberusID, ishtarID},
			afGroupID:  {11365},
		},
	}
}

func testCorp() *fakeCorp {
	balance := time.Date(2014, 5, 3, 10, 11, 12, 0, time.UTC)
	return &fakeCorp{
		corpID: corporationID,
		starbases: []spinner.Starbase{
			{ID: 1, LocationID: jitaID, MoonID: jitaMoonID, TypeID: caldariTowerID, State: 4},
			{ID: 2, LocationID: oldManStarID, MoonID: omsMoonID, TypeID: gallenteTowerID, State: 3},
		},
		members: []spinner.Member{
			{Name: "Alice", Location: "Jita IV - Moon 4 - Caldari Navy Assembly Plant", ShipType: "Ishtar", ShipTypeID: ishtarID},
			{Name: "Bob", Location: "Old Man Star", ShipType: "Unknown Type", ShipTypeID: capsuleID},
			{Name: "Carol", Location: "Jita", ShipType: "Cerberus", ShipTypeID: cerberusID},
		},
		users: map[string]spinner.User{
			"avanto": {ID: 7, Username: "avanto"},
			"empty":  {ID: 8, Username: "empty"},
		},
		chars: map[int64][]spinner.Character{
			7: {
				{Name: "Alice", CorporationName: "Hard Knocks Inc."},
				{Name: "Delta", CorporationName: "Brave Newbies Inc."},
			},
		},
		apiCalls: []spinner.APICallStatus{
			{CallName: "AccountBalance", LastUpdate: &balance},
			{CallName: "StarbaseList"},
			{CallName: "StarbaseDetail"},
		},
		marketLocs: []int64{theForgeID, jitaID},
		marketItems: map[[2]int64]spinner.MarketItem{
			{jitaID, tritaniumID}: {
				LocationID: jitaID, TypeID: tritaniumID,
				BuyMax: 5.01, SellMin: 5.5, BuyVolume: 1234567, SellVolume: 7654321,
			},
		},
	}
}

func testBot() (*Bot, *fakeCorp) {
	corp := testCorp()
	bot := &Bot{
		Universe: testUniverse(),
		Corp:     corp,
		Status:   &fakeStatus{status: eveapi.ServerStatus{Open: true, CurrentTime: time.Date(2014, 6, 1, 12, 30, 45, 0, time.UTC), OnlinePlayers: 23517}},
		MaxLines: 10,
	}
	return bot, corp
}

func inv(text string, flags ...string) Invocation {
	i := Invocation{Flags: map[string]string{}, Text: text}
	for _, f := range flags {
		k, v, _ := strings.Cut(f, "=")
		i.Flags[k] = v
	}
	return i
}

func TestPosAll(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Pos(context.Background(), inv(""))
	if err != nil {
		t.Fatalf("Pos() error: %v", err)
	}
	want := []string{
		"Found 2 starbases",
		"The Forge :: " + FormatSystem("Jita", jitaSecurity) + " :: Jita IV - Moon 4 :: Caldari Control Tower :: Online",
		"Essence :: " + FormatSystem("Old Man Star", omsSecurity) + " :: Old Man Star VII - Moon 2 :: Gallente Control Tower :: Reinforced",
	}
	if len(lines) != len(want) {
		t.Fatalf("Pos() = %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPosFiltered(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Pos(context.Background(), inv("Jita"))
	if err != nil {
		t.Fatalf("Pos() error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Pos(Jita) = %d lines, want 2: %q", len(lines), lines)
	}
	if want := "Found 1 starbases in " + FormatSystem("Jita", jitaSecurity); lines[0] != want {
		t.Errorf("count line = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "Caldari Control Tower") {
		t.Errorf("detail line = %q, want the Jita tower", lines[1])
	}
}

func TestPosUnknownLocation(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Pos(context.Background(), inv("Nowhere"))
	if err != nil {
		t.Fatalf("Pos() error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "Unknown location" {
		t.Errorf("Pos(Nowhere) = %q, want [Unknown location]", lines)
	}
}

func TestWhereis(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Whereis(context.Background(), inv("Bob"))
	if err != nil {
		t.Fatalf("Whereis() error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "Bob :: Old Man Star :: Pod" {
		t.Errorf("Whereis(Bob) = %q, want the pod line", lines)
	}

	lines, err = bot.Whereis(context.Background(), inv("Mallory"))
	if err != nil {
		t.Fatalf("Whereis() error: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "Found 0 characters") {
		t.Errorf("Whereis(Mallory) = %q, want found 0", lines)
	}
}

func TestWhoatDisplayLimit(t *testing.T) {
	tests := []struct {
		name     string
		maxLines int
		all      bool
		system   string
		want     int
		summary  bool
	}{
		{name: "within limit", maxLines: 10, system: "Jita", want: 2},
		{name: "over limit summarizes", maxLines: 1, system: "Jita", want: 1, summary: true},
		{name: "all overrides limit", maxLines: 1, all: true, system: "Jita", want: 2},
		{name: "zero matches", maxLines: 10, system: "Amarr", want: 1},
		{name: "zero matches with all", maxLines: 10, all: true, system: "Amarr", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot, _ := testBot()
			bot.MaxLines = tt.maxLines
			in := inv(tt.system)
			if tt.all {
				in.Flags["all"] = ""
			}
			lines, err := bot.Whoat(context.Background(), in)
			if err != nil {
				t.Fatalf("Whoat() error: %v", err)
			}
			if len(lines) != tt.want {
				t.Fatalf("Whoat() = %d lines, want %d: %q", len(lines), tt.want, lines)
			}
			if tt.summary && !strings.Contains(lines[0], "will not name them all") {
				t.Errorf("expected summary line, got %q", lines[0])
			}
			if tt.system == "Amarr" && !strings.Contains(lines[0], "Found 0 characters") {
				t.Errorf("expected found 0 line, got %q", lines[0])
			}
		})
	}
}

func TestShipUniqueGroup(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Ship(context.Background(), inv("Heavy Assault"))
	if err != nil {
		t.Fatalf("Ship() error: %v", err)
	}
	want := []string{
		"Found 2 characters in Heavy Assault Cruiser",
		"Alice :: Jita IV - Moon 4 - Caldari Navy Assembly Plant :: Ishtar",
		"Carol :: Jita :: Cerberus",
	}
	if len(lines) != len(want) {
		t.Fatalf("Ship() = %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestShipAmbiguousGroup(t *testing.T) {
	bot, corp := testBot()
	lines, err := bot.Ship(context.Background(), inv("Assault"))
	if err != nil {
		t.Fatalf("Ship() error: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "Be more specific") {
		t.Fatalf("Ship(Assault) = %q, want disambiguation line", lines)
	}
	if !strings.Contains(lines[0], "Assault Frigate") || !strings.Contains(lines[0], "Heavy Assault Cruiser") {
		t.Errorf("candidates missing from %q", lines[0])
	}
	if corp.memberQueries != 0 {
		t.Errorf("ambiguous group ran %d member queries, want 0", corp.memberQueries)
	}
}

func TestShipLiteralTypeFallback(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Ship(context.Background(), inv("Ishtar"))
	if err != nil {
		t.Fatalf("Ship() error: %v", err)
	}
	want := []string{
		"Found 1 characters in Ishtar",
		"Alice :: Jita IV - Moon 4 - Caldari Navy Assembly Plant :: Ishtar",
	}
	if len(lines) != len(want) {
		t.Fatalf("Ship(Ishtar) = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestShipUnknown(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Ship(context.Background(), inv("Bogus"))
	if err != nil {
		t.Fatalf("Ship() error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "Unknown shiptype" {
		t.Errorf("Ship(Bogus) = %q, want [Unknown shiptype]", lines)
	}
}

func TestChars(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Chars(context.Background(), inv("avanto"))
	if err != nil {
		t.Fatalf("Chars() error: %v", err)
	}
	want := "Found 2 characters: Alice [Hard Knocks Inc.], Delta [Brave Newbies Inc.]"
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("Chars(avanto) = %q, want %q", lines, want)
	}

	lines, _ = bot.Chars(context.Background(), inv("empty"))
	if len(lines) != 1 || lines[0] != `User "empty" has 0 characters registered` {
		t.Errorf("Chars(empty) = %q", lines)
	}

	lines, _ = bot.Chars(context.Background(), inv("nobody"))
	if len(lines) != 1 || lines[0] != `Could not find user "nobody"` {
		t.Errorf("Chars(nobody) = %q", lines)
	}
}

func TestPrice(t *testing.T) {
	bot, _ := testBot()

	// Default location is Jita; the snapshot exists there.
	lines, err := bot.Price(context.Background(), inv("Tritanium"))
	if err != nil {
		t.Fatalf("Price() error: %v", err)
	}
	want := "buy max: 5.01 (volume: 1,234,567). sell min: 5.50 (volume: 7,654,321)."
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("Price(Tritanium) = %q, want %q", lines, want)
	}

	// The Forge has market rows but no snapshot for this type.
	lines, _ = bot.Price(context.Background(), inv("Tritanium", "location=The Forge"))
	if len(lines) != 1 || lines[0] != "Prices not updated yet" {
		t.Errorf("Price at The Forge = %q, want [Prices not updated yet]", lines)
	}

	// Old Man Star has no market data at all.
	lines, _ = bot.Price(context.Background(), inv("Tritanium", "location=Old Man Star"))
	if len(lines) != 1 || lines[0] != "No data for that market" {
		t.Errorf("Price at Old Man Star = %q, want [No data for that market]", lines)
	}

	lines, _ = bot.Price(context.Background(), inv("Unobtanium"))
	if len(lines) != 1 || lines[0] != "Unknown type" {
		t.Errorf("Price(Unobtanium) = %q, want [Unknown type]", lines)
	}

	lines, _ = bot.Price(context.Background(), inv("Tritanium", "location=Nowhere"))
	if len(lines) != 1 || lines[0] != "Unknown location" {
		t.Errorf("Price at Nowhere = %q, want [Unknown location]", lines)
	}
}

func TestMarkets(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.Markets(context.Background(), inv(""))
	if err != nil {
		t.Fatalf("Markets() error: %v", err)
	}
	want := "Markets: The Forge, " + FormatSystem("Jita", jitaSecurity)
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("Markets() = %q, want %q", lines, want)
	}
}

func TestCache(t *testing.T) {
	bot, _ := testBot()

	lines, err := bot.Cache(context.Background(), inv("AccountBalance"))
	if err != nil {
		t.Fatalf("Cache() error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "AccountBalance last updated 2014-05-03 10:11:12" {
		t.Errorf("Cache(AccountBalance) = %q", lines)
	}

	lines, _ = bot.Cache(context.Background(), inv("StarbaseList"))
	if len(lines) != 1 || lines[0] != "StarbaseList last updated never" {
		t.Errorf("Cache(StarbaseList) = %q, want never", lines)
	}

	// "Starbase" matches both StarbaseList and StarbaseDetail.
	lines, _ = bot.Cache(context.Background(), inv("Starbase"))
	if len(lines) != 1 || !strings.Contains(lines[0], "Could not find a unique apicall") {
		t.Errorf("Cache(Starbase) = %q, want not-unique line", lines)
	}

	lines, _ = bot.Cache(context.Background(), inv("WalletJournal"))
	if len(lines) != 1 || !strings.Contains(lines[0], "Could not find a unique apicall") {
		t.Errorf("Cache(WalletJournal) = %q, want not-unique line", lines)
	}
}

func TestEveTime(t *testing.T) {
	bot, _ := testBot()
	lines, err := bot.EveTime(context.Background(), inv(""))
	if err != nil {
		t.Fatalf("EveTime() error: %v", err)
	}
	want := "12:30:45, Tranquility is online with 23517 players logged in"
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("EveTime() = %q, want %q", lines, want)
	}

	bot.Status = &fakeStatus{status: eveapi.ServerStatus{Open: false, CurrentTime: time.Date(2014, 6, 1, 3, 0, 0, 0, time.UTC)}}
	lines, _ = bot.EveTime(context.Background(), inv(""))
	if len(lines) != 1 || !strings.Contains(lines[0], "offline") {
		t.Errorf("EveTime() offline = %q", lines)
	}
}

func TestResolverCommands(t *testing.T) {
	bot, _ := testBot()
	ctx := context.Background()

	if lines, _ := bot.LocationID(ctx, inv("Jita")); len(lines) != 1 || lines[0] != "30000142" {
		t.Errorf("LocationID(Jita) = %q", lines)
	}
	if lines, _ := bot.LocationName(ctx, inv("30000142")); len(lines) != 1 || lines[0] != "Jita" {
		t.Errorf("LocationName(30000142) = %q", lines)
	}
	if lines, _ := bot.TypeID(ctx, inv("Ishtar")); len(lines) != 1 || lines[0] != "12005" {
		t.Errorf("TypeID(Ishtar) = %q", lines)
	}
	if lines, _ := bot.TypeName(ctx, inv("12005")); len(lines) != 1 || lines[0] != "Ishtar" {
		t.Errorf("TypeName(12005) = %q", lines)
	}
	if lines, _ := bot.LocationID(ctx, inv("Nowhere")); len(lines) != 1 || lines[0] != "Unknown location" {
		t.Errorf("LocationID(Nowhere) = %q", lines)
	}
	if lines, _ := bot.TypeName(ctx, inv("notanumber")); len(lines) != 1 || !strings.HasPrefix(lines[0], "Usage:") {
		t.Errorf("TypeName(notanumber) = %q", lines)
	}
}
