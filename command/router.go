// Package command implements the chat command surface: a prefix router, the
// per-command handlers that chain resolver and accessor lookups, and the
// display formatting for the resulting report lines.
//
// Handlers receive their data access through the small Universe/CorpData/
// StatusAPI interfaces so they can be exercised without live databases. All
// expected lookup misses (unknown location, unknown type, and so on) are
// rendered by the handler itself as a single reply line; only configuration
// and upstream failures propagate as errors, which the router turns into one
// generic line and a log entry.
package command

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/onnwee/evespai/eveapi"
	"github.com/onnwee/evespai/lookup"
	"github.com/onnwee/evespai/sde"
	"github.com/onnwee/evespai/spinner"
	"github.com/onnwee/evespai/telemetry"
)

// Universe resolves names and ids against the static universe data.
type Universe interface {
	SolarSystem(ctx context.Context, id int64) (sde.SolarSystem, error)
	LocationID(ctx context.Context, name string) (int64, error)
	Location(ctx context.Context, id int64) (sde.Location, error)
	TypeID(ctx context.Context, name string) (int64, error)
	Type(ctx context.Context, id int64) (sde.ItemType, error)
	ShipGroups(ctx context.Context, fragment string) ([]sde.Group, error)
	GroupTypeIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// CorpData reads the corporation-scoped mutable records.
type CorpData interface {
	CorporationID() int64
	Starbases(ctx context.Context, locationID int64) ([]spinner.Starbase, error)
	MembersByName(ctx context.Context, pattern string) ([]spinner.Member, error)
	MembersByLocation(ctx context.Context, fragment string) ([]spinner.Member, error)
	MembersByShipTypes(ctx context.Context, typeIDs []int64) ([]spinner.Member, error)
	UserByUsername(ctx context.Context, username string) (spinner.User, error)
	CharactersForUser(ctx context.Context, userID int64) ([]spinner.Character, error)
	APICallStatus(ctx context.Context, fragment string) (spinner.APICallStatus, error)
	MarketExists(ctx context.Context, locationID int64) (bool, error)
	MarketItemAt(ctx context.Context, locationID, typeID int64) (spinner.MarketItem, error)
	MarketLocationIDs(ctx context.Context) ([]int64, error)
}

// StatusAPI queries the live game server status.
type StatusAPI interface {
	Get(ctx context.Context) (eveapi.ServerStatus, error)
}

// Bot bundles the dependencies the handlers share.
type Bot struct {
	Universe Universe
	Corp     CorpData
	Status   StatusAPI
	// MaxLines is the display threshold: member listings longer than this
	// collapse to a summary line unless --all is given.
	MaxLines int
}

// Invocation is one parsed command invocation: --flags plus the remaining
// words joined back into a single free-text argument, matching how users type
// multi-word system and type names.
type Invocation struct {
	Flags map[string]string
	Text  string
}

// HasFlag reports whether --name was given (with or without a value).
func (inv Invocation) HasFlag(name string) bool {
	_, ok := inv.Flags[name]
	return ok
}

// Flag returns the value of --name=value, empty if absent or bare.
func (inv Invocation) Flag(name string) string {
	return inv.Flags[name]
}

func parseInvocation(tokens []string) Invocation {
	inv := Invocation{Flags: map[string]string{}}
	var words []string
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "--") && len(tok) > 2 {
			key, val, _ := strings.Cut(tok[2:], "=")
			inv.Flags[strings.ToLower(key)] = val
			continue
		}
		words = append(words, tok)
	}
	inv.Text = strings.Join(words, " ")
	return inv
}

// Command is one registered chat command.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(ctx context.Context, inv Invocation) ([]string, error)
}

// Router parses prefixed chat messages and dispatches them to handlers.
type Router struct {
	prefix   string
	commands map[string]*Command
}

// NewRouter registers the full command surface against bot.
func NewRouter(prefix string, bot *Bot) *Router {
	r := &Router{prefix: prefix, commands: map[string]*Command{}}
	r.register(&Command{Name: "pos", Usage: "pos [<system>]", Help: "List all starbases, or only those in <system>.", Run: bot.Pos})
	r.register(&Command{Name: "whereis", Usage: "whereis <character>", Help: "Show the location and boarded ship of matching characters.", Run: bot.Whereis})
	r.register(&Command{Name: "whoat", Usage: "whoat [--all] <system>", Help: "List characters and their ships in <system>.", Run: bot.Whoat})
	r.register(&Command{Name: "ship", Usage: "ship [--all] <shiptype>", Help: "List characters flying a ship type or group.", Run: bot.Ship})
	r.register(&Command{Name: "chars", Usage: "chars <username>", Help: "List the characters registered to a user.", Run: bot.Chars})
	r.register(&Command{Name: "price", Usage: "price [--location=<name>] <type>", Help: "Show market prices for an item, at Jita unless told otherwise.", Run: bot.Price})
	r.register(&Command{Name: "markets", Usage: "markets", Help: "List every region and system with collected market data.", Run: bot.Markets})
	r.register(&Command{Name: "evetime", Usage: "evetime", Help: "Show the current time on Tranquility.", Run: bot.EveTime})
	r.register(&Command{Name: "status", Usage: "status", Help: "Alias for evetime.", Run: bot.EveTime})
	r.register(&Command{Name: "cache", Usage: "cache <apicall>", Help: "Show when an API call was last refreshed.", Run: bot.Cache})
	r.register(&Command{Name: "locationid", Usage: "locationid <name>", Help: "Resolve a location name to its id.", Run: bot.LocationID})
	r.register(&Command{Name: "locationname", Usage: "locationname <id>", Help: "Resolve a location id to its name.", Run: bot.LocationName})
	r.register(&Command{Name: "typeid", Usage: "typeid <name>", Help: "Resolve a type name to its id.", Run: bot.TypeID})
	r.register(&Command{Name: "typename", Usage: "typename <id>", Help: "Resolve a type id to its name.", Run: bot.TypeName})
	r.register(&Command{Name: "help", Usage: "help [<command>]", Help: "List commands, or show usage for one.", Run: r.help})
	return r
}

func (r *Router) register(c *Command) { r.commands[c.Name] = c }

// Dispatch parses a chat message and runs the matching handler. The second
// return is false when the message is not a command for this bot; unknown
// command names are ignored silently rather than answered.
func (r *Router) Dispatch(ctx context.Context, message string) ([]string, bool) {
	message = strings.TrimSpace(message)
	if !strings.HasPrefix(message, r.prefix) {
		return nil, false
	}
	fields := strings.Fields(message[len(r.prefix):])
	if len(fields) == 0 {
		return nil, false
	}
	name := strings.ToLower(fields[0])
	cmd, ok := r.commands[name]
	if !ok {
		return nil, false
	}

	ctx = telemetry.WithCorrelation(ctx, uuid.NewString())
	ctx, span := telemetry.StartSpan(ctx, "command", name)
	defer span.End()

	telemetry.IncCommandHandled(name)
	var (
		lines []string
		err   error
	)
	telemetry.TimeFunc(telemetry.CommandDuration, func() {
		lines, err = cmd.Run(ctx, parseInvocation(fields[1:]))
	})
	if err != nil {
		telemetry.IncCommandFailed(name)
		telemetry.RecordError(span, err)
		slog.Error("command failed",
			slog.String("command", name),
			slog.String("correlation_id", telemetry.GetCorrelation(ctx)),
			slog.Any("err", err))
		return []string{failureLine(err)}, true
	}
	telemetry.SetSpanSuccess(span)
	return lines, true
}

// failureLine renders a propagated error as a single user-safe line. Expected
// lookup misses never reach this point; see the package comment.
func failureLine(err error) string {
	switch {
	case errors.Is(err, lookup.ErrNotConfigured):
		return "Corporation is not configured; ask the operator to set one"
	case errors.Is(err, lookup.ErrUpstream):
		return "Upstream service unavailable, try again later"
	default:
		return "Lookup failed, try again later"
	}
}

func (r *Router) help(_ context.Context, inv Invocation) ([]string, error) {
	if inv.Text != "" {
		cmd, ok := r.commands[strings.ToLower(inv.Text)]
		if !ok {
			return []string{"Unknown command"}, nil
		}
		return []string{r.prefix + cmd.Usage + " :: " + cmd.Help}, nil
	}
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return []string{"Commands: " + strings.Join(names, ", ")}, nil
}
