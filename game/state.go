package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrUnknownRole is returned by anything that needs to know which side
	// is ours before the first request or |player| line arrived.
	ErrUnknownRole = errors.New("player role is not known yet")
	// ErrUnownedMove is returned when a move is not on the menu of the
	// active pokemon it was asked for.
	ErrUnownedMove = errors.New("move is not owned by any active ally pokemon")
	// ErrBadIdentifier is returned for malformed protocol identifiers.
	ErrBadIdentifier = errors.New("malformed pokemon identifier")
)

// Battle is the doubles battle state of one side. It is not safe for
// concurrent use; events must be applied in the order they were received.
type Battle struct {
	tag    string
	dex    Dex
	logger *slog.Logger

	playerRole string
	username   string
	teamSize   map[string]int

	team                map[string]*Pokemon
	opponentTeam        map[string]*Pokemon
	teamPreviewOpponent []*Pokemon
	sentTeam            []*Pokemon

	// active is keyed by position token ("p1a", "p2b"). An entry is never
	// a fainted pokemon.
	active map[string]*Pokemon

	availableMoves     Pair[[]*Move]
	availableSwitches  Pair[[]*Pokemon]
	canMegaEvolve      Pair[bool]
	canZMove           Pair[bool]
	canDynamax         Pair[bool]
	opponentCanDynamax Pair[bool]
	forceSwitch        Pair[bool]
	maybeTrapped       Pair[bool]
	trapped            Pair[bool]

	rqid              int
	wait              bool
	teamPreview       bool
	maxTeamSize       int
	moveOnNextRequest bool

	turn                int
	weather             string
	fields              map[string]bool
	dynamaxTurn         int
	opponentDynamaxTurn int
	finished            bool
	winner              string
}

// NewBattle creates the state for one battle room. A nil dex means no static
// data is known; a nil logger discards logs.
func NewBattle(tag string, dex Dex, logger *slog.Logger) *Battle {
	if dex == nil {
		dex = emptyDex{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Battle{
		tag:                 tag,
		dex:                 dex,
		logger:              logger.With("battle", tag),
		teamSize:            make(map[string]int),
		team:                make(map[string]*Pokemon),
		opponentTeam:        make(map[string]*Pokemon),
		active:              make(map[string]*Pokemon),
		opponentCanDynamax:  PairOf(true),
		fields:              make(map[string]bool),
		dynamaxTurn:         -1,
		opponentDynamaxTurn: -1,
	}
}

func (b *Battle) Tag() string { return b.tag }

// SetUsername records our username so |player| lines can reveal our role.
func (b *Battle) SetUsername(name string) { b.username = name }

// PlayerRole returns "p1" or "p2".
func (b *Battle) PlayerRole() (string, error) {
	if b.playerRole == "" {
		return "", ErrUnknownRole
	}
	return b.playerRole, nil
}

func (b *Battle) OpponentRole() (string, error) {
	switch b.playerRole {
	case "p1":
		return "p2", nil
	case "p2":
		return "p1", nil
	}
	return "", ErrUnknownRole
}

// SetPlayer handles a |player| line.
func (b *Battle) SetPlayer(role, username string) {
	if b.username != "" && username == b.username {
		b.playerRole = role
	}
}

// Spectate picks the side treated as ours when no request will arrive.
func (b *Battle) Spectate(role string) {
	if b.playerRole == "" {
		b.playerRole = role
	}
}

func (b *Battle) SetTeamSize(role string, size int) { b.teamSize[role] = size }

// normalizeIdent turns "p1a: Name" into "p1: Name".
func normalizeIdent(identifier string) (string, error) {
	if len(identifier) < 4 || !strings.HasPrefix(identifier, "p") {
		return "", fmt.Errorf("%w: %q", ErrBadIdentifier, identifier)
	}
	if identifier[3] != ' ' {
		identifier = identifier[:2] + identifier[3:]
	}
	return identifier, nil
}

// positionToken extracts "p1a" from "p1a: Name".
func positionToken(identifier string) (string, error) {
	token, _, _ := strings.Cut(identifier, ":")
	if len(token) < 3 || (token[2] != 'a' && token[2] != 'b') {
		return "", fmt.Errorf("%w: no slot in %q", ErrBadIdentifier, identifier)
	}
	return token[:3], nil
}

// GetPokemon returns the pokemon for identifier, creating it on first sight.
// forceSelf puts newly created pokemon on our team regardless of role.
func (b *Battle) GetPokemon(identifier string, forceSelf bool, details string) (*Pokemon, error) {
	ident, err := normalizeIdent(identifier)
	if err != nil {
		return nil, err
	}
	if p, ok := b.team[ident]; ok {
		return p, nil
	}
	if p, ok := b.opponentTeam[ident]; ok {
		return p, nil
	}

	role := ident[:2]
	team := b.opponentTeam
	if forceSelf || role == b.playerRole {
		team = b.team
	}
	if size, ok := b.teamSize[role]; ok && len(team) >= size {
		return nil, fmt.Errorf("%s's team already has %d pokemon: cannot add %s", role, size, ident)
	}

	p := newPokemon(ident, details, b.dex)
	team[ident] = p
	return p, nil
}

func (b *Battle) Team() map[string]*Pokemon { return b.team }

func (b *Battle) OpponentTeam() map[string]*Pokemon { return b.opponentTeam }

// RegisterPreviewPokemon records an opponent pokemon shown during team preview.
func (b *Battle) RegisterPreviewPokemon(role, details string) {
	if role == b.playerRole {
		return
	}
	name, _, _ := strings.Cut(details, ", ")
	b.teamPreviewOpponent = append(b.teamPreviewOpponent, newPokemon(role+": "+name, details, b.dex))
}

func (b *Battle) TeamPreviewOpponentTeam() []*Pokemon { return b.teamPreviewOpponent }

// SentTeam returns every pokemon of ours that was ever referenced by a
// request or put on the field, keyed by species.
func (b *Battle) SentTeam() map[string]*Pokemon {
	sent := make(map[string]*Pokemon, len(b.sentTeam))
	for _, p := range b.sentTeam {
		sent[p.Species] = p
	}
	return sent
}

func (b *Battle) addSent(p *Pokemon) {
	if !slices.Contains(b.sentTeam, p) {
		b.sentTeam = append(b.sentTeam, p)
	}
}

func (b *Battle) sideActive(role string) Pair[*Pokemon] {
	var pair Pair[*Pokemon]
	for i, letter := range []string{"a", "b"} {
		p := b.active[role+letter]
		if p != nil && p.Active && !p.Fainted {
			pair.Set(i, p)
		}
	}
	return pair
}

// ActivePokemon returns our live active pokemon; either may be nil.
func (b *Battle) ActivePokemon() (Pair[*Pokemon], error) {
	role, err := b.PlayerRole()
	if err != nil {
		return Pair[*Pokemon]{}, fmt.Errorf("active pokemon: %w", err)
	}
	return b.sideActive(role), nil
}

// OpponentActivePokemon returns the opponent's live active pokemon.
func (b *Battle) OpponentActivePokemon() (Pair[*Pokemon], error) {
	role, err := b.OpponentRole()
	if err != nil {
		return Pair[*Pokemon]{}, fmt.Errorf("opponent active pokemon: %w", err)
	}
	return b.sideActive(role), nil
}

// Occupant returns the live pokemon standing in slot, nil if there is none.
func (b *Battle) Occupant(s Slot) (*Pokemon, error) {
	if s == SlotEmpty {
		return nil, nil
	}
	var (
		pair Pair[*Pokemon]
		err  error
	)
	if s.IsAlly() {
		pair, err = b.ActivePokemon()
	} else {
		pair, err = b.OpponentActivePokemon()
	}
	if err != nil {
		return nil, err
	}
	return pair.At(s.Index()), nil
}

// OccupiedSlots returns the set of slots holding a tracked pokemon.
func (b *Battle) OccupiedSlots() (map[Slot]bool, error) {
	if _, err := b.PlayerRole(); err != nil {
		return nil, fmt.Errorf("occupied slots: %w", err)
	}
	occupied := make(map[Slot]bool, len(b.active))
	for _, s := range Slots {
		p, err := b.Occupant(s)
		if err != nil {
			return nil, err
		}
		if p != nil {
			occupied[s] = true
		}
	}
	return occupied, nil
}

func (b *Battle) AvailableMoves() Pair[[]*Move] { return b.availableMoves }

func (b *Battle) AvailableSwitches() Pair[[]*Pokemon] { return b.availableSwitches }

func (b *Battle) CanMegaEvolve() Pair[bool] { return b.canMegaEvolve }

func (b *Battle) CanZMove() Pair[bool] { return b.canZMove }

func (b *Battle) CanDynamax() Pair[bool] { return b.canDynamax }

func (b *Battle) OpponentCanDynamax() Pair[bool] { return b.opponentCanDynamax }

func (b *Battle) ForceSwitch() Pair[bool] { return b.forceSwitch }

func (b *Battle) Trapped() Pair[bool] { return b.trapped }

func (b *Battle) MaybeTrapped() Pair[bool] { return b.maybeTrapped }

// RQID is the highest request id seen so far.
func (b *Battle) RQID() int { return b.rqid }

func (b *Battle) Wait() bool { return b.wait }

func (b *Battle) TeamPreview() bool { return b.teamPreview }

func (b *Battle) MaxTeamSize() int { return b.maxTeamSize }

// MoveOnNextRequest reports that a forced switch was requested and an order
// is expected on the next request. It stays set until cleared with
// SetMoveOnNextRequest once that order is sent.
func (b *Battle) MoveOnNextRequest() bool { return b.moveOnNextRequest }

func (b *Battle) SetMoveOnNextRequest(v bool) { b.moveOnNextRequest = v }

func (b *Battle) Turn() int { return b.turn }

func (b *Battle) SetTurn(turn int) { b.turn = turn }

func (b *Battle) Weather() string { return b.weather }

func (b *Battle) SetWeather(weather string) {
	if weather == "none" {
		weather = ""
	}
	b.weather = weather
}

func (b *Battle) Fields() []string { return slices.Sorted(maps.Keys(b.fields)) }

func (b *Battle) StartField(field string) { b.fields[field] = true }

func (b *Battle) EndField(field string) { delete(b.fields, field) }

// DynamaxTurn is the turn we dynamaxed on, -1 if we have not.
func (b *Battle) DynamaxTurn() int { return b.dynamaxTurn }

func (b *Battle) OpponentDynamaxTurn() int { return b.opponentDynamaxTurn }

func (b *Battle) Finished() bool { return b.finished }

// Winner is the winning username, empty on a tie or while running.
func (b *Battle) Winner() string { return b.winner }

func (b *Battle) Win(username string) {
	b.winner = username
	b.finished = true
}

func (b *Battle) Tie() { b.finished = true }

// Won reports whether we won; meaningful only once Finished.
func (b *Battle) Won() bool { return b.finished && b.username != "" && b.winner == b.username }
