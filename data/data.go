package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Move categories as they appear in the dex dumps.
const (
	CategoryPhysical = "Physical"
	CategorySpecial  = "Special"
	CategoryStatus   = "Status"
)

type PokemonData struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// MoveData holds the static facts the battle core reads about a move.
type MoveData struct {
	ID        string
	Name      string
	Type      string
	Category  string
	BasePower int
	// Target is the raw dex target category ("normal", "allAdjacentFoes", ...).
	// Empty when the dex does not declare one.
	Target string
	// NonGhostTarget marks moves whose target collapses to the user unless
	// the user is Ghost type (Curse).
	NonGhostTarget bool
	// FixedDamage marks moves dealing damage without base power (Seismic Toss).
	FixedDamage bool
}

// Damaging reports whether the move deals direct damage.
func (m MoveData) Damaging() bool {
	return m.BasePower > 0 || m.FixedDamage
}

type RawPokemonData struct {
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
}

type RawMoveData struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Power          int    `json:"basePower" yaml:"basePower"`
	Category       string `json:"category" yaml:"category"`
	Target         string `json:"target" yaml:"target"`
	NonGhostTarget string `json:"nonGhostTarget" yaml:"nonGhostTarget"`
	Damage         any    `json:"damage" yaml:"damage"`
}

// Catalog is the read-only species and move lookup shared between battles.
// It must be fully loaded before any battle reads it.
type Catalog struct {
	pokemon map[string]PokemonData
	moves   map[string]MoveData
}

func NewCatalog() *Catalog {
	return &Catalog{
		pokemon: make(map[string]PokemonData),
		moves:   make(map[string]MoveData),
	}
}

// ToID normalizes a display name into a Showdown id: accents are folded,
// everything but lowercase letters and digits is dropped.
func ToID(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// decodeFile decodes a JSON or YAML file depending on its extension.
func decodeFile(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, out)
	default:
		return json.Unmarshal(b, out)
	}
}

// LoadPokemonData merges a pokedex dump into the catalog.
func (c *Catalog) LoadPokemonData(path string) error {
	var rawData map[string]RawPokemonData
	if err := decodeFile(path, &rawData); err != nil {
		return fmt.Errorf("error cargando datos de Pokémon %s: %w", path, err)
	}
	for key, p := range rawData {
		name := p.Name
		if name == "" {
			name = key
		}
		c.AddPokemon(PokemonData{Name: name, Types: p.Types})
	}
	return nil
}

// LoadMoveData merges a move dump into the catalog. Keys of the dump are
// ignored; ids are derived from move names.
func (c *Catalog) LoadMoveData(path string) error {
	var rawData map[string]RawMoveData
	if err := decodeFile(path, &rawData); err != nil {
		return fmt.Errorf("error cargando datos de movimientos %s: %w", path, err)
	}
	for key, m := range rawData {
		name := m.Name
		if name == "" {
			name = key
		}
		c.AddMove(MoveData{
			ID:             ToID(name),
			Name:           name,
			Type:           m.Type,
			Category:       m.Category,
			BasePower:      m.Power,
			Target:         m.Target,
			NonGhostTarget: m.NonGhostTarget != "",
			FixedDamage:    m.Damage != nil && m.Damage != false,
		})
	}
	return nil
}

func (c *Catalog) AddPokemon(p PokemonData) {
	c.pokemon[ToID(p.Name)] = p
}

func (c *Catalog) AddMove(m MoveData) {
	if m.ID == "" {
		m.ID = ToID(m.Name)
	}
	c.moves[m.ID] = m
}

// PokemonTypes returns the lowercased types of a species, nil when unknown.
func (c *Catalog) PokemonTypes(species string) []string {
	p, ok := c.pokemon[ToID(species)]
	if !ok {
		return nil
	}
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, strings.ToLower(t))
	}
	return types
}

// Move looks a move up by name or id.
func (c *Catalog) Move(name string) (MoveData, bool) {
	m, ok := c.moves[ToID(name)]
	return m, ok
}

func (c *Catalog) Len() (pokemon, moves int) {
	return len(c.pokemon), len(c.moves)
}
