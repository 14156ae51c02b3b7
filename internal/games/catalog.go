package games

// GameType identifies a mini-game.
type GameType string

const (
	TypeMemory   GameType = "memory"
	TypeFocus    GameType = "focus"
	TypePattern  GameType = "pattern"
	TypeLanguage GameType = "language"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Game is a catalog entry.
type Game struct {
	ID          GameType `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Skill       string   `json:"skill"`
}

var catalog = []Game{
	{ID: TypeMemory, Name: "Memory Match", Description: "Match pairs of cards to improve memory and recognition", Skill: "memory"},
	{ID: TypeFocus, Name: "Focus Challenge", Description: "Click the target as it appears to enhance concentration", Skill: "focus"},
	{ID: TypePattern, Name: "Pattern Recognition", Description: "Identify patterns and sequences to boost cognitive skills", Skill: "memory"},
	{ID: TypeLanguage, Name: "Word Builder", Description: "Create words from letters to develop language abilities", Skill: "reading"},
}

// Catalog returns the available games in display order.
func Catalog() []Game {
	out := make([]Game, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a game by id.
func Lookup(id GameType) (Game, bool) {
	for _, g := range catalog {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
