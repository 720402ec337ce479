package rules

// VisibilityMode changes how the view projector renders the board without
// affecting rule semantics.
type VisibilityMode int

const (
	// VisibilityModeNone is the default: stones render as their own color.
	VisibilityModeNone VisibilityMode = iota
	// VisibilityModeOneColor displays every non-empty cell as a single
	// fixed display color while the game is not Done.
	VisibilityModeOneColor
)

// HiddenMoveMod configures the FreePlacement opening.
type HiddenMoveMod struct {
	PlacementCount   int
	TeamsShareStones bool
}

// ZenGoMod rotates every seat's team color by move number.
type ZenGoMod struct {
	ColorCount int
}

// NPlusOneMod grants an extra turn for completing an exact-length run.
type NPlusOneMod struct {
	Length int
}

// TraitorMod enables randomized color substitution on placement.
type TraitorMod struct {
	TraitorCount uint32
}

// GameModifier is the full set of enabled rule variants for a game. A nil
// pointer field means the variant is disabled; the codec must default
// missing fields to disabled so older dumps remain loadable (§9 of the
// spec: "forward-compatible under added optional fields on mods").
type GameModifier struct {
	Pixel                bool
	Toroidal             bool
	Phantom              bool
	Tetris               bool
	CapturesGivePoints   bool
	NoHistory            bool
	NoUndo               bool
	Observable           bool
	PonnukiIsPoints      *int
	ZenGo                *ZenGoMod
	HiddenMove           *HiddenMoveMod
	NPlusOne             *NPlusOneMod
	Traitor              *TraitorMod
	VisibilityMode       VisibilityMode
}
