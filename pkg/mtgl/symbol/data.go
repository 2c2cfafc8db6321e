package symbol

// Built-in vocabulary. Lists follow the Comprehensive Rules numbering noted
// per block; the version string in catalog.go tracks their revision.

// keywords are keyword abilities (rule 702). Multi-word forms are listed
// whole so the tagger's longest-match scan prefers them over their first
// word alone.
var keywords = []string{
	"deathtouch", "defender", "double strike", "enchant", "equip",
	"first strike", "flash", "flying", "haste", "hexproof",
	"indestructible", "intimidate", "lifelink", "menace", "protection",
	"prowess", "reach", "shroud", "trample", "vigilance", "ward",
	"banding", "fear", "flanking", "phasing", "shadow", "horsemanship",
	"cycling", "echo", "buyback", "flashback", "kicker", "madness",
	"morph", "ninjutsu", "persist", "undying", "scavenge", "storm",
	"suspend", "convoke", "delve", "dredge", "cascade", "annihilator",
	"exalted", "infect", "wither", "unearth", "evoke", "devour",
	"rebound", "totem armor", "living weapon", "battle cry", "soulbond",
	"miracle", "overload", "unleash", "evolve", "extort", "fuse",
	"bestow", "tribute", "outlast", "prowl", "dash", "exploit",
	"renown", "awaken", "surge", "skulk", "emerge", "escalate",
	"crew", "fabricate", "improvise", "embalm", "eternalize",
	"afflict", "ascend", "jump-start", "riot", "spectacle", "afterlife",
	"escape", "mutate", "companion", "landwalk", "islandwalk",
	"swampwalk", "mountainwalk", "forestwalk", "plainswalk",
	"split second", "level up", "partner", "mentor", "fortify",
}

// abilityWords (rule 207.2c) have no rules meaning; they label a line.
var abilityWords = []string{
	"landfall", "metalcraft", "threshold", "hellbent", "morbid",
	"bloodrush", "battalion", "heroic", "constellation", "ferocious",
	"raid", "rally", "delirium", "revolt", "undergrowth", "adamant",
	"enrage", "addendum", "spell mastery", "fateful hour",
}

// keywordActions are rule 701 verbs.
var keywordActions = []string{
	"activate", "attach", "cast", "counter", "create", "destroy",
	"discard", "double", "exchange", "exile", "fight", "mill", "play",
	"regenerate", "reveal", "sacrifice", "scry", "search", "shuffle",
	"tap", "untap", "fateseal", "clash", "proliferate", "transform",
	"detain", "populate", "monstrosity", "bolster", "manifest",
	"support", "investigate", "meld", "goad", "explore", "surveil",
	"adapt", "amass",
}

// commonActions are verbs without a rules entry that still carry effects.
var commonActions = []string{
	"add", "draw", "gain", "lose", "put", "return", "deal", "get",
	"pay", "look", "choose", "die", "enter", "leave", "attack",
	"block", "copy", "cost", "remove", "skip", "win",
	"become", "have", "prevent", "take", "control", "own", "spend",
}

// zones (rule 4). The exile zone is intentionally absent: "exile" is
// registered as an action and the parser resolves zone uses from context,
// matching how the original grammar treated the collision.
var zones = []string{
	"battlefield", "graveyard", "library", "hand", "stack",
	"command zone",
}

// references are player and object reference words.
var references = []string{
	"you", "your", "player", "opponent", "controller", "owner",
	"it", "they", "them", "card", "spell", "permanent", "token",
	"ability", "source", "creature card", "this card", "this spell",
	"this permanent", "planeswalker",
}

// qualities are characteristics (rule 109.3): supertypes, card types,
// colors and the measurable characteristics.
var qualities = []string{
	"legendary", "basic", "snow", "world",
	"artifact", "creature", "enchantment", "instant", "land",
	"sorcery", "tribal", "historic",
	"white", "blue", "black", "red", "green", "colorless",
	"multicolored", "monocolored",
	"power", "toughness", "mana cost", "mana value", "name", "type",
	"color",
	// common subtypes; the full list ships via catalog overlays
	"aura", "equipment", "saga", "vehicle", "treasure", "food", "clue",
	"island", "mountain", "forest", "plains", "swamp",
	"goblin", "elf", "zombie", "dragon", "angel", "vampire", "human",
	"soldier", "wizard", "merfolk", "spirit", "demon", "beast",
	"elemental", "sliver", "cleric", "knight", "rogue", "warrior",
}

// statuses (rule 110.6) plus combat and attachment states the original
// tracked as lituus statuses.
var statuses = []string{
	"tapped", "untapped", "flipped", "unflipped", "face up",
	"face down", "phased in", "phased out",
	"attacking", "blocking", "blocked", "defending", "transformed",
	"enchanted", "equipped", "exiled", "attached", "revealed",
	"suspended",
}

// triggerWords are trigger preambles (rule 603.1).
var triggerWords = []string{
	"when", "whenever", "at the beginning of", "at end of",
}

// conditionWords introduce conditional clauses.
var conditionWords = []string{
	"if", "unless", "as long as", "otherwise", "only if", "instead",
}

// sequenceWords order effects in time.
var sequenceWords = []string{
	"then", "until", "during", "after", "before", "while",
	"end of turn",
}

// quantifiers scope object and player references.
var quantifiers = []string{
	"target", "each", "all", "any", "every", "another", "other",
	"up to", "at least", "at most", "exactly", "additional", "each other",
}
