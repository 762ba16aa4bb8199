package model

// Closed value sets for sample variation and inventory fields. All of them are
// stored as plain strings; adding a value is a one-place change in this file.

// Production stages of a sample item.
const (
	StagePrototype   = "PROTOTYPE"
	StageDevelopment = "DEVELOPMENT"
	StageProduction  = "PRODUCTION"
	StageArchived    = "ARCHIVED"
)

// Stages lists all valid production stages.
var Stages = []string{StagePrototype, StageDevelopment, StageProduction, StageArchived}

// Colors lists all valid sample colors. Empty string means "no color" and is a
// distinct, comparable variant value, not an absence.
var Colors = []string{
	"BLACK", "WHITE", "IVORY", "CREAM", "BEIGE", "TAN", "BROWN", "CHOCOLATE",
	"NAVY", "ROYAL_BLUE", "SKY_BLUE", "TEAL", "TURQUOISE", "GREEN", "OLIVE",
	"FOREST_GREEN", "MINT", "YELLOW", "MUSTARD", "ORANGE", "RUST", "RED",
	"BURGUNDY", "PINK", "BLUSH", "PURPLE", "LAVENDER", "GREY", "CHARCOAL",
}

// Sizes lists all valid sample sizes.
var Sizes = []string{
	"XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "ONE_SIZE",
	"W28", "W30", "W32", "W34", "W36", "W38",
}

// Locations lists all physical storage locations for inventory units.
var Locations = []string{
	"STUDIO_A", "STUDIO_B", "SHOWROOM", "MAIN_WAREHOUSE",
	"OVERFLOW_WAREHOUSE", "PHOTO_STUDIO", "FACTORY_FLOOR", "OFFSITE",
}

// Inventory unit statuses.
const (
	UnitAvailable = "AVAILABLE"
	UnitInUse     = "IN_USE"
	UnitReserved  = "RESERVED"
	UnitDamaged   = "DAMAGED"
	UnitArchived  = "ARCHIVED"
)

// UnitStatuses lists all valid inventory unit statuses.
var UnitStatuses = []string{UnitAvailable, UnitInUse, UnitReserved, UnitDamaged, UnitArchived}

// GroupNone is the grouping key used for units with no location, size or color.
// It is a distinguished group, not a filtered-out one.
const GroupNone = "NONE"

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidStage reports whether s is a known production stage.
func ValidStage(s string) bool { return contains(Stages, s) }

// ValidColor reports whether c is a known color. Empty is valid (no color).
func ValidColor(c string) bool { return c == "" || contains(Colors, c) }

// ValidSize reports whether s is a known size. Empty is valid (no size).
func ValidSize(s string) bool { return s == "" || contains(Sizes, s) }

// ValidLocation reports whether l is a known location. Empty is valid (no location).
func ValidLocation(l string) bool { return l == "" || contains(Locations, l) }

// ValidUnitStatus reports whether s is a known inventory unit status.
func ValidUnitStatus(s string) bool { return contains(UnitStatuses, s) }
