package legacy

import (
	"fmt"
	"math/bits"
	"strconv"
	"unicode"
)

// Bit tables for the legacy file format, indexed by bit position. An empty
// entry is a bit the game does not model.
var (
	roomBits = []string{"dark", "death", "nomob", "indoors", "peaceful", "soundproof",
		"notrack", "nomagic", "tunnel", "private", "godroom", "house"}
	mobBits = []string{"spec", "sentinel", "scavenger", "isnpc", "aware", "aggressive",
		"stay_zone", "wimpy", "", "", "", "memory", "helper", "nocharm", "nosummon",
		"nosleep", "nobash", "noblind"}
	affectBits = []string{"blind", "invis", "det_align", "det_invis", "det_magic",
		"sense_life", "waterwalk", "sanct", "group", "curse", "infra", "poison",
		"prot_evil", "prot_good", "sleep", "no_track", "", "", "sneak", "hide", "", "charm"}
	itemBits = []string{"glow", "hum", "norent", "nodonate", "noinvis", "invisible",
		"magic", "nodrop", "bless", "anti_good", "anti_evil", "anti_neutral", "anti_mage",
		"anti_cleric", "anti_thief", "anti_warrior", "nosell"}
	wearBits = []string{"take", "finger", "neck", "body", "head", "legs", "feet",
		"hands", "arms", "shield", "about", "waist", "wrist", "wield", "hold"}
)

// Value tables for the legacy file format, indexed by number.
var (
	sectors = []string{"inside", "city", "field", "forest", "hills", "mountain",
		"water_swim", "water_noswim", "flying", "underwater"}
	itemTypes = []string{"undefined", "light", "scroll", "wand", "staff", "weapon",
		"fire_weapon", "missile", "treasure", "armor", "potion", "worn", "other", "trash",
		"trap", "container", "note", "liquid_container", "key", "food", "money", "pen",
		"boat", "fountain"}
	wearSlots = []string{"light", "finger_r", "finger_l", "neck_1", "neck_2", "body",
		"head", "legs", "feet", "hands", "arms", "shield", "about", "waist", "wrist_r",
		"wrist_l", "wield", "hold"}
	positions = []string{"dead", "mortally wounded", "incapacitated", "stunned",
		"sleeping", "resting", "sitting", "fighting", "standing"}
	sexes      = []string{"neutral", "male", "female"}
	directions = []string{"north", "east", "south", "west", "up", "down"}
	doorStates = []string{"open", "closed", "locked"}
)

// asciiFlags decodes a bitvector written either as a decimal number or as
// letters, where a-z are bits 0-25 and A-Z are bits 26-51.
func asciiFlags(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	var v uint64
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			v |= 1 << (c - 'a')
		case c >= 'A' && c <= 'Z':
			v |= 1 << (26 + c - 'A')
		case unicode.IsDigit(c):
			return 0, fmt.Errorf("mixed digits and letters in flags %q", s)
		default:
			return 0, fmt.Errorf("bad flag character %q in %q", c, s)
		}
	}
	return v, nil
}

// flagNames names every set bit of v. Bits without a name are returned
// separately so the caller can report them.
func flagNames(v uint64, table []string) (names []string, dropped []int) {
	for v != 0 {
		bit := bits.TrailingZeros64(v)
		v &^= 1 << bit
		if bit < len(table) && table[bit] != "" {
			names = append(names, table[bit])
		} else {
			dropped = append(dropped, bit)
		}
	}
	return names, dropped
}

// valueName maps n through table.
func valueName(n int, table []string, what string) (string, error) {
	if n < 0 || n >= len(table) {
		return "", fmt.Errorf("unknown %s %d", what, n)
	}
	return table[n], nil
}
