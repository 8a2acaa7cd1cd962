package world

// ItemType is the kind of an object.
type ItemType int

// Item types.
const (
	ItemUndefined ItemType = iota
	ItemLight
	ItemScroll
	ItemWand
	ItemStaff
	ItemWeapon
	ItemFireWeapon
	ItemMissile
	ItemTreasure
	ItemArmor
	ItemPotion
	ItemWorn
	ItemOther
	ItemTrash
	ItemTrap
	ItemContainer
	ItemNote
	ItemDrinkCon
	ItemKey
	ItemFood
	ItemMoney
	ItemPen
	ItemBoat
	ItemFountain
)

// ItemTypeNames is indexed by ItemType.
var ItemTypeNames = []string{"undefined", "light", "scroll", "wand", "staff", "weapon",
	"fire_weapon", "missile", "treasure", "armor", "potion", "worn", "other", "trash", "trap",
	"container", "note", "liquid_container", "key", "food", "money", "pen", "boat", "fountain"}

// Container value bits, stored in Values[1].
const (
	ContCloseable = 1 << iota
	ContPickproof
	ContClosed
	ContLocked
)

// WearPos is an equipment slot.
type WearPos int

// Equipment slots.
const (
	WearLight WearPos = iota
	WearFingerR
	WearFingerL
	WearNeck1
	WearNeck2
	WearBody
	WearHead
	WearLegs
	WearFeet
	WearHands
	WearArms
	WearShield
	WearAbout
	WearWaist
	WearWristR
	WearWristL
	WearWield
	WearHold
	NumWears
)

// WearWhere labels each slot in equipment listings.
var WearWhere = [NumWears]string{
	"<used as light>      ",
	"<worn on finger>     ",
	"<worn on finger>     ",
	"<worn around neck>   ",
	"<worn around neck>   ",
	"<worn on body>       ",
	"<worn on head>       ",
	"<worn on legs>       ",
	"<worn on feet>       ",
	"<worn on hands>      ",
	"<worn on arms>       ",
	"<worn as shield>     ",
	"<worn about body>    ",
	"<worn about waist>   ",
	"<worn around wrist>  ",
	"<worn around wrist>  ",
	"<wielded>            ",
	"<held>               ",
}

// WearPosNames are the slot names used in zone files.
var WearPosNames = []string{"light", "finger_r", "finger_l", "neck_1", "neck_2", "body",
	"head", "legs", "feet", "hands", "arms", "shield", "about", "waist", "wrist_r", "wrist_l",
	"wield", "hold"}

// LocKind tags an object's location.
type LocKind uint8

// Location kinds.
const (
	LocNowhere LocKind = iota
	LocRoom
	LocCarried
	LocWorn
	LocContainer
)

// Location is where an object is. Exactly one variant is active; the
// zero value is "nowhere".
type Location struct {
	Kind LocKind
	Room Rnum
	Char CharID
	Slot WearPos
	Obj  ObjID
}

// InRoom places an object on a room floor.
func InRoom(r Rnum) Location { return Location{Kind: LocRoom, Room: r} }

// CarriedBy places an object in a character's inventory.
func CarriedBy(ch CharID) Location { return Location{Kind: LocCarried, Char: ch} }

// WornBy places an object in a character's equipment slot.
func WornBy(ch CharID, pos WearPos) Location {
	return Location{Kind: LocWorn, Char: ch, Slot: pos}
}

// InObj places an object inside a container.
func InObj(o ObjID) Location { return Location{Kind: LocContainer, Obj: o} }

// Object is an item instance.
type Object struct {
	Vnum        Vnum
	ProtoRnum   int
	Name        string // keyword list
	ShortDescr  string
	Description string
	ActionDescr string
	Type        ItemType
	ExtraFlags  Flags[ItemFlag]
	WearFlags   Flags[WearFlag]
	Values      [4]int
	Weight      int
	Cost        int
	Rent        int
	Timer       int
	ExtraDescs  []ExtraDesc
	Affects     [2]ObjAffect
	SpecProc    string

	Contains []ObjID
	Loc      Location
}

// ObjAffect is a stat modifier granted while the object is worn.
type ObjAffect struct {
	Location ApplyLoc
	Modifier int
}

// CanWear reports whether the object has wear flag f.
func (o *Object) CanWear(f WearFlag) bool { return o.WearFlags.Has(f) }
