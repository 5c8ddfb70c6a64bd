package wow

import (
	"fmt"
	"strings"
)

// Class is a playable character class.
type Class int

// Class values follow the game's internal class identifiers.
const (
	ClassWarrior     Class = 1
	ClassPaladin     Class = 2
	ClassHunter      Class = 3
	ClassRogue       Class = 4
	ClassPriest      Class = 5
	ClassDeathKnight Class = 6
	ClassShaman      Class = 7
	ClassMage        Class = 8
	ClassWarlock     Class = 9
	ClassDruid       Class = 11
)

var classNames = map[Class]string{
	ClassWarrior:     "Warrior",
	ClassPaladin:     "Paladin",
	ClassHunter:      "Hunter",
	ClassRogue:       "Rogue",
	ClassPriest:      "Priest",
	ClassDeathKnight: "Death Knight",
	ClassShaman:      "Shaman",
	ClassMage:        "Mage",
	ClassWarlock:     "Warlock",
	ClassDruid:       "Druid",
}

// String returns the human readable class name.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	_, ok := classNames[c]
	return ok
}

// ParseClass resolves a class from its name, case-insensitively.
func ParseClass(s string) (Class, error) {
	needle := normalize(s)
	for c, name := range classNames {
		if normalize(name) == needle {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", s)
}

// Role is the combat role a character fills in a raid.
type Role int

const (
	RoleTank      Role = 1
	RoleHealer    Role = 2
	RoleMeleeDps  Role = 3
	RoleRangedDps Role = 4
)

var roleNames = map[Role]string{
	RoleTank:      "Tank",
	RoleHealer:    "Healer",
	RoleMeleeDps:  "Melee DPS",
	RoleRangedDps: "Ranged DPS",
}

// String returns the human readable role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole resolves a role from its name, case-insensitively.
// "melee" and "ranged" are accepted as shorthands.
func ParseRole(s string) (Role, error) {
	switch normalize(s) {
	case "tank":
		return RoleTank, nil
	case "healer", "heal":
		return RoleHealer, nil
	case "meleedps", "melee":
		return RoleMeleeDps, nil
	case "rangeddps", "ranged":
		return RoleRangedDps, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Spec is a class specialization tracked separately from the role.
// Only specs that change loot priorities within the same class and role
// are enumerated; SpecNone marks the absence of a specific spec.
type Spec int

const (
	SpecNone             Spec = 0
	SpecShamanEnhance    Spec = 1
	SpecShamanSpellhance Spec = 2
	SpecWarlockAffli     Spec = 3
	SpecWarlockDemono    Spec = 4
	SpecRogueCombat      Spec = 5
	SpecRogueAssa        Spec = 6
	SpecPriestHoly       Spec = 7
	SpecPriestDisc       Spec = 8
	SpecDKFrost          Spec = 9
	SpecDKUnholy         Spec = 10
)

var specNames = map[Spec]string{
	SpecShamanEnhance:    "Enhance",
	SpecShamanSpellhance: "Spellhance",
	SpecWarlockAffli:     "Affliction",
	SpecWarlockDemono:    "Demonology",
	SpecRogueCombat:      "Combat",
	SpecRogueAssa:        "Assassination",
	SpecPriestHoly:       "Holy",
	SpecPriestDisc:       "Discipline",
	SpecDKFrost:          "Frost",
	SpecDKUnholy:         "Unholy",
}

var specClasses = map[Spec]Class{
	SpecShamanEnhance:    ClassShaman,
	SpecShamanSpellhance: ClassShaman,
	SpecWarlockAffli:     ClassWarlock,
	SpecWarlockDemono:    ClassWarlock,
	SpecRogueCombat:      ClassRogue,
	SpecRogueAssa:        ClassRogue,
	SpecPriestHoly:       ClassPriest,
	SpecPriestDisc:       ClassPriest,
	SpecDKFrost:          ClassDeathKnight,
	SpecDKUnholy:         ClassDeathKnight,
}

// String returns the human readable spec name, or an empty string for SpecNone.
func (s Spec) String() string {
	if s == SpecNone {
		return ""
	}
	if name, ok := specNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Spec(%d)", int(s))
}

// Class returns the class the spec belongs to, or 0 for SpecNone.
func (s Spec) Class() Class {
	return specClasses[s]
}

// ParseSpec resolves a spec from its name, case-insensitively.
// An empty input resolves to SpecNone.
func ParseSpec(s string) (Spec, error) {
	if strings.TrimSpace(s) == "" {
		return SpecNone, nil
	}
	needle := normalize(s)
	for spec, name := range specNames {
		if normalize(name) == needle {
			return spec, nil
		}
	}
	return SpecNone, fmt.Errorf("unknown spec %q", s)
}

// Specs returns the specs available to a class for a given role.
// Most class/role combinations have none.
func Specs(c Class, r Role) []Spec {
	switch {
	case c == ClassRogue && r == RoleMeleeDps:
		return []Spec{SpecRogueAssa, SpecRogueCombat}
	case c == ClassShaman && r == RoleMeleeDps:
		return []Spec{SpecShamanEnhance, SpecShamanSpellhance}
	case c == ClassWarlock && r == RoleRangedDps:
		return []Spec{SpecWarlockAffli, SpecWarlockDemono}
	case c == ClassPriest && r == RoleHealer:
		return []Spec{SpecPriestHoly, SpecPriestDisc}
	case c == ClassDeathKnight && r == RoleMeleeDps:
		return []Spec{SpecDKFrost, SpecDKUnholy}
	default:
		return nil
	}
}

// RoleTuple is the comparison key identifying who can want an item.
// It is comparable and safe to use as a map key; equality is structural.
type RoleTuple struct {
	Class Class
	Role  Role
	Spec  Spec
}

// String renders the tuple for diagnostics and chat output.
func (t RoleTuple) String() string {
	if t.Spec == SpecNone {
		return fmt.Sprintf("%s/%s", t.Class, t.Role)
	}
	return fmt.Sprintf("%s/%s/%s", t.Class, t.Role, t.Spec)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
