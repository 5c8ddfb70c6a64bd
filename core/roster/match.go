package roster

import (
	"guild-ledger/core/wow"
)

// Signup is one already-deserialized entry of an external roster feed.
type Signup struct {
	Name      string
	UserID    string
	ClassName string
	SpecLabel string
	RoleLabel string
}

// CharacterRecord is the matcher's view of an internal character.
type CharacterRecord struct {
	ID    int
	Name  string
	Owner string
	Key   wow.RoleTuple
	Main  bool
}

// canonical maps the external feed's spec labels onto internal identities.
// Labels with a "1" suffix disambiguate specs sharing a name across
// classes, as emitted by the feed itself.
var canonical = map[string]wow.RoleTuple{
	"Frost":         {Class: wow.ClassMage, Role: wow.RoleRangedDps},
	"Fire":          {Class: wow.ClassMage, Role: wow.RoleRangedDps},
	"Arcane":        {Class: wow.ClassMage, Role: wow.RoleRangedDps},
	"Assassination": {Class: wow.ClassRogue, Role: wow.RoleMeleeDps, Spec: wow.SpecRogueAssa},
	"Combat":        {Class: wow.ClassRogue, Role: wow.RoleMeleeDps, Spec: wow.SpecRogueCombat},
	"Subtlety":      {Class: wow.ClassRogue, Role: wow.RoleMeleeDps},
	"Protection":    {Class: wow.ClassWarrior, Role: wow.RoleTank},
	"Fury":          {Class: wow.ClassWarrior, Role: wow.RoleMeleeDps},
	"Arms":          {Class: wow.ClassWarrior, Role: wow.RoleMeleeDps},
	"Discipline":    {Class: wow.ClassPriest, Role: wow.RoleHealer, Spec: wow.SpecPriestDisc},
	"Holy":          {Class: wow.ClassPriest, Role: wow.RoleHealer, Spec: wow.SpecPriestHoly},
	"Shadow":        {Class: wow.ClassPriest, Role: wow.RoleRangedDps},
	"Affliction":    {Class: wow.ClassWarlock, Role: wow.RoleRangedDps, Spec: wow.SpecWarlockAffli},
	"Demonology":    {Class: wow.ClassWarlock, Role: wow.RoleRangedDps, Spec: wow.SpecWarlockDemono},
	"Destruction":   {Class: wow.ClassWarlock, Role: wow.RoleRangedDps},
	"Beastmastery":  {Class: wow.ClassHunter, Role: wow.RoleRangedDps},
	"Marksman":      {Class: wow.ClassHunter, Role: wow.RoleRangedDps},
	"Marksmanship":  {Class: wow.ClassHunter, Role: wow.RoleRangedDps},
	"Survival":      {Class: wow.ClassHunter, Role: wow.RoleRangedDps},
	"Holy1":         {Class: wow.ClassPaladin, Role: wow.RoleHealer},
	"Retribution":   {Class: wow.ClassPaladin, Role: wow.RoleMeleeDps},
	"Protection1":   {Class: wow.ClassPaladin, Role: wow.RoleTank},
	"Blood_DPS":     {Class: wow.ClassDeathKnight, Role: wow.RoleMeleeDps},
	"Frost_DPS":     {Class: wow.ClassDeathKnight, Role: wow.RoleMeleeDps, Spec: wow.SpecDKFrost},
	"Unholy_DPS":    {Class: wow.ClassDeathKnight, Role: wow.RoleMeleeDps, Spec: wow.SpecDKUnholy},
	"Blood_Tank":    {Class: wow.ClassDeathKnight, Role: wow.RoleTank},
	"Frost_Tank":    {Class: wow.ClassDeathKnight, Role: wow.RoleTank},
	"Unholy_Tank":   {Class: wow.ClassDeathKnight, Role: wow.RoleTank},
	"Restoration":   {Class: wow.ClassDruid, Role: wow.RoleHealer},
	"Feral":         {Class: wow.ClassDruid, Role: wow.RoleMeleeDps},
	"Balance":       {Class: wow.ClassDruid, Role: wow.RoleRangedDps},
	"Guardian":      {Class: wow.ClassDruid, Role: wow.RoleTank},
	"Elemental":     {Class: wow.ClassShaman, Role: wow.RoleRangedDps},
	"Restoration1":  {Class: wow.ClassShaman, Role: wow.RoleHealer},
	"Enhancement":   {Class: wow.ClassShaman, Role: wow.RoleMeleeDps},
}

// Canonical resolves a feed spec label to its internal role tuple. The
// second return is false for unknown labels; callers must treat those
// signups as unmatched rather than guess.
func Canonical(label string) (wow.RoleTuple, bool) {
	t, ok := canonical[label]
	return t, ok
}

// Extent grades how closely a character matches a canonical tuple.
// See the package documentation for the ladder.
func Extent(character wow.RoleTuple, want wow.RoleTuple) float64 {
	switch {
	case character.Class != want.Class:
		return 0
	case character.Role != want.Role:
		return 1
	case character.Spec != want.Spec:
		if want.Spec == wow.SpecNone {
			// Neither side is specific: the best attainable generic match.
			return 2.5
		}
		return 2
	default:
		return 3
	}
}

// Match picks the candidate that best fits the signup's canonical tuple.
// The extent must be strictly positive; otherwise ok is false and the
// signup needs manual resolution. Ties prefer the main character, then
// input order.
func Match(want wow.RoleTuple, candidates []CharacterRecord) (CharacterRecord, bool) {
	var best CharacterRecord
	bestExtent := 0.0
	for _, c := range candidates {
		extent := Extent(c.Key, want)
		if extent == 0 {
			continue
		}
		if extent > bestExtent || (extent == bestExtent && c.Main && !best.Main) {
			bestExtent = extent
			best = c
		}
	}
	return best, bestExtent > 0
}

// Result is the outcome of reconciling one roster feed.
type Result struct {
	// Matched holds the characters resolved from signups.
	Matched []CharacterRecord
	// Unmatched holds the signups needing manual assignment, either
	// because the label was unknown or no owned character fit.
	Unmatched []Signup
}

// Reconcile maps every signup onto a character using the candidates owned
// by the signing user. CandidatesByUser is keyed by the external user id.
func Reconcile(signups []Signup, candidatesByUser map[string][]CharacterRecord) Result {
	var res Result
	for _, signup := range signups {
		want, ok := Canonical(signup.SpecLabel)
		if !ok {
			res.Unmatched = append(res.Unmatched, signup)
			continue
		}
		match, ok := Match(want, candidatesByUser[signup.UserID])
		if !ok {
			res.Unmatched = append(res.Unmatched, signup)
			continue
		}
		res.Matched = append(res.Matched, match)
	}
	return res
}
