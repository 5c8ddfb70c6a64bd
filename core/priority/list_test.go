package priority

import (
	"math/rand"
	"testing"

	"guild-ledger/core/wow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	palRet     = wow.RoleTuple{Class: wow.ClassPaladin, Role: wow.RoleMeleeDps}
	spellhance = wow.RoleTuple{Class: wow.ClassShaman, Role: wow.RoleMeleeDps, Spec: wow.SpecShamanSpellhance}
	fireMage   = wow.RoleTuple{Class: wow.ClassMage, Role: wow.RoleRangedDps}
	holyPriest = wow.RoleTuple{Class: wow.ClassPriest, Role: wow.RoleHealer, Spec: wow.SpecPriestHoly}
)

func mustParse(t *testing.T, tokens []Token) *List {
	t.Helper()
	list, err := Parse(tokens)
	require.NoError(t, err)
	return list
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
	}{
		{name: "no tokens", tokens: nil},
		{name: "only blanks", tokens: []Token{TextToken(""), TextToken("  ")}},
		{name: "only tier separators", tokens: []Token{
			TextToken(""), TextToken(">>"), TextToken(""), TextToken(">>"),
			TextToken(""), TextToken(">>"), TextToken(""), TextToken(">>"), TextToken(""),
		}},
		{name: "mixed separators no roles", tokens: []Token{
			TextToken(">"), TextToken("~"), TextToken(">>"), TextToken(">"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := mustParse(t, tt.tokens)
			assert.Equal(t, TierUseless, list.TierOf(palRet))
			assert.False(t, list.HasRoles())
			for _, tier := range Tiers() {
				assert.False(t, list.TierHasRoles(tier))
			}
		})
	}
}

func TestParse_TierPlacement(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   Tier
	}{
		{name: "bare role is best in slot", tokens: []Token{RoleToken(palRet)}, want: TierBestInSlot},
		{name: "one leading tier separator", tokens: []Token{TextToken(""), TextToken(">>"), RoleToken(palRet), TextToken(">>")}, want: TierAlmostBestInSlot},
		{name: "two leading tier separators", tokens: []Token{TextToken(""), TextToken(">>"), TextToken(""), TextToken(">>"), RoleToken(palRet)}, want: TierAverage},
		{name: "three leading tier separators", tokens: []Token{TextToken(""), TextToken(">>"), TextToken(""), TextToken(">>"), TextToken(""), TextToken(">>"), RoleToken(palRet)}, want: TierSlightUpgrade},
		{name: "four leading tier separators land in useless", tokens: []Token{TextToken(">>"), TextToken(">>"), TextToken(">>"), TextToken(">>"), RoleToken(palRet)}, want: TierUseless},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := mustParse(t, tt.tokens)
			assert.Equal(t, tt.want, list.TierOf(palRet))
		})
	}
}

func TestParse_UnknownSeparator(t *testing.T) {
	_, err := Parse([]Token{RoleToken(palRet), TextToken(">>>"), RoleToken(fireMage)})
	require.Error(t, err)

	var sepErr *UnknownSeparatorError
	require.ErrorAs(t, err, &sepErr)
	assert.Equal(t, 1, sepErr.Pos)
	assert.Equal(t, ">>>", sepErr.Text)
}

func TestParse_DuplicateRole(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []Token
		wantPos int
	}{
		{
			name:    "same tier",
			tokens:  []Token{RoleToken(palRet), TextToken("~"), RoleToken(palRet)},
			wantPos: 2,
		},
		{
			name:    "different tiers",
			tokens:  []Token{RoleToken(palRet), TextToken(">>"), RoleToken(palRet)},
			wantPos: 2,
		},
		{
			name:    "different sublevels",
			tokens:  []Token{RoleToken(palRet), TextToken(">"), RoleToken(fireMage), TextToken(">"), RoleToken(palRet)},
			wantPos: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.tokens)
			require.Error(t, err)

			var dupErr *DuplicateRoleError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, tt.wantPos, dupErr.Pos)
			assert.Equal(t, palRet, dupErr.Role)
		})
	}
}

func TestCompare_SeparatorSemantics(t *testing.T) {
	// a > b orders strictly, a ~ b ties.
	ordered := mustParse(t, []Token{RoleToken(spellhance), TextToken(">"), RoleToken(palRet), TextToken(">>")})
	assert.True(t, ordered.IsBetter(spellhance, palRet))
	assert.False(t, ordered.IsEquivalent(spellhance, palRet))
	assert.Equal(t, TierBestInSlot, ordered.TierOf(spellhance))
	assert.Equal(t, TierBestInSlot, ordered.TierOf(palRet))

	tied := mustParse(t, []Token{RoleToken(spellhance), TextToken("~"), RoleToken(palRet), TextToken(">>")})
	assert.True(t, tied.IsEquivalent(spellhance, palRet))
	assert.False(t, tied.IsBetter(spellhance, palRet))
	assert.False(t, tied.IsBetter(palRet, spellhance))
}

func TestCompare_AcrossTiers(t *testing.T) {
	list := mustParse(t, []Token{
		RoleToken(spellhance), TextToken(">>"),
		RoleToken(palRet), TextToken(">>"),
		RoleToken(fireMage), TextToken(">>"),
		RoleToken(holyPriest),
	})

	assert.True(t, list.IsBetter(spellhance, palRet))
	assert.True(t, list.IsBetter(palRet, fireMage))
	assert.True(t, list.IsBetter(fireMage, holyPriest))
	// Any listed role beats an unlisted one.
	unlisted := wow.RoleTuple{Class: wow.ClassDruid, Role: wow.RoleTank}
	assert.True(t, list.IsBetter(holyPriest, unlisted))
	assert.Equal(t, TierUseless, list.TierOf(unlisted))
}

func TestCompare_Antisymmetry(t *testing.T) {
	list := mustParse(t, []Token{
		RoleToken(spellhance), TextToken(">"), RoleToken(palRet), TextToken(">>"),
		RoleToken(fireMage),
	})

	roles := []wow.RoleTuple{spellhance, palRet, fireMage, holyPriest}
	for _, a := range roles {
		for _, b := range roles {
			assert.Equal(t, list.Compare(a, b), -list.Compare(b, a), "compare(%s,%s)", a, b)
		}
	}
}

func TestCompare_TierMonotonicity(t *testing.T) {
	list := mustParse(t, []Token{
		RoleToken(spellhance), TextToken(">"), RoleToken(palRet), TextToken(">>"),
		RoleToken(fireMage), TextToken(">>"),
		RoleToken(holyPriest),
	})

	roles := []wow.RoleTuple{spellhance, palRet, fireMage, holyPriest}
	for _, a := range roles {
		for _, b := range roles {
			if list.Compare(a, b) > 0 {
				assert.LessOrEqual(t, int(list.TierOf(a)), int(list.TierOf(b)))
			}
		}
	}
}

func TestCompare_TwoUnlistedRolesAreTied(t *testing.T) {
	list := mustParse(t, []Token{RoleToken(spellhance)})
	a := wow.RoleTuple{Class: wow.ClassDruid, Role: wow.RoleTank}
	b := wow.RoleTuple{Class: wow.ClassHunter, Role: wow.RoleRangedDps}
	assert.Equal(t, 0, list.Compare(a, b))
	assert.True(t, list.IsEquivalent(a, b))
}

func TestSublevels(t *testing.T) {
	list := mustParse(t, []Token{
		RoleToken(spellhance), TextToken("~"), RoleToken(palRet),
		TextToken(">"), RoleToken(fireMage),
		TextToken(">>"),
	})

	sublevels := list.Sublevels(TierBestInSlot)
	require.Len(t, sublevels, 2)
	assert.ElementsMatch(t, []wow.RoleTuple{spellhance, palRet}, sublevels[0])
	assert.Equal(t, []wow.RoleTuple{fireMage}, sublevels[1])
	assert.Empty(t, list.Sublevels(TierAverage))
	assert.Nil(t, list.Sublevels(TierUseless))
}

func TestTierHasRoles(t *testing.T) {
	list := mustParse(t, []Token{TextToken(">>"), RoleToken(palRet)})
	assert.False(t, list.TierHasRoles(TierBestInSlot))
	assert.True(t, list.TierHasRoles(TierAlmostBestInSlot))
	assert.False(t, list.TierHasRoles(TierUseless))
	assert.True(t, list.HasRoles())
}

func TestParse_OrderIndependentOfBuildNoise(t *testing.T) {
	// Shuffling role identities through different token rows with the same
	// structure must produce the same ranking relations.
	roles := []wow.RoleTuple{spellhance, palRet, fireMage, holyPriest}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]wow.RoleTuple(nil), roles...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		list := mustParse(t, []Token{
			RoleToken(shuffled[0]), TextToken(">"), RoleToken(shuffled[1]), TextToken(">>"),
			RoleToken(shuffled[2]), TextToken(">>"), RoleToken(shuffled[3]),
		})
		assert.True(t, list.IsBetter(shuffled[0], shuffled[1]))
		assert.True(t, list.IsBetter(shuffled[1], shuffled[2]))
		assert.True(t, list.IsBetter(shuffled[2], shuffled[3]))
	}
}
