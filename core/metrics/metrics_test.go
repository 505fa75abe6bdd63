package metrics

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapscore-core/structure"
	"tapscore-core/taperr"
	"tapscore-core/testutil"
)

func TestBandsAmberBeforeGreen(t *testing.T) {
	b := Bands{
		Green: []Range{Between(0, 10)},
		Amber: []Range{Between(5, 15)},
	}
	cases := []struct {
		v    float64
		want Flag
	}{
		{-1, Red},
		{0, Green},
		{4.99, Green},
		{5, Amber},
		{10, Amber},
		{15, Amber},
		{15.01, Red},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, b.Flag(c.v), "v=%v", c.v)
	}
}

func TestDefaultBandsBoundaries(t *testing.T) {
	d := DefaultBands()
	assert.Equal(t, Amber, d[KeyHydrophobicPatch].Flag(137.61))
	assert.Equal(t, Green, d[KeyHydrophobicPatch].Flag(150))
	assert.Equal(t, Red, d[KeyHydrophobicPatch].Flag(0.44))
	assert.Equal(t, Amber, d[KeySFvCSP].Flag(-4.20))
	assert.Equal(t, Green, d[KeySFvCSP].Flag(1e9))
	assert.Equal(t, Red, d[KeySFvCSP].Flag(-30))
	assert.Equal(t, Green, d[KeyTotalCDRLength].Flag(48))
	assert.Equal(t, Amber, d[KeyTotalCDRLength].Flag(43))
	assert.Equal(t, Red, d[KeyTotalCDRLength].Flag(70))
	assert.Equal(t, Green, d[KeyNegativePatch].Flag(0))
	assert.Equal(t, Red, d[KeyPositivePatch].Flag(3.51))
}

func TestRangeStringAndValidate(t *testing.T) {
	assert.Equal(t, "-4.2 to inf", AtLeast(-4.2).String())
	assert.Equal(t, "-inf to 3", AtMost(3).String())
	assert.Equal(t, "37 to 43; 55 to 63", Describe([]Range{Between(37, 43), Between(55, 63)}))

	assert.NoError(t, DefaultBands()[KeyHydrophobicPatch].Validate())
	assert.Error(t, Bands{Green: []Range{Between(2, 1)}}.Validate())
	assert.True(t, Range{}.Contains(-1e300))
}

// pair builds two residues 3 Å apart in the CDR vicinity with the given
// types, hydrophobicities and charges.
func pair(t *testing.T, types [2]string, hyd, q [2]float64) *structure.Structure {
	s := testutil.Build(t,
		testutil.Single("H", 30, types[0], 0, 0, 0),
		testutil.Single("L", 30, types[1], 3, 0, 0),
	)
	r := s.Residues()
	for i := range r {
		r[i].Ann.RelativeSurfaceArea = 50
		r[i].Ann.CDRNumber = 1
		r[i].Ann.InCDRVicinity = true
		r[i].Ann.Hydrophobicity = hyd[i]
		r[i].Ann.Charge = q[i]
	}
	r[0].Ann.Neighbors[r[1].ID] = 3.0
	r[1].Ann.Neighbors[r[0].ID] = 3.0
	return s
}

func TestHydrophobicPatchTwoResidues(t *testing.T) {
	s := pair(t, [2]string{"ILE", "ILE"}, [2]float64{2, 2}, [2]float64{0, 0})
	res, err := Calculate(Default()[0], s)
	require.NoError(t, err)
	// Each ordered pair contributes 4/9.
	assert.InDelta(t, 2*4.0/9.0, res.Value, 1e-12)
	assert.Equal(t, Red, res.Flag)
	assert.Equal(t, "Hydrophobic Patch Score", res.Name)
}

func TestHydrophobicPatchSkipsNonNeighborsAndOutsideVicinity(t *testing.T) {
	s := pair(t, [2]string{"ILE", "ILE"}, [2]float64{2, 2}, [2]float64{0, 0})
	r := s.Residues()
	delete(r[0].Ann.Neighbors, r[1].ID)
	delete(r[1].Ann.Neighbors, r[0].ID)
	v, _ := HydrophobicPatch{}.Score(s)
	assert.Zero(t, v)

	s = pair(t, [2]string{"ILE", "ILE"}, [2]float64{2, 2}, [2]float64{0, 0})
	s.Residues()[1].Ann.InCDRVicinity = false
	v, _ = HydrophobicPatch{}.Score(s)
	assert.Zero(t, v)
}

func TestChargePatches(t *testing.T) {
	cases := []struct {
		q       [2]float64
		neg     float64
		pos     float64
		comment string
	}{
		{[2]float64{-1, -1}, 2.0 / 9.0, 0, "two acidic"},
		{[2]float64{1, 1}, 0, 2.0 / 9.0, "two basic"},
		{[2]float64{1, 0.1}, 0, 2 * 0.1 / 9.0, "basic and histidine"},
		{[2]float64{-1, 1}, 0, 0, "opposite charges"},
		{[2]float64{0, 0}, 0, 0, "neutralised"},
	}
	for _, c := range cases {
		t.Run(c.comment, func(t *testing.T) {
			s := pair(t, [2]string{"ALA", "ALA"}, [2]float64{1, 1}, c.q)
			neg, err := NegativePatch{}.Score(s)
			require.NoError(t, err)
			pos, err := PositivePatch{}.Score(s)
			require.NoError(t, err)
			assert.InDelta(t, c.neg, neg, 1e-12)
			assert.InDelta(t, c.pos, pos, 1e-12)
		})
	}
}

func TestSFvCSP(t *testing.T) {
	s := testutil.Build(t,
		testutil.Single("H", 1, "LYS", 0, 0, 0),
		testutil.Single("H", 2, "ARG", 10, 0, 0),
		testutil.Single("H", 3, "ASP", 20, 0, 0), // buried
		testutil.Single("L", 1, "ASP", 30, 0, 0),
		testutil.Single("L", 2, "GLU", 40, 0, 0),
		testutil.Single("L", 3, "HIS", 50, 0, 0),
		testutil.Single("A", 1, "LYS", 60, 0, 0), // ignored chain
	)
	for _, r := range s.Residues() {
		r.Ann.RelativeSurfaceArea = 20
		r.Ann.Charge = map[string]float64{"LYS": 1, "ARG": 1, "ASP": -1, "GLU": -1, "HIS": 0.1}[r.Type]
	}
	s.Residues()[2].Ann.RelativeSurfaceArea = 1

	v, err := SFvCSP{}.Score(s)
	require.NoError(t, err)
	assert.InDelta(t, 2*(-1.9), v, 1e-12)
	assert.Equal(t, Green, DefaultBands()[KeySFvCSP].Flag(v))
}

func TestSFvCSPRequiresBothChains(t *testing.T) {
	s := testutil.Build(t, testutil.Single("H", 1, "LYS", 0, 0, 0))
	_, err := SFvCSP{}.Score(s)
	require.Error(t, err)
	assert.True(t, taperr.Is(err, taperr.InputFormatError))
}

func cdrStructure(t *testing.T, perChain int) *structure.Structure {
	var res []testutil.Res
	x := 0.0
	for _, ch := range []string{"H", "L"} {
		for i := 0; i < perChain; i++ {
			res = append(res, testutil.Single(ch, 105+i, "GLY", x, 0, 0))
			x += 4
		}
		res = append(res, testutil.Single(ch, 1, "GLY", x, 0, 0))
		x += 4
	}
	s := testutil.Build(t, res...)
	for _, r := range s.Residues() {
		if r.ID.Num >= 105 {
			r.Ann.CDRNumber = 3
		}
	}
	return s
}

func TestTotalCDRLength(t *testing.T) {
	res, err := Calculate(TotalCDRLength{bands: DefaultBands()[KeyTotalCDRLength]}, cdrStructure(t, 24))
	require.NoError(t, err)
	assert.Equal(t, 48.0, res.Value)
	assert.Equal(t, Green, res.Flag)
}

func TestNewAppliesOverridesByKey(t *testing.T) {
	calcs := New(map[string]Bands{
		KeyTotalCDRLength: {Green: []Range{Between(0, 10)}},
		"unknown":         {Green: []Range{Between(0, 1)}},
	})
	require.Len(t, calcs, 5)
	var keys []string
	for _, c := range calcs {
		keys = append(keys, c.Key())
	}
	assert.Equal(t, Keys(), keys)
	assert.Equal(t, Green, calcs[4].Bands().Flag(5))
	assert.Equal(t, Red, calcs[4].Bands().Flag(48))
	assert.Equal(t, DefaultBands()[KeyNegativePatch], calcs[1].Bands())
}

func TestEvaluateOrderAndErrors(t *testing.T) {
	s := cdrStructure(t, 24)
	results, err := Evaluate(context.Background(), s, Default())
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, k := range Keys() {
		assert.Equal(t, k, results[i].Key)
	}
	assert.Equal(t, 48.0, results[4].Value)

	lone := testutil.Build(t, testutil.Single("H", 30, "ALA", 0, 0, 0))
	_, err = Evaluate(context.Background(), lone, Default())
	assert.True(t, taperr.Is(err, taperr.InputFormatError))
}

type failing struct{ TotalCDRLength }

func (failing) Score(*structure.Structure) (float64, error) { return 0, fmt.Errorf("boom") }

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, cdrStructure(t, 1), []Calculator{TotalCDRLength{bands: DefaultBands()[KeyTotalCDRLength]}})
	assert.ErrorIs(t, err, context.Canceled)
}
