package curve

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziesha-network/zwallet/internal/codec"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/testimplementations/unsaferand"
)

func randomScalar(t *testing.T, rand *unsaferand.UnsafeRand) math.Scalar {
	b := make([]byte, math.FieldElementSize)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return scalar(math.ReduceBytes(b))
}

func scalar(f math.FieldElement) math.Scalar {
	return math.NewScalarFromFieldElement(f, math.SubgroupOrder)
}

func TestBaseIsOnCurve(t *testing.T) {
	assert.True(t, Base().IsOnCurve())
	assert.True(t, Identity().IsOnCurve())
	assert.Equal(t, "33cab9428c97922a456d01156a3c0b5f48bf54819101b9e685ff90bcf4f8ba5e", Base().X().Hex())
	assert.Equal(t, "56f168560e13820f1312a53c8338679b15f8e764499f87033728c334cc269cfb", Base().Y().Hex())
}

func TestBaseHasSubgroupOrder(t *testing.T) {
	nMinusOne := scalar(math.MustFieldElement(
		"6554484396890773809930967563523245729705921265872317281365359162392183254198",
	))
	p := BaseMult(nMinusOne)
	assert.True(t, p.Equal(Base().Negate()))
	assert.True(t, p.Add(Base()).IsIdentity())
}

func TestDoubling(t *testing.T) {
	double := Base().Double()
	assert.True(t, double.Equal(Base().Add(Base())))
	assert.Equal(t, "72e8473e11d5cf037ca18b445c1231c3a2bc36475306b9997392c1cb5295ebaa", double.X().Hex())
	assert.Equal(t, "6fbf2f5d3647f3a0120b4c018709253f3882feb9462732f9f780eeb3a9a35999", double.Y().Hex())
	assert.True(t, Base().Add(Identity()).Equal(Base()))
}

func TestScalarMultMatchesReference(t *testing.T) {
	params := twistededwards.GetEdwardsCurve()
	rand := unsaferand.New("scalar mult")

	for range 8 {
		k := randomScalar(t, rand)
		p := BaseMult(k)
		require.True(t, p.IsOnCurve())

		var expected twistededwards.PointAffine
		expected.ScalarMultiplication(&params.Base, new(big.Int).SetBytes(k.Bytes()))
		assert.True(t, p.X().Equal(math.NewFieldElementFromFr(&expected.X)))
		assert.True(t, p.Y().Equal(math.NewFieldElementFromFr(&expected.Y)))
	}
}

func TestScalarMultIsLinear(t *testing.T) {
	rand := unsaferand.New("linearity")
	for range 4 {
		k1, k2 := randomScalar(t, rand), randomScalar(t, rand)
		lhs := BaseMult(scalar(k1.FieldElement()).Add(k2))
		rhs := BaseMult(k1).Add(BaseMult(k2))
		assert.True(t, lhs.Equal(rhs))
		assert.True(t, lhs.Add(rhs.Negate()).IsIdentity())
	}
}

func TestScalarMultFieldReducesModOrder(t *testing.T) {
	// p - 1 ≡ 43182373549099571680785400801115150920 (mod n)
	reduced := scalar(math.MustFieldElement("43182373549099571680785400801115150920"))
	p := Base().ScalarMultField(math.NewFieldElement(1).Negate())
	assert.True(t, p.Equal(BaseMult(reduced)))
}

func TestRecoverPoint(t *testing.T) {
	rand := unsaferand.New("recover")
	for range 8 {
		p := BaseMult(randomScalar(t, rand))
		recovered, err := RecoverPoint(p.X(), p.Y().IsOdd())
		require.NoError(t, err)
		assert.True(t, recovered.Equal(p))

		flipped, err := RecoverPoint(p.X(), !p.Y().IsOdd())
		require.NoError(t, err)
		assert.True(t, flipped.Y().Equal(p.Y().Negate()))
		assert.True(t, flipped.IsOnCurve())
	}
}

func TestRecoverPointWithoutSquareRoot(t *testing.T) {
	_, err := RecoverPoint(math.NewFieldElement(1), false)
	require.ErrorIs(t, err, ErrNotOnCurve)
}

func TestNewCheckedPoint(t *testing.T) {
	_, err := NewCheckedPoint(Base().X(), Base().Y())
	require.NoError(t, err)

	_, err = NewCheckedPoint(Base().X(), Base().X())
	require.ErrorIs(t, err, ErrNotOnCurve)
	assert.False(t, NewPoint(math.NewFieldElement(1), math.NewFieldElement(1)).IsOnCurve())
}

func TestPointCodec(t *testing.T) {
	data, err := codec.Marshal(Base().Double())
	require.NoError(t, err)
	require.Len(t, data, PointSize)

	decoded, err := codec.Unmarshal(data, Point{})
	require.NoError(t, err)
	assert.True(t, decoded.Equal(Base().Double()))

	invalid, err := codec.Marshal(NewPoint(math.NewFieldElement(1), math.NewFieldElement(1)))
	require.NoError(t, err)
	_, err = codec.Unmarshal(invalid, Point{})
	require.Error(t, err)
}
