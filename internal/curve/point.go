package curve

import (
	"fmt"

	"github.com/ziesha-network/zwallet/internal/codec"
	"github.com/ziesha-network/zwallet/internal/math"
)

// PointSize is the length in bytes of the affine encoding x ‖ y of a point.
const PointSize = 2 * math.FieldElementSize

// Point is a curve point in projective coordinates (X : Y : Z), representing the affine point (X/Z, Y/Z).
// Points are immutable values. Arithmetic never validates its inputs, use IsOnCurve before trusting external data.
type Point struct {
	x, y, z math.FieldElement
}

var _ codec.Unmarshaler[Point] = Point{}

// NewPoint returns the affine point (x, y). The curve equation is not checked.
func NewPoint(x, y math.FieldElement) Point {
	return Point{x: x, y: y, z: math.NewFieldElement(1)}
}

// NewCheckedPoint returns the affine point (x, y), or ErrNotOnCurve if it does not satisfy the curve equation.
func NewCheckedPoint(x, y math.FieldElement) (Point, error) {
	p := NewPoint(x, y)
	if !p.IsOnCurve() {
		return Point{}, fmt.Errorf("%w: (%s, %s)", ErrNotOnCurve, x.Hex(), y.Hex())
	}
	return p, nil
}

// RecoverPoint returns the curve point with the given x-coordinate whose y-coordinate has the requested parity. It
// solves y² = (1 - A·x²) / (1 - D·x²) and fails with ErrNotOnCurve if the right hand side has no square root.
func RecoverPoint(x math.FieldElement, odd bool) (Point, error) {
	xx := x.Square()
	numerator := math.NewFieldElement(1).Subtract(a.Multiply(xx))
	denominator, err := math.NewFieldElement(1).Subtract(d.Multiply(xx)).Inverse()
	if err != nil {
		return Point{}, fmt.Errorf("%w: %w", ErrNotOnCurve, err)
	}
	y, ok := numerator.Multiply(denominator).Sqrt()
	if !ok {
		return Point{}, fmt.Errorf("%w: no y-coordinate for x = %s", ErrNotOnCurve, x.Hex())
	}
	if y.IsOdd() != odd {
		y = y.Negate()
	}
	return NewPoint(x, y), nil
}

// p.Add(q) returns p + q, using the unified addition law for projective twisted Edwards coordinates. The formula is
// complete on this curve, it is also valid for p = q and for the identity.
func (p Point) Add(q Point) Point {
	A := p.z.Multiply(q.z)
	B := A.Square()
	C := p.x.Multiply(q.x)
	D := p.y.Multiply(q.y)
	E := d.Multiply(C).Multiply(D)
	F := B.Subtract(E)
	G := B.Add(E)
	H := p.x.Add(p.y).Multiply(q.x.Add(q.y)).Subtract(C).Subtract(D)

	return Point{
		x: A.Multiply(F).Multiply(H),
		y: A.Multiply(G).Multiply(D.Subtract(a.Multiply(C))),
		z: F.Multiply(G),
	}
}

// p.Double() returns p + p.
func (p Point) Double() Point {
	return p.Add(p)
}

// p.Negate() returns -p = (-x, y).
func (p Point) Negate() Point {
	return Point{x: p.x.Negate(), y: p.y, z: p.z}
}

// p.ScalarMult(k) returns k·p, computed by double-and-add over the bits of k, most significant bit first.
func (p Point) ScalarMult(k math.Scalar) Point {
	result := Identity()
	for _, b := range k.Bytes() {
		for i := 7; i >= 0; i-- {
			result = result.Double()
			if (b>>i)&1 == 1 {
				result = result.Add(p)
			}
		}
	}
	return result
}

// p.ScalarMultField(k) returns (k mod n)·p, n being the subgroup order.
func (p Point) ScalarMultField(k math.FieldElement) Point {
	return p.ScalarMult(math.NewScalarFromFieldElement(k, math.SubgroupOrder))
}

// p.Affine() returns p normalized to Z = 1. A projective Z of zero can only result from arithmetic on points off the
// curve; such points normalize to (0, 0), which is not on the curve either.
func (p Point) Affine() Point {
	zInv, err := p.z.Inverse()
	if err != nil {
		return Point{z: math.NewFieldElement(1)}
	}
	return Point{x: p.x.Multiply(zInv), y: p.y.Multiply(zInv), z: math.NewFieldElement(1)}
}

// X returns the affine x-coordinate.
func (p Point) X() math.FieldElement {
	return p.Affine().x
}

// Y returns the affine y-coordinate.
func (p Point) Y() math.FieldElement {
	return p.Affine().y
}

// IsOnCurve evaluates the curve equation A·x² + y² = 1 + D·x²·y² in affine coordinates.
func (p Point) IsOnCurve() bool {
	q := p.Affine()
	xx, yy := q.x.Square(), q.y.Square()
	lhs := a.Multiply(xx).Add(yy)
	rhs := math.NewFieldElement(1).Add(d.Multiply(xx).Multiply(yy))
	return lhs.Equal(rhs)
}

// IsIdentity reports whether p is the neutral element.
func (p Point) IsIdentity() bool {
	return p.Equal(Identity())
}

// Equal compares p and q after normalizing both to affine coordinates.
func (p Point) Equal(q Point) bool {
	p, q = p.Affine(), q.Affine()
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Bytes returns the affine encoding x ‖ y, each coordinate 32 bytes big-endian.
func (p Point) Bytes() []byte {
	q := p.Affine()
	return append(q.x.Bytes(), q.y.Bytes()...)
}

func (p Point) String() string {
	q := p.Affine()
	return fmt.Sprintf("(%s, %s)", q.x.Hex(), q.y.Hex())
}

func (p Point) MarshalTo(target codec.Target) {
	q := p.Affine()
	q.x.MarshalTo(target)
	q.y.MarshalTo(target)
}

// UnmarshalFrom reads an affine point and panics (recovered by the codec package) if it is not on the curve.
func (Point) UnmarshalFrom(source codec.Source) Point {
	x := codec.ReadObject(source, math.FieldElement{})
	y := codec.ReadObject(source, math.FieldElement{})
	p, err := NewCheckedPoint(x, y)
	if err != nil {
		panic(err)
	}
	return p
}
