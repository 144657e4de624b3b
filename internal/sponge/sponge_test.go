package sponge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ziesha-network/zwallet/internal/math"
)

func elements(n int) []math.FieldElement {
	result := make([]math.FieldElement, n)
	for i := range result {
		result[i] = math.NewFieldElement(uint64(i + 1))
	}
	return result
}

func TestPoseidonVectors(t *testing.T) {
	h := NewPoseidon()
	in := elements(7)

	assert.Equal(t,
		"23672ae52268c2d5448c4ab44da0bd875af727be1b5cad2f71f0bec0d3331329",
		h.Hash2([2]math.FieldElement(in[:2])).Hex(),
	)
	assert.Equal(t,
		"09f785744c76e4b577f31f314d33fc62182af81f9285b4817e5fa94babff7327",
		h.Hash5([5]math.FieldElement(in[:5])).Hex(),
	)
	assert.Equal(t,
		"133992a8ac7028cda07de151329f1ae91b0603754b79a0fc8c6d11c4985fed9b",
		h.Hash7([7]math.FieldElement(in)).Hex(),
	)
}

func TestPoseidonSeparatesArities(t *testing.T) {
	h := Default()
	zero := math.NewFieldElement(0)
	a, b := math.NewFieldElement(1), math.NewFieldElement(2)

	// Zero padding must not make inputs of different lengths collide.
	h2 := h.Hash2([2]math.FieldElement{a, b})
	h5 := h.Hash5([5]math.FieldElement{a, b, zero, zero, zero})
	h7 := h.Hash7([7]math.FieldElement{a, b, zero, zero, zero, zero, zero})
	assert.False(t, h2.Equal(h5))
	assert.False(t, h5.Equal(h7))

	assert.False(t, h.Hash2([2]math.FieldElement{a, b}).Equal(h.Hash2([2]math.FieldElement{b, a})))
}

func TestPoseidonConcurrentUse(t *testing.T) {
	h := Default()
	expected := h.Hash7([7]math.FieldElement(elements(7)))

	var wg sync.WaitGroup
	results := make([]math.FieldElement, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = h.Hash7([7]math.FieldElement(elements(7)))
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.Equal(expected))
	}
}

func TestSeedHash(t *testing.T) {
	// SHA3-256("") = a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a, reversed.
	assert.Equal(t,
		"4a43f8804b0ad882fa493be44dff80f562d661a05647c15166d71ebff8c6ffa7",
		SeedHash(nil).Hex(),
	)
	assert.Equal(t,
		"3ece9ef55b0a7ac11c248ce1cca70531f5b1d140a5680b3672aec03e25ac4d17",
		SeedHash([]byte("zwallet golden seed")).Hex(),
	)
}
