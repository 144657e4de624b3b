package testhelpers

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ziesha-network/zwallet/zkeyring"
)

// NewKeyrings creates n keyrings from seeds drawn from rand, along with their addresses.
func NewKeyrings(t *testing.T, n int, rand io.Reader) ([]*zkeyring.Keyring, []string) {
	krs := make([]*zkeyring.Keyring, n)
	addrs := make([]string, n)
	for i := 0; i < n; i++ {
		kr, err := zkeyring.New(rand)
		require.NoError(t, err)
		krs[i] = kr
		addrs[i] = kr.Address()
	}
	return krs, addrs
}
