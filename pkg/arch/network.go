package arch

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

// Network selects the Bitcoin network an Arch deployment settles to. It only
// affects address prefixes and wallet import format version bytes.
type Network uint8

const (
	NetworkUnknown Network = iota
	NetworkMainnet
	NetworkTestnet
	NetworkRegtest
)

var ErrUnknownNetwork = errors.New("unknown network")

// Params returns the btcd chain parameters for the network.
//
// Testnet4 shares the bech32 prefix and WIF version of testnet3, so the
// testnet3 parameters produce identical encodings.
func (n Network) Params() (*chaincfg.Params, error) {
	switch n {
	case NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	case NetworkRegtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, errors.Wrapf(ErrUnknownNetwork, "network %d", n)
	}
}

func (n Network) String() string {
	switch n {
	case NetworkMainnet:
		return "mainnet"
	case NetworkTestnet:
		return "testnet"
	case NetworkRegtest:
		return "regtest"
	default:
		return "unknown"
	}
}

// ParseNetwork parses the names accepted by the Arch tooling.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "bitcoin":
		return NetworkMainnet, nil
	case "testnet", "testnet4", "testnet3":
		return NetworkTestnet, nil
	case "regtest", "localnet":
		return NetworkRegtest, nil
	default:
		return NetworkUnknown, errors.Wrapf(ErrUnknownNetwork, "%q", s)
	}
}
