package core

import (
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// ApprovedMintsFixture is the on-disk shape of a degen approved-mint-list
// file: a flat list of base58 addresses an operator edits directly instead
// of passing dozens of pubkeys on a command line.
type ApprovedMintsFixture struct {
	Mints []string `yaml:"mints"`
}

// LoadApprovedMintsFixture reads and decodes path, returning the parsed
// mint list alongside a blake2b-256 content hash of the raw file. The hash
// is not part of program state; it lets an operator confirm which fixture
// version a given upsert_degen_config call actually applied, the same
// content-addressing role blake2b plays elsewhere for fixture integrity.
func LoadApprovedMintsFixture(path string) ([]Pubkey, [32]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, [32]byte{}, err
	}
	var fixture ApprovedMintsFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, [32]byte{}, err
	}
	mints := make([]Pubkey, 0, len(fixture.Mints))
	for _, s := range fixture.Mints {
		pk, err := PubkeyFromBase58(s)
		if err != nil {
			return nil, [32]byte{}, err
		}
		mints = append(mints, pk)
	}
	return mints, blake2b.Sum256(raw), nil
}
