package core

import "crypto/sha256"

// DiscriminatorSize is the width, in bytes, of every account and
// instruction discriminator (§4.1).
const DiscriminatorSize = 8

// Discriminator is the 8-byte domain-separated hash prefix every account
// and instruction blob begins with.
type Discriminator [DiscriminatorSize]byte

// AccountDiscriminator computes sha256("account:" ‖ typeName)[..8], the
// prefix every persisted account begins with.
func AccountDiscriminator(typeName string) Discriminator {
	return discriminatorOf("account:" + typeName)
}

// InstructionDiscriminator computes sha256("global:" ‖ ixName)[..8], the
// prefix every instruction data blob begins with.
func InstructionDiscriminator(ixName string) Discriminator {
	return discriminatorOf("global:" + ixName)
}

func discriminatorOf(s string) Discriminator {
	sum := sha256.Sum256([]byte(s))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

var (
	discConfig      = AccountDiscriminator("Config")
	discDegenConfig = AccountDiscriminator("DegenConfig")
	discRound       = AccountDiscriminator("Round")
	discParticipant = AccountDiscriminator("Participant")
	discDegenClaim  = AccountDiscriminator("DegenClaim")
)
