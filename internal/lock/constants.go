// =============================
// File: internal/lock/constants.go
// =============================
package lock

import "math"

// Seeds of the PDAs owned by the lock program.
const (
	LockCLMMAuthSeed    = "program_authority_seed"
	LockCPAuthSeed      = "lock_cp_authority_seed"
	LockedLiquiditySeed = "locked_liquidity"
	LockedPositionSeed  = "locked_position"
)

// Seeds of PDAs owned by programs the lock program calls into.
const (
	MetadataSeed   = "metadata"
	CPSwapAuthSeed = "vault_and_lp_mint_auth_seed"
)

// DiscriminatorSize is the length of the Anchor type tag in front of
// every instruction payload and every account record.
const DiscriminatorSize = 8

// Instruction discriminators extracted from the lock program IDL
var (
	LockCLMMPositionDiscriminator = [DiscriminatorSize]byte{188, 37, 179, 131, 82, 150, 84, 73}
	CollectCLMMFeesDiscriminator  = [DiscriminatorSize]byte{16, 72, 250, 198, 14, 162, 212, 19}
	LockCPLiquidityDiscriminator  = [DiscriminatorSize]byte{216, 157, 29, 78, 38, 51, 31, 26}
	CollectCPFeesDiscriminator    = [DiscriminatorSize]byte{8, 30, 51, 199, 209, 184, 247, 133}
)

// CollectAllFees asks the lock program for every fee owed to the lock.
// The program clamps it to the claimable amount; this client never does.
const CollectAllFees uint64 = math.MaxUint64

// Reference counts of the current lock program version. A change here is a
// new protocol version, not an optional trailing account.
const (
	LockCPLiquidityAccounts  = 18
	CollectCPFeesAccounts    = 21
	LockCLMMPositionAccounts = 17
)
