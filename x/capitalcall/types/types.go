package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "capitalcall"
	StoreKey   = ModuleName
)

// Round phases. Pending/Open/FullyFunded/Expired are derived from the record
// and the block time at each call; Minted/Settling/Closed additionally depend
// on stored flags.
const (
	PhasePending     = "pending"
	PhaseOpen        = "open"
	PhaseFullyFunded = "fully_funded"
	PhaseExpired     = "expired"
	PhaseMinted      = "minted"
	PhaseSettling    = "settling"
	PhaseClosed      = "closed"
)

// Voucher status
const (
	VoucherStatusOpen     = "open"
	VoucherStatusClaimed  = "claimed"
	VoucherStatusRefunded = "refunded"
)

// Config binds the chain to one authority, one asset denom, one share denom
// and one liquidity pool account. Written once, immutable afterwards.
type Config struct {
	Authority            string `json:"authority"`
	AssetDenom           string `json:"asset_denom"`
	ShareDenom           string `json:"share_denom"`
	LiquidityPoolAccount string `json:"liquidity_pool_account"`
	CreatedAt            int64  `json:"created_at"`
}

// NewConfig creates the chain configuration record
func NewConfig(authority, assetDenom, shareDenom, liquidityPool string, now int64) *Config {
	return &Config{
		Authority:            authority,
		AssetDenom:           assetDenom,
		ShareDenom:           shareDenom,
		LiquidityPoolAccount: liquidityPool,
		CreatedAt:            now,
	}
}

// CapitalCall represents one fundraising round
type CapitalCall struct {
	CallID string `json:"call_id"`

	// Schedule
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`

	// Accounting. Allocated is the sum of live voucher amounts; Redeemed the
	// sum of claimed voucher amounts; Refunded the sum of refunded amounts.
	Capacity  math.Int `json:"capacity"`
	Allocated math.Int `json:"allocated"`
	Redeemed  math.Int `json:"redeemed"`
	Refunded  math.Int `json:"refunded"`

	// Valuation input fixed at creation
	CreditOutstanding math.Int `json:"credit_outstanding"`

	// Valuation snapshot, written exactly once at mint time and never
	// recomputed from live pool state afterwards
	LockedLiquidity   math.Int `json:"locked_liquidity"`
	LockedShareSupply math.Int `json:"locked_share_supply"`
	SharesMinted      math.Int `json:"shares_minted"`

	// The round's two asset-holding positions, custodied by the module
	// account: raw deposits (asset denom) and minted shares pending claims
	// (share denom)
	VaultBalance math.Int `json:"vault_balance"`
	EscrowShares math.Int `json:"escrow_shares"`

	Minted bool `json:"minted"`
	Closed bool `json:"closed"`

	CreatedAt int64 `json:"created_at"`
}

// NewCapitalCall creates a new round record with zeroed counters
func NewCapitalCall(callID string, startTime, duration int64, capacity, creditOutstanding math.Int, now int64) *CapitalCall {
	return &CapitalCall{
		CallID:            callID,
		StartTime:         startTime,
		EndTime:           startTime + duration,
		Capacity:          capacity,
		Allocated:         math.ZeroInt(),
		Redeemed:          math.ZeroInt(),
		Refunded:          math.ZeroInt(),
		CreditOutstanding: creditOutstanding,
		LockedLiquidity:   math.ZeroInt(),
		LockedShareSupply: math.ZeroInt(),
		SharesMinted:      math.ZeroInt(),
		VaultBalance:      math.ZeroInt(),
		EscrowShares:      math.ZeroInt(),
		Minted:            false,
		Closed:            false,
		CreatedAt:         now,
	}
}

// Phase evaluates the round's phase against the given unix time
func (c *CapitalCall) Phase(now int64) string {
	if c.Closed {
		return PhaseClosed
	}
	if c.Minted {
		if c.Redeemed.IsPositive() {
			return PhaseSettling
		}
		return PhaseMinted
	}
	if c.Allocated.Equal(c.Capacity) {
		return PhaseFullyFunded
	}
	if now < c.StartTime {
		return PhasePending
	}
	if now >= c.EndTime {
		if c.Refunded.IsPositive() {
			return PhaseSettling
		}
		return PhaseExpired
	}
	return PhaseOpen
}

// IsOpen reports whether the round accepts deposits at the given time
func (c *CapitalCall) IsOpen(now int64) bool {
	return !c.Closed && !c.Minted &&
		now >= c.StartTime && now < c.EndTime &&
		c.Allocated.LT(c.Capacity)
}

// RemainingCapacity returns the room left for deposits
func (c *CapitalCall) RemainingCapacity() math.Int {
	return c.Capacity.Sub(c.Allocated)
}

// SharesToMint computes floor(capacity * (liquidity + creditOutstanding) / supply).
// math.Int is arbitrary precision, so the intermediate product cannot overflow.
// Truncation is deliberate: the pool never over-mints relative to the stated
// valuation, at the cost of leaving sub-unit rounding dust in escrow.
func (c *CapitalCall) SharesToMint(liquidity, supply math.Int) (math.Int, error) {
	if supply.IsZero() {
		return math.ZeroInt(), ErrZeroShareSupply
	}
	return c.Capacity.Mul(liquidity.Add(c.CreditOutstanding)).Quo(supply), nil
}

// ClaimShares computes floor(amount * sharesMinted / allocated) for a voucher.
// Dividing by Allocated (instead of re-deriving from the snapshot) keeps every
// claim on the same rounding side, so the sum over all vouchers never exceeds
// SharesMinted.
func (c *CapitalCall) ClaimShares(amount math.Int) math.Int {
	if c.Allocated.IsZero() {
		return math.ZeroInt()
	}
	return amount.Mul(c.SharesMinted).Quo(c.Allocated)
}

// FullySettled reports whether every voucher reached a terminal state:
// all contributions claimed for a minted round, all refunded otherwise
func (c *CapitalCall) FullySettled() bool {
	if c.Minted {
		return c.Redeemed.Equal(c.Allocated)
	}
	return c.Refunded.Equal(c.Allocated)
}

// Voucher is a depositor's receipt within one round, keyed by
// (callID, depositor). Amount accumulates across deposits while the round is
// open; the voucher settles exactly once via claim or refund.
type Voucher struct {
	CallID    string   `json:"call_id"`
	Depositor string   `json:"depositor"`
	Amount    math.Int `json:"amount"`
	Status    string   `json:"status"`
	CreatedAt int64    `json:"created_at"`
	SettledAt int64    `json:"settled_at"`
}

// NewVoucher creates an open voucher for a depositor's first deposit
func NewVoucher(callID, depositor string, amount math.Int, now int64) *Voucher {
	return &Voucher{
		CallID:    callID,
		Depositor: depositor,
		Amount:    amount,
		Status:    VoucherStatusOpen,
		CreatedAt: now,
		SettledAt: 0,
	}
}

// IsOpen reports whether the voucher has not settled yet
func (v *Voucher) IsOpen() bool {
	return v.Status == VoucherStatusOpen
}
