package types

import (
	"testing"

	"cosmossdk.io/math"
)

func newTestCall() *CapitalCall {
	return NewCapitalCall("call-1", 1000, 500, math.NewInt(2_000_000), math.NewInt(7_348_028), 900)
}

func TestNewCapitalCall(t *testing.T) {
	call := newTestCall()

	if call.EndTime != 1500 {
		t.Errorf("expected end time 1500, got %d", call.EndTime)
	}
	if !call.Allocated.IsZero() || !call.Redeemed.IsZero() || !call.Refunded.IsZero() {
		t.Errorf("expected zeroed counters, got allocated=%s redeemed=%s refunded=%s",
			call.Allocated, call.Redeemed, call.Refunded)
	}
	if call.Minted || call.Closed {
		t.Error("expected new call to be neither minted nor closed")
	}
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *CapitalCall)
		now   int64
		want  string
	}{
		{"before start", func(c *CapitalCall) {}, 999, PhasePending},
		{"at start", func(c *CapitalCall) {}, 1000, PhaseOpen},
		{"mid window", func(c *CapitalCall) {}, 1200, PhaseOpen},
		{"at end underfunded", func(c *CapitalCall) {
			c.Allocated = math.NewInt(500_000)
		}, 1500, PhaseExpired},
		{"after end underfunded", func(c *CapitalCall) {
			c.Allocated = math.NewInt(500_000)
		}, 2000, PhaseExpired},
		{"filled before end", func(c *CapitalCall) {
			c.Allocated = c.Capacity
		}, 1200, PhaseFullyFunded},
		{"filled after end", func(c *CapitalCall) {
			c.Allocated = c.Capacity
		}, 2000, PhaseFullyFunded},
		{"minted", func(c *CapitalCall) {
			c.Allocated = c.Capacity
			c.Minted = true
		}, 2000, PhaseMinted},
		{"settling after first claim", func(c *CapitalCall) {
			c.Allocated = c.Capacity
			c.Minted = true
			c.Redeemed = math.NewInt(1)
		}, 2000, PhaseSettling},
		{"settling after first refund", func(c *CapitalCall) {
			c.Allocated = math.NewInt(500_000)
			c.Refunded = math.NewInt(1)
		}, 2000, PhaseSettling},
		{"closed", func(c *CapitalCall) {
			c.Closed = true
		}, 2000, PhaseClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := newTestCall()
			tt.setup(call)
			if got := call.Phase(tt.now); got != tt.want {
				t.Errorf("Phase(%d) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *CapitalCall)
		now   int64
		want  bool
	}{
		{"open mid window", func(c *CapitalCall) {}, 1200, true},
		{"before start", func(c *CapitalCall) {}, 999, false},
		{"at end", func(c *CapitalCall) {}, 1500, false},
		{"at capacity", func(c *CapitalCall) { c.Allocated = c.Capacity }, 1200, false},
		{"minted", func(c *CapitalCall) { c.Minted = true }, 1200, false},
		{"closed", func(c *CapitalCall) { c.Closed = true }, 1200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := newTestCall()
			tt.setup(call)
			if got := call.IsOpen(tt.now); got != tt.want {
				t.Errorf("IsOpen(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestSharesToMint(t *testing.T) {
	call := newTestCall()

	// floor(2,000,000 * (2,435,827 + 7,348,028) / 9,127,492) = 2,143,821
	shares, err := call.SharesToMint(math.NewInt(2_435_827), math.NewInt(9_127_492))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shares.Equal(math.NewInt(2_143_821)) {
		t.Errorf("expected 2143821 shares, got %s", shares)
	}
}

func TestSharesToMintZeroSupply(t *testing.T) {
	call := newTestCall()
	if _, err := call.SharesToMint(math.NewInt(1_000_000), math.ZeroInt()); err != ErrZeroShareSupply {
		t.Errorf("expected ErrZeroShareSupply, got %v", err)
	}
}

func TestSharesToMintLargeValues(t *testing.T) {
	// Intermediate product exceeds uint64; math.Int must carry it.
	call := NewCapitalCall("call-1", 1000, 500,
		math.NewIntFromUint64(18_000_000_000_000_000_000), math.ZeroInt(), 900)

	shares, err := call.SharesToMint(math.NewIntFromUint64(18_000_000_000_000_000_000), math.NewInt(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, ok := math.NewIntFromString("162000000000000000000000000000000000000")
	if !ok {
		t.Fatal("failed to parse expected value")
	}
	if !shares.Equal(want) {
		t.Errorf("expected %s, got %s", want, shares)
	}
}

func TestClaimShares(t *testing.T) {
	call := newTestCall()
	call.Allocated = call.Capacity
	call.SharesMinted = math.NewInt(2_143_821)

	// floor(1,000,000 * 2,143,821 / 2,000,000) = 1,071,910
	shares := call.ClaimShares(math.NewInt(1_000_000))
	if !shares.Equal(math.NewInt(1_071_910)) {
		t.Errorf("expected 1071910, got %s", shares)
	}

	// Two equal claims leave exactly one unit of dust in escrow
	dust := call.SharesMinted.Sub(shares.MulRaw(2))
	if !dust.Equal(math.OneInt()) {
		t.Errorf("expected dust of 1, got %s", dust)
	}
}

func TestClaimSharesSumNeverExceedsMinted(t *testing.T) {
	call := newTestCall()
	call.Capacity = math.NewInt(1000)
	call.Allocated = math.NewInt(1000)
	call.SharesMinted = math.NewInt(997)

	amounts := []int64{1, 2, 3, 10, 111, 873}
	total := math.ZeroInt()
	for _, a := range amounts {
		total = total.Add(call.ClaimShares(math.NewInt(a)))
	}
	if total.GT(call.SharesMinted) {
		t.Errorf("claims sum %s exceeds minted %s", total, call.SharesMinted)
	}
}

func TestRemainingCapacity(t *testing.T) {
	call := newTestCall()
	call.Allocated = math.NewInt(1_500_000)
	if got := call.RemainingCapacity(); !got.Equal(math.NewInt(500_000)) {
		t.Errorf("expected 500000, got %s", got)
	}
}

func TestFullySettled(t *testing.T) {
	call := newTestCall()
	call.Allocated = call.Capacity
	call.Minted = true
	if call.FullySettled() {
		t.Error("minted call with no claims should not be settled")
	}
	call.Redeemed = call.Allocated
	if !call.FullySettled() {
		t.Error("minted call with all claims should be settled")
	}

	expired := newTestCall()
	expired.Allocated = math.NewInt(700_000)
	expired.Refunded = math.NewInt(300_000)
	if expired.FullySettled() {
		t.Error("partially refunded call should not be settled")
	}
	expired.Refunded = expired.Allocated
	if !expired.FullySettled() {
		t.Error("fully refunded call should be settled")
	}
}

func TestVoucherLifecycle(t *testing.T) {
	voucher := NewVoucher("call-1", "cosmos1depositor", math.NewInt(100), 1100)
	if !voucher.IsOpen() {
		t.Error("new voucher should be open")
	}
	voucher.Status = VoucherStatusClaimed
	if voucher.IsOpen() {
		t.Error("claimed voucher should not be open")
	}
	voucher.Status = VoucherStatusRefunded
	if voucher.IsOpen() {
		t.Error("refunded voucher should not be open")
	}
}
