package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// setupFundedCall fills a round with two equal 1,000,000 deposits and seeds
// the valuation inputs: pool liquidity 2,435,827 and share supply 9,127,492.
func setupFundedCall(tb testing.TB) (*Keeper, *mockBankKeeper, sdk.Context, string) {
	tb.Helper()
	k, bank, ctx := setupInitialized(tb)

	call, err := k.CreateCapitalCall(ctx, authorityAddr, 1000, 500, math.NewInt(2_000_000), math.NewInt(7_348_028))
	if err != nil {
		tb.Fatalf("create capital call: %v", err)
	}

	bank.setBalance(aliceAddr, assetDenom, math.NewInt(10_000_000))
	bank.setBalance(bobAddr, assetDenom, math.NewInt(10_000_000))
	bank.setBalance(poolAddr, assetDenom, math.NewInt(2_435_827))
	bank.supply[shareDenom] = math.NewInt(9_127_492)

	open := atTime(ctx, 1100)
	if _, _, err := k.Deposit(open, aliceAddr, call.CallID, math.NewInt(1_000_000)); err != nil {
		tb.Fatalf("alice deposit: %v", err)
	}
	if _, _, err := k.Deposit(open, bobAddr, call.CallID, math.NewInt(1_000_000)); err != nil {
		tb.Fatalf("bob deposit: %v", err)
	}

	return k, bank, ctx, call.CallID
}

func TestMintShares(t *testing.T) {
	k, bank, ctx, callID := setupFundedCall(t)

	call, err := k.MintShares(atTime(ctx, 1200), callID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// floor(2,000,000 * (2,435,827 + 7,348,028) / 9,127,492) = 2,143,821
	if !call.SharesMinted.Equal(math.NewInt(2_143_821)) {
		t.Errorf("expected 2143821 shares, got %s", call.SharesMinted)
	}
	if !call.LockedLiquidity.Equal(math.NewInt(2_435_827)) {
		t.Errorf("expected locked liquidity 2435827, got %s", call.LockedLiquidity)
	}
	if !call.LockedShareSupply.Equal(math.NewInt(9_127_492)) {
		t.Errorf("expected locked supply 9127492, got %s", call.LockedShareSupply)
	}
	if !call.Minted {
		t.Error("expected minted flag set")
	}

	// Shares sit in module escrow
	if got := bank.balance(types.ModuleName, shareDenom); !got.Equal(math.NewInt(2_143_821)) {
		t.Errorf("expected escrowed shares 2143821, got %s", got)
	}
	if !call.EscrowShares.Equal(math.NewInt(2_143_821)) {
		t.Errorf("expected escrow position 2143821, got %s", call.EscrowShares)
	}

	// The raised capital moved from the vault into the liquidity pool
	if got := bank.balance(poolAddr, assetDenom); !got.Equal(math.NewInt(4_435_827)) {
		t.Errorf("expected pool balance 4435827, got %s", got)
	}
	if !call.VaultBalance.IsZero() {
		t.Errorf("expected empty vault, got %s", call.VaultBalance)
	}
}

func TestMintSharesSnapshotIsStable(t *testing.T) {
	k, bank, ctx, callID := setupFundedCall(t)

	if _, err := k.MintShares(atTime(ctx, 1200), callID); err != nil {
		t.Fatalf("mint: %v", err)
	}

	// Later pool activity must not disturb the locked snapshot
	bank.setBalance(poolAddr, assetDenom, math.NewInt(99_000_000))
	bank.supply[shareDenom] = math.NewInt(1)

	call := k.GetCapitalCall(ctx, callID)
	if !call.LockedLiquidity.Equal(math.NewInt(2_435_827)) || !call.SharesMinted.Equal(math.NewInt(2_143_821)) {
		t.Errorf("snapshot changed: liquidity=%s shares=%s", call.LockedLiquidity, call.SharesMinted)
	}
}

func TestMintSharesNotFullyFunded(t *testing.T) {
	k, bank, ctx := setupInitialized(t)

	call, err := k.CreateCapitalCall(ctx, authorityAddr, 1000, 500, math.NewInt(2_000_000), math.ZeroInt())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	bank.setBalance(aliceAddr, assetDenom, math.NewInt(10_000_000))
	if _, _, err := k.Deposit(atTime(ctx, 1100), aliceAddr, call.CallID, math.NewInt(500_000)); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if _, err := k.MintShares(atTime(ctx, 1200), call.CallID); err != types.ErrNotFullyFunded {
		t.Errorf("expected ErrNotFullyFunded, got %v", err)
	}
}

func TestMintSharesAlreadyMinted(t *testing.T) {
	k, _, ctx, callID := setupFundedCall(t)

	if _, err := k.MintShares(atTime(ctx, 1200), callID); err != nil {
		t.Fatalf("first mint: %v", err)
	}
	if _, err := k.MintShares(atTime(ctx, 1300), callID); err != types.ErrAlreadyMinted {
		t.Errorf("expected ErrAlreadyMinted, got %v", err)
	}
}

func TestMintSharesZeroSupply(t *testing.T) {
	k, bank, ctx, callID := setupFundedCall(t)
	bank.supply[shareDenom] = math.ZeroInt()

	if _, err := k.MintShares(atTime(ctx, 1200), callID); err != types.ErrZeroShareSupply {
		t.Errorf("expected ErrZeroShareSupply, got %v", err)
	}
}

func TestMintSharesUnknownCall(t *testing.T) {
	k, _, ctx := setupInitialized(t)
	if _, err := k.MintShares(ctx, "call-99"); err != types.ErrCallNotFound {
		t.Errorf("expected ErrCallNotFound, got %v", err)
	}
}
