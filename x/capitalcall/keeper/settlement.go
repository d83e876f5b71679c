package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// Claim settles a depositor's voucher against a minted round, paying out
// shares pro rata to the contribution. A voucher settles exactly once; the
// truncated per-claim share never lets the sum of payouts exceed the minted
// total.
func (k *Keeper) Claim(ctx context.Context, depositor, callID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return math.ZeroInt(), types.ErrNotInitialized
	}

	call := k.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return math.ZeroInt(), types.ErrCallNotFound
	}
	if !call.Minted {
		return math.ZeroInt(), types.ErrNotMinted
	}

	voucher := k.GetVoucher(sdkCtx, callID, depositor)
	if voucher == nil {
		return math.ZeroInt(), types.ErrNoVoucher
	}
	switch voucher.Status {
	case types.VoucherStatusClaimed:
		return math.ZeroInt(), types.ErrAlreadyClaimed
	case types.VoucherStatusRefunded:
		return math.ZeroInt(), types.ErrAlreadyRefunded
	}

	shares := call.ClaimShares(voucher.Amount)

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return math.ZeroInt(), err
	}
	if shares.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(config.ShareDenom, shares))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, depositorAddr, coins); err != nil {
			return math.ZeroInt(), err
		}
	}

	now := sdkCtx.BlockTime().Unix()
	voucher.Status = types.VoucherStatusClaimed
	voucher.SettledAt = now
	call.Redeemed = call.Redeemed.Add(voucher.Amount)
	call.EscrowShares = call.EscrowShares.Sub(shares)

	k.SetVoucher(sdkCtx, voucher)
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeClaim,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyDepositor, depositor),
			sdk.NewAttribute(types.AttributeKeyAmount, voucher.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	k.logger.Info("Voucher claimed",
		"call_id", callID,
		"depositor", depositor,
		"amount", voucher.Amount.String(),
		"shares", shares.String(),
	)

	return shares, nil
}

// Refund returns a depositor's full contribution after a round expired short
// of capacity. A filled round never refunds, whether or not shares have been
// minted yet.
func (k *Keeper) Refund(ctx context.Context, depositor, callID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return math.ZeroInt(), types.ErrNotInitialized
	}

	call := k.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return math.ZeroInt(), types.ErrCallNotFound
	}
	if call.Allocated.Equal(call.Capacity) {
		return math.ZeroInt(), types.ErrRoundFillCompleted
	}
	now := sdkCtx.BlockTime().Unix()
	if now < call.EndTime {
		return math.ZeroInt(), types.ErrNotEnded
	}

	voucher := k.GetVoucher(sdkCtx, callID, depositor)
	if voucher == nil {
		return math.ZeroInt(), types.ErrNoVoucher
	}
	switch voucher.Status {
	case types.VoucherStatusClaimed:
		return math.ZeroInt(), types.ErrAlreadyClaimed
	case types.VoucherStatusRefunded:
		return math.ZeroInt(), types.ErrAlreadyRefunded
	}

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(config.AssetDenom, voucher.Amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, depositorAddr, coins); err != nil {
		return math.ZeroInt(), err
	}

	voucher.Status = types.VoucherStatusRefunded
	voucher.SettledAt = now
	call.Refunded = call.Refunded.Add(voucher.Amount)
	call.VaultBalance = call.VaultBalance.Sub(voucher.Amount)

	k.SetVoucher(sdkCtx, voucher)
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRefund,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyDepositor, depositor),
			sdk.NewAttribute(types.AttributeKeyAmount, voucher.Amount.String()),
		),
	)

	k.logger.Info("Voucher refunded",
		"call_id", callID,
		"depositor", depositor,
		"amount", voucher.Amount.String(),
	)

	return voucher.Amount, nil
}

// Close retires a fully settled round, sweeping whatever the round still
// holds to the receiver: stray asset donations sitting in the vault and the
// sub-unit share dust left behind by claim truncation.
func (k *Keeper) Close(ctx context.Context, callID, receiver string) (vaultSwept, escrowSwept math.Int, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNotInitialized
	}

	call := k.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrCallNotFound
	}
	if call.Closed {
		return math.ZeroInt(), math.ZeroInt(), types.ErrAlreadyClosed
	}
	if !call.FullySettled() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNotFullySettled
	}

	receiverAddr, err := sdk.AccAddressFromBech32(receiver)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	vaultSwept = call.VaultBalance
	escrowSwept = call.EscrowShares

	var sweep sdk.Coins
	if vaultSwept.IsPositive() {
		sweep = sweep.Add(sdk.NewCoin(config.AssetDenom, vaultSwept))
	}
	if escrowSwept.IsPositive() {
		sweep = sweep.Add(sdk.NewCoin(config.ShareDenom, escrowSwept))
	}
	if !sweep.IsZero() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiverAddr, sweep); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
	}

	call.VaultBalance = math.ZeroInt()
	call.EscrowShares = math.ZeroInt()
	call.Closed = true
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeClosed,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
			sdk.NewAttribute(types.AttributeKeyVaultSwept, vaultSwept.String()),
			sdk.NewAttribute(types.AttributeKeyEscrowSwept, escrowSwept.String()),
		),
	)

	k.logger.Info("Capital call closed",
		"call_id", callID,
		"receiver", receiver,
		"vault_swept", vaultSwept.String(),
		"escrow_swept", escrowSwept.String(),
	)

	return vaultSwept, escrowSwept, nil
}
