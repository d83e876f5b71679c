package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// Deposit contributes toward an open round. A deposit that would overshoot
// the remaining capacity is clipped to exactly fill the round, never
// rejected. Funds move from the depositor into the module account before any
// record is written, so a failed transfer leaves no state behind.
func (k *Keeper) Deposit(ctx context.Context, depositor, callID string, amount math.Int) (*types.Voucher, math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return nil, math.ZeroInt(), types.ErrNotInitialized
	}

	call := k.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return nil, math.ZeroInt(), types.ErrCallNotFound
	}

	if !amount.IsPositive() {
		return nil, math.ZeroInt(), types.ErrZeroAmount
	}

	now := sdkCtx.BlockTime().Unix()
	if !call.IsOpen(now) {
		return nil, math.ZeroInt(), types.ErrNotOpen
	}

	accepted := math.MinInt(amount, call.RemainingCapacity())

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return nil, math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(config.AssetDenom, accepted))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositorAddr, types.ModuleName, coins); err != nil {
		return nil, math.ZeroInt(), err
	}

	voucher := k.GetVoucher(sdkCtx, callID, depositor)
	if voucher == nil {
		voucher = types.NewVoucher(callID, depositor, accepted, now)
	} else {
		voucher.Amount = voucher.Amount.Add(accepted)
	}

	call.Allocated = call.Allocated.Add(accepted)
	call.VaultBalance = call.VaultBalance.Add(accepted)

	k.SetVoucher(sdkCtx, voucher)
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyDepositor, depositor),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyAccepted, accepted.String()),
			sdk.NewAttribute(types.AttributeKeyAllocated, call.Allocated.String()),
		),
	)

	if call.Allocated.Equal(call.Capacity) {
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFullyRaised,
				sdk.NewAttribute(types.AttributeKeyCallID, callID),
				sdk.NewAttribute(types.AttributeKeyCapacity, call.Capacity.String()),
			),
		)
	}

	k.logger.Info("Deposit accepted",
		"call_id", callID,
		"depositor", depositor,
		"requested", amount.String(),
		"accepted", accepted.String(),
		"allocated", call.Allocated.String(),
	)

	return voucher, accepted, nil
}
