package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// MintShares finalizes a fully funded round: it reads the liquidity pool
// balance and the circulating share supply once, mints the round's shares
// into the module account at that valuation, and moves the raised capital
// from the vault into the liquidity pool. Permissionless; callable once per
// round. The valuation snapshot is never recomputed afterwards.
func (k *Keeper) MintShares(ctx context.Context, callID string) (*types.CapitalCall, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return nil, types.ErrNotInitialized
	}

	call := k.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return nil, types.ErrCallNotFound
	}
	if call.Minted {
		return nil, types.ErrAlreadyMinted
	}
	if !call.Allocated.Equal(call.Capacity) {
		return nil, types.ErrNotFullyFunded
	}

	poolAddr, err := sdk.AccAddressFromBech32(config.LiquidityPoolAccount)
	if err != nil {
		return nil, err
	}
	liquidity := k.bankKeeper.GetBalance(ctx, poolAddr, config.AssetDenom).Amount
	supply := k.bankKeeper.GetSupply(ctx, config.ShareDenom).Amount

	shares, err := call.SharesToMint(liquidity, supply)
	if err != nil {
		return nil, err
	}

	shareCoins := sdk.NewCoins(sdk.NewCoin(config.ShareDenom, shares))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, shareCoins); err != nil {
		return nil, err
	}

	// The raise is complete; hand the capital to the pool the shares price
	// against.
	capitalCoins := sdk.NewCoins(sdk.NewCoin(config.AssetDenom, call.Capacity))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, poolAddr, capitalCoins); err != nil {
		return nil, err
	}

	call.LockedLiquidity = liquidity
	call.LockedShareSupply = supply
	call.SharesMinted = shares
	call.EscrowShares = call.EscrowShares.Add(shares)
	call.VaultBalance = call.VaultBalance.Sub(call.Capacity)
	call.Minted = true
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMinted,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			sdk.NewAttribute(types.AttributeKeyShareSupply, supply.String()),
			sdk.NewAttribute(types.AttributeKeyCreditOutstanding, call.CreditOutstanding.String()),
			sdk.NewAttribute(types.AttributeKeySharesMinted, shares.String()),
		),
	)

	k.logger.Info("Shares minted",
		"call_id", callID,
		"liquidity", liquidity.String(),
		"share_supply", supply.String(),
		"shares_minted", shares.String(),
	)

	return call, nil
}
