package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// InitializeConfig writes the one-time chain configuration. A second call
// fails; the record is immutable afterwards.
func (k *Keeper) InitializeConfig(ctx context.Context, authority, assetDenom, shareDenom, liquidityPool string) (*types.Config, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if k.GetConfig(sdkCtx) != nil {
		return nil, types.ErrAlreadyInitialized
	}

	config := types.NewConfig(authority, assetDenom, shareDenom, liquidityPool, sdkCtx.BlockTime().Unix())
	k.SetConfig(sdkCtx, config)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeInitialized,
			sdk.NewAttribute(types.AttributeKeyAuthority, authority),
		),
	)

	k.logger.Info("Config initialized",
		"authority", authority,
		"asset_denom", assetDenom,
		"share_denom", shareDenom,
		"liquidity_pool", liquidityPool,
	)

	return config, nil
}

// CreateCapitalCall opens a new fundraising round. Only the configured
// authority may create rounds; the schedule must start strictly after the
// current block time.
func (k *Keeper) CreateCapitalCall(ctx context.Context, creator string, startTime, duration int64, capacity, creditOutstanding math.Int) (*types.CapitalCall, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if config == nil {
		return nil, types.ErrNotInitialized
	}
	if creator != config.Authority {
		return nil, types.ErrUnauthorized
	}

	now := sdkCtx.BlockTime().Unix()
	if startTime <= now || duration <= 0 {
		return nil, types.ErrInvalidSchedule
	}
	if !capacity.IsPositive() {
		return nil, types.ErrInvalidCapacity
	}
	if creditOutstanding.IsNegative() {
		return nil, types.ErrInvalidCapacity
	}

	callID := k.NextCallID(sdkCtx)
	call := types.NewCapitalCall(callID, startTime, duration, capacity, creditOutstanding, now)
	k.SetCapitalCall(sdkCtx, call)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreated,
			sdk.NewAttribute(types.AttributeKeyCallID, callID),
			sdk.NewAttribute(types.AttributeKeyAuthority, creator),
			sdk.NewAttribute(types.AttributeKeyCapacity, capacity.String()),
			sdk.NewAttribute(types.AttributeKeyStartTime, strconv.FormatInt(startTime, 10)),
			sdk.NewAttribute(types.AttributeKeyEndTime, strconv.FormatInt(call.EndTime, 10)),
			sdk.NewAttribute(types.AttributeKeyCreditOutstanding, creditOutstanding.String()),
		),
	)

	k.logger.Info("Capital call created",
		"call_id", callID,
		"start_time", startTime,
		"end_time", call.EndTime,
		"capacity", capacity.String(),
	)

	return call, nil
}
