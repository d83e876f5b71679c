package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// QueryServer defines the capitalcall QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Config returns the chain configuration
func (q *QueryServer) Config(ctx context.Context) (*types.Config, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	config := q.keeper.GetConfig(sdkCtx)
	if config == nil {
		return nil, types.ErrNotInitialized
	}
	return config, nil
}

// CapitalCall returns a capital call by ID along with its current phase
func (q *QueryServer) CapitalCall(ctx context.Context, callID string) (*types.CapitalCall, string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	call := q.keeper.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return nil, "", types.ErrCallNotFound
	}
	phase := call.Phase(sdkCtx.BlockTime().Unix())
	return call, phase, nil
}

// CapitalCalls returns all capital calls with pagination
func (q *QueryServer) CapitalCalls(ctx context.Context, offset, limit uint64) ([]*types.CapitalCall, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allCalls := q.keeper.GetAllCapitalCalls(sdkCtx)

	total := uint64(len(allCalls))

	// Apply pagination
	if offset >= total {
		return []*types.CapitalCall{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allCalls[offset:end], total, nil
}

// Voucher returns a depositor's voucher within a round
func (q *QueryServer) Voucher(ctx context.Context, callID, depositor string) (*types.Voucher, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	voucher := q.keeper.GetVoucher(sdkCtx, callID, depositor)
	if voucher == nil {
		return nil, types.ErrNoVoucher
	}
	return voucher, nil
}

// Vouchers returns all vouchers for a capital call
func (q *QueryServer) Vouchers(ctx context.Context, callID string) ([]*types.Voucher, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetCapitalCall(sdkCtx, callID) == nil {
		return nil, types.ErrCallNotFound
	}
	return q.keeper.GetCallVouchers(sdkCtx, callID), nil
}

// EstimateClaim returns the shares a voucher would receive. Before the mint
// the estimate prices against the live pool balance and supply; after the
// mint it uses the locked snapshot, matching what Claim will pay.
func (q *QueryServer) EstimateClaim(ctx context.Context, callID, depositor string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := q.keeper.GetConfig(sdkCtx)
	if config == nil {
		return math.ZeroInt(), types.ErrNotInitialized
	}
	call := q.keeper.GetCapitalCall(sdkCtx, callID)
	if call == nil {
		return math.ZeroInt(), types.ErrCallNotFound
	}
	voucher := q.keeper.GetVoucher(sdkCtx, callID, depositor)
	if voucher == nil {
		return math.ZeroInt(), types.ErrNoVoucher
	}

	if call.Minted {
		return call.ClaimShares(voucher.Amount), nil
	}

	poolAddr, err := sdk.AccAddressFromBech32(config.LiquidityPoolAccount)
	if err != nil {
		return math.ZeroInt(), err
	}
	liquidity := q.keeper.bankKeeper.GetBalance(ctx, poolAddr, config.AssetDenom).Amount
	supply := q.keeper.bankKeeper.GetSupply(ctx, config.ShareDenom).Amount

	shares, err := call.SharesToMint(liquidity, supply)
	if err != nil {
		return math.ZeroInt(), err
	}
	// A mint only ever happens at full capacity, so the pre-mint estimate
	// prices the contribution against the full raise.
	return voucher.Amount.Mul(shares).Quo(call.Capacity), nil
}
