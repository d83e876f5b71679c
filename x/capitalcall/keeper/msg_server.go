package keeper

import (
	"context"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/metrics"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// intToFloat converts a math.Int for metric recording. Precision loss on very
// large amounts is fine for gauges and counters.
func intToFloat(v math.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// MsgServer defines the capitalcall MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

var _ types.MsgServer = (*MsgServer)(nil)

// Initialize handles MsgInitialize
func (m *MsgServer) Initialize(ctx context.Context, msg *types.MsgInitialize) (*types.MsgInitializeResponse, error) {
	_, err := m.keeper.InitializeConfig(ctx, msg.Authority, msg.AssetDenom, msg.ShareDenom, msg.LiquidityPoolAccount)
	if err != nil {
		return nil, err
	}
	return &types.MsgInitializeResponse{}, nil
}

// CreateCapitalCall handles MsgCreateCapitalCall
func (m *MsgServer) CreateCapitalCall(ctx context.Context, msg *types.MsgCreateCapitalCall) (*types.MsgCreateCapitalCallResponse, error) {
	capacity, ok := math.NewIntFromString(msg.Capacity)
	if !ok {
		return nil, types.ErrInvalidCapacity
	}
	credit, ok := math.NewIntFromString(msg.CreditOutstanding)
	if !ok {
		return nil, types.ErrInvalidCapacity
	}

	call, err := m.keeper.CreateCapitalCall(ctx, msg.Authority, msg.StartTime, msg.Duration, capacity, credit)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordRoundCreated()

	return &types.MsgCreateCapitalCallResponse{
		CallID:    call.CallID,
		StartTime: call.StartTime,
		EndTime:   call.EndTime,
	}, nil
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrZeroAmount
	}

	voucher, accepted, err := m.keeper.Deposit(ctx, msg.Depositor, msg.CallID, amount)
	if err != nil {
		return nil, err
	}

	call := m.keeper.GetCapitalCall(sdk.UnwrapSDKContext(ctx), msg.CallID)
	fullyRaised := call != nil && call.Allocated.Equal(call.Capacity)

	metrics.GetCollector().RecordDeposit(msg.CallID, intToFloat(accepted))

	return &types.MsgDepositResponse{
		Accepted:      accepted.String(),
		VoucherAmount: voucher.Amount.String(),
		Allocated:     call.Allocated.String(),
		FullyRaised:   fullyRaised,
	}, nil
}

// MintShares handles MsgMintShares
func (m *MsgServer) MintShares(ctx context.Context, msg *types.MsgMintShares) (*types.MsgMintSharesResponse, error) {
	call, err := m.keeper.MintShares(ctx, msg.CallID)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordMint(msg.CallID, intToFloat(call.SharesMinted))

	return &types.MsgMintSharesResponse{
		SharesMinted:      call.SharesMinted.String(),
		LockedLiquidity:   call.LockedLiquidity.String(),
		LockedShareSupply: call.LockedShareSupply.String(),
	}, nil
}

// Claim handles MsgClaim
func (m *MsgServer) Claim(ctx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	shares, err := m.keeper.Claim(ctx, msg.Depositor, msg.CallID)
	if err != nil {
		return nil, err
	}

	call := m.keeper.GetCapitalCall(sdk.UnwrapSDKContext(ctx), msg.CallID)

	metrics.GetCollector().RecordClaim(msg.CallID, intToFloat(shares))

	return &types.MsgClaimResponse{
		Shares:   shares.String(),
		Redeemed: call.Redeemed.String(),
	}, nil
}

// Refund handles MsgRefund
func (m *MsgServer) Refund(ctx context.Context, msg *types.MsgRefund) (*types.MsgRefundResponse, error) {
	amount, err := m.keeper.Refund(ctx, msg.Depositor, msg.CallID)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordRefund(msg.CallID, intToFloat(amount))

	return &types.MsgRefundResponse{
		Amount: amount.String(),
	}, nil
}

// Close handles MsgClose
func (m *MsgServer) Close(ctx context.Context, msg *types.MsgClose) (*types.MsgCloseResponse, error) {
	vaultSwept, escrowSwept, err := m.keeper.Close(ctx, msg.CallID, msg.Receiver)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordClose(msg.CallID)

	return &types.MsgCloseResponse{
		VaultSwept:  vaultSwept.String(),
		EscrowSwept: escrowSwept.String(),
	}, nil
}
