package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgInitialize        = "initialize"
	TypeMsgCreateCapitalCall = "create_capital_call"
	TypeMsgDeposit           = "deposit"
	TypeMsgMintShares        = "mint_shares"
	TypeMsgClaim             = "claim"
	TypeMsgRefund            = "refund"
	TypeMsgClose             = "close"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgInitialize{},
		&MsgCreateCapitalCall{},
		&MsgDeposit{},
		&MsgMintShares{},
		&MsgClaim{},
		&MsgRefund{},
		&MsgClose{},
	)
}

// MsgServer defines the capitalcall module's message service
type MsgServer interface {
	Initialize(context.Context, *MsgInitialize) (*MsgInitializeResponse, error)
	CreateCapitalCall(context.Context, *MsgCreateCapitalCall) (*MsgCreateCapitalCallResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	MintShares(context.Context, *MsgMintShares) (*MsgMintSharesResponse, error)
	Claim(context.Context, *MsgClaim) (*MsgClaimResponse, error)
	Refund(context.Context, *MsgRefund) (*MsgRefundResponse, error)
	Close(context.Context, *MsgClose) (*MsgCloseResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}

// parsePositiveAmount parses a message amount string into a positive math.Int
func parsePositiveAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt(), fmt.Errorf("invalid amount: %q", s)
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), ErrZeroAmount
	}
	return amount, nil
}

// MsgInitialize defines the one-time config initialization message
type MsgInitialize struct {
	Authority            string `json:"authority"`
	AssetDenom           string `json:"asset_denom"`
	ShareDenom           string `json:"share_denom"`
	LiquidityPoolAccount string `json:"liquidity_pool_account"`
}

// Route implements sdk.Msg
func (msg MsgInitialize) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInitialize) Type() string { return TypeMsgInitialize }

// ValidateBasic implements sdk.Msg
func (msg MsgInitialize) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.LiquidityPoolAccount); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.AssetDenom); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.ShareDenom); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInitialize) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInitialize) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInitialize) Reset() { *msg = MsgInitialize{} }

// String implements proto.Message
func (msg MsgInitialize) String() string {
	return fmt.Sprintf("MsgInitialize{Authority: %s, AssetDenom: %s, ShareDenom: %s}", msg.Authority, msg.AssetDenom, msg.ShareDenom)
}

// MsgInitializeResponse defines the Initialize response
type MsgInitializeResponse struct{}

// MsgCreateCapitalCall defines the round creation message
type MsgCreateCapitalCall struct {
	Authority         string `json:"authority"`
	StartTime         int64  `json:"start_time"`
	Duration          int64  `json:"duration"`
	Capacity          string `json:"capacity"`
	CreditOutstanding string `json:"credit_outstanding"`
}

// Route implements sdk.Msg
func (msg MsgCreateCapitalCall) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateCapitalCall) Type() string { return TypeMsgCreateCapitalCall }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateCapitalCall) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.StartTime <= 0 || msg.Duration <= 0 {
		return ErrInvalidSchedule
	}
	capacity, ok := math.NewIntFromString(msg.Capacity)
	if !ok || !capacity.IsPositive() {
		return ErrInvalidCapacity
	}
	credit, ok := math.NewIntFromString(msg.CreditOutstanding)
	if !ok || credit.IsNegative() {
		return fmt.Errorf("invalid credit outstanding: %q", msg.CreditOutstanding)
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateCapitalCall) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateCapitalCall) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateCapitalCall) Reset() { *msg = MsgCreateCapitalCall{} }

// String implements proto.Message
func (msg MsgCreateCapitalCall) String() string {
	return fmt.Sprintf("MsgCreateCapitalCall{Authority: %s, StartTime: %d, Duration: %d, Capacity: %s}", msg.Authority, msg.StartTime, msg.Duration, msg.Capacity)
}

// MsgCreateCapitalCallResponse defines the CreateCapitalCall response
type MsgCreateCapitalCallResponse struct {
	CallID    string `json:"call_id"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
}

// MsgDeposit defines the deposit message
type MsgDeposit struct {
	Depositor string `json:"depositor"`
	CallID    string `json:"call_id"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.CallID == "" {
		return ErrCallNotFound
	}
	if _, err := parsePositiveAmount(msg.Amount); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDeposit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDeposit) Reset() { *msg = MsgDeposit{} }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Depositor: %s, CallID: %s, Amount: %s}", msg.Depositor, msg.CallID, msg.Amount)
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	Accepted      string `json:"accepted"`
	VoucherAmount string `json:"voucher_amount"`
	Allocated     string `json:"allocated"`
	FullyRaised   bool   `json:"fully_raised"`
}

// MsgMintShares defines the permissionless finalize-and-mint message
type MsgMintShares struct {
	Caller string `json:"caller"`
	CallID string `json:"call_id"`
}

// Route implements sdk.Msg
func (msg MsgMintShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgMintShares) Type() string { return TypeMsgMintShares }

// ValidateBasic implements sdk.Msg
func (msg MsgMintShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.CallID == "" {
		return ErrCallNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgMintShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgMintShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgMintShares) Reset() { *msg = MsgMintShares{} }

// String implements proto.Message
func (msg MsgMintShares) String() string {
	return fmt.Sprintf("MsgMintShares{Caller: %s, CallID: %s}", msg.Caller, msg.CallID)
}

// MsgMintSharesResponse defines the MintShares response
type MsgMintSharesResponse struct {
	SharesMinted      string `json:"shares_minted"`
	LockedLiquidity   string `json:"locked_liquidity"`
	LockedShareSupply string `json:"locked_share_supply"`
}

// MsgClaim defines the claim message
type MsgClaim struct {
	Depositor string `json:"depositor"`
	CallID    string `json:"call_id"`
}

// Route implements sdk.Msg
func (msg MsgClaim) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgClaim) Type() string { return TypeMsgClaim }

// ValidateBasic implements sdk.Msg
func (msg MsgClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.CallID == "" {
		return ErrCallNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgClaim) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgClaim) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgClaim) Reset() { *msg = MsgClaim{} }

// String implements proto.Message
func (msg MsgClaim) String() string {
	return fmt.Sprintf("MsgClaim{Depositor: %s, CallID: %s}", msg.Depositor, msg.CallID)
}

// MsgClaimResponse defines the Claim response
type MsgClaimResponse struct {
	Shares   string `json:"shares"`
	Redeemed string `json:"redeemed"`
}

// MsgRefund defines the refund message
type MsgRefund struct {
	Depositor string `json:"depositor"`
	CallID    string `json:"call_id"`
}

// Route implements sdk.Msg
func (msg MsgRefund) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRefund) Type() string { return TypeMsgRefund }

// ValidateBasic implements sdk.Msg
func (msg MsgRefund) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.CallID == "" {
		return ErrCallNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRefund) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRefund) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRefund) Reset() { *msg = MsgRefund{} }

// String implements proto.Message
func (msg MsgRefund) String() string {
	return fmt.Sprintf("MsgRefund{Depositor: %s, CallID: %s}", msg.Depositor, msg.CallID)
}

// MsgRefundResponse defines the Refund response
type MsgRefundResponse struct {
	Amount string `json:"amount"`
}

// MsgClose defines the close message
type MsgClose struct {
	Caller   string `json:"caller"`
	CallID   string `json:"call_id"`
	Receiver string `json:"receiver"`
}

// Route implements sdk.Msg
func (msg MsgClose) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgClose) Type() string { return TypeMsgClose }

// ValidateBasic implements sdk.Msg
func (msg MsgClose) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Receiver); err != nil {
		return err
	}
	if msg.CallID == "" {
		return ErrCallNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgClose) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgClose) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgClose) Reset() { *msg = MsgClose{} }

// String implements proto.Message
func (msg MsgClose) String() string {
	return fmt.Sprintf("MsgClose{Caller: %s, CallID: %s, Receiver: %s}", msg.Caller, msg.CallID, msg.Receiver)
}

// MsgCloseResponse defines the Close response
type MsgCloseResponse struct {
	VaultSwept  string `json:"vault_swept"`
	EscrowSwept string `json:"escrow_swept"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgInitialize{}
	_ sdk.Msg = &MsgCreateCapitalCall{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgMintShares{}
	_ sdk.Msg = &MsgClaim{}
	_ sdk.Msg = &MsgRefund{}
	_ sdk.Msg = &MsgClose{}
)
