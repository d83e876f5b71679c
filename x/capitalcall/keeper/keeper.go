package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// Store key prefixes
var (
	ConfigKey        = []byte{0x01}
	CallKeyPrefix    = []byte{0x02}
	VoucherKeyPrefix = []byte{0x03}
	CallSequenceKey  = []byte{0x04}
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	GetSupply(ctx context.Context, denom string) sdk.Coin
}

// Keeper manages the capitalcall module state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	logger     log.Logger
}

// NewKeeper creates a new capitalcall keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		logger:     logger.With("module", "x/capitalcall"),
	}
	return k
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Config Operations ============

// SetConfig saves the chain configuration to the store
func (k *Keeper) SetConfig(ctx sdk.Context, config *types.Config) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(config)
	store.Set(ConfigKey, bz)
}

// GetConfig retrieves the chain configuration from the store
func (k *Keeper) GetConfig(ctx sdk.Context) *types.Config {
	store := k.GetStore(ctx)
	bz := store.Get(ConfigKey)
	if bz == nil {
		return nil
	}
	var config types.Config
	if err := json.Unmarshal(bz, &config); err != nil {
		return nil
	}
	return &config
}

// ============ Capital Call Operations ============

// callKey generates the store key for a capital call
func callKey(callID string) []byte {
	return append(CallKeyPrefix, []byte(callID)...)
}

// SetCapitalCall saves a capital call to the store
func (k *Keeper) SetCapitalCall(ctx sdk.Context, call *types.CapitalCall) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(call)
	store.Set(callKey(call.CallID), bz)
}

// GetCapitalCall retrieves a capital call from the store
func (k *Keeper) GetCapitalCall(ctx sdk.Context, callID string) *types.CapitalCall {
	store := k.GetStore(ctx)
	bz := store.Get(callKey(callID))
	if bz == nil {
		return nil
	}
	var call types.CapitalCall
	if err := json.Unmarshal(bz, &call); err != nil {
		return nil
	}
	return &call
}

// GetAllCapitalCalls returns all capital calls
func (k *Keeper) GetAllCapitalCalls(ctx sdk.Context) []*types.CapitalCall {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, CallKeyPrefix)
	defer iterator.Close()

	var calls []*types.CapitalCall
	for ; iterator.Valid(); iterator.Next() {
		var call types.CapitalCall
		if err := json.Unmarshal(iterator.Value(), &call); err != nil {
			continue
		}
		calls = append(calls, &call)
	}
	return calls
}

// NextCallID assigns the next round ID from the store sequence. IDs must be
// deterministic across validators, so a persisted counter is used rather than
// any random source.
func (k *Keeper) NextCallID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	seq := uint64(1)
	if bz := store.Get(CallSequenceKey); bz != nil {
		_ = json.Unmarshal(bz, &seq)
		seq++
	}
	bz, _ := json.Marshal(seq)
	store.Set(CallSequenceKey, bz)
	return fmt.Sprintf("call-%d", seq)
}

// ============ Voucher Operations ============

// voucherKey generates the store key for a voucher, composite over the round
// and the depositor
func voucherKey(callID, depositor string) []byte {
	return append(VoucherKeyPrefix, []byte(callID+":"+depositor)...)
}

// SetVoucher saves a voucher to the store
func (k *Keeper) SetVoucher(ctx sdk.Context, voucher *types.Voucher) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(voucher)
	store.Set(voucherKey(voucher.CallID, voucher.Depositor), bz)
}

// GetVoucher retrieves a voucher from the store
func (k *Keeper) GetVoucher(ctx sdk.Context, callID, depositor string) *types.Voucher {
	store := k.GetStore(ctx)
	bz := store.Get(voucherKey(callID, depositor))
	if bz == nil {
		return nil
	}
	var voucher types.Voucher
	if err := json.Unmarshal(bz, &voucher); err != nil {
		return nil
	}
	return &voucher
}

// GetCallVouchers returns all vouchers for a capital call
func (k *Keeper) GetCallVouchers(ctx sdk.Context, callID string) []*types.Voucher {
	store := k.GetStore(ctx)
	prefix := append(VoucherKeyPrefix, []byte(callID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var vouchers []*types.Voucher
	for ; iterator.Valid(); iterator.Next() {
		var voucher types.Voucher
		if err := json.Unmarshal(iterator.Value(), &voucher); err != nil {
			continue
		}
		vouchers = append(vouchers, &voucher)
	}
	return vouchers
}
