package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/capital-call/x/capitalcall/types"

	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
)

// mockBankKeeper is an in-memory ledger standing in for the bank module.
// It tracks per-address balances by denom and the total supply of each denom.
type mockBankKeeper struct {
	balances map[string]map[string]math.Int
	supply   map[string]math.Int
	failSend bool
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{
		balances: make(map[string]map[string]math.Int),
		supply:   make(map[string]math.Int),
	}
}

func (m *mockBankKeeper) setBalance(addr string, denom string, amount math.Int) {
	if m.balances[addr] == nil {
		m.balances[addr] = make(map[string]math.Int)
	}
	m.balances[addr][denom] = amount
}

func (m *mockBankKeeper) balance(addr string, denom string) math.Int {
	if m.balances[addr] == nil {
		return math.ZeroInt()
	}
	bal, ok := m.balances[addr][denom]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func (m *mockBankKeeper) move(from, to string, amt sdk.Coins) error {
	for _, coin := range amt {
		bal := m.balance(from, coin.Denom)
		if bal.LT(coin.Amount) {
			return fmt.Errorf("insufficient funds: %s has %s%s, need %s", from, bal, coin.Denom, coin.Amount)
		}
		m.setBalance(from, coin.Denom, bal.Sub(coin.Amount))
		m.setBalance(to, coin.Denom, m.balance(to, coin.Denom).Add(coin.Amount))
	}
	return nil
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	if m.failSend {
		return fmt.Errorf("send failed")
	}
	return m.move(senderAddr.String(), recipientModule, amt)
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.failSend {
		return fmt.Errorf("send failed")
	}
	return m.move(senderModule, recipientAddr.String(), amt)
}

func (m *mockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	for _, coin := range amt {
		m.setBalance(moduleName, coin.Denom, m.balance(moduleName, coin.Denom).Add(coin.Amount))
		cur, ok := m.supply[coin.Denom]
		if !ok {
			cur = math.ZeroInt()
		}
		m.supply[coin.Denom] = cur.Add(coin.Amount)
	}
	return nil
}

func (m *mockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.Coin{Denom: denom, Amount: m.balance(addr.String(), denom)}
}

func (m *mockBankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	amount, ok := m.supply[denom]
	if !ok {
		amount = math.ZeroInt()
	}
	return sdk.Coin{Denom: denom, Amount: amount}
}

var (
	authorityAddr = sdk.AccAddress("authority___________").String()
	aliceAddr     = sdk.AccAddress("alice_______________").String()
	bobAddr       = sdk.AccAddress("bob_________________").String()
	poolAddr      = sdk.AccAddress("liquidity_pool______").String()
	receiverAddr  = sdk.AccAddress("receiver____________").String()
)

const (
	assetDenom = "uusdc"
	shareDenom = "ulp"
)

// setupKeeper creates a test keeper with an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, *mockBankKeeper, sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	ctx = ctx.WithBlockTime(time.Unix(100, 0))

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := newMockBankKeeper()
	keeper := NewKeeper(cdc, storeKey, bank, log.NewNopLogger())

	return keeper, bank, ctx
}

// setupInitialized additionally writes the config record
func setupInitialized(tb testing.TB) (*Keeper, *mockBankKeeper, sdk.Context) {
	tb.Helper()
	k, bank, ctx := setupKeeper(tb)
	if _, err := k.InitializeConfig(ctx, authorityAddr, assetDenom, shareDenom, poolAddr); err != nil {
		tb.Fatalf("initialize config: %v", err)
	}
	return k, bank, ctx
}

// atTime returns the context with the block time set to the given unix second
func atTime(ctx sdk.Context, unix int64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(unix, 0))
}

func TestInitializeConfig(t *testing.T) {
	k, _, ctx := setupKeeper(t)

	config, err := k.InitializeConfig(ctx, authorityAddr, assetDenom, shareDenom, poolAddr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Authority != authorityAddr {
		t.Errorf("expected authority %s, got %s", authorityAddr, config.Authority)
	}

	stored := k.GetConfig(ctx)
	if stored == nil || stored.AssetDenom != assetDenom || stored.ShareDenom != shareDenom {
		t.Errorf("stored config mismatch: %+v", stored)
	}

	if _, err := k.InitializeConfig(ctx, authorityAddr, assetDenom, shareDenom, poolAddr); err != types.ErrAlreadyInitialized {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestCreateCapitalCall(t *testing.T) {
	k, _, ctx := setupInitialized(t)

	call, err := k.CreateCapitalCall(ctx, authorityAddr, 1000, 500, math.NewInt(2_000_000), math.ZeroInt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.CallID != "call-1" {
		t.Errorf("expected call-1, got %s", call.CallID)
	}
	if call.EndTime != 1500 {
		t.Errorf("expected end time 1500, got %d", call.EndTime)
	}

	second, err := k.CreateCapitalCall(ctx, authorityAddr, 2000, 500, math.NewInt(1_000_000), math.ZeroInt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.CallID != "call-2" {
		t.Errorf("expected sequential ID call-2, got %s", second.CallID)
	}
}

func TestCreateCapitalCallValidation(t *testing.T) {
	k, _, ctx := setupInitialized(t)

	tests := []struct {
		name      string
		creator   string
		startTime int64
		duration  int64
		capacity  math.Int
		wantErr   error
	}{
		{"not authority", aliceAddr, 1000, 500, math.NewInt(1000), types.ErrUnauthorized},
		{"start in past", authorityAddr, 50, 500, math.NewInt(1000), types.ErrInvalidSchedule},
		{"start at block time", authorityAddr, 100, 500, math.NewInt(1000), types.ErrInvalidSchedule},
		{"zero duration", authorityAddr, 1000, 0, math.NewInt(1000), types.ErrInvalidSchedule},
		{"zero capacity", authorityAddr, 1000, 500, math.ZeroInt(), types.ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.CreateCapitalCall(ctx, tt.creator, tt.startTime, tt.duration, tt.capacity, math.ZeroInt())
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateCapitalCallUninitialized(t *testing.T) {
	k, _, ctx := setupKeeper(t)
	if _, err := k.CreateCapitalCall(ctx, authorityAddr, 1000, 500, math.NewInt(1000), math.ZeroInt()); err != types.ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}
