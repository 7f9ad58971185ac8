package keeper

import (
	"testing"
	"time"

	"github.com/confio/stakevote/x/voting/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"
)

const faucetAccountName = "faucet"

// DefaultTestTime is the block time of new test contexts
var DefaultTestTime = time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC)

type TestKeepers struct {
	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.Keeper
	VotingKeeper  Keeper
	Faucet        *TestFaucet
	LegacyAmino   *codec.LegacyAmino
}

// CreateDefaultTestInput sets up a voting keeper on top of real auth and bank keepers backed by a memdb.
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	return createTestInput(t, nil)
}

// createTestInput uses bank when set instead of the store backed bank keeper for the voting keeper
func createTestInput(t testing.TB, bank types.BankKeeper) (sdk.Context, TestKeepers) {
	keyVoting := sdk.NewKVStoreKey(types.StoreKey)
	keyAcc := sdk.NewKVStoreKey(authtypes.StoreKey)
	keyBank := sdk.NewKVStoreKey(banktypes.StoreKey)
	keyParams := sdk.NewKVStoreKey(paramstypes.StoreKey)
	tkeyParams := sdk.NewTransientStoreKey(paramstypes.TStoreKey)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyVoting, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyAcc, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyBank, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyParams, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(tkeyParams, sdk.StoreTypeTransient, db)
	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   DefaultTestTime,
	}, false, log.NewNopLogger())

	legacyAmino := codec.NewLegacyAmino()
	interfaceRegistry := codectypes.NewInterfaceRegistry()
	marshaler := codec.NewProtoCodec(interfaceRegistry)
	std.RegisterInterfaces(interfaceRegistry)
	std.RegisterLegacyAminoCodec(legacyAmino)
	authtypes.RegisterInterfaces(interfaceRegistry)
	banktypes.RegisterInterfaces(interfaceRegistry)
	types.RegisterLegacyAminoCodec(legacyAmino)

	paramsKeeper := paramskeeper.NewKeeper(marshaler, legacyAmino, keyParams, tkeyParams)
	maccPerms := map[string][]string{
		faucetAccountName: {authtypes.Minter},
	}
	authKeeper := authkeeper.NewAccountKeeper(
		marshaler,
		keyAcc,
		paramsKeeper.Subspace(authtypes.ModuleName),
		authtypes.ProtoBaseAccount,
		maccPerms,
	)
	authKeeper.SetParams(ctx, authtypes.DefaultParams())

	bankKeeper := bankkeeper.NewBaseKeeper(
		marshaler,
		keyBank,
		authKeeper,
		paramsKeeper.Subspace(banktypes.ModuleName),
		map[string]bool{},
	)
	bankKeeper.SetParams(ctx, banktypes.DefaultParams())

	if bank == nil {
		bank = bankKeeper
	}
	keepers := TestKeepers{
		AccountKeeper: authKeeper,
		BankKeeper:    bankKeeper,
		VotingKeeper:  NewKeeper(keyVoting, bank),
		Faucet:        NewTestFaucet(t, ctx, bankKeeper, sdk.NewInt64Coin(types.DefaultStakeDenom, 1_000_000_000_000)),
		LegacyAmino:   legacyAmino,
	}
	return ctx, keepers
}

type TestFaucet struct {
	t                testing.TB
	bankKeeper       bankkeeper.Keeper
	sender           sdk.AccAddress
	balance          sdk.Coins
	minterModuleName string
}

func NewTestFaucet(t testing.TB, ctx sdk.Context, bankKeeper bankkeeper.Keeper, initialAmount ...sdk.Coin) *TestFaucet {
	require.NotEmpty(t, initialAmount)
	r := &TestFaucet{t: t, bankKeeper: bankKeeper, minterModuleName: faucetAccountName}
	r.sender = types.RandomAccAddress()
	r.Mint(ctx, r.sender, initialAmount...)
	return r
}

func (f *TestFaucet) Mint(parentCtx sdk.Context, addr sdk.AccAddress, amounts ...sdk.Coin) {
	amounts = sdk.NewCoins(amounts...)
	require.NotEmpty(f.t, amounts)
	ctx := parentCtx.WithEventManager(sdk.NewEventManager()) // discard all faucet related events
	err := f.bankKeeper.MintCoins(ctx, f.minterModuleName, amounts)
	require.NoError(f.t, err)
	err = f.bankKeeper.SendCoinsFromModuleToAccount(ctx, f.minterModuleName, addr, amounts)
	require.NoError(f.t, err)
	f.balance = f.balance.Add(amounts...)
}

// Fund sends amounts from the faucet account to receiver
func (f *TestFaucet) Fund(parentCtx sdk.Context, receiver sdk.AccAddress, amounts ...sdk.Coin) {
	require.NotEmpty(f.t, amounts)
	// ensure faucet is always filled
	if !f.balance.IsAllGTE(amounts) {
		f.Mint(parentCtx, f.sender, amounts...)
	}
	ctx := parentCtx.WithEventManager(sdk.NewEventManager()) // discard all faucet related events
	err := f.bankKeeper.SendCoins(ctx, f.sender, receiver, amounts)
	require.NoError(f.t, err)
	f.balance = f.balance.Sub(amounts)
}
