package keeper

import (
	"testing"

	"github.com/confio/stakevote/x/voting/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig(t *testing.T) {
	myAuthority := types.RandomAccAddress()
	specs := map[string]struct {
		period int64
		denom  string
		expErr *sdkerrors.Error
	}{
		"all good": {
			period: 1000,
			denom:  types.DefaultStakeDenom,
		},
		"zero period": {
			period: 0,
			denom:  types.DefaultStakeDenom,
			expErr: types.ErrInvalid,
		},
		"negative period": {
			period: -1,
			denom:  types.DefaultStakeDenom,
			expErr: types.ErrInvalid,
		},
		"invalid denom": {
			period: 1000,
			denom:  "",
			expErr: sdkerrors.ErrInvalidCoins,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.VotingKeeper

			// when
			got, gotErr := k.InitializeConfig(ctx, myAuthority, spec.period, spec.denom)

			// then
			if spec.expErr != nil {
				require.Error(t, gotErr)
				assert.True(t, spec.expErr.Is(gotErr), "got %#v", gotErr)
				assert.False(t, k.HasConfig(ctx))
				return
			}
			require.NoError(t, gotErr)
			exp := types.Config{
				Authority:      myAuthority,
				NextProposalID: 1,
				TotalStaked:    0,
				UnstakePeriod:  spec.period,
				StakeDenom:     spec.denom,
			}
			assert.Equal(t, exp, got)
			loaded, err := k.GetConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, exp, loaded)
		})
	}
}

func TestInitializeConfigOnlyOnce(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	first := setupConfig(t, ctx, k)

	// when
	_, gotErr := k.InitializeConfig(ctx, types.RandomAccAddress(), 1, "other")

	// then
	require.Error(t, gotErr)
	assert.True(t, types.ErrAlreadyInitialized.Is(gotErr))
	loaded, err := k.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, loaded)
}

func TestGetConfigNotFound(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	_, gotErr := keepers.VotingKeeper.GetConfig(ctx)
	require.Error(t, gotErr)
	assert.True(t, types.ErrRecordNotFound.Is(gotErr))
}
