package keeper

import (
	"math"
	"testing"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProposal(t *testing.T) {
	specs := map[string]struct {
		src       ProposalInput
		otherAuth bool
		expErr    *sdkerrors.Error
	}{
		"all good": {
			src: ProposalInput{QuorumVotes: 1, EndingTS: 2, Points: 3, Title: "abc", Description: "d", Options: []string{"a", "b"}},
		},
		"empty description": {
			src: ProposalInput{Title: "abc", Options: []string{"a", "b", "c"}},
		},
		"not the authority": {
			src:       ProposalInput{Title: "abc", Options: []string{"a", "b"}},
			otherAuth: true,
			expErr:    types.ErrInvalidAuthority,
		},
		"title too short": {
			src:    ProposalInput{Title: "ab", Options: []string{"a", "b"}},
			expErr: types.ErrTitleTooShort,
		},
		"single option": {
			src:    ProposalInput{Title: "abc", Options: []string{"a"}},
			expErr: types.ErrNotEnoughOptions,
		},
		"no options": {
			src:    ProposalInput{Title: "abc"},
			expErr: types.ErrNotEnoughOptions,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.VotingKeeper
			config := setupConfig(t, ctx, k)
			caller := config.Authority
			if spec.otherAuth {
				caller = types.RandomAccAddress()
			}

			// when
			got, gotErr := k.CreateProposal(ctx, caller, spec.src)

			// then
			configAfter, err := k.GetConfig(ctx)
			require.NoError(t, err)
			if spec.expErr != nil {
				require.Error(t, gotErr)
				assert.True(t, spec.expErr.Is(gotErr), "got %#v", gotErr)
				assert.Equal(t, config, configAfter)
				_, err := k.GetProposal(ctx, 1)
				assert.True(t, types.ErrRecordNotFound.Is(err))
				return
			}
			require.NoError(t, gotErr)
			exp := types.Proposal{
				ID:          1,
				TotalVotes:  0,
				QuorumVotes: spec.src.QuorumVotes,
				CreatedTS:   ctx.BlockTime().Unix(),
				EndingTS:    spec.src.EndingTS,
				Points:      spec.src.Points,
				Title:       spec.src.Title,
				Description: spec.src.Description,
				Options:     spec.src.Options,
				OptionVotes: make([]uint64, len(spec.src.Options)),
			}
			assert.Equal(t, exp, got)
			loaded, err := k.GetProposal(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, exp, loaded)
			assert.Equal(t, uint16(2), configAfter.NextProposalID)
			assert.Len(t, ctx.KVStore(k.storeKey).Get(types.GetProposalKey(1)), exp.Space())
		})
	}
}

func TestCreateProposalIDsAreUnique(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	setupConfig(t, ctx, k)

	seen := make(map[uint16]struct{})
	for i := 1; i <= 5; i++ {
		p := setupProposal(t, ctx, k)
		assert.Equal(t, uint16(i), p.ID)
		_, exists := seen[p.ID]
		require.False(t, exists)
		seen[p.ID] = struct{}{}
	}
	var ids []uint16
	require.NoError(t, k.IterateProposals(ctx, func(p types.Proposal) bool {
		ids = append(ids, p.ID)
		return false
	}))
	assert.Equal(t, []uint16{1, 2, 3, 4, 5}, ids)
}

func TestCreateProposalIDOverflow(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	config := setupConfig(t, ctx, k)
	config.NextProposalID = math.MaxUint16 - 1
	k.setConfig(ctx, config)

	p := setupProposal(t, ctx, k)
	assert.Equal(t, uint16(math.MaxUint16-1), p.ID)

	// when
	_, gotErr := k.CreateProposal(ctx, config.Authority, ProposalInput{Title: "abc", Options: []string{"a", "b"}})

	// then
	require.Error(t, gotErr)
	assert.True(t, types.ErrArithmeticOverflow.Is(gotErr))
	loaded, err := k.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), loaded.NextProposalID)
}

func TestCreateProposalWithoutConfig(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	_, gotErr := keepers.VotingKeeper.CreateProposal(ctx, sdk.AccAddress(types.RandomAccAddress()), ProposalInput{Title: "abc", Options: []string{"a", "b"}})
	require.Error(t, gotErr)
	assert.True(t, types.ErrRecordNotFound.Is(gotErr))
}
