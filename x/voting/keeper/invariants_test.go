package keeper

import (
	"testing"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvariants(t *testing.T) {
	specs := map[string]struct {
		mutate    func(t *testing.T, ctx sdk.Context, keepers TestKeepers)
		expBroken bool
	}{
		"consistent state": {
			mutate: func(t *testing.T, ctx sdk.Context, keepers TestKeepers) {},
		},
		"total staked above voter sum": {
			mutate: func(t *testing.T, ctx sdk.Context, keepers TestKeepers) {
				config, err := keepers.VotingKeeper.GetConfig(ctx)
				require.NoError(t, err)
				config.TotalStaked++
				keepers.VotingKeeper.setConfig(ctx, config)
			},
			expBroken: true,
		},
		"vault drained": {
			mutate: func(t *testing.T, ctx sdk.Context, keepers TestKeepers) {
				var owner sdk.AccAddress
				require.NoError(t, keepers.VotingKeeper.IterateVoters(ctx, func(v types.Voter) bool {
					owner = v.Owner
					return true
				}))
				err := keepers.BankKeeper.SendCoins(ctx, types.VoterVaultAddress(owner), types.RandomAccAddress(), sdk.NewCoins(stakeCoin(1)))
				require.NoError(t, err)
			},
			expBroken: true,
		},
		"unstaking without completion time": {
			mutate: func(t *testing.T, ctx sdk.Context, keepers TestKeepers) {
				keepers.VotingKeeper.setVoter(ctx, types.Voter{Owner: types.RandomAccAddress(), AmountUnstaking: 1})
			},
			expBroken: true,
		},
		"misaligned tallies": {
			mutate: func(t *testing.T, ctx sdk.Context, keepers TestKeepers) {
				p, err := keepers.VotingKeeper.GetProposal(ctx, 1)
				require.NoError(t, err)
				p.OptionVotes = p.OptionVotes[1:]
				keepers.VotingKeeper.setProposal(ctx, p)
			},
			expBroken: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.VotingKeeper
			setupConfig(t, ctx, k)
			setupProposal(t, ctx, k)
			setupStakedVoter(t, ctx, keepers, 6_000_000)
			setupStakedVoter(t, ctx, keepers, 1_000)

			// when
			spec.mutate(t, ctx, keepers)
			msg, broken := AllInvariants(k)(ctx)

			// then
			assert.Equal(t, spec.expBroken, broken, msg)
		})
	}
}

func TestRegisterInvariants(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	ir := &invariantRegistryMock{}
	RegisterInvariants(ir, keepers.VotingKeeper)
	assert.Equal(t, []string{"total-staked", "voter-unstaking", "proposal-tallies"}, ir.routes)
	for _, inv := range ir.invariants {
		_, broken := inv(ctx)
		assert.False(t, broken)
	}
}

type invariantRegistryMock struct {
	routes     []string
	invariants []sdk.Invariant
}

func (m *invariantRegistryMock) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	m.routes = append(m.routes, route)
	m.invariants = append(m.invariants, invar)
}
