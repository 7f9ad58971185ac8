package keeper

import (
	"strconv"

	"github.com/confio/stakevote/x/voting/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// NewLegacyQuerier returns the voting querier. Results are amino JSON encoded.
func NewLegacyQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, _ abci.RequestQuery) ([]byte, error) {
		if len(path) == 0 {
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "empty %s query path", types.ModuleName)
		}
		var (
			res interface{}
			err error
		)
		switch path[0] {
		case types.QueryConfig:
			res, err = k.GetConfig(ctx)
		case types.QueryVoter:
			res, err = queryByAddress(path, func(addr sdk.AccAddress) (interface{}, error) {
				return k.GetVoter(ctx, addr)
			})
		case types.QueryVotingPower:
			res, err = queryByAddress(path, func(addr sdk.AccAddress) (interface{}, error) {
				return k.VotingPower(ctx, addr)
			})
		case types.QueryProposal:
			var id uint16
			if id, err = parseProposalID(path, 1); err == nil {
				res, err = k.GetProposal(ctx, id)
			}
		case types.QueryProposals:
			proposals := make([]types.Proposal, 0)
			err = k.IterateProposals(ctx, func(p types.Proposal) bool {
				proposals = append(proposals, p)
				return false
			})
			res = proposals
		case types.QueryVote:
			var id uint16
			if id, err = parseProposalID(path, 1); err == nil {
				res, err = queryByAddress(path[1:], func(addr sdk.AccAddress) (interface{}, error) {
					return k.GetVote(ctx, id, addr)
				})
			}
		case types.QueryVotes:
			var id uint16
			if id, err = parseProposalID(path, 1); err == nil {
				votes := make([]types.Vote, 0)
				err = k.IterateVotes(ctx, id, func(v types.Vote) bool {
					votes = append(votes, v)
					return false
				})
				res = votes
			}
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown %s query endpoint: %s", types.ModuleName, path[0])
		}
		if err != nil {
			return nil, err
		}
		bz, err := codec.MarshalJSONIndent(legacyQuerierCdc, res)
		if err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}
		return bz, nil
	}
}

func queryByAddress(path []string, f func(sdk.AccAddress) (interface{}, error)) (interface{}, error) {
	if len(path) < 2 {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "address missing")
	}
	addr, err := sdk.AccAddressFromBech32(path[1])
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
	}
	return f(addr)
}

func parseProposalID(path []string, pos int) (uint16, error) {
	if len(path) <= pos {
		return 0, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "proposal id missing")
	}
	id, err := strconv.ParseUint(path[pos], 10, 16)
	if err != nil {
		return 0, sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "proposal id: %s", err)
	}
	return uint16(id), nil
}
