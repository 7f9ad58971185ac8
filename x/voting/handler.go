package voting

import (
	"github.com/confio/stakevote/x/voting/keeper"
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// NewHandler constructor
func NewHandler(k keeper.Keeper) sdk.Handler {
	return newHandler(keeper.NewMsgServerImpl(k))
}

// internal constructor for testing
func newHandler(msgServer types.MsgServer) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		// state is only written when the message succeeds
		cacheCtx, commit := ctx.CacheContext()
		goCtx := sdk.WrapSDKContext(cacheCtx)

		var (
			res interface{}
			err error
		)
		switch msg := msg.(type) {
		case *types.MsgInitializeConfig:
			res, err = msgServer.InitializeConfig(goCtx, msg)
		case *types.MsgCreateProposal:
			res, err = msgServer.CreateProposal(goCtx, msg)
		case *types.MsgInitializeVoter:
			res, err = msgServer.InitializeVoter(goCtx, msg)
		case *types.MsgIncreaseStake:
			res, err = msgServer.IncreaseStake(goCtx, msg)
		case *types.MsgDecreaseStake:
			res, err = msgServer.DecreaseStake(goCtx, msg)
		case *types.MsgCancelUnstake:
			res, err = msgServer.CancelUnstake(goCtx, msg)
		case *types.MsgWithdrawStake:
			res, err = msgServer.WithdrawStake(goCtx, msg)
		case *types.MsgCastVote:
			res, err = msgServer.CastVote(goCtx, msg)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
		if err != nil {
			return nil, err
		}
		data, err := types.ModuleCdc.LegacyAmino.MarshalJSON(res)
		if err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}
		commit()
		return &sdk.Result{Data: data, Events: cacheCtx.EventManager().ABCIEvents()}, nil
	}
}
