package rest

import (
	"errors"
	"io/ioutil"
	"net/http"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/tendermint/tendermint/libs/log"

	votingclient "github.com/confio/stakevote/x/voting/client"
	"github.com/confio/stakevote/x/voting/types"
)

const (
	RestAddress    = "address"
	RestProposalID = "proposal_id"
	RestMsgType    = "msg_type"

	// HeaderRequestID is set on every response
	HeaderRequestID = "X-Request-Id"

	maxBodySize = 1 << 20
)

// RegisterRoutes registers the voting REST routes on r.
func RegisterRoutes(r *mux.Router, engine votingclient.Engine, logger log.Logger) {
	s := r.PathPrefix("/" + types.ModuleName).Subrouter()
	s.Use(requestIDMiddleware(logger))

	s.HandleFunc("/config", queryHandler(engine, func(map[string]string) ([]string, error) {
		return []string{types.QueryConfig}, nil
	})).Methods(http.MethodGet)
	s.HandleFunc("/voters/{address}", queryHandler(engine, addressPath(types.QueryVoter))).Methods(http.MethodGet)
	s.HandleFunc("/voters/{address}/power", queryHandler(engine, addressPath(types.QueryVotingPower))).Methods(http.MethodGet)
	s.HandleFunc("/proposals", queryHandler(engine, func(map[string]string) ([]string, error) {
		return []string{types.QueryProposals}, nil
	})).Methods(http.MethodGet)
	s.HandleFunc("/proposals/{proposal_id}", queryHandler(engine, proposalPath(types.QueryProposal))).Methods(http.MethodGet)
	s.HandleFunc("/proposals/{proposal_id}/votes", queryHandler(engine, proposalPath(types.QueryVotes))).Methods(http.MethodGet)
	s.HandleFunc("/proposals/{proposal_id}/votes/{address}", queryHandler(engine, func(vars map[string]string) ([]string, error) {
		p, err := proposalPath(types.QueryVote)(vars)
		if err != nil {
			return nil, err
		}
		if _, err := sdk.AccAddressFromBech32(vars[RestAddress]); err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
		}
		return append(p, vars[RestAddress]), nil
	})).Methods(http.MethodGet)

	s.HandleFunc("/txs/{msg_type}", txHandler(engine)).Methods(http.MethodPost)
}

func requestIDMiddleware(logger log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			logger.Debug("rest request", "request_id", id, "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

type pathBuilder func(vars map[string]string) ([]string, error)

func addressPath(route string) pathBuilder {
	return func(vars map[string]string) ([]string, error) {
		if _, err := sdk.AccAddressFromBech32(vars[RestAddress]); err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
		}
		return []string{route, vars[RestAddress]}, nil
	}
}

func proposalPath(route string) pathBuilder {
	return func(vars map[string]string) ([]string, error) {
		id, err := strconv.ParseUint(vars[RestProposalID], 10, 16)
		if err != nil {
			return nil, sdkerrors.Wrap(types.ErrInvalid, "proposal id")
		}
		return []string{route, strconv.FormatUint(id, 10)}, nil
	}
}

func queryHandler(engine votingclient.Engine, build pathBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := build(mux.Vars(r))
		if err != nil {
			writeError(w, err)
			return
		}
		bz, err := engine.Query(path)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, bz)
	}
}

func txHandler(engine votingclient.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := msgByType(mux.Vars(r)[RestMsgType])
		if err != nil {
			writeError(w, err)
			return
		}
		body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			rest.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := types.ModuleCdc.LegacyAmino.UnmarshalJSON(body, msg); err != nil {
			writeError(w, sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error()))
			return
		}
		if err := msg.ValidateBasic(); err != nil {
			writeError(w, err)
			return
		}
		res, err := engine.Deliver(msg)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(res.Data) == 0 {
			writeJSON(w, []byte("{}"))
			return
		}
		writeJSON(w, res.Data)
	}
}

func msgByType(msgType string) (sdk.Msg, error) {
	switch msgType {
	case types.TypeMsgInitializeConfig:
		return &types.MsgInitializeConfig{}, nil
	case types.TypeMsgCreateProposal:
		return &types.MsgCreateProposal{}, nil
	case types.TypeMsgInitializeVoter:
		return &types.MsgInitializeVoter{}, nil
	case types.TypeMsgIncreaseStake:
		return &types.MsgIncreaseStake{}, nil
	case types.TypeMsgDecreaseStake:
		return &types.MsgDecreaseStake{}, nil
	case types.TypeMsgCancelUnstake:
		return &types.MsgCancelUnstake{}, nil
	case types.TypeMsgWithdrawStake:
		return &types.MsgWithdrawStake{}, nil
	case types.TypeMsgCastVote:
		return &types.MsgCastVote{}, nil
	default:
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown message type: %q", msgType)
	}
}

func writeJSON(w http.ResponseWriter, bz []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bz)
}

func writeError(w http.ResponseWriter, err error) {
	rest.WriteErrorResponse(w, statusCode(err), err.Error())
}

func statusCode(err error) int {
	var sdkErr *sdkerrors.Error
	switch {
	case types.ErrRecordNotFound.Is(err):
		return http.StatusNotFound
	case types.ErrInvalidAuthority.Is(err):
		return http.StatusForbidden
	case errors.As(err, &sdkErr) && sdkErr.Codespace() == types.ModuleName,
		sdkerrors.ErrInvalidAddress.Is(err),
		sdkerrors.ErrInvalidRequest.Is(err),
		sdkerrors.ErrInvalidCoins.Is(err),
		sdkerrors.ErrUnknownRequest.Is(err),
		sdkerrors.ErrJSONUnmarshal.Is(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
