package rest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/x/auth/legacy/legacytx"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tidwall/gjson"

	"github.com/confio/stakevote/x/voting/types"
)

func TestQueryRoutes(t *testing.T) {
	myAddr := types.RandomAccAddress().String()
	specs := map[string]struct {
		url       string
		queryErr  error
		expPath   []string
		expStatus int
	}{
		"config": {
			url:       "/voting/config",
			expPath:   []string{types.QueryConfig},
			expStatus: http.StatusOK,
		},
		"config not set": {
			url:       "/voting/config",
			queryErr:  types.ErrRecordNotFound,
			expPath:   []string{types.QueryConfig},
			expStatus: http.StatusNotFound,
		},
		"voter": {
			url:       "/voting/voters/" + myAddr,
			expPath:   []string{types.QueryVoter, myAddr},
			expStatus: http.StatusOK,
		},
		"voter invalid address": {
			url:       "/voting/voters/foo",
			expStatus: http.StatusBadRequest,
		},
		"voting power": {
			url:       "/voting/voters/" + myAddr + "/power",
			expPath:   []string{types.QueryVotingPower, myAddr},
			expStatus: http.StatusOK,
		},
		"proposals": {
			url:       "/voting/proposals",
			expPath:   []string{types.QueryProposals},
			expStatus: http.StatusOK,
		},
		"proposal": {
			url:       "/voting/proposals/7",
			expPath:   []string{types.QueryProposal, "7"},
			expStatus: http.StatusOK,
		},
		"proposal id out of range": {
			url:       "/voting/proposals/65536",
			expStatus: http.StatusBadRequest,
		},
		"votes": {
			url:       "/voting/proposals/7/votes",
			expPath:   []string{types.QueryVotes, "7"},
			expStatus: http.StatusOK,
		},
		"vote": {
			url:       "/voting/proposals/7/votes/" + myAddr,
			expPath:   []string{types.QueryVote, "7", myAddr},
			expStatus: http.StatusOK,
		},
		"engine failure": {
			url:       "/voting/proposals",
			queryErr:  sdkerrors.ErrPanic,
			expPath:   []string{types.QueryProposals},
			expStatus: http.StatusInternalServerError,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			var gotPath []string
			engine := engineMock{
				QueryFn: func(path []string) ([]byte, error) {
					gotPath = path
					if spec.queryErr != nil {
						return nil, spec.queryErr
					}
					return []byte(`{"ok":true}`), nil
				},
			}
			// when
			rec := serve(engine, httptest.NewRequest(http.MethodGet, spec.url, nil))
			// then
			assert.Equal(t, spec.expStatus, rec.Code)
			assert.Equal(t, spec.expPath, gotPath)
			_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
			assert.NoError(t, err)
			if spec.expStatus == http.StatusOK {
				assert.True(t, gjson.Get(rec.Body.String(), "ok").Bool())
			}
		})
	}
}

func TestTxRoute(t *testing.T) {
	myOwner := types.RandomAccAddress()
	myProposal := types.MsgCreateProposalFixture()
	specs := map[string]struct {
		msgType    string
		body       []byte
		deliverErr error
		expMsg     sdk.Msg
		expStatus  int
	}{
		"cast vote": {
			msgType:   types.TypeMsgCastVote,
			body:      mustAminoJSON(t, types.NewMsgCastVote(myOwner, 1, 2)),
			expMsg:    types.NewMsgCastVote(myOwner, 1, 2),
			expStatus: http.StatusOK,
		},
		"increase stake": {
			msgType:   types.TypeMsgIncreaseStake,
			body:      mustAminoJSON(t, types.NewMsgIncreaseStake(myOwner, 5_000_000)),
			expMsg:    types.NewMsgIncreaseStake(myOwner, 5_000_000),
			expStatus: http.StatusOK,
		},
		"invalid message": {
			msgType:   types.TypeMsgIncreaseStake,
			body:      mustAminoJSON(t, types.NewMsgIncreaseStake(myOwner, 0)),
			expStatus: http.StatusBadRequest,
		},
		"not json": {
			msgType:   types.TypeMsgCastVote,
			body:      []byte("foo"),
			expStatus: http.StatusBadRequest,
		},
		"unknown type": {
			msgType:   "foo",
			body:      []byte("{}"),
			expStatus: http.StatusBadRequest,
		},
		"unauthorized": {
			msgType:    types.TypeMsgCreateProposal,
			body:       mustAminoJSON(t, myProposal),
			deliverErr: types.ErrInvalidAuthority,
			expMsg:     myProposal,
			expStatus:  http.StatusForbidden,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			var gotMsg sdk.Msg
			engine := engineMock{
				DeliverFn: func(msg sdk.Msg) (*sdk.Result, error) {
					gotMsg = msg
					if spec.deliverErr != nil {
						return nil, spec.deliverErr
					}
					return &sdk.Result{Data: []byte(`{"weight":"5"}`)}, nil
				},
			}
			// when
			rec := serve(engine, httptest.NewRequest(http.MethodPost, "/voting/txs/"+spec.msgType, bytes.NewReader(spec.body)))
			// then
			require.Equal(t, spec.expStatus, rec.Code, rec.Body.String())
			if spec.expMsg == nil {
				assert.Nil(t, gotMsg)
				return
			}
			require.NotNil(t, gotMsg)
			assert.Equal(t, spec.expMsg.(legacytx.LegacyMsg).GetSignBytes(), gotMsg.(legacytx.LegacyMsg).GetSignBytes())
			if spec.expStatus == http.StatusOK {
				assert.Equal(t, int64(5), gjson.Get(rec.Body.String(), "weight").Int())
			}
		})
	}
}

func TestRequestIDIsKept(t *testing.T) {
	myID := uuid.NewString()
	engine := engineMock{QueryFn: func([]string) ([]byte, error) { return []byte("{}"), nil }}
	req := httptest.NewRequest(http.MethodGet, "/voting/config", nil)
	req.Header.Set(HeaderRequestID, myID)
	// when
	rec := serve(engine, req)
	// then
	assert.Equal(t, myID, rec.Header().Get(HeaderRequestID))
}

func serve(engine engineMock, req *http.Request) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	RegisterRoutes(r, engine, log.NewNopLogger())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustAminoJSON(t *testing.T, msg sdk.Msg) []byte {
	bz, err := types.ModuleCdc.LegacyAmino.MarshalJSON(msg)
	require.NoError(t, err)
	return bz
}

type engineMock struct {
	DeliverFn func(msg sdk.Msg) (*sdk.Result, error)
	QueryFn   func(path []string) ([]byte, error)
}

func (m engineMock) Deliver(msg sdk.Msg) (*sdk.Result, error) {
	if m.DeliverFn == nil {
		panic("not expected to be called")
	}
	return m.DeliverFn(msg)
}

func (m engineMock) Query(path []string) ([]byte, error) {
	if m.QueryFn == nil {
		panic("not expected to be called")
	}
	return m.QueryFn(path)
}
