package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	votingclient "github.com/confio/stakevote/x/voting/client"
	"github.com/confio/stakevote/x/voting/types"
)

// GetTxCmd returns the root tx command for the voting module.
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Voting transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	txCmd.AddCommand(
		NewInitializeConfigCmd(),
		NewCreateProposalCmd(),
		NewInitializeVoterCmd(),
		NewIncreaseStakeCmd(),
		NewDecreaseStakeCmd(),
		NewCancelUnstakeCmd(),
		NewWithdrawStakeCmd(),
		NewCastVoteCmd(),
	)
	return txCmd
}

func NewInitializeConfigCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "init-config <unstake_period_seconds> <stake_denom>",
		Short: "Create the voting config with the sender as authority",
		Args:  cobra.ExactArgs(2),
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, args []string) (sdk.Msg, error) {
		period, err := parseUint64("unstake period", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewMsgInitializeConfig(signer, int64(period), args[1]), nil
	})
}

func NewCreateProposalCmd() *cobra.Command {
	cmd := newTxCmd(&cobra.Command{
		Use:   "create-proposal <title> <option> <option> [option...]",
		Short: "Open a new proposal, authority only",
		Long: `Open a new proposal. Only the config authority can create proposals.

Example:
$ stakevoted tx voting create-proposal "Fund the pool" yes no abstain \
	--description "Allocate tokens to the community pool" \
	--points 10 \
	--from stake1n4kjhlrpapnpv0n0e3048ydftrjs9m6mm473jf`,
		Args: cobra.MinimumNArgs(3),
	}, func(signer sdk.AccAddress, fs *flag.FlagSet, args []string) (sdk.Msg, error) {
		description, err := fs.GetString(FlagDescription)
		if err != nil {
			return nil, err
		}
		quorum, err := fs.GetUint64(FlagQuorumVotes)
		if err != nil {
			return nil, err
		}
		ending, err := fs.GetInt64(FlagEndingTS)
		if err != nil {
			return nil, err
		}
		points, err := fs.GetUint64(FlagPoints)
		if err != nil {
			return nil, err
		}
		return &types.MsgCreateProposal{
			Authority:   signer.String(),
			QuorumVotes: quorum,
			EndingTS:    ending,
			Points:      points,
			Title:       args[0],
			Description: description,
			Options:     args[1:],
		}, nil
	})
	cmd.Flags().AddFlagSet(flagSetProposal())
	return cmd
}

func NewInitializeVoterCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "init-voter",
		Short: "Create the voter record of the sender",
		Args:  cobra.NoArgs,
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, _ []string) (sdk.Msg, error) {
		return types.NewMsgInitializeVoter(signer), nil
	})
}

func NewIncreaseStakeCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "increase-stake <amount>",
		Short: "Move tokens from the sender into the voter vault",
		Args:  cobra.ExactArgs(1),
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, args []string) (sdk.Msg, error) {
		amount, err := parseUint64("amount", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewMsgIncreaseStake(signer, amount), nil
	})
}

func NewDecreaseStakeCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "decrease-stake <amount>",
		Short: "Start unstaking an amount, replacing any pending unstake",
		Args:  cobra.ExactArgs(1),
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, args []string) (sdk.Msg, error) {
		amount, err := parseUint64("amount", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewMsgDecreaseStake(signer, amount), nil
	})
}

func NewCancelUnstakeCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "cancel-unstake <amount>",
		Short: "Reduce the pending unstake amount",
		Args:  cobra.ExactArgs(1),
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, args []string) (sdk.Msg, error) {
		amount, err := parseUint64("amount", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewMsgCancelUnstake(signer, amount), nil
	})
}

func NewWithdrawStakeCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:   "withdraw-stake",
		Short: "Release the unstaked tokens once the cooldown passed",
		Args:  cobra.NoArgs,
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, _ []string) (sdk.Msg, error) {
		return types.NewMsgWithdrawStake(signer), nil
	})
}

func NewCastVoteCmd() *cobra.Command {
	return newTxCmd(&cobra.Command{
		Use:     "vote <proposal_id> <option_index>",
		Short:   "Cast a vote with the current stake weight",
		Aliases: []string{"cast-vote"},
		Args:    cobra.ExactArgs(2),
	}, func(signer sdk.AccAddress, _ *flag.FlagSet, args []string) (sdk.Msg, error) {
		id, err := parseProposalID(args[0])
		if err != nil {
			return nil, err
		}
		option, err := parseOption(args[1])
		if err != nil {
			return nil, err
		}
		return types.NewMsgCastVote(signer, id, option), nil
	})
}

type msgBuilder func(signer sdk.AccAddress, fs *flag.FlagSet, args []string) (sdk.Msg, error)

// newTxCmd wires the signer flag and the deliver step into cmd
func newTxCmd(cmd *cobra.Command, build msgBuilder) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		signer, err := signerFromFlags(cmd.Flags())
		if err != nil {
			return fmt.Errorf("sender: %w", err)
		}
		msg, err := build(signer, cmd.Flags(), args)
		if err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}
		engine, err := votingclient.GetEngine(cmd)
		if err != nil {
			return err
		}
		res, err := engine.Deliver(msg)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	}
	cmd.Flags().AddFlagSet(flagSetSigner())
	_ = cmd.MarkFlagRequired(flags.FlagFrom)
	return cmd
}

type txResult struct {
	Data   json.RawMessage  `json:"data,omitempty"`
	Events sdk.StringEvents `json:"events"`
}

func printResult(cmd *cobra.Command, res *sdk.Result) error {
	bz, err := json.MarshalIndent(txResult{
		Data:   res.Data,
		Events: sdk.StringifyEvents(res.Events),
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
