package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	votingclient "github.com/confio/stakevote/x/voting/client"
	"github.com/confio/stakevote/x/voting/types"
)

// GetQueryCmd returns the root query command for the voting module.
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the voting module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	queryCmd.AddCommand(
		GetCmdQueryConfig(),
		GetCmdQueryVoter(),
		GetCmdQueryVotingPower(),
		GetCmdQueryProposal(),
		GetCmdQueryProposals(),
		GetCmdQueryVote(),
		GetCmdQueryVotes(),
	)
	return queryCmd
}

func GetCmdQueryConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the voting config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, types.QueryConfig)
		},
	}
}

func GetCmdQueryVoter() *cobra.Command {
	return &cobra.Command{
		Use:   "voter <address>",
		Short: "Show the voter record of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return err
			}
			return runQuery(cmd, types.QueryVoter, args[0])
		},
	}
}

func GetCmdQueryVotingPower() *cobra.Command {
	return &cobra.Command{
		Use:     "voting-power <address>",
		Short:   "Show the weight a vote of the address would get now",
		Aliases: []string{"power"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return err
			}
			return runQuery(cmd, types.QueryVotingPower, args[0])
		},
	}
}

func GetCmdQueryProposal() *cobra.Command {
	return &cobra.Command{
		Use:   "proposal <proposal_id>",
		Short: "Show a proposal with its tally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, types.QueryProposal, formatID(id))
		},
	}
}

func GetCmdQueryProposals() *cobra.Command {
	return &cobra.Command{
		Use:   "proposals",
		Short: "List all proposals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, types.QueryProposals)
		},
	}
}

func GetCmdQueryVote() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <proposal_id> <voter_address>",
		Short: "Show the vote of an address on a proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return err
			}
			return runQuery(cmd, types.QueryVote, formatID(id), args[1])
		},
	}
}

func GetCmdQueryVotes() *cobra.Command {
	return &cobra.Command{
		Use:   "votes <proposal_id>",
		Short: "List all votes on a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, types.QueryVotes, formatID(id))
		},
	}
}

func formatID(id uint16) string {
	return strconv.FormatUint(uint64(id), 10)
}

func runQuery(cmd *cobra.Command, path ...string) error {
	engine, err := votingclient.GetEngine(cmd)
	if err != nil {
		return err
	}
	bz, err := engine.Query(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
