package types

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 50; i++ {
		var (
			config   Config
			voter    Voter
			proposal Proposal
			vote     Vote
		)
		f.Fuzz(&config)
		f.Fuzz(&voter)
		f.Fuzz(&proposal)
		f.Fuzz(&vote)

		gotConfig, err := UnmarshalConfig(MarshalConfig(config))
		require.NoError(t, err)
		assert.Equal(t, config, gotConfig)

		gotVoter, err := UnmarshalVoter(MarshalVoter(voter))
		require.NoError(t, err)
		assert.Equal(t, voter, gotVoter)

		gotProposal, err := UnmarshalProposal(MarshalProposal(proposal))
		require.NoError(t, err)
		assert.Equal(t, proposal, gotProposal)

		gotVote, err := UnmarshalVote(MarshalVote(vote))
		require.NoError(t, err)
		assert.Equal(t, vote, gotVote)
	}
}

func TestProposalSpace(t *testing.T) {
	specs := map[string]struct {
		title, description string
		options            []string
		exp                int
	}{
		"two options": {
			title:       "abc",
			description: "",
			options:     []string{"yes", "no"},
			// 8 + 43 + (4+3) + 4 + 4 + (4+3) + (4+2) + 4 + 2*8
			exp: 8 + 43 + 7 + 4 + 4 + 7 + 6 + 4 + 16,
		},
		"unicode counted in bytes": {
			title:       "äöü",
			description: "d",
			options:     []string{"ja", "nein", "€"},
			exp:         8 + 43 + (4 + 6) + (4 + 1) + 4 + (4 + 2) + (4 + 4) + (4 + 3) + 4 + 3*8,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			p := ProposalFixture(func(p *Proposal) {
				p.Title = spec.title
				p.Description = spec.description
				p.Options = spec.options
				p.OptionVotes = make([]uint64, len(spec.options))
			})
			// when
			bz := MarshalProposal(p)
			// then
			assert.Equal(t, spec.exp, ProposalSpace(spec.title, spec.description, spec.options))
			assert.Len(t, bz, spec.exp)
		})
	}
}

func TestUnmarshalRejectsCorruptRecords(t *testing.T) {
	voterBz := MarshalVoter(VoterFixture())
	specs := map[string]struct {
		src []byte
	}{
		"empty":         {src: nil},
		"truncated":     {src: voterBz[:len(voterBz)-3]},
		"trailing":      {src: append(append([]byte{}, voterBz...), 0x1)},
		"wrong type":    {src: MarshalConfig(ConfigFixture())},
		"wrong version": {src: append(append([]byte{}, voterBz[:len(voterBz)-1]...), 0x2)},
		"huge length":   {src: append(append([]byte{}, voterDiscriminator...), 0xff, 0xff, 0xff, 0xff)},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			_, gotErr := UnmarshalVoter(spec.src)
			require.Error(t, gotErr)
			assert.True(t, ErrCorruptRecord.Is(gotErr), gotErr)
		})
	}
}
