package types

// voting module event types
const (
	EventTypeInitializeConfig = "initialize_config"
	EventTypeCreateProposal   = "create_proposal"
	EventTypeInitializeVoter  = "initialize_voter"
	EventTypeIncreaseStake    = "increase_stake"
	EventTypeDecreaseStake    = "decrease_stake"
	EventTypeCancelUnstake    = "cancel_unstake"
	EventTypeWithdrawStake    = "withdraw_stake"
	EventTypeCastVote         = "cast_vote"

	AttributeKeyAuthority         = "authority"
	AttributeKeyOwner             = "owner"
	AttributeKeyVault             = "vault"
	AttributeKeyDenom             = "denom"
	AttributeKeyProposalID        = "proposal_id"
	AttributeKeyOption            = "option"
	AttributeKeyWeight            = "weight"
	AttributeKeyUnstakeCompleteTS = "unstake_complete_ts"
	AttributeKeyAmountUnstaking   = "amount_unstaking"
	AttributeValueCategory        = ModuleName
)
