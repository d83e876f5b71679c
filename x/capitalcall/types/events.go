package types

// Event types
const (
	EventTypeInitialized = "capitalcall_initialized"
	EventTypeCreated     = "capitalcall_created"
	EventTypeDeposit     = "capitalcall_deposit"
	EventTypeFullyRaised = "capitalcall_fully_raised"
	EventTypeMinted      = "capitalcall_minted"
	EventTypeClaim       = "capitalcall_claim"
	EventTypeRefund      = "capitalcall_refund"
	EventTypeClosed      = "capitalcall_closed"
)

// Event attribute keys
const (
	AttributeKeyCallID            = "call_id"
	AttributeKeyAuthority         = "authority"
	AttributeKeyDepositor         = "depositor"
	AttributeKeyReceiver          = "receiver"
	AttributeKeyAmount            = "amount"
	AttributeKeyAccepted          = "accepted"
	AttributeKeyCapacity          = "capacity"
	AttributeKeyAllocated         = "allocated"
	AttributeKeyStartTime         = "start_time"
	AttributeKeyEndTime           = "end_time"
	AttributeKeyLiquidity         = "liquidity"
	AttributeKeyShareSupply       = "share_supply"
	AttributeKeyCreditOutstanding = "credit_outstanding"
	AttributeKeySharesMinted      = "shares_minted"
	AttributeKeyShares            = "shares"
	AttributeKeyVaultSwept        = "vault_swept"
	AttributeKeyEscrowSwept       = "escrow_swept"
)
