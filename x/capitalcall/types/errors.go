package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrNotInitialized     = errors.Register(ModuleName, 1, "config not initialized")
	ErrAlreadyInitialized = errors.Register(ModuleName, 2, "config already initialized")
	ErrUnauthorized       = errors.Register(ModuleName, 3, "caller is not the configured authority")

	// Create errors
	ErrInvalidSchedule = errors.Register(ModuleName, 4, "start time must be in the future and duration non-zero")
	ErrInvalidCapacity = errors.Register(ModuleName, 5, "capacity must be positive")

	// Deposit errors
	ErrCallNotFound = errors.Register(ModuleName, 6, "capital call not found")
	ErrNotOpen      = errors.Register(ModuleName, 7, "capital call is not open for deposits")
	ErrZeroAmount   = errors.Register(ModuleName, 8, "deposit amount must be positive")

	// Mint errors
	ErrNotFullyFunded  = errors.Register(ModuleName, 9, "capital call is not fully funded")
	ErrAlreadyMinted   = errors.Register(ModuleName, 10, "shares already minted for this capital call")
	ErrZeroShareSupply = errors.Register(ModuleName, 11, "share supply is zero, valuation undefined")

	// Settlement errors
	ErrNotMinted          = errors.Register(ModuleName, 12, "shares not minted yet")
	ErrNoVoucher          = errors.Register(ModuleName, 13, "no voucher for depositor")
	ErrAlreadyClaimed     = errors.Register(ModuleName, 14, "voucher already claimed")
	ErrAlreadyRefunded    = errors.Register(ModuleName, 15, "voucher already refunded")
	ErrRoundFillCompleted = errors.Register(ModuleName, 16, "fully funded capital call never refunds")
	ErrNotEnded           = errors.Register(ModuleName, 17, "capital call has not ended")

	// Close errors
	ErrNotFullySettled = errors.Register(ModuleName, 18, "outstanding vouchers remain unsettled")
	ErrAlreadyClosed   = errors.Register(ModuleName, 19, "capital call already closed")
)
