package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// GetTxCmd returns the transaction commands for the capitalcall module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "capitalcall",
		Short:                      "Capital call module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdInitialize(),
		CmdCreateCapitalCall(),
		CmdDeposit(),
		CmdMintShares(),
		CmdClaim(),
		CmdRefund(),
		CmdClose(),
	)

	return cmd
}

// CmdInitialize returns the command to initialize the chain configuration
func CmdInitialize() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initialize [asset-denom] [share-denom] [liquidity-pool-account]",
		Short: "Initialize the capital call configuration",
		Long: `Initialize the one-time chain configuration. The sender becomes the
authority allowed to create capital calls.

Example:
  capcalld tx capitalcall initialize uusdc ulp cosmos1pool... --from authority`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInitialize{
				Authority:            clientCtx.GetFromAddress().String(),
				AssetDenom:           args[0],
				ShareDenom:           args[1],
				LiquidityPoolAccount: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCreateCapitalCall returns the command to create a capital call
func CmdCreateCapitalCall() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [start-time] [duration] [capacity] [credit-outstanding]",
		Short: "Create a new capital call round",
		Long: `Create a new fundraising round. Start time is a unix timestamp strictly
in the future; duration is in seconds.

Example:
  capcalld tx capitalcall create 1767225600 604800 1000000 0 --from authority`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			startTime, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid start time: %v", err)
			}
			duration, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid duration: %v", err)
			}

			msg := &types.MsgCreateCapitalCall{
				Authority:         clientCtx.GetFromAddress().String(),
				StartTime:         startTime,
				Duration:          duration,
				Capacity:          args[2],
				CreditOutstanding: args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns the command to deposit into a capital call
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [call-id] [amount]",
		Short: "Deposit into an open capital call",
		Long: `Deposit the asset denom into an open round. Deposits that overshoot the
remaining capacity are clipped to exactly fill the round.

Example:
  capcalld tx capitalcall deposit call-1 500000 --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				CallID:    args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMintShares returns the command to finalize a fully funded round
func CmdMintShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint-shares [call-id]",
		Short: "Mint shares for a fully funded capital call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgMintShares{
				Caller: clientCtx.GetFromAddress().String(),
				CallID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaim returns the command to claim shares from a minted round
func CmdClaim() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [call-id]",
		Short: "Claim shares for a contribution to a minted capital call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgClaim{
				Depositor: clientCtx.GetFromAddress().String(),
				CallID:    args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRefund returns the command to recover a contribution from an expired round
func CmdRefund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund [call-id]",
		Short: "Refund a contribution to an expired, underfunded capital call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRefund{
				Depositor: clientCtx.GetFromAddress().String(),
				CallID:    args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClose returns the command to close a fully settled round
func CmdClose() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close [call-id] [receiver]",
		Short: "Close a fully settled capital call and sweep residual balances",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgClose{
				Caller:   clientCtx.GetFromAddress().String(),
				CallID:   args[0],
				Receiver: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
