package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/openalpha/capital-call/x/capitalcall/keeper"
	"github.com/openalpha/capital-call/x/capitalcall/types"
)

// GetQueryCmd returns the cli query commands for the capitalcall module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "capitalcall",
		Short:                      "Querying commands for the capitalcall module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryConfig(),
		CmdQueryCapitalCall(),
		CmdQueryVoucher(),
	)

	return cmd
}

// queryStore reads a raw key from the module store and unmarshals it into out
func queryStore(clientCtx client.Context, key []byte, out interface{}) error {
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return err
	}
	if bz == nil {
		return fmt.Errorf("not found")
	}
	return json.Unmarshal(bz, out)
}

// printJSON pretty-prints a query result
func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// CmdQueryConfig returns the command to query the chain configuration
func CmdQueryConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Query the capital call configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			var config types.Config
			if err := queryStore(clientCtx, keeper.ConfigKey, &config); err != nil {
				return err
			}
			return printJSON(config)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryCapitalCall returns the command to query a capital call by ID
func CmdQueryCapitalCall() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call [call-id]",
		Short: "Query a capital call by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			key := append(keeper.CallKeyPrefix, []byte(args[0])...)
			var call types.CapitalCall
			if err := queryStore(clientCtx, key, &call); err != nil {
				return err
			}
			return printJSON(call)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryVoucher returns the command to query a depositor's voucher
func CmdQueryVoucher() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher [call-id] [depositor]",
		Short: "Query a depositor's voucher within a capital call",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			key := append(keeper.VoucherKeyPrefix, []byte(args[0]+":"+args[1])...)
			var voucher types.Voucher
			if err := queryStore(clientCtx, key, &voucher); err != nil {
				return err
			}
			return printJSON(voucher)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
