package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/pkg/bitcoin"
	"github.com/spf13/cobra"
)

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "create the default key based account and migrate the legacy state",
		RunE:  initAction,
	}
	addAccountCmd = &cobra.Command{
		Use:   "add-account",
		Short: "add or update an account of the wallet",
		RunE:  addAccountAction,
	}
	activateCmd = &cobra.Command{
		Use:   "activate",
		Short: "mark an account as the active one",
		RunE:  activateAction,
	}
	switchCmd = &cobra.Command{
		Use:   "switch",
		Short: "switch the active account and refresh the wallet assets",
		RunE:  switchAction,
	}
	initSmartWalletCmd = &cobra.Command{
		Use:   "init-smart-wallet",
		Short: "connect the active smart wallet account",
		RunE:  initSmartWalletAction,
	}
	accountsCmd = &cobra.Command{
		Use:   "accounts",
		Short: "list the accounts of the wallet",
		RunE:  accountsAction,
	}
	btcBalanceCmd = &cobra.Command{
		Use:   "btc-balance",
		Short: "compute the spendable balance of a list of unspents",
		RunE:  btcBalanceAction,
	}
	btcImportCmd = &cobra.Command{
		Use:   "btc-import",
		Short: "import the raw transactions of a Bitcoin address into the history",
		RunE:  btcImportAction,
	}

	addressFlag         string
	walletIDFlag        string
	skipMigrationFlag   bool
	accountTypeFlag     string
	extraFlag           string
	backendAccountsFlag string
	accountIDFlag       string
	privateKeyFlag      string
	inputFileFlag       string
)

func init() {
	initCmd.Flags().StringVar(&addressFlag, "address", "", "the address of the key based account")
	initCmd.Flags().StringVar(&walletIDFlag, "wallet-id", "", "the backend wallet id")
	initCmd.Flags().BoolVar(&skipMigrationFlag, "skip-migration", false, "do not migrate the legacy state")
	initCmd.MarkFlagRequired("address")

	addAccountCmd.Flags().StringVar(&addressFlag, "address", "", "the address of the account")
	addAccountCmd.Flags().StringVar(&accountTypeFlag, "type", string(domain.AccountTypeSmartWallet), "the account type")
	addAccountCmd.Flags().StringVar(&extraFlag, "extra", "", "the account extra payload as json object")
	addAccountCmd.Flags().StringVar(&backendAccountsFlag, "backend-accounts", "", "path to the json list of backend accounts")
	addAccountCmd.MarkFlagRequired("address")

	activateCmd.Flags().StringVar(&accountIDFlag, "id", "", "the id of the account")
	activateCmd.MarkFlagRequired("id")

	switchCmd.Flags().StringVar(&accountIDFlag, "id", "", "the id of the account")
	switchCmd.Flags().StringVar(&privateKeyFlag, "private-key", "", "the wallet private key")
	switchCmd.MarkFlagRequired("id")

	initSmartWalletCmd.Flags().StringVar(&privateKeyFlag, "private-key", "", "the wallet private key")
	initSmartWalletCmd.MarkFlagRequired("private-key")

	btcBalanceCmd.Flags().StringVar(&inputFileFlag, "utxos", "-", "path to the json list of unspents, - for stdin")

	btcImportCmd.Flags().StringVar(&addressFlag, "address", "", "the Bitcoin address")
	btcImportCmd.Flags().StringVar(&inputFileFlag, "txs", "-", "path to the json list of raw transactions, - for stdin")
	btcImportCmd.MarkFlagRequired("address")
}

func initAction(cmd *cobra.Command, _ []string) error {
	return appConfig.AccountService().InitDefaultAccount(
		cmd.Context(), addressFlag, walletIDFlag, !skipMigrationFlag,
	)
}

func addAccountAction(cmd *cobra.Command, _ []string) error {
	var extra map[string]interface{}
	if extraFlag != "" {
		if err := json.Unmarshal([]byte(extraFlag), &extra); err != nil {
			return fmt.Errorf("invalid extra: %w", err)
		}
	}

	var backendAccounts []domain.BackendAccount
	if backendAccountsFlag != "" {
		if err := readJSON(cmd, backendAccountsFlag, &backendAccounts); err != nil {
			return fmt.Errorf("invalid backend accounts: %w", err)
		}
	}

	return appConfig.AccountService().AddNewAccount(
		cmd.Context(), addressFlag, domain.AccountType(accountTypeFlag),
		extra, backendAccounts,
	)
}

func activateAction(cmd *cobra.Command, _ []string) error {
	return appConfig.AccountService().SetActiveAccount(cmd.Context(), accountIDFlag)
}

func switchAction(cmd *cobra.Command, _ []string) error {
	return appConfig.AccountService().SwitchAccount(
		cmd.Context(), accountIDFlag, privateKeyFlag,
	)
}

func initSmartWalletAction(cmd *cobra.Command, _ []string) error {
	return appConfig.AccountService().InitSmartWalletAccount(
		cmd.Context(), privateKeyFlag,
	)
}

func accountsAction(cmd *cobra.Command, _ []string) error {
	accounts, err := appConfig.AccountService().ListAccounts(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), accounts)
}

func btcBalanceAction(cmd *cobra.Command, _ []string) error {
	var utxos []bitcoin.Utxo
	if err := readJSON(cmd, inputFileFlag, &utxos); err != nil {
		return fmt.Errorf("invalid unspents: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), appConfig.BitcoinService().Balance(utxos))
}

func btcImportAction(cmd *cobra.Command, _ []string) error {
	var txs []bitcoin.RawTransaction
	if err := readJSON(cmd, inputFileFlag, &txs); err != nil {
		return fmt.Errorf("invalid transactions: %w", err)
	}

	events, err := appConfig.BitcoinService().ImportTransactions(
		cmd.Context(), addressFlag, txs,
	)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), events)
}

func readJSON(cmd *cobra.Command, path string, v interface{}) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(v)
}

func printJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}
