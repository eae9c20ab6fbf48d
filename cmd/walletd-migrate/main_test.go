package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pillarwallet/walletd/internal/config"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const (
	keyBasedAddr    = "0xAbC0000000000000000000000000000000000001"
	smartWalletAddr = "0xDeF0000000000000000000000000000000000002"
)

func TestCommands(t *testing.T) {
	t.Setenv("WALLETD_DATADIR", t.TempDir())
	t.Setenv("WALLETD_DB_TYPE", "sqlite")
	t.Setenv("WALLETD_METRICS_ENABLED", "true")

	runCommand(t, nil, "init", "--address", keyBasedAddr, "--wallet-id", "w0")
	runCommand(
		t, nil, "add-account", "--address", smartWalletAddr,
		"--type", string(domain.AccountTypeSmartWallet),
	)

	out := runCommand(t, nil, "accounts")
	var accounts []domain.Account
	require.NoError(t, json.Unmarshal([]byte(out), &accounts))
	require.Len(t, accounts, 2)
	require.Equal(t, keyBasedAddr, accounts[0].ID)
	require.True(t, accounts[0].IsActive)
	require.Equal(t, smartWalletAddr, accounts[1].ID)
	require.False(t, accounts[1].IsActive)

	runCommand(t, nil, "activate", "--id", keyBasedAddr)

	utxos := `[{"satoshis":1000,"confirmations":1},{"satoshis":5,"confirmations":0}]`
	out = runCommand(t, strings.NewReader(utxos), "btc-balance", "--utxos", "-")
	require.JSONEq(t, `{"satoshis":1000,"btc":0.00001}`, out)
}

func TestCommandsInvalidInput(t *testing.T) {
	t.Setenv("WALLETD_DATADIR", t.TempDir())
	t.Setenv("WALLETD_DB_TYPE", "inmemory")

	app.SetArgs([]string{"add-account", "--address", keyBasedAddr, "--type", "UNKNOWN"})
	err := app.ExecuteContext(context.Background())
	teardown()
	require.ErrorIs(t, err, domain.ErrInvalidAccountType)

	t.Cleanup(func() { dbTypeFlag = "" })
	app.SetArgs([]string{"accounts", "--db-type", "postgres"})
	err = app.ExecuteContext(context.Background())
	teardown()
	require.Error(t, err)
}

func TestDatadirFlag(t *testing.T) {
	envDatadir := t.TempDir()
	datadir := t.TempDir()
	t.Setenv("WALLETD_DATADIR", envDatadir)
	t.Setenv("WALLETD_DB_TYPE", "sqlite")
	t.Cleanup(func() { datadirFlag = "" })

	runCommand(t, nil, "accounts", "--datadir", datadir)

	_, err := os.Stat(filepath.Join(datadir, config.DbLocation))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(envDatadir, config.DbLocation))
	require.True(t, os.IsNotExist(err))
}

func runCommand(t *testing.T, in *strings.Reader, args ...string) string {
	t.Helper()

	out := &bytes.Buffer{}
	app.SetOut(out)
	if in != nil {
		app.SetIn(in)
	}
	app.SetArgs(args)

	err := app.ExecuteContext(context.Background())
	teardown()
	require.NoError(t, err)
	return out.String()
}
