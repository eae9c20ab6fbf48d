package domain

// UpgradeStatus is the progress of the upgrade from a key-based account to
// a smart wallet.
type UpgradeStatus string

const (
	UpgradeStatusUnknown            UpgradeStatus = ""
	UpgradeStatusAccountCreated     UpgradeStatus = "ACCOUNT_CREATED"
	UpgradeStatusDeploying          UpgradeStatus = "DEPLOYING"
	UpgradeStatusTransferringAssets UpgradeStatus = "TRANSFERRING_ASSETS"
	UpgradeStatusDeploymentComplete UpgradeStatus = "DEPLOYMENT_COMPLETE"
)

// IsBusy returns whether an upgrade step is in flight.
func (s UpgradeStatus) IsBusy() bool {
	return s == UpgradeStatusDeploying || s == UpgradeStatusTransferringAssets
}

// ConnectedAccountState is the state of the smart wallet account as
// reported by the smart wallet SDK once connected.
type ConnectedAccountState string

const (
	ConnectedAccountStateUnknown  ConnectedAccountState = ""
	ConnectedAccountStateCreated  ConnectedAccountState = "Created"
	ConnectedAccountStateDeployed ConnectedAccountState = "Deployed"
)

// NextUpgradeStatus returns the upgrade status to set after account has been
// activated, or false if the status must be left as it is.
//
// A deployed account always completes the upgrade. Otherwise a busy status
// is never reset, and any other status goes back to ACCOUNT_CREATED. Only
// smart wallet accounts with extra metadata are affected.
func NextUpgradeStatus(
	account Account, state ConnectedAccountState, current UpgradeStatus,
) (UpgradeStatus, bool) {
	if !account.IsSmartWallet() || !account.HasExtra() {
		return current, false
	}
	if state == ConnectedAccountStateDeployed {
		return UpgradeStatusDeploymentComplete, true
	}
	if current.IsBusy() {
		return current, false
	}
	return UpgradeStatusAccountCreated, true
}
