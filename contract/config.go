package contract

import "coopvest_dao/sdk"

// ContractConfig is the deploy-time singleton: who owns the instance, which
// asset it custodies, and the emergency pause gate.
type ContractConfig struct {
	Owner  sdk.Address
	Asset  sdk.Asset
	Paused bool
}

var validAssets = []string{
	sdk.AssetHbd.String(),
	sdk.AssetHive.String(),
}

// isValidAsset checks if a given token string is one of the supported assets.
func isValidAsset(token string) bool {
	for _, a := range validAssets {
		if token == a {
			return true
		}
	}
	return false
}

func saveContractConfig(cfg *ContractConfig) {
	sdk.StateSetObject(contractConfigKey(), string(EncodeContractConfig(cfg)))
}

func loadContractConfig() *ContractConfig {
	ptr := sdk.StateGetObject(contractConfigKey())
	if ptr == nil || *ptr == "" {
		return nil
	}
	cfg, err := DecodeContractConfig([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode contract config")
	}
	return cfg
}

func isContractInitialized() bool {
	return loadContractConfig() != nil
}

// treasuryAsset returns the custodial asset chosen at init.
func treasuryAsset() sdk.Asset {
	cfg := loadContractConfig()
	if cfg == nil {
		sdk.Abort("contract not initialized")
	}
	return cfg.Asset
}

func isPaused() bool {
	cfg := loadContractConfig()
	return cfg != nil && cfg.Paused
}

// setPaused flips the emergency stop. Only the admin capability may toggle.
func setPaused(caller sdk.Address, paused bool) error {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return errUnauthorized("administer-members capability required to toggle pause")
	}
	cfg := loadContractConfig()
	if cfg == nil {
		return errInvalidState("contract not initialized")
	}
	cfg.Paused = paused
	saveContractConfig(cfg)
	emitPauseToggled(AddressToString(caller), paused)
	return nil
}
