package sdk

type Asset string

const (
	AssetHive       Asset = "hive"
	AssetHbd        Asset = "hbd"
	AssetHbdSavings Asset = "hbd_savings"
)

// String returns the raw ticker string for logging or host calls.
// Example payload: sdk.AssetHbd.String()
func (a Asset) String() string {
	return string(a)
}
