package balance

import "fmt"

// Well-known coordinate components. Every account has a DEFAULT address, and
// all cash movements use the commercial bank money asset unless a custom
// instruction says otherwise.
const (
	DefaultAddress = "DEFAULT"
	DefaultAsset   = "COMMERCIAL_BANK_MONEY"
)

// Coordinate identifies one balance bucket within an account. It is a plain
// comparable struct so it can key a map directly.
type Coordinate struct {
	AccountAddress string
	Asset          string
	Denomination   string
	Phase          Phase
}

// NewCoordinate builds a coordinate at the DEFAULT address and asset.
func NewCoordinate(denomination string, phase Phase) Coordinate {
	return Coordinate{
		AccountAddress: DefaultAddress,
		Asset:          DefaultAsset,
		Denomination:   denomination,
		Phase:          phase,
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", c.AccountAddress, c.Asset, c.Denomination, c.Phase)
}

// Less orders coordinates by field tuple, for deterministic iteration in
// error messages and test output.
func (c Coordinate) Less(other Coordinate) bool {
	if c.AccountAddress != other.AccountAddress {
		return c.AccountAddress < other.AccountAddress
	}
	if c.Asset != other.Asset {
		return c.Asset < other.Asset
	}
	if c.Denomination != other.Denomination {
		return c.Denomination < other.Denomination
	}
	return c.Phase < other.Phase
}
