package typeddata

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const domainType = "EIP712Domain"

// Domain scopes every signature to one hub deployment. It is passed to the builder explicitly
// so that builders for several hubs can coexist in one process.
type Domain struct {
	Name    string `json:"name" mapstructure:"name"`
	Version string `json:"version" mapstructure:"version"`
	ChainID uint64 `json:"chainId,omitempty" mapstructure:"chain-id"`
}

// DefaultDomain returns the domain used by the public hub.
func DefaultDomain() Domain {
	return Domain{
		Name:    "snapshot",
		Version: "0.1.4",
		ChainID: 1,
	}
}

// Fields returns the EIP712Domain type derived from the domain value. chainId is only part of
// the type when the domain carries one, so the type and the value can never disagree.
func (d Domain) Fields() []Field {
	fields := []Field{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
	}
	if d.ChainID != 0 {
		fields = append(fields, Field{Name: "chainId", Type: "uint256"})
	}
	return fields
}

func (d Domain) typedDataDomain() apitypes.TypedDataDomain {
	domain := apitypes.TypedDataDomain{
		Name:    d.Name,
		Version: d.Version,
	}
	if d.ChainID != 0 {
		domain.ChainId = math.NewHexOrDecimal256(int64(d.ChainID))
	}
	return domain
}
