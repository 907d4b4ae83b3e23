package lock

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Programs holds every program id an instruction may reference. Values come
// from configuration; nothing in this package hardcodes them.
type Programs struct {
	Lock            solana.PublicKey
	CPSwap          solana.PublicKey
	CLMM            solana.PublicKey
	Token           solana.PublicKey
	Token2022       solana.PublicKey
	AssociatedToken solana.PublicKey
	Metadata        solana.PublicKey
	Memo            solana.PublicKey
	System          solana.PublicKey
	Rent            solana.PublicKey
}

// Validate reports the first program id left at its zero value. The system
// program id is all zeros and is not checked.
func (p Programs) Validate() error {
	for _, f := range []struct {
		name string
		key  solana.PublicKey
	}{
		{"lock", p.Lock},
		{"cp_swap", p.CPSwap},
		{"clmm", p.CLMM},
		{"token", p.Token},
		{"token_2022", p.Token2022},
		{"associated_token", p.AssociatedToken},
		{"metadata", p.Metadata},
		{"memo", p.Memo},
		{"rent", p.Rent},
	} {
		if f.key.IsZero() {
			return fmt.Errorf("program id %q is not set", f.name)
		}
	}
	return nil
}
