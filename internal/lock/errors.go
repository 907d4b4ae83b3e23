package lock

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNoViableBump возникает, когда ни один bump не дал адрес вне кривой
	ErrNoViableBump = errors.New("no viable bump seed")

	// ErrInvalidSeeds возникает при превышении лимитов на количество или длину seeds
	ErrInvalidSeeds = errors.New("invalid seeds")

	// ErrLengthMismatch означает, что длина данных аккаунта не равна длине записи
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrKindMismatch означает, что дискриминатор аккаунта принадлежит другой записи
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrMissingSigner возникает, когда подписант инструкции не задан
	ErrMissingSigner = errors.New("missing signer")
)

// DerivationError describes a seed set that produced no program address.
type DerivationError struct {
	Seeds [][]byte
	Owner solana.PublicKey
	Err   error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive program address under %s (%d seeds): %v", e.Owner, len(e.Seeds), e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when raw account bytes are not an instance of the
// requested record kind. Nothing is parsed when it is returned.
type DecodeError struct {
	Kind   RecordKind
	Reason error // ErrLengthMismatch или ErrKindMismatch
	Want   string
	Got    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v: want %s, got %s", e.Kind, e.Reason, e.Want, e.Got)
}

func (e *DecodeError) Unwrap() error {
	return e.Reason
}
