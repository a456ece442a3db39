package writer

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks a caller bug: the layout logic driving the
// writer broke a start/finish balance or an overflow bound.
var ErrContractViolation = errors.New("writer contract violation")

// ContractViolation is the panic value raised when a caller breaks the
// writer's contract. It is an engine defect, never a property of the input.
type ContractViolation struct {
	// Op is the writer operation that detected the violation.
	Op string

	// Invariant describes what was broken.
	Invariant string
}

// Error implements the error interface.
func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrContractViolation, v.Op, v.Invariant)
}

// Unwrap returns ErrContractViolation.
func (v *ContractViolation) Unwrap() error {
	return ErrContractViolation
}

func violate(op, invariant string) {
	panic(&ContractViolation{Op: op, Invariant: invariant})
}

// Guard runs fn and converts a ContractViolation panic into an error.
// Any other panic is propagated unchanged.
func Guard(fn func()) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		violation, ok := recovered.(*ContractViolation)
		if !ok {
			panic(recovered)
		}
		err = violation
	}()

	fn()
	return nil
}
