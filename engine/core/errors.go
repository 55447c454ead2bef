package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRadius          = errors.New("radius must be positive")
	ErrInvalidDimensions      = errors.New("dimensions must be positive")
	ErrInvalidSlices          = errors.New("slices must be at least 3")
	ErrInvalidStacks          = errors.New("stacks must be at least 2")
	ErrIndexCountNotTriangles = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange        = errors.New("index out of vertex range")
	ErrTooManyVertices        = errors.New("vertex count exceeds uint32 index range")
	ErrUnknownPrimitive       = errors.New("unknown primitive kind")
	ErrGeometrySlotsExhausted = errors.New("no free geometry slot")
	ErrInvalidGeometryID      = errors.New("invalid geometry id")
	ErrSystemShutdown         = errors.New("system already shut down")
)

// ContractError reports a caller-supplied parameter that violates a generator
// precondition. It is returned before any geometry is built.
type ContractError struct {
	// Op is the operation that rejected the call, e.g. "mesh.Sphere".
	Op string
	// Param names the offending parameter.
	Param string
	// Value is the rejected value.
	Value interface{}
	Err   error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %v", e.Op, e.Param, e.Value, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// NewContractError builds a ContractError wrapping the given sentinel.
func NewContractError(op, param string, value interface{}, err error) *ContractError {
	return &ContractError{Op: op, Param: param, Value: value, Err: err}
}
