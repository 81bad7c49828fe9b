package vegamdb

import (
	"errors"
	"fmt"

	"github.com/LuciAkirami/vegamdb/index"
	"github.com/LuciAkirami/vegamdb/vectorstore"
)

// ErrDimensionMismatch indicates a vector or query whose length does not
// match the database's established dimension.
//
// The underlying error, if any, is available via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("vegamdb: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrOutOfRange indicates an id outside [0, N).
type ErrOutOfRange struct {
	ID    uint32
	Count int
	cause error
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("vegamdb: id %d out of range [0, %d)", e.ID, e.Count)
}

func (e *ErrOutOfRange) Unwrap() error { return e.cause }

// ErrNotTrained indicates a search was attempted against an index that is
// set but not yet trained. The façade's Search always builds before
// delegating, so this only surfaces if a caller invokes an index's Search
// directly, bypassing DB.
type ErrNotTrained struct {
	Index string
	cause error
}

func (e *ErrNotTrained) Error() string {
	return fmt.Sprintf("vegamdb: index %s is not trained", e.Index)
}

func (e *ErrNotTrained) Unwrap() error { return e.cause }

// ErrInvalidParameter indicates a caller-supplied parameter outside its
// valid range (k, num_trees, k_leaf, n_clusters).
type ErrInvalidParameter struct {
	Name   string
	Reason string
	cause  error
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("vegamdb: invalid parameter %s: %s", e.Name, e.Reason)
}

func (e *ErrInvalidParameter) Unwrap() error { return e.cause }

// ErrCorruptIndex indicates a persisted index payload failed a structural
// check during load.
type ErrCorruptIndex struct {
	Index  string
	Reason string
	cause  error
}

func (e *ErrCorruptIndex) Error() string {
	return fmt.Sprintf("vegamdb: corrupt %s payload: %s", e.Index, e.Reason)
}

func (e *ErrCorruptIndex) Unwrap() error { return e.cause }

// translateError maps the leaf-package error types raised by vectorstore
// and index implementations onto the façade's own typed errors, so
// callers of DB never need to import those packages to inspect a failure.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *vectorstore.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var oor *vectorstore.ErrOutOfRange
	if errors.As(err, &oor) {
		return &ErrOutOfRange{ID: oor.ID, Count: oor.Count, cause: err}
	}
	var nt *index.ErrNotTrained
	if errors.As(err, &nt) {
		return &ErrNotTrained{Index: nt.Index, cause: err}
	}
	var ip *index.ErrInvalidParameter
	if errors.As(err, &ip) {
		return &ErrInvalidParameter{Name: ip.Name, Reason: ip.Reason, cause: err}
	}
	var cp *index.ErrCorruptPayload
	if errors.As(err, &cp) {
		return &ErrCorruptIndex{Index: cp.Index, Reason: cp.Reason, cause: err}
	}

	return err
}
