// Package guard holds ConstructorGuard, a marker that lets commands, queries
// and value objects detect zero-value instances created without their
// constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// is a zero value and the caller supplied no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by the owning
// type's constructor.
//
//	type GetBranchOrdersQuery struct {
//	    branchID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (q GetBranchOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrGetBranchOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
