// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, enforces the rules that
// depend on stored state (route id guards, the order status lifecycle,
// delete preconditions) and calls repository methods to change the data.
package service

import (
	"fmt"

	"github.com/deppfellow/grubdash/internal/database"
	"github.com/deppfellow/grubdash/internal/errs"
	"github.com/pkg/errors"
)

// Error codes for requests that conflict with stored state.
const (
	CodeIDMismatch            = "ID_MISMATCH"
	CodeOrderDelivered        = "ORDER_DELIVERED"
	CodeOrderStatusRegression = "ORDER_STATUS_REGRESSION"
	CodeOrderNotPending       = "ORDER_NOT_PENDING"
)

func notFound(resource, id string) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("%s id not found: %s", resource, id), false, nil)
}

func idMismatch(resource, payloadID, routeID string) *errs.HTTPError {
	return errs.NewConflictError(
		fmt.Sprintf("%s id does not match route id. %s: %s, Route: %s", resource, resource, payloadID, routeID),
		CodeIDMismatch,
	)
}

// storeError maps repository errors for the record addressed by id.
func storeError(err error, resource, id string) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound(resource, id)
	}
	return err
}
