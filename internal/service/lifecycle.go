package service

import (
	"github.com/scandine/ordering-service/internal/models"
)

// nextStatuses is the forward path of the order lifecycle. Cancellation is
// additionally reachable from every non-terminal state.
var nextStatuses = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:   models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusServed,
	models.OrderStatusServed:    models.OrderStatusCompleted,
}

// checkTransition validates a status transition without mutating the order.
// The rules mirror the kitchen workflow: only the claiming staff member (or
// the owner) may advance an order, completion requires a served and paid
// order, and terminal orders are immutable.
func checkTransition(order *models.Order, newStatus models.OrderStatus, actor Actor) error {
	if !newStatus.IsValid() {
		return models.NewValidationError("unknown order status %q", newStatus)
	}
	if newStatus == order.Status {
		return models.NewConflictError("order is already %s", order.Status)
	}
	if order.Status.IsTerminal() {
		return models.NewConflictError("order is %s and can no longer change", order.Status)
	}
	if !actor.IsOwner() && order.KitchenStaffID != nil && *order.KitchenStaffID != actor.UserID {
		return models.NewForbiddenError("order is being handled by another staff member")
	}

	if newStatus == models.OrderStatusCompleted {
		if order.Status != models.OrderStatusServed {
			return models.NewInvariantError("order must be served before completion")
		}
		if !order.IsPaid {
			return models.NewInvariantError("order must be paid before completion")
		}
		return nil
	}
	if newStatus == models.OrderStatusCancelled {
		return nil
	}
	if nextStatuses[order.Status] != newStatus {
		return models.NewInvariantError("cannot move order from %s to %s", order.Status, newStatus)
	}
	return nil
}

// applyTransition mutates the order for an already-validated transition and
// reports whether the table should be released.
func applyTransition(order *models.Order, newStatus models.OrderStatus, actor Actor) (releaseTable bool) {
	// First staff member to act claims the order for future transitions
	if order.KitchenStaffID == nil && !actor.IsOwner() {
		staffID := actor.UserID
		order.KitchenStaffID = &staffID
	}

	order.Status = newStatus
	if newStatus == models.OrderStatusCompleted {
		order.IsPaid = true
	}
	return newStatus.IsTerminal()
}
