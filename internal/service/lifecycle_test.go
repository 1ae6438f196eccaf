package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

func staffActor(id uuid.UUID) Actor {
	return Actor{UserID: id, Role: models.RoleStaff}
}

func ownerActor(id uuid.UUID) Actor {
	return Actor{UserID: id, Role: models.RoleOwner}
}

func TestCheckTransition(t *testing.T) {
	staff := uuid.New()
	otherStaff := uuid.New()
	owner := uuid.New()

	tests := []struct {
		name     string
		order    models.Order
		to       models.OrderStatus
		actor    Actor
		wantKind models.ErrorKind
	}{
		{
			name:  "pending to preparing",
			order: models.Order{Status: models.OrderStatusPending},
			to:    models.OrderStatusPreparing,
			actor: staffActor(staff),
		},
		{
			name:  "preparing to ready",
			order: models.Order{Status: models.OrderStatusPreparing, KitchenStaffID: &staff},
			to:    models.OrderStatusReady,
			actor: staffActor(staff),
		},
		{
			name:  "ready to served",
			order: models.Order{Status: models.OrderStatusReady, KitchenStaffID: &staff},
			to:    models.OrderStatusServed,
			actor: staffActor(staff),
		},
		{
			name:  "served and paid to completed",
			order: models.Order{Status: models.OrderStatusServed, IsPaid: true, KitchenStaffID: &staff},
			to:    models.OrderStatusCompleted,
			actor: staffActor(staff),
		},
		{
			name:     "unknown status rejected",
			order:    models.Order{Status: models.OrderStatusPending},
			to:       models.OrderStatus("burnt"),
			actor:    staffActor(staff),
			wantKind: models.KindValidation,
		},
		{
			name:     "same status rejected",
			order:    models.Order{Status: models.OrderStatusPreparing, KitchenStaffID: &staff},
			to:       models.OrderStatusPreparing,
			actor:    staffActor(staff),
			wantKind: models.KindConflict,
		},
		{
			name:     "completed order is immutable",
			order:    models.Order{Status: models.OrderStatusCompleted, IsPaid: true},
			to:       models.OrderStatusCancelled,
			actor:    staffActor(staff),
			wantKind: models.KindConflict,
		},
		{
			name:     "cancelled order is immutable",
			order:    models.Order{Status: models.OrderStatusCancelled},
			to:       models.OrderStatusPending,
			actor:    staffActor(staff),
			wantKind: models.KindConflict,
		},
		{
			name:     "other staff cannot touch a claimed order",
			order:    models.Order{Status: models.OrderStatusPreparing, KitchenStaffID: &staff},
			to:       models.OrderStatusReady,
			actor:    staffActor(otherStaff),
			wantKind: models.KindForbidden,
		},
		{
			name:  "owner overrides the claim",
			order: models.Order{Status: models.OrderStatusPreparing, KitchenStaffID: &staff},
			to:    models.OrderStatusReady,
			actor: ownerActor(owner),
		},
		{
			name:     "skipping a stage rejected",
			order:    models.Order{Status: models.OrderStatusPending},
			to:       models.OrderStatusReady,
			actor:    staffActor(staff),
			wantKind: models.KindInvariant,
		},
		{
			name:     "moving backwards rejected",
			order:    models.Order{Status: models.OrderStatusReady, KitchenStaffID: &staff},
			to:       models.OrderStatusPreparing,
			actor:    staffActor(staff),
			wantKind: models.KindInvariant,
		},
		{
			name:     "completion before served rejected",
			order:    models.Order{Status: models.OrderStatusPreparing, IsPaid: true, KitchenStaffID: &staff},
			to:       models.OrderStatusCompleted,
			actor:    staffActor(staff),
			wantKind: models.KindInvariant,
		},
		{
			name:     "completion of an unpaid order rejected",
			order:    models.Order{Status: models.OrderStatusServed, KitchenStaffID: &staff},
			to:       models.OrderStatusCompleted,
			actor:    staffActor(staff),
			wantKind: models.KindInvariant,
		},
		{
			name:  "cancel from pending",
			order: models.Order{Status: models.OrderStatusPending},
			to:    models.OrderStatusCancelled,
			actor: staffActor(staff),
		},
		{
			name:  "cancel from served",
			order: models.Order{Status: models.OrderStatusServed, KitchenStaffID: &staff},
			to:    models.OrderStatusCancelled,
			actor: staffActor(staff),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTransition(&tt.order, tt.to, tt.actor)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("checkTransition() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkTransition() = nil, want error")
			}
			if kind := models.KindOf(err); kind != tt.wantKind {
				t.Errorf("error kind = %s, want %s", kind, tt.wantKind)
			}
		})
	}
}

func TestApplyTransitionClaimsStaff(t *testing.T) {
	staff := uuid.New()
	order := &models.Order{Status: models.OrderStatusPending}

	release := applyTransition(order, models.OrderStatusPreparing, staffActor(staff))

	if release {
		t.Error("preparing should not release the table")
	}
	if order.KitchenStaffID == nil || *order.KitchenStaffID != staff {
		t.Errorf("expected order claimed by %s, got %v", staff, order.KitchenStaffID)
	}
}

func TestApplyTransitionOwnerDoesNotClaim(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusPending}

	applyTransition(order, models.OrderStatusPreparing, ownerActor(uuid.New()))

	if order.KitchenStaffID != nil {
		t.Errorf("owner transition should leave the claim empty, got %v", order.KitchenStaffID)
	}
}

func TestApplyTransitionCompletionForcesPaid(t *testing.T) {
	staff := uuid.New()
	order := &models.Order{Status: models.OrderStatusServed, IsPaid: true, KitchenStaffID: &staff}

	release := applyTransition(order, models.OrderStatusCompleted, staffActor(staff))

	if !release {
		t.Error("completion should release the table")
	}
	if !order.IsPaid {
		t.Error("completed order must stay paid")
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("status = %s, want completed", order.Status)
	}
}

func TestApplyTransitionCancelReleasesTable(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusPreparing}

	if !applyTransition(order, models.OrderStatusCancelled, ownerActor(uuid.New())) {
		t.Error("cancellation should release the table")
	}
}
