package domain_test

import (
	"testing"
	"time"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_Transition(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	member := domain.Actor{UserID: "member-1", Role: domain.RoleMember}

	tests := []struct {
		name       string
		from       domain.InvoiceStatus
		action     domain.InvoiceAction
		actor      domain.Actor
		want       domain.InvoiceStatus
		wantErr    error
	}{
		{name: "draft can be submitted", from: domain.InvoiceDraft, action: domain.ActionSubmit, actor: member, want: domain.InvoiceSubmitted},
		{name: "draft can be cancelled", from: domain.InvoiceDraft, action: domain.ActionCancel, actor: member, want: domain.InvoiceCancelled},
		{name: "draft cannot be approved", from: domain.InvoiceDraft, action: domain.ActionApprove, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "draft cannot be paid", from: domain.InvoiceDraft, action: domain.ActionMarkPaid, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "submitted can be approved", from: domain.InvoiceSubmitted, action: domain.ActionApprove, actor: admin, want: domain.InvoiceApproved},
		{name: "submitted can be written off", from: domain.InvoiceSubmitted, action: domain.ActionWriteOff, actor: admin, want: domain.InvoiceWrittenOff},
		{name: "submitted cannot be paid directly", from: domain.InvoiceSubmitted, action: domain.ActionMarkPaid, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "approved can be paid", from: domain.InvoiceApproved, action: domain.ActionMarkPaid, actor: admin, want: domain.InvoicePaid},
		{name: "approved can be cancelled", from: domain.InvoiceApproved, action: domain.ActionCancel, actor: member, want: domain.InvoiceCancelled},
		{name: "paid cannot be cancelled", from: domain.InvoicePaid, action: domain.ActionCancel, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "paid cannot be written off", from: domain.InvoicePaid, action: domain.ActionWriteOff, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "cancelled is terminal", from: domain.InvoiceCancelled, action: domain.ActionSubmit, actor: member, wantErr: apperrors.ErrInvalidTransition},
		{name: "written off is terminal", from: domain.InvoiceWrittenOff, action: domain.ActionMarkPaid, actor: admin, wantErr: apperrors.ErrInvalidTransition},
		{name: "member cannot approve", from: domain.InvoiceSubmitted, action: domain.ActionApprove, actor: member, wantErr: apperrors.ErrForbidden},
		{name: "member cannot mark paid", from: domain.InvoiceApproved, action: domain.ActionMarkPaid, actor: member, wantErr: apperrors.ErrForbidden},
		{name: "member cannot write off", from: domain.InvoiceSubmitted, action: domain.ActionWriteOff, actor: member, wantErr: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{InvoiceID: "inv-1", Status: tt.from}

			got, err := inv.Transition(tt.action, tt.actor, now)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, got.Status, "status must be unchanged on rejected transition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, tt.actor.UserID, got.LastUpdatedBy)
		})
	}
}

func TestInvoice_Transition_SetsPaidAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	inv := domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoiceApproved}
	got, err := inv.Transition(domain.ActionMarkPaid, admin, now)

	require.NoError(t, err)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(now))
}

func TestInvoice_IsTerminal(t *testing.T) {
	assert.False(t, domain.Invoice{Status: domain.InvoiceDraft}.IsTerminal())
	assert.False(t, domain.Invoice{Status: domain.InvoiceApproved}.IsTerminal())
	assert.True(t, domain.Invoice{Status: domain.InvoicePaid}.IsTerminal())
	assert.True(t, domain.Invoice{Status: domain.InvoiceCancelled}.IsTerminal())
	assert.True(t, domain.Invoice{Status: domain.InvoiceWrittenOff}.IsTerminal())
}
