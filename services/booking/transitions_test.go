package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a1care/models"
)

func reservationAt(path models.FulfillmentPath, status models.ReservationStatus) *models.Reservation {
	return &models.Reservation{ID: "r1", Path: path, Status: status}
}

func TestSelfServicePayThenComplete(t *testing.T) {
	res := reservationAt(models.PathSelfService, models.StatusPendingPayment)

	to, err := resolveTransition(res, ActionPay, RolePatient)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, to)

	res.Status = models.StatusUpcoming
	to, err = resolveTransition(res, ActionComplete, RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, to)
}

func TestStaffMediatedFullChain(t *testing.T) {
	steps := []struct {
		from   models.ReservationStatus
		action Action
		role   Role
		to     models.ReservationStatus
	}{
		{models.StatusNew, ActionAccept, RoleStaff, models.StatusAccepted},
		{models.StatusAccepted, ActionAssign, RoleStaff, models.StatusAssigned},
		{models.StatusAssigned, ActionConfirm, RoleProvider, models.StatusConfirmed},
		{models.StatusConfirmed, ActionComplete, RoleStaff, models.StatusCompleted},
	}

	for _, step := range steps {
		res := reservationAt(models.PathStaffMediated, step.from)
		to, err := resolveTransition(res, step.action, step.role)
		require.NoError(t, err, "action %s from %s", step.action, step.from)
		assert.Equal(t, step.to, to)
	}
}

func TestTerminalStatusRejectsEverything(t *testing.T) {
	for _, status := range []models.ReservationStatus{models.StatusCompleted, models.StatusCancelled} {
		res := reservationAt(models.PathSelfService, status)
		_, err := resolveTransition(res, ActionCancel, RoleStaff)
		assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
	}
}

func TestActionFromWrongStatusRejected(t *testing.T) {
	res := reservationAt(models.PathStaffMediated, models.StatusNew)

	_, err := resolveTransition(res, ActionAssign, RoleStaff)

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestActionFromWrongPathRejected(t *testing.T) {
	res := reservationAt(models.PathSelfService, models.StatusUpcoming)

	_, err := resolveTransition(res, ActionAccept, RoleStaff)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestRoleGate(t *testing.T) {
	res := reservationAt(models.PathStaffMediated, models.StatusNew)

	_, err := resolveTransition(res, ActionAccept, RolePatient)
	assert.ErrorIs(t, err, ErrActorNotAllowed)

	// Admin satisfies any staff requirement.
	to, err := resolveTransition(res, ActionAccept, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, to)
}

func TestCancelLegalFromEveryNonTerminalStatus(t *testing.T) {
	cases := map[models.FulfillmentPath][]models.ReservationStatus{
		models.PathSelfService: {models.StatusPendingPayment, models.StatusUpcoming},
		models.PathStaffMediated: {
			models.StatusNew, models.StatusAccepted,
			models.StatusAssigned, models.StatusConfirmed,
		},
	}

	for path, statuses := range cases {
		for _, status := range statuses {
			res := reservationAt(path, status)
			to, err := resolveTransition(res, ActionCancel, RolePatient)
			require.NoError(t, err, "cancel from %s on %s", status, path)
			assert.Equal(t, models.StatusCancelled, to)
		}
	}
}

func TestConfirmRequiresProvider(t *testing.T) {
	res := reservationAt(models.PathStaffMediated, models.StatusAssigned)

	_, err := resolveTransition(res, ActionConfirm, RoleStaff)
	assert.ErrorIs(t, err, ErrActorNotAllowed)
}
