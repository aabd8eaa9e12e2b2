package booking

import (
	"fmt"

	"a1care/models"
)

// Action is a transition trigger on a reservation.
type Action string

const (
	ActionPay      Action = "pay"      // self-service: payment confirmed
	ActionAccept   Action = "accept"   // staff-mediated: request acknowledged
	ActionAssign   Action = "assign"   // staff-mediated: provider dispatched
	ActionConfirm  Action = "confirm"  // staff-mediated: assignee confirms
	ActionComplete Action = "complete" // both paths
	ActionCancel   Action = "cancel"   // both paths, any non-terminal status
)

// Role is the actor role supplied by the identity collaborator.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// transitionRule pins an action to a fulfillment path, its legal source
// statuses, its target, and the roles that may trigger it.
type transitionRule struct {
	path  models.FulfillmentPath
	from  []models.ReservationStatus
	to    models.ReservationStatus
	roles []Role
}

// The two paths share only the terminal statuses; a reservation never jumps
// between them. Cancel is the one action legal from multiple sources.
var transitionTable = map[Action][]transitionRule{
	ActionPay: {
		{
			path:  models.PathSelfService,
			from:  []models.ReservationStatus{models.StatusPendingPayment},
			to:    models.StatusUpcoming,
			roles: []Role{RolePatient, RoleStaff},
		},
	},
	ActionAccept: {
		{
			path:  models.PathStaffMediated,
			from:  []models.ReservationStatus{models.StatusNew},
			to:    models.StatusAccepted,
			roles: []Role{RoleStaff},
		},
	},
	ActionAssign: {
		{
			path:  models.PathStaffMediated,
			from:  []models.ReservationStatus{models.StatusAccepted},
			to:    models.StatusAssigned,
			roles: []Role{RoleStaff},
		},
	},
	ActionConfirm: {
		{
			path:  models.PathStaffMediated,
			from:  []models.ReservationStatus{models.StatusAssigned},
			to:    models.StatusConfirmed,
			roles: []Role{RoleProvider},
		},
	},
	ActionComplete: {
		{
			path:  models.PathSelfService,
			from:  []models.ReservationStatus{models.StatusUpcoming},
			to:    models.StatusCompleted,
			roles: []Role{RoleProvider, RoleStaff},
		},
		{
			path:  models.PathStaffMediated,
			from:  []models.ReservationStatus{models.StatusConfirmed},
			to:    models.StatusCompleted,
			roles: []Role{RoleProvider, RoleStaff},
		},
	},
	ActionCancel: {
		{
			path:  models.PathSelfService,
			from:  []models.ReservationStatus{models.StatusPendingPayment, models.StatusUpcoming},
			to:    models.StatusCancelled,
			roles: []Role{RolePatient, RoleProvider, RoleStaff},
		},
		{
			path: models.PathStaffMediated,
			from: []models.ReservationStatus{
				models.StatusNew, models.StatusAccepted,
				models.StatusAssigned, models.StatusConfirmed,
			},
			to:    models.StatusCancelled,
			roles: []Role{RolePatient, RoleProvider, RoleStaff},
		},
	},
}

// resolveTransition returns the target status for the action on the given
// reservation, or a *TransitionError / ErrActorNotAllowed.
func resolveTransition(res *models.Reservation, action Action, role Role) (models.ReservationStatus, error) {
	rules, ok := transitionTable[action]
	if !ok {
		return "", &TransitionError{Action: action, From: string(res.Status), Reason: "unknown action"}
	}
	if res.Status.IsTerminal() {
		return "", &TransitionError{Action: action, From: string(res.Status), Reason: "reservation is terminal"}
	}

	for _, rule := range rules {
		if rule.path != res.Path {
			continue
		}
		if !statusIn(res.Status, rule.from) {
			continue
		}
		if !roleAllowed(role, rule.roles) {
			return "", fmt.Errorf("%w: role %s cannot %s", ErrActorNotAllowed, role, action)
		}
		return rule.to, nil
	}
	return "", &TransitionError{Action: action, From: string(res.Status), Reason: "no rule for path " + string(res.Path)}
}

func statusIn(s models.ReservationStatus, set []models.ReservationStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

// roleAllowed treats admin as satisfying any staff requirement.
func roleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
		if a == RoleStaff && role == RoleAdmin {
			return true
		}
	}
	return false
}
