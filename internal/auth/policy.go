package auth

import "github.com/shiftwise/planning-api/internal"

// The access policy is a pure decision function: no storage, no side effects.
// Handlers and services query it per (actor, target) pair and translate a
// deny into a 403 with the decision's reason code.

type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Err translates a deny into the request-boundary error shape. Permits map to
// nil so call sites can gate with a single `if err := d.Err(); err != nil`.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return internal.NewForbiddenError("access denied", internal.ErrCodeAccessDenied).
		WithDetails(map[string]string{"reason": d.Reason})
}

func Permit() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Deny reason codes. Machine-checkable, stable across releases.
const (
	ReasonNotYourEstablishment   = "not_your_establishment"
	ReasonCannotModifySuperior   = "cannot_modify_superior"
	ReasonEmployeesCannotUpdate  = "employees_cannot_update_profiles"
	ReasonSelfOrManagerOnly      = "self_or_manager_only"
	ReasonManagerOrAdminRequired = "manager_or_admin_required"
	ReasonAdminRequired          = "admin_required"
)

// ProfileRef is the slice of a user record the policy needs to decide on.
type ProfileRef struct {
	ID              int64
	Role            Role
	EstablishmentID *int64
}

// CanReadProfile: admins read anyone, everyone reads themselves, managers read
// their own establishment.
func CanReadProfile(actor *Actor, target ProfileRef) Decision {
	if actor.Role == RoleAdmin {
		return Permit()
	}
	if actor.ID == target.ID {
		return Permit()
	}
	if actor.Role == RoleManager && sameEstablishment(actor.EstablishmentID, target.EstablishmentID) {
		return Permit()
	}
	return Deny(ReasonSelfOrManagerOnly)
}

// CanUpdateProfile: employees never update through this path, not even their
// own record. Managers update themselves and employees of their establishment,
// never peers or superiors. Admins update anyone.
func CanUpdateProfile(actor *Actor, target ProfileRef) Decision {
	if actor.Role == RoleEmployee {
		return Deny(ReasonEmployeesCannotUpdate)
	}
	if actor.Role == RoleManager {
		if !sameEstablishment(actor.EstablishmentID, target.EstablishmentID) {
			return Deny(ReasonNotYourEstablishment)
		}
		if (target.Role == RoleManager || target.Role == RoleAdmin) && target.ID != actor.ID {
			return Deny(ReasonCannotModifySuperior)
		}
	}
	return Permit()
}

// CanInvite gates the first half of the invitation flow: admins invite into
// any establishment, managers only into their own.
func CanInvite(actor *Actor, establishmentID *int64) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Permit()
	case RoleManager:
		if sameEstablishment(actor.EstablishmentID, establishmentID) {
			return Permit()
		}
		return Deny(ReasonNotYourEstablishment)
	}
	return Deny(ReasonManagerOrAdminRequired)
}

// CanListProfiles scopes directory listing: admins list anything, managers
// list their own establishment only.
func CanListProfiles(actor *Actor, establishmentID *int64) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Permit()
	case RoleManager:
		if establishmentID == nil || sameEstablishment(actor.EstablishmentID, establishmentID) {
			return Permit()
		}
		return Deny(ReasonNotYourEstablishment)
	}
	return Deny(ReasonManagerOrAdminRequired)
}

// CanManageSchedule gates shift and template mutation for an establishment.
func CanManageSchedule(actor *Actor, establishmentID *int64) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Permit()
	case RoleManager:
		if sameEstablishment(actor.EstablishmentID, establishmentID) {
			return Permit()
		}
		return Deny(ReasonNotYourEstablishment)
	}
	return Deny(ReasonManagerOrAdminRequired)
}

// CanViewSchedule lets any member of an establishment read its planning.
func CanViewSchedule(actor *Actor, establishmentID *int64) Decision {
	if actor.Role == RoleAdmin {
		return Permit()
	}
	if sameEstablishment(actor.EstablishmentID, establishmentID) {
		return Permit()
	}
	return Deny(ReasonNotYourEstablishment)
}

// CanCreateEstablishment is admin-only.
func CanCreateEstablishment(actor *Actor) Decision {
	if actor.Role == RoleAdmin {
		return Permit()
	}
	return Deny(ReasonAdminRequired)
}

// sameEstablishment requires both sides to be set. Two unassigned accounts do
// not share an establishment.
func sameEstablishment(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
