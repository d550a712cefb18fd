package session

import (
	"fmt"

	"github.com/hirosato/smartrt/internal/domain/errors"
)

// Entity names a record collection guarded by the permission matrix
type Entity string

const (
	EntityResident     Entity = "resident"
	EntityTransaction  Entity = "transaction"
	EntityReport       Entity = "report"
	EntityLetter       Entity = "letter"
	EntityAnnouncement Entity = "announcement"
	EntityProfile      Entity = "profile"
)

// Action is an operation on an entity
type Action string

const (
	ActionRead         Action = "read"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionChangeStatus Action = "change status of"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionPrint        Action = "print"
	ActionDraft        Action = "draft"
)

var permissions = map[Role]map[Entity][]Action{
	RoleResident: {
		EntityResident:     {ActionRead},
		EntityTransaction:  {ActionRead},
		EntityReport:       {ActionRead, ActionCreate},
		EntityLetter:       {ActionRead, ActionCreate, ActionPrint},
		EntityAnnouncement: {ActionRead},
		EntityProfile:      {ActionRead},
	},
	RoleAdmin: {
		EntityResident:     {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		EntityTransaction:  {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		EntityReport:       {ActionRead, ActionChangeStatus, ActionDelete, ActionDraft},
		EntityLetter:       {ActionRead, ActionApprove, ActionReject, ActionPrint, ActionDraft},
		EntityAnnouncement: {ActionRead, ActionCreate, ActionDelete, ActionDraft},
		EntityProfile:      {ActionRead, ActionUpdate},
	},
}

// Allowed reports whether role may perform action on entity
func Allowed(role Role, entity Entity, action Action) bool {
	for _, a := range permissions[role][entity] {
		if a == action {
			return true
		}
	}
	return false
}

// Require returns a PermissionDenied error unless the session may perform action on entity
func (s *Session) Require(entity Entity, action Action) error {
	if s == nil {
		return errors.NewPermissionDeniedError("an active session is required")
	}
	if !Allowed(s.Role, entity, action) {
		return errors.NewPermissionDeniedError(fmt.Sprintf("role %s may not %s %s", s.Role, action, entity)).
			WithDetail("role", string(s.Role))
	}
	return nil
}
