package issue

import (
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/authorization"
)

// Actor is the already-authenticated caller, or a guest when UserID is nil.
type Actor struct {
	UserID   *uint
	Username string
	Role     authorization.UserRole
}

// Guest returns an anonymous actor. name is the reporter or contact name the
// guest typed, used as the comment author.
func Guest(name string) Actor {
	return Actor{Username: name, Role: authorization.RoleGuest}
}

func NewActor(userID uint, username string, role authorization.UserRole) Actor {
	return Actor{UserID: &userID, Username: username, Role: role}
}

func (a Actor) IsAnonymous() bool {
	return a.UserID == nil
}

// IsInternal reports whether the actor sees internal-only items.
func (a Actor) IsInternal() bool {
	return a.Role.IsInternal()
}

// DisplayName falls back to "System" for actors without a name, so audit
// rows are never blank.
func (a Actor) DisplayName() string {
	if a.Username == "" {
		return "System"
	}
	return a.Username
}

// AuthorType maps the role onto the comment author taxonomy. Guests write as
// USER.
func (a Actor) AuthorType() vo.AuthorType {
	switch a.Role {
	case authorization.RoleAdmin:
		return vo.AuthorTypeAdmin
	case authorization.RoleDeveloper:
		return vo.AuthorTypeDeveloper
	case authorization.RoleSupport:
		return vo.AuthorTypeSupport
	default:
		return vo.AuthorTypeUser
	}
}
