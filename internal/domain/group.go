package domain

import (
	"context"

	"github.com/uptrace/bun"
)

// AcademicGroup represents a class group for a course/subject. The class group
// code is a unique natural key.
type AcademicGroup struct {
	bun.BaseModel `bun:"table:academic_groups,alias:ag"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	Course     string `bun:"course,notnull" json:"course"`
	ClassGroup string `bun:"class_group,notnull,unique" json:"class_group"`
	Subject    string `bun:"subject" json:"subject"`
}

// GroupMember links a user to an academic group.
type GroupMember struct {
	bun.BaseModel `bun:"table:academic_group_users,alias:agu"`

	GroupID int64 `bun:"group_id,pk" json:"group_id"`
	UserID  int64 `bun:"user_id,pk" json:"user_id"`
}

// AcademicGroupUpdate carries a partial group update.
type AcademicGroupUpdate struct {
	Course     *string
	ClassGroup *string
	Subject    *string
}

// AcademicGroupRepository defines storage operations for academic groups and
// their membership.
type AcademicGroupRepository interface {
	Create(ctx context.Context, g *AcademicGroup) error
	GetByID(ctx context.Context, id int64) (*AcademicGroup, error)
	GetByClassGroup(ctx context.Context, classGroup string) (*AcademicGroup, error)
	List(ctx context.Context, params ListParams) ([]*AcademicGroup, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*AcademicGroup, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClassGroupExists(ctx context.Context, classGroup string, excludeID int64) (bool, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) (bool, error)
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	ListMembers(ctx context.Context, groupID int64, skip, limit int) ([]*User, error)
}

// AcademicGroupService defines the business logic for academic groups.
type AcademicGroupService interface {
	CreateGroup(ctx context.Context, course, classGroup, subject string) (*AcademicGroup, error)
	GetGroup(ctx context.Context, id int64) (*AcademicGroup, error)
	ListGroups(ctx context.Context, skip, limit int) ([]*AcademicGroup, error)
	UpdateGroup(ctx context.Context, id int64, update AcademicGroupUpdate) (*AcademicGroup, error)
	DeleteGroup(ctx context.Context, id int64) (bool, error)
	AddUserToGroup(ctx context.Context, groupID, userID int64) (*AcademicGroup, error)
	RemoveUserFromGroup(ctx context.Context, groupID, userID int64) (bool, error)
	ListGroupMembers(ctx context.Context, groupID int64, skip, limit int) ([]*User, error)
}
