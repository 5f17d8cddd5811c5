package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type academicGroupRepository struct {
	*Generic[domain.AcademicGroup]
}

// NewAcademicGroupRepository returns an academic group repository backed by db.
func NewAcademicGroupRepository(db *bun.DB) domain.AcademicGroupRepository {
	return &academicGroupRepository{Generic: NewGeneric[domain.AcademicGroup](db)}
}

func (r *academicGroupRepository) Create(ctx context.Context, g *domain.AcademicGroup) error {
	if err := r.Generic.Create(ctx, g); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrDuplicateClassGroup
		}
		return fmt.Errorf("create academic group: %w", err)
	}
	return nil
}

func (r *academicGroupRepository) GetByClassGroup(ctx context.Context, classGroup string) (*domain.AcademicGroup, error) {
	return r.FindByFilter(ctx, map[string]any{"class_group": classGroup})
}

func (r *academicGroupRepository) ClassGroupExists(ctx context.Context, classGroup string, excludeID int64) (bool, error) {
	q := r.DB().NewSelect().Model((*domain.AcademicGroup)(nil)).Where("class_group = ?", classGroup)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	ok, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("class group exists: %w", err)
	}
	return ok, nil
}

func (r *academicGroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	member := &domain.GroupMember{GroupID: groupID, UserID: userID}
	_, err := r.DB().NewInsert().Model(member).
		On("CONFLICT (group_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

func (r *academicGroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) (bool, error) {
	res, err := r.DB().NewDelete().Model((*domain.GroupMember)(nil)).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("remove group member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *academicGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	ok, err := r.DB().NewSelect().Model((*domain.GroupMember)(nil)).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("is group member: %w", err)
	}
	return ok, nil
}

func (r *academicGroupRepository) ListMembers(ctx context.Context, groupID int64, skip, limit int) ([]*domain.User, error) {
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var users []*domain.User
	err := r.DB().NewSelect().Model(&users).
		Join("JOIN academic_group_users AS agu ON agu.user_id = u.id").
		Where("agu.group_id = ?", groupID).
		OrderExpr("u.id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return nonNil(users), nil
}
