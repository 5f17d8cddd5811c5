package services

import (
	"context"
	"strings"

	"uconnect/internal/domain"
)

type academicGroupService struct {
	groupRepo domain.AcademicGroupRepository
	userRepo  domain.UserRepository
}

// NewAcademicGroupService creates an AcademicGroupService.
func NewAcademicGroupService(groupRepo domain.AcademicGroupRepository, userRepo domain.UserRepository) domain.AcademicGroupService {
	return &academicGroupService{groupRepo: groupRepo, userRepo: userRepo}
}

// CreateGroup requires course and class group; the class group code is a
// unique natural key.
func (s *academicGroupService) CreateGroup(ctx context.Context, course, classGroup, subject string) (*domain.AcademicGroup, error) {
	course = strings.TrimSpace(course)
	classGroup = strings.TrimSpace(classGroup)
	if course == "" || classGroup == "" {
		return nil, domain.ErrMissingFields
	}
	taken, err := s.groupRepo.ClassGroupExists(ctx, classGroup, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateClassGroup
	}
	group := &domain.AcademicGroup{
		Course:     course,
		ClassGroup: classGroup,
		Subject:    strings.TrimSpace(subject),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *academicGroupService) GetGroup(ctx context.Context, id int64) (*domain.AcademicGroup, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *academicGroupService) ListGroups(ctx context.Context, skip, limit int) ([]*domain.AcademicGroup, error) {
	return s.groupRepo.List(ctx, domain.ListParams{Skip: skip, Limit: limit})
}

func (s *academicGroupService) UpdateGroup(ctx context.Context, id int64, update domain.AcademicGroupUpdate) (*domain.AcademicGroup, error) {
	fields := map[string]any{}
	if update.ClassGroup != nil {
		classGroup := strings.TrimSpace(*update.ClassGroup)
		taken, err := s.groupRepo.ClassGroupExists(ctx, classGroup, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateClassGroup
		}
		fields["class_group"] = classGroup
	}
	if update.Course != nil {
		fields["course"] = strings.TrimSpace(*update.Course)
	}
	if update.Subject != nil {
		fields["subject"] = strings.TrimSpace(*update.Subject)
	}
	return s.groupRepo.Update(ctx, id, fields)
}

func (s *academicGroupService) DeleteGroup(ctx context.Context, id int64) (bool, error) {
	return s.groupRepo.Delete(ctx, id)
}

// AddUserToGroup enrolls a user; adding an existing member is a no-op.
// Returns (nil, nil) if the group or user does not exist.
func (s *academicGroupService) AddUserToGroup(ctx context.Context, groupID, userID int64) (*domain.AcademicGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// RemoveUserFromGroup reports false when the group, the user, or the
// membership does not exist.
func (s *academicGroupService) RemoveUserFromGroup(ctx context.Context, groupID, userID int64) (bool, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return false, err
	}
	if group == nil {
		return false, nil
	}
	return s.groupRepo.RemoveMember(ctx, groupID, userID)
}

func (s *academicGroupService) ListGroupMembers(ctx context.Context, groupID int64, skip, limit int) ([]*domain.User, error) {
	return s.groupRepo.ListMembers(ctx, groupID, skip, limit)
}
