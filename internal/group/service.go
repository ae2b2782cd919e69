package group

import (
	"context"
	"log/slog"
	"time"

	"github.com/wisnuadi/splitledger/internal"
	groupDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/group"
)

// Repository defines the data access methods for groups and memberships.
// Members always returns user ids in ascending order so downstream split
// allocation is deterministic.
type Repository interface {
	CreateWithCreator(ctx context.Context, g *groupDatamodel.Group) error
	GetByID(ctx context.Context, id int64) (*groupDatamodel.Group, error)
	GroupsForUser(ctx context.Context, userID int64) ([]*groupDatamodel.Group, error)
	Members(ctx context.Context, groupID int64) ([]int64, error)
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	AddMember(ctx context.Context, membership *groupDatamodel.GroupMembership) error
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// Service answers membership facts and handles group lifecycle.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateGroup creates a group with the creator as its first member, as one
// atomic write. A group never exists without a member.
func (s *Service) CreateGroup(ctx context.Context, dto CreateGroupDTO, creatorID int64) (*Group, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("group validation failed", "error", err, "creator_id", creatorID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	g := &groupDatamodel.Group{
		Name:      dto.Name,
		CreatedBy: creatorID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithCreator(ctx, g); err != nil {
		s.logger.Error("failed to create group", "error", err, "creator_id", creatorID)
		return nil, internal.NewRepositoryError("could not create group", err)
	}

	s.logger.Info("group created", "group_id", g.ID, "creator_id", creatorID, "name", g.Name)

	return FromDataModel(g), nil
}

// GroupsForUser lists the groups the user belongs to.
func (s *Service) GroupsForUser(ctx context.Context, userID int64) ([]*Group, error) {
	groups, err := s.repo.GroupsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list groups", "error", err, "user_id", userID)
		return nil, internal.NewRepositoryError("could not list groups", err)
	}
	return FromDataModelSlice(groups), nil
}

// Members returns the group's member ids in ascending order. The ordering
// feeds the split allocator, which distributes remainder cents by position.
func (s *Service) Members(ctx context.Context, groupID int64) ([]int64, error) {
	if _, err := s.getActiveGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.repo.Members(ctx, groupID)
	if err != nil {
		s.logger.Error("failed to list members", "error", err, "group_id", groupID)
		return nil, internal.NewRepositoryError("could not list members", err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the group.
func (s *Service) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	ok, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		s.logger.Error("failed to check membership", "error", err, "group_id", groupID, "user_id", userID)
		return false, internal.NewRepositoryError("could not check membership", err)
	}
	return ok, nil
}

// AddMember adds userID to the group. The requester must already be a
// member; adding a user twice fails with AlreadyMember.
func (s *Service) AddMember(ctx context.Context, groupID, userID, requesterID int64) (*Membership, error) {
	if _, err := s.getActiveGroup(ctx, groupID); err != nil {
		return nil, err
	}

	requesterIsMember, err := s.repo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, internal.NewRepositoryError("could not check membership", err)
	}
	if !requesterIsMember {
		s.logger.Warn("add member denied: requester not in group",
			"group_id", groupID, "requester_id", requesterID)
		return nil, internal.ErrNotGroupMember
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, internal.NewRepositoryError("could not look up user", err)
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	alreadyMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, internal.NewRepositoryError("could not check membership", err)
	}
	if alreadyMember {
		return nil, internal.ErrAlreadyMember
	}

	membership := &groupDatamodel.GroupMembership{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.repo.AddMember(ctx, membership); err != nil {
		s.logger.Error("failed to add member", "error", err, "group_id", groupID, "user_id", userID)
		return nil, internal.NewRepositoryError("could not add member", err)
	}

	s.logger.Info("member added", "group_id", groupID, "user_id", userID, "requester_id", requesterID)

	return MembershipFromDataModel(membership), nil
}

func (s *Service) getActiveGroup(ctx context.Context, groupID int64) (*groupDatamodel.Group, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get group", "error", err, "group_id", groupID)
		return nil, internal.NewRepositoryError("could not load group", err)
	}
	if !g.IsActive {
		return nil, internal.ErrGroupNotFound
	}
	return g, nil
}
