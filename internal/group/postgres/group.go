package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	groupDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/group"
	userDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/user"
	"github.com/wisnuadi/splitledger/internal/group"
)

// GroupRepository implements the group.Repository interface using GORM
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.Repository {
	return &GroupRepository{db: db}
}

// CreateWithCreator inserts the group and its creator's membership in one
// transaction, so no group is ever visible without a member.
func (r *GroupRepository) CreateWithCreator(ctx context.Context, g *groupDatamodel.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		membership := &groupDatamodel.GroupMembership{
			GroupID:  g.ID,
			UserID:   g.CreatedBy,
			JoinedAt: time.Now(),
		}
		return tx.Create(membership).Error
	})
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*groupDatamodel.Group, error) {
	var g groupDatamodel.Group
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) GroupsForUser(ctx context.Context, userID int64) ([]*groupDatamodel.Group, error) {
	var groups []*groupDatamodel.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ? AND groups.is_active = ?", userID, true).
		Order("groups.id ASC").
		Find(&groups).Error
	return groups, err
}

// Members returns member ids in ascending order. The ordering is part of the
// contract: it makes split allocation reproducible.
func (r *GroupRepository) Members(ctx context.Context, groupID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&groupDatamodel.GroupMembership{}).
		Where("group_id = ?", groupID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&groupDatamodel.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) AddMember(ctx context.Context, membership *groupDatamodel.GroupMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *GroupRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count > 0, err
}
