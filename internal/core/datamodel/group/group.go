package group

import (
	"time"
)

// Group is a named collection of users. The creator becomes the first member
// in the same transaction that creates the group, so a group never exists
// without at least one member.
type Group struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedBy int64     `json:"created_by" gorm:"column:created_by;not null"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMembership records one user's membership in one group. The
// (group_id, user_id) pair is unique; memberships are never updated.
type GroupMembership struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	GroupID  int64     `json:"group_id" gorm:"column:group_id;not null;uniqueIndex:idx_group_user"`
	UserID   int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_group_user"`
	JoinedAt time.Time `json:"joined_at" gorm:"column:joined_at;autoCreateTime"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
