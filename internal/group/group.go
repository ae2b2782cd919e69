package group

import (
	"time"

	groupDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/group"
)

type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy int64     `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Membership struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func FromDataModel(g *groupDatamodel.Group) *Group {
	return &Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func FromDataModelSlice(groups []*groupDatamodel.Group) []*Group {
	result := make([]*Group, len(groups))
	for i, g := range groups {
		result[i] = FromDataModel(g)
	}
	return result
}

func MembershipFromDataModel(m *groupDatamodel.GroupMembership) *Membership {
	return &Membership{
		ID:       m.ID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
}
