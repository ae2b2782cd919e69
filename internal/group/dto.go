package group

import (
	"errors"
	"strings"
)

// CreateGroupDTO is the request payload for creating a group.
type CreateGroupDTO struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (dto CreateGroupDTO) Validate() error {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return errors.New("group name is required")
	}
	if len(name) > 100 {
		return errors.New("group name must be at most 100 characters")
	}
	return nil
}

// AddMemberDTO is the request payload for adding a member to a group.
type AddMemberDTO struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
}

func (dto AddMemberDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	return nil
}

// MembersResponse lists a group's member ids in ascending order.
type MembersResponse struct {
	GroupID int64   `json:"group_id"`
	Members []int64 `json:"members"`
}
