package group_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wisnuadi/splitledger/internal"
	groupDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/group"
	"github.com/wisnuadi/splitledger/internal/group"
)

func TestGroupService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "GroupService Suite")
}

// Mock repository for testing
type mockGroupRepository struct {
	groups      map[int64]*groupDatamodel.Group
	memberships map[int64][]int64 // group id -> user ids
	users       map[int64]bool
	createError error
	getError    error
	nextID      int64
}

func newMockGroupRepository() *mockGroupRepository {
	return &mockGroupRepository{
		groups:      make(map[int64]*groupDatamodel.Group),
		memberships: make(map[int64][]int64),
		users:       make(map[int64]bool),
		nextID:      1,
	}
}

func (m *mockGroupRepository) CreateWithCreator(_ context.Context, g *groupDatamodel.Group) error {
	if m.createError != nil {
		return m.createError
	}
	g.ID = m.nextID
	m.nextID++
	m.groups[g.ID] = g
	m.memberships[g.ID] = []int64{g.CreatedBy}
	return nil
}

func (m *mockGroupRepository) GetByID(_ context.Context, id int64) (*groupDatamodel.Group, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	g, ok := m.groups[id]
	if !ok {
		return nil, internal.ErrGroupNotFound
	}
	return g, nil
}

func (m *mockGroupRepository) GroupsForUser(_ context.Context, userID int64) ([]*groupDatamodel.Group, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var result []*groupDatamodel.Group
	for gid, members := range m.memberships {
		for _, uid := range members {
			if uid == userID {
				result = append(result, m.groups[gid])
			}
		}
	}
	return result, nil
}

func (m *mockGroupRepository) Members(_ context.Context, groupID int64) ([]int64, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	members := append([]int64(nil), m.memberships[groupID]...)
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members, nil
}

func (m *mockGroupRepository) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	if m.getError != nil {
		return false, m.getError
	}
	for _, uid := range m.memberships[groupID] {
		if uid == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupRepository) AddMember(_ context.Context, membership *groupDatamodel.GroupMembership) error {
	if m.createError != nil {
		return m.createError
	}
	membership.ID = m.nextID
	m.nextID++
	m.memberships[membership.GroupID] = append(m.memberships[membership.GroupID], membership.UserID)
	return nil
}

func (m *mockGroupRepository) UserExists(_ context.Context, userID int64) (bool, error) {
	return m.users[userID], nil
}

var _ = Describe("GroupService", func() {
	var (
		repo    *mockGroupRepository
		service *group.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockGroupRepository()
		repo.users[1] = true
		repo.users[2] = true
		repo.users[3] = true
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = group.NewService(repo, logger)
		ctx = context.Background()
	})

	Describe("CreateGroup", func() {
		Context("when the input is valid", func() {
			It("should create the group with the creator as first member", func() {
				g, err := service.CreateGroup(ctx, group.CreateGroupDTO{Name: "Trip"}, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.ID).To(BeNumerically(">", 0))
				Expect(g.CreatedBy).To(Equal(int64(1)))

				members, err := service.Members(ctx, g.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(members).To(Equal([]int64{1}))
			})
		})

		Context("when the name is empty", func() {
			It("should return a validation error", func() {
				_, err := service.CreateGroup(ctx, group.CreateGroupDTO{Name: "  "}, 1)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})
	})

	Describe("AddMember", func() {
		var groupID int64

		BeforeEach(func() {
			g, err := service.CreateGroup(ctx, group.CreateGroupDTO{Name: "Flat"}, 1)
			Expect(err).NotTo(HaveOccurred())
			groupID = g.ID
		})

		Context("when the requester is a member", func() {
			It("should add the new member", func() {
				membership, err := service.AddMember(ctx, groupID, 2, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(membership.GroupID).To(Equal(groupID))
				Expect(membership.UserID).To(Equal(int64(2)))
				Expect(membership.JoinedAt).To(BeTemporally("~", time.Now(), time.Second))
			})

			It("should keep members in ascending user id order", func() {
				_, err := service.AddMember(ctx, groupID, 3, 1)
				Expect(err).NotTo(HaveOccurred())
				_, err = service.AddMember(ctx, groupID, 2, 1)
				Expect(err).NotTo(HaveOccurred())

				members, err := service.Members(ctx, groupID)
				Expect(err).NotTo(HaveOccurred())
				Expect(members).To(Equal([]int64{1, 2, 3}))
			})
		})

		Context("when the user is already a member", func() {
			It("should return AlreadyMember", func() {
				_, err := service.AddMember(ctx, groupID, 2, 1)
				Expect(err).NotTo(HaveOccurred())

				_, err = service.AddMember(ctx, groupID, 2, 1)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeAlreadyMember))
			})
		})

		Context("when the requester is not a member", func() {
			It("should return a forbidden error", func() {
				_, err := service.AddMember(ctx, groupID, 3, 2)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeNotGroupMember))
			})
		})

		Context("when the user does not exist", func() {
			It("should return a not found error", func() {
				_, err := service.AddMember(ctx, groupID, 99, 1)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUserNotFound))
			})
		})

		Context("when the group does not exist", func() {
			It("should return a not found error", func() {
				_, err := service.AddMember(ctx, 999, 2, 1)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeGroupNotFound))
			})
		})
	})

	Describe("IsMember", func() {
		It("should report membership facts", func() {
			g, err := service.CreateGroup(ctx, group.CreateGroupDTO{Name: "Dinner club"}, 1)
			Expect(err).NotTo(HaveOccurred())

			isMember, err := service.IsMember(ctx, 1, g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(isMember).To(BeTrue())

			isMember, err = service.IsMember(ctx, 2, g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(isMember).To(BeFalse())
		})
	})
})
