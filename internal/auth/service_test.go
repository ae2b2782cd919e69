package auth_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/wisnuadi/splitledger/internal"
	"github.com/wisnuadi/splitledger/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuthService Suite")
}

type mockUserRepository struct {
	userID       int64
	email        string
	passwordHash string
	active       bool
}

func (m *mockUserRepository) GetCredentialsByEmail(_ context.Context, email string) (int64, string, error) {
	if !m.active || email != m.email {
		return 0, "", internal.ErrUserNotFound
	}
	return m.userID, m.passwordHash, nil
}

func (m *mockUserRepository) GetUserByID(_ context.Context, userID int64) (*auth.User, error) {
	if !m.active || userID != m.userID {
		return nil, internal.ErrUserNotFound
	}
	return &auth.User{ID: m.userID, Email: m.email}, nil
}

var _ = Describe("AuthService", func() {
	const password = "correct-horse-battery"

	var (
		repo      *mockUserRepository
		generator *auth.JWTTokenGenerator
		service   *auth.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockUserRepository{
			userID:       7,
			email:        "alice@mail.com",
			passwordHash: string(hash),
			active:       true,
		}
		generator = &auth.JWTTokenGenerator{
			AccessTokenSecret:  []byte("access-secret-for-tests-0123456789ab"),
			RefreshTokenSecret: []byte("refresh-secret-for-tests-0123456789a"),
			AccessTokenTTL:     15 * time.Minute,
			RefreshTokenTTL:    7 * 24 * time.Hour,
		}
		service = auth.NewService(repo, generator, bcrypt.MinCost)
		ctx = context.Background()
	})

	Describe("Authenticate", func() {
		It("should return a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: password,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("7"))
			Expect(claims.Email).To(Equal("alice@mail.com"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: "wrong",
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email the same way as a wrong password", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "nobody@mail.com",
				Password: password,
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an inactive account", func() {
			repo.active = false
			_, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: password,
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject missing fields with a validation error", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "alice@mail.com"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("RefreshTokens", func() {
		It("should rotate a valid refresh token into a new pair", func() {
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())

			rotated, err := service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotated.AccessToken).NotTo(BeEmpty())
			Expect(rotated.RefreshToken).NotTo(BeEmpty())
		})

		It("should reject an access token used as a refresh token", func() {
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(ctx, tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a refresh token once the account is inactive", func() {
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "alice@mail.com",
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())

			repo.active = false
			_, err = service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("should reject garbage", func() {
			_, err := service.RefreshTokens(ctx, "not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject an expired token", func() {
			generator.AccessTokenTTL = -time.Minute
			token, err := generator.GenerateAccessToken("7", "alice@mail.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("should reject a token signed with the wrong secret", func() {
			other := &auth.JWTTokenGenerator{
				AccessTokenSecret: []byte("a-completely-different-secret-value!"),
				AccessTokenTTL:    15 * time.Minute,
			}
			token, err := other.GenerateAccessToken("7", "alice@mail.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("HashPassword", func() {
		It("should produce a hash that verifies", func() {
			hash, err := service.HashPassword("s3cret")
			Expect(err).NotTo(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret"))).To(Succeed())
		})
	})
})
