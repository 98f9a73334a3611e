package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smart-campus/internal/model"
	"smart-campus/internal/pkg/jwtutil"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	return s.users[email], nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func seedUserStore(t *testing.T) *fakeUserStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUserStore{users: map[string]*model.User{
		"dean@campus.edu": {
			ID:           42,
			FirstName:    "Dana",
			LastName:     "Dean",
			Email:        "dean@campus.edu",
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		},
	}}
}

func TestLoginIssuesRoleToken(t *testing.T) {
	req := require.New(t)
	svc := NewAuthService(seedUserStore(t), "test-secret", time.Hour)

	result, err := svc.Login(LoginInput{Email: "Dean@Campus.edu", Password: "s3cret-pass"})
	req.NoError(err)
	req.Equal(uint(42), result.User.ID)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	req.NoError(err)
	req.Equal(uint(42), claims.UserID)
	req.Equal(model.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	req := require.New(t)
	svc := NewAuthService(seedUserStore(t), "test-secret", time.Hour)

	_, err := svc.Login(LoginInput{Email: "dean@campus.edu", Password: "wrong"})
	req.ErrorIs(err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Email: "nobody@campus.edu", Password: "s3cret-pass"})
	req.ErrorIs(err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Email: "", Password: ""})
	req.ErrorIs(err, ErrInvalidInput)
}
