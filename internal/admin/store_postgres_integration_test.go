//go:build integration

package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wastebot/pkg/platform/sentinel"
	"wastebot/pkg/testutil/containers"
)

type AdminPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
}

func TestAdminPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AdminPostgresSuite))
}

func (s *AdminPostgresSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *AdminPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "admins"))
}

func (s *AdminPostgresSuite) newAdmin(email string) Admin {
	return Admin{
		ID:           uuid.NewString(),
		Name:         "Ada",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfortests",
	}
}

func (s *AdminPostgresSuite) TestCreateAndFind() {
	ctx := context.Background()
	a := s.newAdmin("ada@example.com")
	s.Require().NoError(s.store.Create(ctx, a))

	byID, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.Email, byID.Email)
	s.Equal(a.PasswordHash, byID.PasswordHash)

	byEmail, err := s.store.FindByEmail(ctx, "ADA@EXAMPLE.COM")
	s.Require().NoError(err)
	s.Equal(a.ID, byEmail.ID)
}

func (s *AdminPostgresSuite) TestDuplicateEmailIsAlreadyUsed() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newAdmin("dup@example.com")))

	err := s.store.Create(ctx, s.newAdmin("Dup@Example.com"))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *AdminPostgresSuite) TestUpdateMissingIsNotFound() {
	err := s.store.Update(context.Background(), s.newAdmin("ghost@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *AdminPostgresSuite) TestUpdatePreservesEmail() {
	ctx := context.Background()
	a := s.newAdmin("ada@example.com")
	s.Require().NoError(s.store.Create(ctx, a))

	a.Name = "Ada Lovelace"
	a.PasswordHash = "$2a$10$anotherhash"
	s.Require().NoError(s.store.Update(ctx, a))

	got, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", got.Name)
	s.Equal("$2a$10$anotherhash", got.PasswordHash)
	s.Equal("ada@example.com", got.Email)
}

func (s *AdminPostgresSuite) TestList() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newAdmin("one@example.com")))
	s.Require().NoError(s.store.Create(ctx, s.newAdmin("two@example.com")))

	admins, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(admins, 2)
}

func (s *AdminPostgresSuite) TestFindUnknownIsNotFound() {
	_, err := s.store.FindByID(context.Background(), uuid.NewString())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByEmail(context.Background(), "nobody@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
