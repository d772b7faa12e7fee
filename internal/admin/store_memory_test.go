package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wastebot/pkg/platform/sentinel"
)

type AdminStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *AdminStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestAdminStoreSuite(t *testing.T) {
	suite.Run(t, new(AdminStoreSuite))
}

func (s *AdminStoreSuite) newAdmin(email string) Admin {
	return Admin{
		ID:           uuid.NewString(),
		Name:         "Ops",
		Email:        email,
		PasswordHash: "$2a$10$fakehash",
	}
}

func (s *AdminStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds admin by ID and email", func() {
		a := s.newAdmin("ops@example.com")
		s.Require().NoError(s.store.Create(s.ctx, a))

		byID, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal(a.Email, byID.Email)

		byEmail, err := s.store.FindByEmail(s.ctx, "ops@example.com")
		s.Require().NoError(err)
		s.Equal(a.ID, byEmail.ID)
	})

	s.Run("email lookup is case-insensitive", func() {
		a := s.newAdmin("mixed@example.com")
		s.Require().NoError(s.store.Create(s.ctx, a))

		found, err := s.store.FindByEmail(s.ctx, "MIXED@Example.COM")
		s.Require().NoError(err)
		s.Equal(a.ID, found.ID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.NewString())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *AdminStoreSuite) TestEmailUniqueness() {
	a := s.newAdmin("dup@example.com")
	s.Require().NoError(s.store.Create(s.ctx, a))

	b := s.newAdmin("DUP@example.com")
	err := s.store.Create(s.ctx, b)
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)

	// The first record is untouched.
	found, err := s.store.FindByEmail(s.ctx, "dup@example.com")
	s.Require().NoError(err)
	s.Equal(a.ID, found.ID)
}

func (s *AdminStoreSuite) TestUpdate() {
	s.Run("overwrites name and hash but keeps email", func() {
		a := s.newAdmin("update@example.com")
		s.Require().NoError(s.store.Create(s.ctx, a))

		a.Name = "Renamed"
		a.PasswordHash = "$2a$10$otherhash"
		s.Require().NoError(s.store.Update(s.ctx, a))

		found, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("Renamed", found.Name)
		s.Equal("$2a$10$otherhash", found.PasswordHash)
		s.Equal("update@example.com", found.Email)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		err := s.store.Update(s.ctx, s.newAdmin("ghost@example.com"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *AdminStoreSuite) TestList() {
	s.Require().NoError(s.store.Create(s.ctx, s.newAdmin("a@example.com")))
	s.Require().NoError(s.store.Create(s.ctx, s.newAdmin("b@example.com")))

	admins, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(admins, 2)
}
