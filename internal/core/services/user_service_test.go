package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/core/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/utils"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockUserRepository
	mockAccountSvc *MockAccountSvc
	service        portssvc.UserSvcFacade
	ctx            context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.mockAccountSvc = new(MockAccountSvc)
	s.service = services.NewUserService(s.mockRepo, s.mockAccountSvc)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegisterUser_Success() {
	req := dto.RegisterUserRequest{
		Name:     "Maria Santos",
		Email:    " Maria@Email.com ",
		Password: "123456",
	}

	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "maria@email.com" &&
			user.Name == req.Name &&
			user.PasswordHash != "" && user.PasswordHash != req.Password
	})).Return(nil).Once()
	s.mockAccountSvc.On("CreateAccount", s.ctx, mock.AnythingOfType("string"), decimal.Zero).
		Return(&domain.Account{AccountID: uuid.NewString()}, nil).Once()

	user, err := s.service.RegisterUser(s.ctx, req)

	s.Require().NoError(err)
	s.Equal("maria@email.com", user.Email)
	s.NotEmpty(user.UserID)
	s.mockRepo.AssertExpectations(s.T())
	s.mockAccountSvc.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	req := dto.RegisterUserRequest{Name: "Maria", Email: "maria@email.com", Password: "123456"}

	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.RegisterUser(s.ctx, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockAccountSvc.AssertNotCalled(s.T(), "CreateAccount")
}

func (s *UserServiceTestSuite) TestVerifyCredentials_Success() {
	hash, err := utils.HashPassword("123456")
	s.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "joao@email.com", PasswordHash: hash}

	s.mockRepo.On("FindUserByEmail", s.ctx, "joao@email.com").Return(user, nil).Once()

	verified, err := s.service.VerifyCredentials(s.ctx, "Joao@Email.com", "123456")

	s.Require().NoError(err)
	s.Equal(user.UserID, verified.UserID)
}

func (s *UserServiceTestSuite) TestVerifyCredentials_WrongPassword() {
	hash, err := utils.HashPassword("123456")
	s.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "joao@email.com", PasswordHash: hash}

	s.mockRepo.On("FindUserByEmail", s.ctx, "joao@email.com").Return(user, nil).Once()

	_, err = s.service.VerifyCredentials(s.ctx, "joao@email.com", "654321")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestVerifyCredentials_UnknownEmail() {
	s.mockRepo.On("FindUserByEmail", s.ctx, "ghost@email.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.VerifyCredentials(s.ctx, "ghost@email.com", "123456")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestGetUserByID_NotFound() {
	userID := uuid.NewString()
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetUserByID(s.ctx, userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
