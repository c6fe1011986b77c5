package service

import (
	"context"
	"strings"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/core/auth"
	"autohub-api/internal/domain"
	"autohub-api/pkg/utils"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Avatar    string
}

type GoogleLoginInput struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// AuthResult pairs the principal with its freshly issued bearer token.
type AuthResult struct {
	Token string
	User  *domain.User
	Admin *domain.Admin
}

type AuthService struct {
	users  domain.UserRepository
	admins domain.AdminRepository
	jwter  *auth.JWTer
}

func NewAuthService(users domain.UserRepository, admins domain.AdminRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, admins: admins, jwter: jwter}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, apperr.Validation("required fields: email, password, firstName, lastName")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("registration failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already exists")
	}

	u := &domain.User{
		Email:          email,
		PasswordHash:   utils.HashPassword(in.Password),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		Avatar:         in.Avatar,
		LoyaltyPoints:  100,
		MembershipTier: "bronze",
	}
	if err := s.users.Create(ctx, u); err != nil {
		// the unique index wins racing registrations
		return nil, err
	}
	return s.issueUser(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("login failed", err)
	}
	// Same failure message whether the email exists or not.
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	_ = s.users.TouchLastLogin(ctx, u.ID)
	return s.issueUser(u)
}

// LoginGoogle is a three-way merge: known provider id wins, then a matching
// email gets linked, otherwise a verified account is created. Calling it
// again with the same provider id lands on the first branch, so the flow is
// idempotent.
func (s *AuthService) LoginGoogle(ctx context.Context, in GoogleLoginInput) (*AuthResult, error) {
	if in.GoogleID == "" || in.Email == "" {
		return nil, apperr.Validation("googleId and email are required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := s.users.FindByGoogleID(ctx, in.GoogleID)
	if err != nil {
		return nil, apperr.Internal("google login failed", err)
	}
	if u == nil {
		byEmail, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, apperr.Internal("google login failed", err)
		}
		if byEmail != nil {
			if err := s.users.LinkGoogleID(ctx, byEmail.ID, in.GoogleID); err != nil {
				return nil, apperr.Internal("google login failed", err)
			}
			byEmail.GoogleID = &in.GoogleID
			byEmail.EmailVerified = true
			u = byEmail
		} else {
			gid := in.GoogleID
			u = &domain.User{
				Email:          email,
				FirstName:      in.FirstName,
				LastName:       in.LastName,
				Avatar:         in.Avatar,
				GoogleID:       &gid,
				LoyaltyPoints:  100,
				MembershipTier: "bronze",
				EmailVerified:  true, // provider already verified the address
			}
			if err := s.users.Create(ctx, u); err != nil {
				return nil, err
			}
		}
	}

	_ = s.users.TouchLastLogin(ctx, u.ID)
	return s.issueUser(u)
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	a, err := s.admins.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("admin login failed", err)
	}
	if a == nil || !utils.CheckPassword(password, a.PasswordHash) {
		return nil, apperr.Unauthorized("invalid admin credentials")
	}

	_ = s.admins.TouchLastLogin(ctx, a.ID)
	tok, err := s.jwter.Issue(a.ID, a.Email, "admin")
	if err != nil || tok == "" {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{Token: tok, Admin: a}, nil
}

func (s *AuthService) issueUser(u *domain.User) (*AuthResult, error) {
	tok, err := s.jwter.Issue(u.ID, u.Email, "user")
	if err != nil || tok == "" {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{Token: tok, User: u}, nil
}
