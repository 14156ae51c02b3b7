package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "nurture-backend/internal/shared/auth"
	"nurture-backend/internal/shared/storage/object"
	"nurture-backend/internal/shared/telemetry"
)

type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	TokenTTL time.Duration
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

func NewService(repo Repo, store object.ObjectStore, tokenTTL time.Duration) *Service {
	return &Service{Repo: repo, Store: store, TokenTTL: tokenTTL}
}

// SignUpInput is the registration payload.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Role     Role   `json:"role" validate:"omitempty,oneof=parent child"`
}

// Session is an authenticated profile with its bearer token.
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("users service not configured")
	}
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = RoleParent
	}
	profile := Profile{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		FullName:     strings.TrimSpace(in.FullName),
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		return Session{}, err
	}
	created, err := s.Repo.GetByID(ctx, profile.ID)
	if err != nil {
		return Session{}, err
	}
	telemetry.Info("profile.created", map[string]any{"user_id": created.ID, "role": string(created.Role)})
	return s.issue(created)
}

// SignIn verifies credentials. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("users service not configured")
	}
	profile, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if profile.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(profile)
}

// UpsertFromGoogle returns the profile for email, creating a parent profile
// on first login.
func (s *Service) UpsertFromGoogle(ctx context.Context, email, name string) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(email) == "" {
		return Session{}, errors.New("email is required")
	}
	profile, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		profile = Profile{
			ID:       uuid.NewString(),
			Email:    email,
			Role:     RoleParent,
			FullName: name,
		}
		err = s.Repo.Create(ctx, profile)
		if errors.Is(err, ErrEmailTaken) {
			profile, err = s.Repo.GetByEmail(ctx, email)
		}
	}
	if err != nil {
		return Session{}, err
	}
	return s.issue(profile)
}

func (s *Service) GetByID(ctx context.Context, profileID string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(profileID) == "" {
		return Profile{}, errors.New("profile id is required")
	}
	return s.Repo.GetByID(ctx, profileID)
}

func (s *Service) Update(ctx context.Context, profileID string, patch ProfilePatch) (Profile, error) {
	profile, err := s.GetByID(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}
	if patch.FullName != nil {
		profile.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.ChildName != nil {
		profile.ChildName = strings.TrimSpace(*patch.ChildName)
	}
	if patch.Age != nil {
		age := *patch.Age
		profile.Age = &age
	}
	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetByID(ctx, profileID)
}

// SetAvatar stores an image and points the profile at its storage key.
func (s *Service) SetAvatar(ctx context.Context, profileID, fileName string, r io.Reader) (Profile, error) {
	if s.Store == nil {
		return Profile{}, errors.New("object store not configured")
	}
	profile, err := s.GetByID(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}
	mimeType, body, err := object.Sniff(r)
	if err != nil {
		return Profile{}, err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return Profile{}, ErrUnsupportedAvatar
	}
	obj, err := s.Store.Save(ctx, profileID, fileName, body)
	if err != nil {
		return Profile{}, fmt.Errorf("store avatar: %w", err)
	}
	profile.AvatarURL = obj.Key
	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	telemetry.Info("profile.avatar_updated", map[string]any{
		"user_id":    profileID,
		"size_bytes": obj.SizeBytes,
		"mime_type":  obj.MimeType,
	})
	return s.Repo.GetByID(ctx, profileID)
}

// OpenAvatar opens the stored avatar image for profileID.
func (s *Service) OpenAvatar(ctx context.Context, profileID string) (io.ReadCloser, error) {
	profile, err := s.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.AvatarURL == "" || s.Store == nil {
		return nil, ErrNoAvatar
	}
	return s.Store.Open(ctx, profile.AvatarURL)
}

func (s *Service) issue(profile Profile) (Session, error) {
	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Email: profile.Email,
		Name:  profile.FullName,
		Role:  string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: profile.ID,
		},
	}, s.TokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, Profile: profile}, nil
}
