// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/workhaven/internal/auth"
	"github.com/angelamos/workhaven/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name, phone, role string,
) (*auth.UserInfo, error) {
	if !ValidRole(role) || role == RoleAdmin {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile returns the public profile; owner accounts carry their rating
// summary.
func (s *Service) GetProfile(
	ctx context.Context,
	id string,
) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &ProfileResponse{UserResponse: ToUserResponse(user)}

	if user.IsOwner() {
		summary, err := s.OwnerRatingSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		profile.OwnerRating = &summary
	}

	return profile, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	return s.repo.SoftDelete(ctx, userID)
}

// RateOwner records a 1-5 score against an owner account. A repeat rating
// from the same rater replaces the previous value.
func (s *Service) RateOwner(
	ctx context.Context,
	targetID, raterID string,
	value int,
) (OwnerRatingSummary, error) {
	if raterID == "" {
		return OwnerRatingSummary{}, fmt.Errorf(
			"rate owner: %w",
			core.ErrUnauthorized,
		)
	}

	if value < 1 || value > 5 {
		return OwnerRatingSummary{}, fmt.Errorf(
			"rate owner: value must be between 1 and 5: %w",
			core.ErrInvalidInput,
		)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return OwnerRatingSummary{}, err
	}

	if !target.IsOwner() {
		return OwnerRatingSummary{}, fmt.Errorf(
			"rate owner: target is not an owner account: %w",
			core.ErrInvalidInput,
		)
	}

	if target.ID == raterID {
		return OwnerRatingSummary{}, fmt.Errorf(
			"rate owner: cannot rate yourself: %w",
			core.ErrForbidden,
		)
	}

	rating := &OwnerRating{
		UserID:  targetID,
		RaterID: raterID,
		Value:   value,
	}

	if err := s.repo.UpsertOwnerRating(ctx, rating); err != nil {
		return OwnerRatingSummary{}, err
	}

	return s.OwnerRatingSummary(ctx, targetID)
}

func (s *Service) OwnerRatingSummary(
	ctx context.Context,
	userID string,
) (OwnerRatingSummary, error) {
	ratings, err := s.repo.ListOwnerRatings(ctx, userID)
	if err != nil {
		return OwnerRatingSummary{}, err
	}

	if len(ratings) == 0 {
		return OwnerRatingSummary{}, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}

	avg := float64(sum) / float64(len(ratings))
	return OwnerRatingSummary{
		Average: math.Round(avg*100) / 100,
		Count:   len(ratings),
	}, nil
}

func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
