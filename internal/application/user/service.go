package user

import (
	"context"
	"errors"
	"strings"

	"automind-backend/internal/domain"
	"automind-backend/internal/pkg/constants"
	"automind-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Service holds DB and Redis for identity operations.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// SignupInput is the signup request body.
type SignupInput struct {
	Username string `json:"username"`
	Role     string `json:"account_type"`
	UpiID    string `json:"upi_id"`
	Password string `json:"password"`
}

// Signup creates an account. Role is fixed at creation; there is no
// role-change operation.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if !validation.IsValidUsername(username) {
		return nil, errors.New("Username must be 3-32 characters (letters, digits, . _ -)")
	}
	if !constants.IsValidRole(in.Role) {
		return nil, errors.New("Invalid account type")
	}
	if !validation.IsValidUpiID(strings.TrimSpace(in.UpiID)) {
		return nil, errors.New("Invalid UPI ID")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, errors.New("Password must be at least 8 characters with a letter, a number and a special character")
	}

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     username,
		Role:         in.Role,
		UpiID:        strings.TrimSpace(in.UpiID),
		PasswordHash: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		// Unique index on username backstops the lookup above under
		// concurrent signups.
		return nil, ErrDuplicateUsername
	}
	return u, nil
}

// DirectoryEntry is the public user shape for the messaging directory.
type DirectoryEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	UpiID    string    `json:"upi_id"`
}

// ListUsers returns all accounts ordered by username (messaging directory).
func (s *Service) ListUsers(ctx context.Context) ([]DirectoryEntry, error) {
	var users []DirectoryEntry
	err := s.DB.WithContext(ctx).Model(&domain.User{}).
		Select("user_id, username, role, upi_id").
		Order("username ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ViewUser returns one account by ID.
func (s *Service) ViewUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// DeleteAccount removes the user and every dependent record in one
// transaction: messages both directions, requests made as customer,
// requests received as dealer, events and requests of owned listings, the
// owned listings, then the user row. All of the user's sessions are
// destroyed afterwards.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.Where("user_id = ?", userID).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ? OR dealer_id = ?", userID, userID).
			Delete(&domain.Request{}).Error; err != nil {
			return err
		}
		var listingIDs []uuid.UUID
		if err := tx.Model(&domain.Listing{}).Where("dealer_id = ?", userID).
			Pluck("listing_id", &listingIDs).Error; err != nil {
			return err
		}
		if len(listingIDs) > 0 {
			if err := tx.Where("listing_id IN ?", listingIDs).
				Delete(&domain.Request{}).Error; err != nil {
				return err
			}
			if err := tx.Where("listing_id IN ?", listingIDs).
				Delete(&domain.ListingEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("dealer_id = ?", userID).
				Delete(&domain.Listing{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.User{}).Error
	})
	if err != nil {
		return err
	}
	s.destroyUserSessions(ctx, userID.String())
	return nil
}

// destroyUserSessions deletes every Redis session tracked for the user.
func (s *Service) destroyUserSessions(ctx context.Context, userID string) {
	if s.Rdb == nil {
		return
	}
	key := userSessionsPrefix + userID
	sessionIDs, err := s.Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return
	}
	for _, sid := range sessionIDs {
		_ = s.Rdb.Del(ctx, "session:"+sid).Err()
	}
	_ = s.Rdb.Del(ctx, key).Err()
}
