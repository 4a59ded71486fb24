package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-booking/models"
	"hotel-booking/utils"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrEmailSendFailed    = errors.New("email_send_failed")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// RegisterInput is the registration payload for an account-holding profile.
type RegisterInput struct {
	FirstName   string `json:"firstName"`
	SecondName  string `json:"secondName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// ProfileService manages account and guest profiles: registration with
// email confirmation, profile edits and lookups.
type ProfileService struct {
	DB     *gorm.DB
	Signer *Signer
}

func NewProfileService(db *gorm.DB, signer *Signer) *ProfileService {
	return &ProfileService{DB: db, Signer: signer}
}

// Register creates an unconfirmed profile, hashes the password and sends a
// confirmation link. Email delivery is best-effort: a failure is reported
// but the profile stays.
func (s *ProfileService) Register(input RegisterInput) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, errors.New("email and password are required")
	}

	var existing models.Profile
	err := s.DB.Where("email = ? AND is_guest = ?", email, false).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := models.Profile{
		FirstName:    input.FirstName,
		SecondName:   input.SecondName,
		PhoneNumber:  input.PhoneNumber,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.DB.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token := s.Signer.Sign(strconv.FormatUint(uint64(profile.ID), 10))
	siteURL := strings.TrimRight(utils.EnvOrDefault("SITE_URL", "http://localhost:8080"), "/")
	confirmURL := fmt.Sprintf("%s/api/profiles/confirm?token=%s", siteURL, token)

	if mailErr := utils.SendConfirmationEmail(profile.Email, profile.FirstName, confirmURL); mailErr != nil {
		log.Printf("warning: confirmation email for profile %d failed: %v", profile.ID, mailErr)
		return &profile, fmt.Errorf("%w: %v", ErrEmailSendFailed, mailErr)
	}
	return &profile, nil
}

// ConfirmEmail verifies a signed confirmation token and marks the profile's
// email as confirmed.
func (s *ProfileService) ConfirmEmail(token string) (*models.Profile, error) {
	value, err := s.Signer.Verify(token)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, ErrBadSignature
	}

	var profile models.Profile
	if err := s.DB.First(&profile, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if !profile.EmailConfirmed {
		if err := s.DB.Model(&profile).Update("email_confirmed", true).Error; err != nil {
			return nil, fmt.Errorf("failed to confirm email: %w", err)
		}
		profile.EmailConfirmed = true
	}
	return &profile, nil
}

// GetProfile loads a profile by id.
func (s *ProfileService) GetProfile(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies the editable contact fields.
func (s *ProfileService) UpdateProfile(id uint, updates map[string]interface{}) (*models.Profile, error) {
	// protect identity and credential columns
	delete(updates, "id")
	delete(updates, "password_hash")
	delete(updates, "email_confirmed")
	delete(updates, "is_guest")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	profile, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return profile, nil
	}
	if err := s.DB.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(id)
}
