package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_VENDOR = "vendor"
	ROLE_BUYER  = "buyer"
	ROLE_ADMIN  = "admin"

	STATUS_ACTIVE    = "active"
	STATUS_INACTIVE  = "inactive"
	STATUS_SUSPENDED = "suspended"

	KYC_PENDING  = "pending"
	KYC_VERIFIED = "verified"
	KYC_REJECTED = "rejected"
)

type Vendor struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email            string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password         string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	CompanyName      string         `gorm:"type:varchar(200)" json:"company_name" validate:"max=200"`
	GSTNumber        string         `gorm:"type:varchar(20);default:''" json:"gst_number" validate:"max=20"`
	Phone            string         `gorm:"type:varchar(20);default:''" json:"phone" validate:"max=20"`
	Role             string         `gorm:"type:varchar(50);default:'vendor'" json:"role" validate:"oneof=vendor buyer admin"`
	Status           string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive suspended"`
	KYCStatus        string         `gorm:"type:varchar(50);default:'pending'" json:"kyc_status" validate:"oneof=pending verified rejected"`
	APIKeyHash       string         `gorm:"type:char(64);default:'';index" json:"-"`
	APIKeyPrefix     string         `gorm:"type:varchar(20);default:''" json:"api_key_prefix"`
	APIKeyCreatedAt  *time.Time     `json:"api_key_created_at"`
	APIKeyLastUsedAt *time.Time     `json:"api_key_last_used_at"`
	APIKeyRevokedAt  *time.Time     `json:"api_key_revoked_at"`
	LastLoginAt      *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) Validate() error {
	val := validator.New()

	return val.Struct(v)
}

func CreateVendor(name, email, password, companyName string) (*Vendor, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	v := &Vendor{
		Name:        name,
		Email:       email,
		Password:    pw,
		CompanyName: companyName,
		Role:        ROLE_VENDOR,
		Status:      STATUS_ACTIVE,
		KYCStatus:   KYC_PENDING,
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// IsActive reports whether the vendor status is active
func (v *Vendor) IsActive() bool {
	return v.Status == STATUS_ACTIVE
}

// CheckPassword verifies if the provided password matches the vendor's stored password
func (v *Vendor) CheckPassword(password string) bool {
	return CheckPasswordHash(password, v.Password)
}

// SetPassword hashes and sets a new password for the vendor
func (v *Vendor) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	v.Password = hashedPassword
	return nil
}

var apiKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const apiKeyPrefix = "ldk_"

// HashAPIKey returns the SHA-256 hash for the provided API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey creates a fresh API key for the vendor and stores its hash.
// The raw key is returned exactly once and never persisted.
func (v *Vendor) GenerateAPIKey() (string, error) {
	rawKey, prefix, hash, err := generateAPIKeyMaterial()
	if err != nil {
		return "", err
	}
	now := time.Now()
	v.APIKeyHash = hash
	v.APIKeyPrefix = prefix
	v.APIKeyCreatedAt = &now
	v.APIKeyRevokedAt = nil
	return rawKey, nil
}

// TouchAPIKey updates the last-used timestamp.
func (v *Vendor) TouchAPIKey() {
	now := time.Now()
	v.APIKeyLastUsedAt = &now
}

func generateAPIKeyMaterial() (string, string, string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", "", err
	}
	encoded := apiKeyEncoding.EncodeToString(b)
	encoded = strings.ToLower(encoded)
	rawKey := apiKeyPrefix + encoded
	if len(rawKey) < 12 {
		return "", "", "", fmt.Errorf("api key generation failed: key too short")
	}
	prefix := rawKey[:min(len(rawKey), 16)]
	hash := HashAPIKey(rawKey)
	return rawKey, prefix, hash, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
