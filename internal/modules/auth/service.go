package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-notes/core/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const avatarSubdir = "avatars"

// ErrPasswordLoginUnavailable is returned when an OAuth-born account (no
// local credential) attempts a password login.
var ErrPasswordLoginUnavailable = errors.New("this account signs in with its linked provider")

type Service struct {
	db        *gorm.DB
	staticDir string
	log       *zap.Logger
	http      *http.Client
}

func NewService(db *gorm.DB, staticDir string, log *zap.Logger) *Service {
	return &Service{
		db:        db,
		staticDir: staticDir,
		log:       log,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CompleteLogin upserts the local user for a verified external profile.
// Email is the identity key: a repeated callback for the same email updates
// the existing record. The avatar is downloaded exactly once per login and
// stored under a fresh unique filename; a failed download keeps the
// previous avatar.
func (s *Service) CompleteLogin(ctx context.Context, providerType string, profile *ExternalProfile, ip string) (*models.UserModel, error) {
	if strings.TrimSpace(profile.Email) == "" {
		return nil, errors.New("provider returned no email")
	}

	avatar := s.downloadAvatar(ctx, profile.AvatarURL)

	now := time.Now()
	var user models.UserModel
	err := s.db.Where("email = ?", profile.Email).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":            profile.Name,
			"provider":        providerType,
			"provider_uid":    profile.ID,
			"last_login_time": &now,
			"last_login_ip":   ip,
		}
		if avatar != "" {
			updates["avatar"] = avatar
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.UserModel{
			Name:          profile.Name,
			Email:         profile.Email,
			Avatar:        avatar,
			Provider:      providerType,
			ProviderUID:   profile.ID,
			PasswordHash:  nil, // OAuth-born accounts carry no local credential
			LastLoginTime: &now,
			LastLoginIP:   ip,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &user, nil
}

// LoginWithPassword authenticates a local account by email and password.
func (s *Service) LoginWithPassword(email, password string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, ErrPasswordLoginUnavailable
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID loads a user by primary key.
func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// downloadAvatar fetches the provider avatar and stores it in the static
// dir under a collision-resistant filename. Best effort: any failure is
// logged and reported as "".
func (s *Service) downloadAvatar(ctx context.Context, avatarURL string) string {
	if strings.TrimSpace(avatarURL) == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return ""
	}
	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn("avatar download failed", zap.String("url", avatarURL), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("avatar download failed", zap.String("url", avatarURL), zap.Int("status", resp.StatusCode))
		return ""
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return ""
	}

	name := avatarFileName(avatarURL, resp.Header.Get("Content-Type"))
	dir := filepath.Join(s.staticDir, avatarSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Warn("avatar dir", zap.Error(err))
		return ""
	}
	if err := os.WriteFile(filepath.Join(dir, name), payload, 0o644); err != nil {
		s.log.Warn("avatar write", zap.Error(err))
		return ""
	}
	return path.Join(avatarSubdir, name)
}

// avatarFileName generates a fresh unique filename preserving a sensible
// image extension.
func avatarFileName(avatarURL, contentType string) string {
	ext := strings.ToLower(filepath.Ext(path.Base(avatarURL)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}
