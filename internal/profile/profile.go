// Package profile manages the user's identity card: editable contact
// details and a QR code encoding them for scanning at a pharmacy desk.
package profile

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/Murari1104/pharmaAi/internal/store"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// Details is the editable profile payload
type Details struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	UserID string `json:"user_id"`
}

// qrPayload is what the identity QR code encodes
type qrPayload struct {
	Name      string `json:"name"`
	UserID    string `json:"userId"`
	Phone     string `json:"phone"`
	Timestamp string `json:"timestamp"`
}

// Service reads and updates the stored profile
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates the profile service
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// SeedDefault writes the demonstration profile if none exists yet
func (s *Service) SeedDefault() error {
	if _, err := s.store.GetProfile(); err == nil {
		return nil
	}

	return s.store.SaveProfile(&store.Profile{
		Name:   "John Doe",
		Phone:  "+1 (555) 123-4567",
		UserID: "USR-2024-001",
	})
}

// Get returns the current profile
func (s *Service) Get() (*store.Profile, error) {
	return s.store.GetProfile()
}

// Update saves edited details. The name must stay non-empty; the user id is
// assigned by the system and cannot be cleared, only carried forward.
func (s *Service) Update(d Details) (*store.Profile, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, apperrors.New(apperrors.ErrBadRequest.Code, "profile name is empty")
	}

	current, err := s.store.GetProfile()
	if err != nil {
		return nil, err
	}

	current.Name = strings.TrimSpace(d.Name)
	current.Phone = strings.TrimSpace(d.Phone)
	if strings.TrimSpace(d.UserID) != "" {
		current.UserID = strings.TrimSpace(d.UserID)
	}

	if err := s.store.SaveProfile(current); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", current.UserID))
	return current, nil
}

// QRCard renders the identity card as a PNG QR code. The payload matches
// what the original app shows when tapping the profile picture.
func (s *Service) QRCard(now time.Time, size int) ([]byte, error) {
	p, err := s.store.GetProfile()
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = 256
	}

	data, err := json.Marshal(qrPayload{
		Name:      p.Name,
		UserID:    p.UserID,
		Phone:     p.Phone,
		Timestamp: now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, "failed to render QR card")
	}
	return png, nil
}
