package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Murari1104/pharmaAi/internal/config"
	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	_ "github.com/glebarez/go-sqlite" // Pure Go SQLite driver
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// primaryProfileID keys the single self-hosted profile row
const primaryProfileID = "primary"

// Store provides SQLite-backed persistence for conversations and the profile
type Store struct {
	db *gorm.DB
}

// New creates a new Store instance
func New(cfg *config.Config) (*Store, error) {
	sqlitePath := cfg.Storage.SQLitePath
	if sqlitePath == "" {
		sqlitePath = filepath.Join(cfg.Storage.DataDir, "pharmaai.db")
	}

	sqliteDB, err := sql.Open("sqlite", sqlitePath+"?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqliteDB.SetMaxOpenConns(10)
	sqliteDB.SetMaxIdleConns(5)
	sqliteDB.SetConnMaxLifetime(time.Hour)

	db, err := gorm.Open(sqlite.Dialector{Conn: sqliteDB}, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	return NewWithDB(db)
}

// NewWithDB wraps an existing gorm connection; tests use it with :memory:
func NewWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Conversation{}, &ChatMessage{}, &Profile{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

func generateID(prefix string) string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return prefix + "_" + hex.EncodeToString(bytes)
}

// Conversation operations

func (s *Store) CreateConversation(conv *Conversation) error {
	if conv.ID == "" {
		conv.ID = generateID("conv")
	}
	if conv.Title == "" {
		conv.Title = "New Conversation"
	}
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()
	return s.db.Create(conv).Error
}

func (s *Store) GetConversation(id string) (*Conversation, error) {
	var conv Conversation
	err := s.db.Where("id = ?", id).First(&conv).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *Store) ListConversations(limit, offset int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 20
	}

	var convs []Conversation
	err := s.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&convs).Error
	return convs, err
}

func (s *Store) DeleteConversation(id string) error {
	if err := s.db.Where("conversation_id = ?", id).Delete(&ChatMessage{}).Error; err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&Conversation{}).Error
}

// Message operations

func (s *Store) AppendMessage(msg *ChatMessage) error {
	if msg.ID == "" {
		msg.ID = generateID("msg")
	}
	msg.CreatedAt = time.Now()

	if err := s.db.Create(msg).Error; err != nil {
		return err
	}

	return s.db.Model(&Conversation{}).Where("id = ?", msg.ConversationID).
		Updates(map[string]interface{}{
			"message_count": gorm.Expr("message_count + 1"),
			"updated_at":    time.Now(),
		}).Error
}

func (s *Store) GetMessages(conversationID string, limit, offset int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	var msgs []ChatMessage
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

// Profile operations

func (s *Store) GetProfile() (*Profile, error) {
	var p Profile
	err := s.db.Where("id = ?", primaryProfileID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveProfile(p *Profile) error {
	p.ID = primaryProfileID
	p.UpdatedAt = time.Now()

	existing := &Profile{}
	err := s.db.Where("id = ?", primaryProfileID).First(existing).Error
	if err == gorm.ErrRecordNotFound {
		p.CreatedAt = time.Now()
		return s.db.Create(p).Error
	}
	if err != nil {
		return err
	}

	p.CreatedAt = existing.CreatedAt
	return s.db.Save(p).Error
}
