package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studyzen/backend/internal/models"
)

const onlineUsersKey = "chat:online"

// Storage is the persistence surface the chat subsystem depends on. The
// relay only ever appends; reads exist for the HTTP/admin side.
type Storage interface {
	SaveRoom(room *models.ChatRoom) error
	CloseRoom(roomID string) error
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	GetActiveRoomIDs() ([]string, error)

	SaveMessage(msg *models.ChatHistory) error
	GetChatHistory(roomID string) ([]models.ChatHistory, error)
	PublishEvent(roomID string, ev models.ChatEvent) error

	SaveReport(report *models.Report) error
	GetPendingReports() ([]models.Report, error)
	ResolveReport(id uint, status string) error

	AddOnlineUser(anonID string) error
	RemoveOnlineUser(anonID string) error
	GetOnlineCount() (int64, error)
}

// Service implements Storage over PostgreSQL (gorm) and Redis. Redis may be
// nil for tooling that only touches the database, e.g. the admin CLI.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveRoom upserts the room record.
func (s *Service) SaveRoom(room *models.ChatRoom) error {
	return s.DB.Save(room).Error
}

// CloseRoom marks a room inactive and stamps its end time.
func (s *Service) CloseRoom(roomID string) error {
	return s.DB.Model(&models.ChatRoom{}).
		Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  time.Now(),
		}).Error
}

func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("chat room not found")
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetActiveRoomIDs returns the ids of all rooms still marked active.
func (s *Service) GetActiveRoomIDs() ([]string, error) {
	var roomIDs []string
	if err := s.DB.Model(&models.ChatRoom{}).
		Where("is_active = ?", true).
		Pluck("room_id", &roomIDs).Error; err != nil {
		return nil, err
	}
	return roomIDs, nil
}

// SaveMessage appends one message to the chat log. CreatedAt is filled by
// the database layer on insert and serves as the message timestamp.
func (s *Service) SaveMessage(msg *models.ChatHistory) error {
	return s.DB.Create(msg).Error
}

// GetChatHistory returns a room's transcript in send order.
func (s *Service) GetChatHistory(roomID string) ([]models.ChatHistory, error) {
	var history []models.ChatHistory
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&history).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return history, nil
}

// PublishEvent mirrors a chat event onto the room's Redis channel.
func (s *Service) PublishEvent(roomID string, ev models.ChatEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, "chat:"+roomID, payload).Err()
}

func (s *Service) SaveReport(report *models.Report) error {
	if report.Status == "" {
		report.Status = models.ReportStatusNew
	}
	if err := s.DB.Create(report).Error; err != nil {
		log.Printf("failed to save report for room %s: %v", report.RoomID, err)
		return err
	}
	return nil
}

// GetPendingReports returns reports that still need moderator attention,
// flagged first.
func (s *Service) GetPendingReports() ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("status IN ?", []string{models.ReportStatusNew, models.ReportStatusFlagged}).
		Order("severity desc, created_at asc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) ResolveReport(id uint, status string) error {
	return s.DB.Model(&models.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AddOnlineUser marks a connection as online in the presence set.
func (s *Service) AddOnlineUser(anonID string) error {
	return s.Redis.SAdd(s.Ctx, onlineUsersKey, anonID).Err()
}

// RemoveOnlineUser clears a connection from the presence set.
func (s *Service) RemoveOnlineUser(anonID string) error {
	return s.Redis.SRem(s.Ctx, onlineUsersKey, anonID).Err()
}

// GetOnlineCount returns the number of currently online connections.
func (s *Service) GetOnlineCount() (int64, error) {
	return s.Redis.SCard(s.Ctx, onlineUsersKey).Result()
}
