package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Murari1104/pharmaAi/internal/assistant"
	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/Murari1104/pharmaAi/internal/profile"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ==================== Health & metrics ====================

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   "0.1.0",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleMetricsText(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/plain; version=0.0.4")
	return c.SendString(s.metrics.Prometheus())
}

func (s *Server) handleMetricsJSON(c *fiber.Ctx) error {
	return c.JSON(s.metrics.Snapshot())
}

// ==================== Chat ====================

type chatRequest struct {
	ConversationID string           `json:"conversation_id"`
	Messages       []assistant.Turn `json:"messages"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	reply, err := s.assistant.Chat(c.Context(), req.ConversationID, req.Messages)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrEmptyTranscript.Code {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.Error("Chat failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "chat failed"})
	}

	return c.JSON(fiber.Map{
		"conversation_id": reply.ConversationID,
		"content":         reply.Content,
		"fallback":        reply.Fallback,
		"latency_ms":      reply.LatencyMs,
	})
}

func (s *Server) handleWebSocket(c *websocket.Conn) {
	defer c.Close()

	for {
		mt, msg, err := c.ReadMessage()
		if err != nil {
			break
		}
		if mt != websocket.TextMessage {
			continue
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.WriteJSON(fiber.Map{"type": "error", "content": "invalid message format"})
			continue
		}

		reply, err := s.assistant.Chat(context.Background(), req.ConversationID, req.Messages)
		if err != nil {
			c.WriteJSON(fiber.Map{"type": "error", "content": err.Error()})
			continue
		}

		// Keep the id flowing back so the client can continue the thread
		c.WriteJSON(fiber.Map{
			"type":            "reply",
			"conversation_id": reply.ConversationID,
			"content":         reply.Content,
			"fallback":        reply.Fallback,
		})
	}
}

// ==================== Conversations ====================

func (s *Server) handleListConversations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	convs, err := s.store.ListConversations(limit, offset)
	if err != nil {
		s.logger.Error("Failed to list conversations", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "failed to list conversations"})
	}

	return c.JSON(convs)
}

func (s *Server) handleGetMessages(c *fiber.Ctx) error {
	convID := c.Params("id")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	if _, err := s.store.GetConversation(convID); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "conversation not found"})
	}

	messages, err := s.store.GetMessages(convID, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to get messages"})
	}

	return c.JSON(messages)
}

func (s *Server) handleDeleteConversation(c *fiber.Ctx) error {
	if err := s.store.DeleteConversation(c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete conversation"})
	}
	return c.SendStatus(204)
}

// ==================== Timeline ====================

func (s *Server) handleTimeline(c *fiber.Ctx) error {
	if date := c.Query("date"); date != "" {
		if !s.timeline.SelectDate(date) {
			return c.Status(400).JSON(fiber.Map{"error": "date outside current window"})
		}
	}
	return c.JSON(s.timeline.Week())
}

func (s *Server) handleTimelineHistory(c *fiber.Ctx) error {
	return c.JSON(s.timeline.History())
}

type addEntryRequest struct {
	Name    string `json:"name"`
	Time    string `json:"time"`
	AllDays bool   `json:"all_days"`
}

func (s *Server) handleAddEntry(c *fiber.Ctx) error {
	var req addEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	added, err := s.timeline.SaveEntry(req.Name, req.Time, req.AllDays)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	s.metrics.RecordEntriesAdded(len(added))
	return c.Status(201).JSON(fiber.Map{"entries": added})
}

func (s *Server) handleToggleEntry(c *fiber.Ctx) error {
	entry, found := s.timeline.ToggleTaken(c.Params("id"))
	s.metrics.RecordToggle(found)

	// A miss is not an error: stale clients toggle ids that are gone
	if !found {
		return c.JSON(fiber.Map{"found": false})
	}
	return c.JSON(fiber.Map{"found": true, "entry": entry})
}

// ==================== Profile ====================

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	p, err := s.profile.Get()
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "profile not found"})
	}
	return c.JSON(p)
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	var req profile.Details
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	p, err := s.profile.Update(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(p)
}

func (s *Server) handleProfileQR(c *fiber.Ctx) error {
	size := c.QueryInt("size", 256)

	png, err := s.profile.QRCard(time.Now(), size)
	if err != nil {
		s.logger.Error("Failed to render QR card", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "failed to render QR card"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
