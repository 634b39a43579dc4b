package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
	"github.com/Rishabh705/pixel-pals-backend/internal/store"
)

type ChatHandlers struct {
	Users    *store.Users
	Chats    *store.Chats
	Messages *store.Messages
}

// CreateOneOnOne creates a direct chat with the receiver, or returns the
// existing one between the pair.
func (h *ChatHandlers) CreateOneOnOne(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiverID"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ReceiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	senderID := domain.UserID(c.GetString(CtxUserID))
	receiverID := domain.UserID(req.ReceiverID)

	if _, err := h.Users.ByID(c.Request.Context(), receiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Receiver does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	existing, err := h.Chats.FindIndividual(c.Request.Context(), senderID, receiverID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Chat already exists", "data": existing})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	chat, err := domain.NewIndividualChat(senderID, receiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.Chats.Create(c.Request.Context(), chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "One-on-one chat created successfully",
		"data":    chat,
	})
}

// CreateGroup creates a group chat; the creator is owner, first admin and
// always a member.
func (h *ChatHandlers) CreateGroup(c *gin.Context) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Members     []string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	senderID := domain.UserID(c.GetString(CtxUserID))

	members := make([]domain.UserID, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, domain.UserID(m))
	}
	chat, err := domain.NewGroupChat(req.Name, req.Description, senderID, members)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.Chats.Create(c.Request.Context(), chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Group chat created successfully",
		"data":    gin.H{"chat": chat},
	})
}

// List returns the user's chats split into individual and group buckets.
func (h *ChatHandlers) List(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		userID = c.GetString(CtxUserID)
	}

	chats, err := h.Chats.ForUser(c.Request.Context(), domain.UserID(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	individual := make([]domain.Chat, 0)
	group := make([]domain.Chat, 0)
	for _, chat := range chats {
		if chat.Type == domain.ChatGroup {
			group = append(group, chat)
			continue
		}
		individual = append(individual, chat)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User chats retrieved successfully",
		"data": gin.H{
			"individualChats": individual,
			"groupChats":      group,
		},
	})
}

// Get returns one chat with its messages and participant profiles.
func (h *ChatHandlers) Get(c *gin.Context) {
	chatID := domain.ChatID(c.Param("id"))

	chat, err := h.Chats.ByID(c.Request.Context(), chatID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No chat with the given ID exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	messages, err := h.Messages.ForChat(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	participants := h.participants(c, chat)

	c.JSON(http.StatusOK, gin.H{
		"message": "Chat retrieved successfully",
		"data": gin.H{
			"chat":         chat,
			"messages":     messages,
			"participants": participants,
		},
	})
}

// Update appends a message to the chat. The message is persisted (and the
// chat's last message updated) before any realtime broadcast the client
// triggers afterwards.
func (h *ChatHandlers) Update(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	chatID := domain.ChatID(c.Param("id"))
	senderID := domain.UserID(c.GetString(CtxUserID))

	chat, err := h.Chats.ByID(c.Request.Context(), chatID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Chat does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	msg, err := domain.NewMessage(chatID, senderID, req.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.Messages.Append(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := h.Chats.SetLastMessage(c.Request.Context(), chatID, msg); err != nil {
		log.Error().Err(err).Str("module", "http.chats").Str("chat", string(chatID)).Msg("update last message")
	}

	resp := gin.H{"message": "Chat updated successfully", "newMessage": msg}
	if receiverID, ok := chat.Counterpart(senderID); ok {
		if receiver, err := h.Users.ByID(c.Request.Context(), receiverID); err == nil {
			resp["receiver"] = receiver.AsContact()
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// participants resolves member profiles; a lookup failure degrades to the
// bare id list being absent rather than failing the chat fetch.
func (h *ChatHandlers) participants(c *gin.Context, chat *domain.Chat) []domain.Contact {
	out := make([]domain.Contact, 0, len(chat.Members))
	for _, id := range chat.Members {
		user, err := h.Users.ByID(c.Request.Context(), id)
		if err != nil {
			log.Warn().Err(err).Str("module", "http.chats").Str("user", string(id)).Msg("participant lookup")
			continue
		}
		out = append(out, user.AsContact())
	}
	return out
}
