package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
	"github.com/Rishabh705/pixel-pals-backend/internal/store"
)

type ContactHandlers struct {
	Users *store.Users
}

// Add saves another user, looked up by name, to the caller's contact list.
// Adding an existing contact is a no-op.
func (h *ContactHandlers) Add(c *gin.Context) {
	var req struct {
		ContactName string `json:"contactname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ContactName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	userID := domain.UserID(c.GetString(CtxUserID))

	contact, err := h.Users.ByUsername(c.Request.Context(), req.ContactName)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No such contact exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding contact"})
		return
	}

	if err := h.Users.AddContact(c.Request.Context(), userID, contact.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No such user exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding contact"})
		return
	}

	contacts, err := h.Users.Contacts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding contact"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact added to contact list successfully.",
		"data":    contacts,
	})
}

// List returns the caller's saved contacts.
func (h *ContactHandlers) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = c.GetString(CtxUserID)
	}

	contacts, err := h.Users.Contacts(c.Request.Context(), domain.UserID(userID))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No such user exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching contacts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Contacts fetched successfully.",
		"data":    contacts,
	})
}
