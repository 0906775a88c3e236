package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "socialnet/middleware"
	"socialnet/model"
	"socialnet/social"
)

// MessageHandler handles messaging REST endpoints.
type MessageHandler struct {
	svc *social.Service
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *social.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type sendMessageBody struct {
	To   []string `json:"to"`
	Body string   `json:"body" binding:"required"`
	// ReplyTo references the replied-to message. When set, To is ignored
	// and the reply is addressed to that message's sender.
	ReplyTo string `json:"reply_to"`
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	userID := mw.GetUserID(c)

	var body sendMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var m *model.Message
	if body.ReplyTo != "" {
		replyID, err := uuid.Parse(body.ReplyTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply_to"})
			return
		}
		original, err := h.svc.GetMessage(replyID)
		if err != nil {
			fail(c, err)
			return
		}
		m = model.NewReply(userID, body.Body, original)
	} else {
		to := make([]uuid.UUID, 0, len(body.To))
		for _, s := range body.To {
			id, err := uuid.Parse(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient id"})
				return
			}
			to = append(to, id)
		}
		m = model.NewMessage(userID, to, body.Body)
	}

	if err := h.svc.SendMessage(m); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}

// Conversation handles GET /api/messages/with/:id. It returns every
// message between the authenticated user and the given user, oldest
// first.
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID := mw.GetUserID(c)

	other, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	msgs, err := h.svc.MessagesBetween(userID, other)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
