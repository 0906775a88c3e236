package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "socialnet/middleware"
	"socialnet/model"
	"socialnet/social"
)

// RequestHandler handles friend request REST endpoints.
type RequestHandler struct {
	svc *social.Service
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *social.Service) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type sendRequestBody struct {
	ToID string `json:"to_id" binding:"required"`
}

// Send handles POST /api/requests. The authenticated user sends a friend
// request to the given user.
func (h *RequestHandler) Send(c *gin.Context) {
	userID := mw.GetUserID(c)

	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	toID, err := uuid.Parse(body.ToID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to_id"})
		return
	}

	from, err := h.svc.GetUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	to, err := h.svc.GetUser(toID)
	if err != nil {
		fail(c, err)
		return
	}

	request, err := h.svc.SendFriendRequest(from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// Pending handles GET /api/requests/pending. It lists the pending
// requests addressed to the authenticated user, oldest first.
func (h *RequestHandler) Pending(c *gin.Context) {
	userID := mw.GetUserID(c)

	requests, err := h.svc.PendingRequestsTo(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

type resolveRequestBody struct {
	FromID string `json:"from_id" binding:"required"`
}

// Accept handles POST /api/requests/accept. At most one pending request
// can exist per ordered pair, so the sender identifies the request among
// those addressed to the authenticated user.
func (h *RequestHandler) Accept(c *gin.Context) {
	request, ok := h.locate(c)
	if !ok {
		return
	}
	if err := h.svc.AcceptFriendRequest(request); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request.Resolved(model.StatusAccepted)})
}

// Reject handles POST /api/requests/reject.
func (h *RequestHandler) Reject(c *gin.Context) {
	request, ok := h.locate(c)
	if !ok {
		return
	}
	if err := h.svc.RejectFriendRequest(request); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request.Resolved(model.StatusRejected)})
}

// locate finds the pending request described by the body among those
// addressed to the authenticated user. It writes the error response
// itself when the request cannot be found.
func (h *RequestHandler) locate(c *gin.Context) (*model.FriendRequest, bool) {
	userID := mw.GetUserID(c)

	var body resolveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	fromID, err := uuid.Parse(body.FromID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from_id"})
		return nil, false
	}

	pending, err := h.svc.PendingRequestsTo(userID)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	for i := range pending {
		r := &pending[i]
		if r.FromID == fromID {
			return r, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
	return nil, false
}
