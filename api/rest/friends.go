package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "socialnet/middleware"
	"socialnet/social"
)

// FriendHandler handles friendship REST endpoints.
type FriendHandler struct {
	svc *social.Service
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(svc *social.Service) *FriendHandler {
	return &FriendHandler{svc: svc}
}

// List handles GET /api/friends?page=0&size=20.
// Without page/size it returns every friend of the authenticated user.
func (h *FriendHandler) List(c *gin.Context) {
	userID := mw.GetUserID(c)

	pageStr, sizeStr := c.Query("page"), c.Query("size")
	if pageStr == "" && sizeStr == "" {
		friends, err := h.svc.FriendsOf(userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"friends": friends})
		return
	}

	page, _ := strconv.Atoi(pageStr)
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page size"})
		return
	}
	friends, err := h.svc.FriendsOfPage(userID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends, "page": page, "size": size})
}

// FromMonth handles GET /api/friends/from-month/:month. The month is the
// numeric month (1-12) in which the friendship was created.
func (h *FriendHandler) FromMonth(c *gin.Context) {
	userID := mw.GetUserID(c)

	m, err := strconv.Atoi(c.Param("month"))
	if err != nil || m < 1 || m > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	friends, err := h.svc.FriendsFromMonth(userID, time.Month(m))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// Remove handles DELETE /api/friends/:id. It removes the friendship
// between the authenticated user and the given user, whichever
// orientation the edge is stored in.
func (h *FriendHandler) Remove(c *gin.Context) {
	userID := mw.GetUserID(c)

	other, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	removed, err := h.svc.RemoveFriendship(userID, other)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friendship": removed})
}
