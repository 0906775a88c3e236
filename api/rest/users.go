package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "socialnet/middleware"
	"socialnet/social"
)

// UserHandler handles user REST endpoints.
type UserHandler struct {
	svc *social.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *social.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/users?page=0&size=20&last_name=xx.
// Without page/size it returns every user; with last_name it filters by
// substring match on the last name.
func (h *UserHandler) List(c *gin.Context) {
	if sub := c.Query("last_name"); sub != "" {
		users, err := h.svc.UsersWithLastNameContaining(sub)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
		return
	}

	pageStr, sizeStr := c.Query("page"), c.Query("size")
	if pageStr == "" && sizeStr == "" {
		users, err := h.svc.ListUsers()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
		return
	}

	page, _ := strconv.Atoi(pageStr)
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page size"})
		return
	}
	users, err := h.svc.UsersPage(page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "page": page, "size": size})
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	u, err := h.svc.GetUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

// UpdateMe handles PUT /api/users/me. It updates the authenticated user's
// profile fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := mw.GetUserID(c)

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.svc.GetUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.Email = req.Email

	old, err := h.svc.UpdateUser(current)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": current, "previous": old})
}

// DeleteMe handles DELETE /api/users/me. It removes the authenticated
// user together with every friendship the user is part of, and ends the
// session.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := mw.GetUserID(c)

	removed, err := h.svc.RemoveUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": removed})
}
