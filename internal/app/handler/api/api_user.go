package api

import (
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/handler/middleware"
	"fleet_registry/internal/app/repository"
	"fleet_registry/internal/app/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Repository *repository.Repository
}

// @Summary Register a new user
// @Description Register a new operator with login and password
// @Tags users
// @Accept json
// @Produce json
// @Param user body ds.User true "User info"
// @Success 201 {object} object "data: registered user"
// @Failure 400 {object} object "error: message"
// @Failure 409 {object} object "error: login taken"
// @Router /api/users/register [post]
func (h *UserHandler) RegisterUserAPI(c *gin.Context) {
	var user ds.User
	if err := c.ShouldBindJSON(&user); err != nil {
		bindError(c, err)
		return
	}
	registeredUser, err := h.Repository.RegisterUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": registeredUser,
	})
}

type credentials struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Login user
// @Description Authenticate user, set session cookie and return JWT
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body credentials true "Credentials"
// @Success 200 {object} object "message: string, data: {token: string}"
// @Failure 400 {object} object "error: message"
// @Failure 401 {object} object "error: message"
// @Router /api/users/login [post]
func (h *UserHandler) LoginUserAPI(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		bindError(c, err)
		return
	}
	token, user, err := h.Repository.LoginUser(c.Request.Context(), creds.Login, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie("jwt", token, int(utils.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    gin.H{"token": token, "user": user},
	})
}

// @Summary Logout user
// @Description Clear session cookie and revoke the Redis session
// @Tags users
// @Produce json
// @Success 200 {object} object "message: string"
// @Failure 401 {object} object "error: message"
// @Router /api/users/logout [post]
func (h *UserHandler) LogoutUserAPI(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	if err := h.Repository.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// @Summary Get user profile
// @Description Get profile of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} object "data: ds.User"
// @Failure 401 {object} object "error: message"
// @Router /api/users/profile [get]
func (h *UserHandler) GetUserProfileAPI(c *gin.Context) {
	id := c.GetInt(middleware.UserIDKey)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	user, err := h.Repository.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
