package controllers

import (
	"errors"
	"net/http"

	"storefront/models"
	"storefront/repositories"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userRepo *repositories.UserRepository
}

func NewAuthController(userRepo *repositories.UserRepository) *AuthController {
	return &AuthController{userRepo: userRepo}
}

// Register godoc
// @Summary Register new user
// @Description Create an account and return a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	user, err := ctrl.userRepo.Create(c.Request.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	token, _ := utils.GenerateToken(user.ID, user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
			},
		},
	})
}

// Login godoc
// @Summary User login
// @Description Login with username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	user, err := ctrl.userRepo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	token, _ := utils.GenerateToken(user.ID, user.Username)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			},
		},
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Current contact and shipping fields, prefilled from the last checkout
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := ctrl.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile retrieved",
		"data":    user,
	})
}

// UpdateSettings godoc
// @Summary Update account settings
// @Description Change username and/or password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SettingsRequest true "Settings Request"
// @Success 200 {object} models.Response
// @Router /auth/settings [patch]
func (ctrl *AuthController) UpdateSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if req.Username == "" && req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	if req.Username != "" {
		err := ctrl.userRepo.UpdateUsername(c.Request.Context(), userID, req.Username)
		if err != nil {
			if errors.Is(err, repositories.ErrUsernameTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update settings"})
			return
		}
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update settings"})
			return
		}
		if err := ctrl.userRepo.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated successfully"})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Delete the caller's account; cart items cascade
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/account [delete]
func (ctrl *AuthController) DeleteAccount(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.userRepo.Delete(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}
