package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investwise/internal/models"
	"investwise/internal/services"
)

// UserProfileHandler handles user profile requests.
type UserProfileHandler struct {
	profileService services.UserProfileServicer
}

// NewUserProfileHandler creates a new UserProfileHandler.
func NewUserProfileHandler(profileService services.UserProfileServicer) *UserProfileHandler {
	return &UserProfileHandler{profileService: profileService}
}

// CreateProfileRequest represents the request payload for creating a profile.
type CreateProfileRequest struct {
	UserID    string `json:"userId" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Phone     string `json:"phone" binding:"max=30"`
	Address   string `json:"address" binding:"max=500"`
}

// ProfileResponse wraps a profile with an acknowledgement.
type ProfileResponse struct {
	Message     string             `json:"message"`
	UserProfile models.UserProfile `json:"userProfile"`
}

// CreateProfile handles creating a profile and its empty portfolio.
// @Summary     Create user profile
// @Description Idempotently create a profile and an empty portfolio for a user
// @Tags        user-profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProfileRequest true "Profile details"
// @Success     201 {object} ProfileResponse "Created"
// @Success     200 {object} ProfileResponse "Already exists"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user-profile/create [post]
func (h *UserProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	userID, err := authorizeUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	email := req.Email
	if email == "" {
		email = c.GetString("email")
	}

	profile, created, err := h.profileService.CreateProfile(requestContext(c), services.ProfileInput{
		UserID:    userID,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, ProfileResponse{Message: "User profile already exists", UserProfile: *profile})
		return
	}
	c.JSON(http.StatusCreated, ProfileResponse{Message: "User profile created successfully", UserProfile: *profile})
}

// GetProfile handles fetching a profile.
// @Summary     Get user profile
// @Tags        user-profile
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {object} models.UserProfile "Profile"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user-profile/{userId} [get]
func (h *UserProfileHandler) GetProfile(c *gin.Context) {
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
