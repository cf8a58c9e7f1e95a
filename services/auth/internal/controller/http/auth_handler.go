package http

import (
	"net/http"

	"clipstream/pkg/apperr"
	"clipstream/pkg/jwt"
	"clipstream/pkg/query"
	"clipstream/pkg/response"
	"clipstream/services/auth/internal/entity"
	"clipstream/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UpdateAccountRequest struct {
	Fullname *string `json:"fullname"`
	Email    *string `json:"email"`
}

type AuthResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Register with fullname, email, username, password, a required avatar image and an optional cover image
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname formData string true "Full name"
// @Param        email formData string true "Email"
// @Param        username formData string true "Username"
// @Param        password formData string true "Password"
// @Param        avatar formData file true "Avatar image"
// @Param        coverImage formData file false "Cover image"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      409  {object}  response.Envelope
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	fullname := c.PostForm("fullname")
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")

	avatar, _ := c.FormFile("avatar")
	coverImage, _ := c.FormFile("coverImage")

	user, pair, err := h.authUseCase.Register(fullname, email, username, password, avatar, coverImage)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.Created(c, AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User registered successfully")
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email or username and receive an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}

	user, pair, err := h.authUseCase.Login(identifier, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.OK(c, AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.authUseCase.Logout(userID); err != nil {
		response.Error(c, err)
		return
	}

	h.clearTokenCookies(c)
	response.OK(c, nil, "User logged out successfully")
}

// RefreshToken godoc
// @Summary      Rotate the refresh token
// @Description  Exchange a valid refresh token (cookie or body) for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	pair, err := h.authUseCase.RefreshTokens(incoming)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.OK(c, pair, "Access token refreshed")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Old and new password are required"))
		return
	}

	if err := h.authUseCase.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Password changed successfully")
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.authUseCase.GetUser(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user, "Current user fetched successfully")
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	user, err := h.authUseCase.UpdateAccount(userID, req.Fullname, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user, "Account details updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, apperr.InvalidArgument("Avatar file is required"))
		return
	}

	user, err := h.authUseCase.UpdateAvatar(userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user, "Avatar updated successfully")
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("coverImage")
	if err != nil {
		response.Error(c, apperr.InvalidArgument("Cover image file is required"))
		return
	}

	user, err := h.authUseCase.UpdateCoverImage(userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user, "Cover image updated successfully")
}

// GetChannelProfile godoc
// @Summary      Channel profile
// @Description  Public channel page with subscriber counters and the caller's subscription state
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /channel/{username} [get]
func (h *AuthHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("user_id")

	profile, err := h.authUseCase.GetChannelProfile(username, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile, "Channel profile fetched successfully")
}

func (h *AuthHandler) GetWatchHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	p := query.Parse(c.Query("page"), c.Query("limit"), "", "", "")

	watched, err := h.authUseCase.GetWatchHistory(userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"watch_history": watched, "page": p.Page, "limit": p.Limit}, "Watch history fetched successfully")
}

func (h *AuthHandler) AddToWatchHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	videoID := c.Param("videoId")

	if err := h.authUseCase.AddToWatchHistory(userID, videoID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Video added to watch history")
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *jwt.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", pair.AccessToken, 24*3600, "/", "", true, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 10*24*3600, "/", "", true, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}
