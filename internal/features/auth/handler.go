package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/xyz-asif/datejar/internal/config"
	"github.com/xyz-asif/datejar/internal/pkg/response"
	"github.com/xyz-asif/datejar/internal/pkg/token"
)

type Handler struct {
	repo *Repository
	cfg  *config.Config
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{
		repo: repo,
		cfg:  config.Load(),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with email, password, and name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.DatabaseError(c, "Failed to create user")
		return
	}

	signed, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Created(c, AuthResponse{Token: signed, User: user})
}

// Login godoc
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	signed, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Success(c, AuthResponse{Token: signed, User: user})
}

// Google godoc
// @Summary Sign in with Google
// @Description Verify a Google ID token and create or link the matching account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) Google(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.GoogleIDToken, h.cfg.GoogleClientID)
	if err != nil {
		response.Unauthorized(c, "Invalid Google token")
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	googleID := payload.Subject
	if email == "" || googleID == "" {
		response.Unauthorized(c, "Google token is missing required claims")
		return
	}

	user, err := h.repo.FindByGoogleID(c.Request.Context(), googleID)
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}

	if user == nil {
		// Link by email if the account already exists, otherwise create it.
		user, err = h.repo.FindByEmail(c.Request.Context(), email)
		if err != nil {
			response.DatabaseError(c, "Failed to look up user")
			return
		}
		if user != nil {
			if err := h.repo.LinkGoogleID(c.Request.Context(), user.ID, googleID); err != nil {
				response.DatabaseError(c, "Failed to link account")
				return
			}
			user.GoogleID = googleID
		} else {
			user = &User{Email: email, Name: name, GoogleID: googleID}
			if err := h.repo.Create(c.Request.Context(), user); err != nil {
				response.DatabaseError(c, "Failed to create user")
				return
			}
		}
	}

	signed, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Success(c, AuthResponse{Token: signed, User: user})
}

// Me godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} User
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}
	response.Success(c, user)
}

// Logout godoc
// @Summary Logout
// @Description Stateless logout; the client discards its token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "Logged out"})
}
