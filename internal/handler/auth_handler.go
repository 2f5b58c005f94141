package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/repo"
	"github.com/mkarlsson/webdemo/internal/service"
	"github.com/mkarlsson/webdemo/internal/session"
	"github.com/mkarlsson/webdemo/internal/view"
	"github.com/mkarlsson/webdemo/internal/webres"
)

// AuthHandler serves the cookie-session login flow and the pages behind it.
type AuthHandler struct {
	auth     *service.AuthService
	sessions session.Authenticator
	logger   *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions session.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

func (h *AuthHandler) LoginPage(c *gin.Context) (*webres.Response, error) {
	return webres.HTML(view.LoginPage()), nil
}

// Login consumes the posted form. Bad credentials bounce back to the login
// page with no hint whether the email or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	userID, err := h.auth.Authenticate(c.Request.Context(),
		c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if appErr.IsUnauthorized(err) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.fail(c, err)
		return
	}
	if _, err := h.sessions.Issue(c.Writer, session.Identity{UserID: userID}); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/secret")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Invalidate(c.Writer)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Secret(c *gin.Context) (*webres.Response, error) {
	user, err := h.auth.GetUser(c.Request.Context(), getUserID(c))
	if err != nil {
		return nil, err
	}
	return webres.HTML(view.SecretPage(user.Email)), nil
}

type signupInput struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Password    *string `json:"password"`
	TOSAccepted bool    `json:"tos_accepted"`
}

// Signup validates the input and inserts the user inside the request
// transaction. A duplicate email is a fatal condition for this request
// and surfaces through the generic 500 path.
func (h *AuthHandler) Signup(c *gin.Context, tx *sqlx.Tx) (*webres.Response, error) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return webres.JSON(gin.H{"error": "Invalid request body"}).WithStatus(422), nil
	}
	email, verr := service.ValidateEmail(input.Email)
	if verr != nil {
		return webres.JSON(gin.H{"error": verr.Message}).WithStatus(422), nil
	}
	plain, verr := service.ValidatePassword(input.Password)
	if verr != nil {
		return webres.JSON(gin.H{"error": verr.Message}).WithStatus(422), nil
	}
	var name string
	if input.Name != nil {
		name = *input.Name
	}

	auth := service.NewAuthService(repo.NewUserRepo(tx))
	id, err := auth.CreateUser(c.Request.Context(), email, name, plain, input.TOSAccepted)
	if err != nil {
		return nil, err
	}
	return webres.JSON(gin.H{"id": id}), nil
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	h.logger.Error("login failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.String(http.StatusInternalServerError, "500: %v", err)
}
