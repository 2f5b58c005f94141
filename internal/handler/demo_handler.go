package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mkarlsson/webdemo/internal/repo"
	"github.com/mkarlsson/webdemo/internal/service"
	"github.com/mkarlsson/webdemo/internal/view"
	"github.com/mkarlsson/webdemo/internal/webres"
)

// DemoHandler serves the endpoints that exercise each response variant.
type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) Root(c *gin.Context) (*webres.Response, error) {
	return webres.Text("Hello, world!"), nil
}

func (h *DemoHandler) Ping(c *gin.Context) (*webres.Response, error) {
	return webres.Text("pong"), nil
}

func (h *DemoHandler) Reverse(c *gin.Context) (*webres.Response, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	runes := []rune(string(body))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return webres.Text(string(runes)), nil
}

func (h *DemoHandler) ParamTest(c *gin.Context) (*webres.Response, error) {
	return webres.Text("The param is: " + c.Query("foo")), nil
}

func (h *DemoHandler) JSONTest(c *gin.Context) (*webres.Response, error) {
	return webres.JSON(gin.H{"foo": "bar"}), nil
}

func (h *DemoHandler) JSONTestWithHeader(c *gin.Context) (*webres.Response, error) {
	return webres.JSON(gin.H{"foo": "bar"}).
		WithHeader("X-Test-Header", "Just a test!"), nil
}

func (h *DemoHandler) HTMLTest(c *gin.Context) (*webres.Response, error) {
	return webres.HTML(view.HelloPage()), nil
}

func (h *DemoHandler) DBTest(c *gin.Context, conn *sqlx.Conn) (*webres.Response, error) {
	row := map[string]any{}
	if err := conn.QueryRowxContext(c.Request.Context(), "SELECT 1 AS result").MapScan(row); err != nil {
		return nil, err
	}
	return webres.JSON(row), nil
}

func (h *DemoHandler) UserSearch(c *gin.Context, conn *sqlx.Conn) (*webres.Response, error) {
	auth := service.NewAuthService(repo.NewUserRepo(conn))
	count, err := auth.CountUsersByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		return nil, err
	}
	return webres.JSON(gin.H{"c": count}), nil
}

type credentialsInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// TestJSON decodes the body into a permissive structural type and then
// validates each field explicitly, never trusting dynamic field access.
func (h *DemoHandler) TestJSON(c *gin.Context) (*webres.Response, error) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return webres.JSON(gin.H{"error": "Invalid request body"}).WithStatus(422), nil
	}
	if _, verr := service.ValidateEmail(input.Email); verr != nil {
		return webres.JSON(gin.H{"error": verr.Message}).WithStatus(422), nil
	}
	if _, verr := service.ValidatePassword(input.Password); verr != nil {
		return webres.JSON(gin.H{"error": verr.Message}).WithStatus(422), nil
	}
	return webres.JSON(gin.H{"success": true}), nil
}
