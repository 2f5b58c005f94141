package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mkarlsson/webdemo/internal/db"
	"github.com/mkarlsson/webdemo/internal/middleware"
	"github.com/mkarlsson/webdemo/internal/webres"
)

type webHandler func(c *gin.Context) (*webres.Response, error)

// wrap adapts a Response-returning handler to gin. Any error, from the
// handler or from serialization, becomes the generic "500: <err>" text
// reply.
func wrap(logger *zap.Logger, h webHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h(c)
		if err == nil {
			if err = webres.WriteGin(c, resp); err == nil {
				return
			}
		}
		logger.Error("unhandled request error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
			zap.Error(err))
		c.String(http.StatusInternalServerError, "500: %v", err)
	}
}

// wrapConn scopes one pooled database connection to the request. The
// connection is released when the handler returns, success or failure.
func wrapConn(logger *zap.Logger, pool *sqlx.DB, h func(c *gin.Context, conn *sqlx.Conn) (*webres.Response, error)) gin.HandlerFunc {
	return wrap(logger, func(c *gin.Context) (*webres.Response, error) {
		var resp *webres.Response
		err := db.WithConn(c.Request.Context(), pool, func(conn *sqlx.Conn) error {
			var herr error
			resp, herr = h(c, conn)
			return herr
		})
		return resp, err
	})
}

// wrapTx additionally runs the handler inside a transaction that commits
// on success and rolls back on error.
func wrapTx(logger *zap.Logger, pool *sqlx.DB, h func(c *gin.Context, tx *sqlx.Tx) (*webres.Response, error)) gin.HandlerFunc {
	return wrap(logger, func(c *gin.Context) (*webres.Response, error) {
		var resp *webres.Response
		err := db.WithTx(c.Request.Context(), pool, func(tx *sqlx.Tx) error {
			var herr error
			resp, herr = h(c, tx)
			return herr
		})
		return resp, err
	})
}

func getUserID(c *gin.Context) int64 {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(int64)
	return userID
}
