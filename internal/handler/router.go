package handler

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mkarlsson/webdemo/internal/middleware"
	"github.com/mkarlsson/webdemo/internal/session"
	"github.com/mkarlsson/webdemo/web"
)

type RouterDeps struct {
	Demo     *DemoHandler
	Auth     *AuthHandler
	DB       *sqlx.DB
	Sessions session.Authenticator
	Logger   *zap.Logger
	Registry *prometheus.Registry

	CORSAllowlist []string
	UseFSAssets   bool
	AssetsDir     string
}

// NewRouter wires the cookie/HTML variant: every route goes through the
// response model, authenticated routes sit behind the session middleware
// with the redirect challenge.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(deps.CORSAllowlist),
		middleware.NewHTTPMetrics(deps.Registry).Handler(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	log := deps.Logger

	r.GET("/", wrap(log, deps.Demo.Root))
	r.GET("/ping", wrap(log, deps.Demo.Ping))
	r.POST("/reverse", wrap(log, deps.Demo.Reverse))
	r.GET("/param_test", wrap(log, deps.Demo.ParamTest))
	r.GET("/json_test", wrap(log, deps.Demo.JSONTest))
	r.GET("/json_test_with_header", wrap(log, deps.Demo.JSONTestWithHeader))
	r.GET("/html_test", wrap(log, deps.Demo.HTMLTest))
	r.GET("/db_test", wrapConn(log, deps.DB, deps.Demo.DBTest))
	r.GET("/user_search", wrapConn(log, deps.DB, deps.Demo.UserSearch))
	r.POST("/test_json", wrap(log, deps.Demo.TestJSON))
	r.POST("/signup", wrapTx(log, deps.DB, deps.Auth.Signup))

	r.GET("/login", wrap(log, deps.Auth.LoginPage))
	r.POST("/login", deps.Auth.Login)

	authed := r.Group("")
	authed.Use(middleware.RequireSession(deps.Sessions, middleware.RedirectChallenge("/login")))
	authed.GET("/logout", deps.Auth.Logout)
	authed.GET("/secret", wrap(log, deps.Auth.Secret))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	if deps.UseFSAssets {
		r.Static("/public", deps.AssetsDir)
	} else {
		assets, err := fs.Sub(web.Assets, "public")
		if err != nil {
			panic(err)
		}
		r.StaticFS("/public", http.FS(assets))
	}

	return r
}
