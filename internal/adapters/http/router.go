// Package http wires the REST surface: auth, contacts, chats, the websocket
// upgrade endpoint and static files.
package http

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/adapters/ws"
	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/config"
	"github.com/Rishabh705/pixel-pals-backend/internal/store"
)

type Deps struct {
	Cfg    *config.Config
	Tokens *auth.Tokens
	Mongo  *store.Mongo
	WS     *ws.Controller
}

func SetupRouter(ctx context.Context, d Deps) *gin.Engine {
	if d.Cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if d.Cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(CORS(d.Cfg))

	authH := &AuthHandlers{
		Users:        d.Mongo.Users(),
		Tokens:       d.Tokens,
		CookieMaxAge: int(d.Cfg.RefreshTTL.Seconds()),
		Secure:       d.Cfg.Mode == "release",
	}
	contactH := &ContactHandlers{Users: d.Mongo.Users()}
	chatH := &ChatHandlers{
		Users:    d.Mongo.Users(),
		Chats:    d.Mongo.Chats(),
		Messages: d.Mongo.Messages(),
	}

	r.Static("/static", d.Cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(d.Cfg.StaticPath + "/index.html")
	})
	r.NoRoute(func(c *gin.Context) {
		page, err := os.ReadFile(d.Cfg.StaticPath + "/404.html")
		if err != nil {
			c.String(http.StatusNotFound, "404 Not Found")
			return
		}
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
	})

	log.Info().Str("module", "adapters.http").Str("static", d.Cfg.StaticPath).Msg("router setup")

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/register", authH.Register)
		authGroup.GET("/logout", authH.Logout)
	}
	r.GET("/refresh", authH.Refresh)

	api := r.Group("/api", VerifyJWT(d.Tokens))
	{
		api.GET("/contacts", contactH.List)
		api.POST("/contacts", contactH.Add)

		api.GET("/chats", chatH.List)
		api.POST("/chats/one-on-one", chatH.CreateOneOnOne)
		api.POST("/chats/group", chatH.CreateGroup)
		api.GET("/chats/:id", chatH.Get)
		api.PUT("/chats/:id", chatH.Update)
	}

	// The realtime channel itself stays outside VerifyJWT; identity is
	// claimed (optionally token-backed) on register-user instead.
	r.GET("/api/ws", func(c *gin.Context) {
		d.WS.HandleWS(ctx, c)
	})

	return r
}
