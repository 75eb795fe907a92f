package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pocketbank/bank"
	"pocketbank/config"
	"pocketbank/store"
)

// App wires the HTTP layer to the store and the transfer service.
type App struct {
	Store     *store.Store
	Transfers *bank.Service
	Cfg       config.Config
}

// NewRouter builds the gin engine with CORS, the public auth routes and the
// bearer-token protected API.
func NewRouter(app *App) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{app.Cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	api := r.Group("/api")

	api.POST("/auth/register", app.registerUser)
	api.POST("/auth/login", app.loginUser)

	private := api.Group("", app.requireAuth)
	private.GET("/users/profile", app.getProfile)
	private.PUT("/users/profile/password", app.updatePassword)
	private.GET("/cards", app.getCards)
	private.POST("/cards", app.addCard)
	private.DELETE("/cards/:id", app.deleteCard)
	private.GET("/friends", app.getFriends)
	private.POST("/friends", app.addFriend)
	private.DELETE("/friends/:id", app.deleteFriend)
	private.GET("/transactions", app.getTransactions)
	private.POST("/transactions/transfer", app.createTransfer)

	return r
}
