package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"radioplayer/internal/domain"
	"radioplayer/internal/middleware"
	"radioplayer/internal/modules/auth"
)

// Handler serves the HTML pages around the JSON API.
type Handler struct {
	authService *auth.Service
}

func NewHandler(authService *auth.Service) *Handler {
	return &Handler{authService: authService}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/signup", h.SignUpPage)
	r.GET("/login", h.LoginPage)
}

// Index renders the player shell with the demo station and, when a
// session is present, the current user.
func (h *Handler) Index(c *gin.Context) {
	data := gin.H{"DemoStation": domain.DemoStation()}

	if userID := middleware.UserIDFromContext(c); userID != nil {
		if user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID); err == nil {
			data["User"] = user
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) SignUpPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}
