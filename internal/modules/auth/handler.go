package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"radioplayer/internal/middleware"
	"radioplayer/internal/pkg/response"
)

// CookieConfig controls the session cookie the HTML flow relies on.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

// Handler manages sign-up, login and logout. Each endpoint speaks both
// JSON (for API clients) and form posts (for the HTML pages); forms get
// redirects and re-rendered pages, JSON gets the {success,...} envelope.
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, "signup.html", http.StatusBadRequest, "Username (3+ chars) and password are required")
		return
	}

	user, token, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			h.fail(c, "signup.html", http.StatusConflict, "Username already taken")
			return
		}
		h.fail(c, "signup.html", http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.setSessionCookie(c, token)

	if wantsJSON(c) {
		response.OK(c, http.StatusCreated, gin.H{
			"user":  UserPublic{ID: user.ID, Username: user.Username},
			"token": token,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, "login.html", http.StatusBadRequest, "Username and password are required")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.fail(c, "login.html", http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.fail(c, "login.html", http.StatusInternalServerError, "Failed to login")
		return
	}

	h.setSessionCookie(c, token)

	if wantsJSON(c) {
		response.OK(c, http.StatusOK, gin.H{
			"user":  UserPublic{ID: user.ID, Username: user.Username},
			"token": token,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the cookie. Idempotent: logging out twice is fine.
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)

	if wantsJSON(c) {
		response.OK(c, http.StatusOK, gin.H{"message": "Logged out"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(middleware.SessionCookieName, token, int(h.cookies.TTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cookies.Secure, true)
}

func (h *Handler) fail(c *gin.Context, page string, status int, message string) {
	if wantsJSON(c) {
		response.Error(c, status, message)
		return
	}
	c.HTML(status, page, gin.H{"Error": message})
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == "application/json"
}
