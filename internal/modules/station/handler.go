package station

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"radioplayer/internal/middleware"
	"radioplayer/internal/pkg/response"
)

// Handler maps the favorites and recently-played routes onto the service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the endpoints. Reads work anonymously; writes are
// registered a second time behind RequireAuth by the caller. All routes
// here assume the CurrentUser middleware already ran.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, protected *gin.RouterGroup) {
	api.GET("/favorites", h.GetFavorites)
	api.GET("/recently-played", h.GetRecentlyPlayed)

	protected.POST("/favorites", h.AddFavorite)
	protected.DELETE("/favorites/:id", h.RemoveFavorite)
	protected.POST("/recently-played", h.AddRecentlyPlayed)
}

// GetFavorites returns the caller's favorite stations: the per-user set
// when authenticated, the legacy global set otherwise.
func (h *Handler) GetFavorites(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	favorites, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get favorites")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"favorites": favorites})
}

func (h *Handler) AddFavorite(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st, already, err := h.service.AddFavorite(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStationRefRequired), errors.Is(err, ErrStationURLRequired):
			response.Error(c, http.StatusBadRequest, "Station URL is required")
		case errors.Is(err, ErrStationNotFound):
			response.Error(c, http.StatusNotFound, "Station not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to add favorite")
		}
		return
	}

	message := "Station added to favorites"
	if already {
		message = "Station is already in favorites"
	}
	response.OK(c, http.StatusOK, gin.H{
		"message": message,
		"station": st,
	})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID := c.GetInt64("user_id")

	stationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid station id")
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, stationID); err != nil {
		switch {
		case errors.Is(err, ErrStationNotFound):
			response.Error(c, http.StatusNotFound, "Station not found")
		case errors.Is(err, ErrDemoStationProtected):
			response.Error(c, http.StatusForbidden, "The demo station cannot be removed")
		case errors.Is(err, ErrNotFavorite):
			response.Error(c, http.StatusNotFound, "Station is not in your favorites")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to remove favorite")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "Station removed from favorites"})
}

// GetRecentlyPlayed returns up to 10 most recent plays for the caller.
// Anonymous callers get an empty list, never an error.
func (h *Handler) GetRecentlyPlayed(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultRecentLimit)))

	recent, err := h.service.ListRecentlyPlayed(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get recently played")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"recent": recent})
}

func (h *Handler) AddRecentlyPlayed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req RecordPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.RecordRecentlyPlayed(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, ErrStationURLRequired) {
			response.Error(c, http.StatusBadRequest, "Station URL is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to add to recently played")
		return
	}

	response.OK(c, http.StatusOK, gin.H{})
}
