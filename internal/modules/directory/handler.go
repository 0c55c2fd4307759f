package directory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"radioplayer/internal/domain"
	"radioplayer/internal/pkg/response"
)

// Handler exposes the directory proxy endpoints. All of them degrade to
// empty or fallback content when the upstream is down; none ever surface
// an upstream failure as an HTTP error.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/search", h.Search)
	api.GET("/popular", h.Popular)
	api.GET("/genres", h.Genres)
	api.GET("/countries", h.Countries)
}

func (h *Handler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultSearchLimit)))

	stations := h.client.Search(c.Request.Context(), SearchParams{
		Query:    c.Query("q"),
		Genre:    c.Query("genre"),
		Country:  c.Query("country"),
		Language: c.Query("language"),
		Limit:    limit,
	})

	response.OK(c, http.StatusOK, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}

// Popular falls back to a single synthetic demo entry when the directory
// is unavailable, so the landing view is never empty.
func (h *Handler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPopularLimit)))

	stations := h.client.Popular(c.Request.Context(), limit)
	if len(stations) == 0 {
		stations = []Station{demoEntry()}
	}

	response.OK(c, http.StatusOK, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}

func (h *Handler) Genres(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"genres": h.client.Genres(c.Request.Context()),
	})
}

func (h *Handler) Countries(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"countries": h.client.Countries(c.Request.Context()),
	})
}

func demoEntry() Station {
	demo := domain.DemoStation()
	return Station{
		Name:       demo.Name,
		URL:        demo.URL,
		Genre:      demo.Genre,
		Country:    demo.Country,
		Language:   demo.Language,
		Bitrate:    demo.Bitrate,
		Codec:      demo.Codec,
		Homepage:   demo.Homepage,
		Tags:       demo.Tags,
		ServerType: "Icecast",
	}
}
