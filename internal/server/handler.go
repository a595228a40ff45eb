package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/beetlebot/travel-options/internal/core"
	"github.com/gin-gonic/gin"
)

type optionResolver interface {
	Resolve(ctx context.Context, q core.Query) (*core.SearchResult, error)
}

type providerLister interface {
	ProviderInfos() []core.ProviderInfo
}

type Handler struct {
	resolver  optionResolver
	providers providerLister
}

func NewHandler(resolver optionResolver, providers providerLister) *Handler {
	return &Handler{resolver: resolver, providers: providers}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/flights/options", h.FlightOptions)
		api.GET("/fares", h.Fares)
		api.GET("/providers", h.Providers)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FlightOptions resolves origin/destination into flight options. Missing
// endpoints switch to browse-all.
func (h *Handler) FlightOptions(c *gin.Context) {
	q := core.Query{
		Origin:      strings.TrimSpace(c.Query("origin")),
		Destination: strings.TrimSpace(c.Query("destination")),
		Date:        strings.TrimSpace(c.Query("date")),
	}

	result, err := h.resolver.Resolve(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Fares(c *gin.Context) {
	class, err := core.ParseCabinClass(c.Query("class"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class"})
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.Query("price")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	fares, err := core.ExpandFares(price, class)
	if errors.Is(err, core.ErrNegativePrice) || errors.Is(err, core.ErrInvalidPrice) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fares)
}

func (h *Handler) Providers(c *gin.Context) {
	infos := h.providers.ProviderInfos()
	if infos == nil {
		infos = []core.ProviderInfo{}
	}
	c.JSON(http.StatusOK, infos)
}
