package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
)

// Handler serves the JSON API of the mini-app.
type Handler struct {
	profileService ProfileService
	userService    UserService
	pathService    PathService
	logger         *zap.Logger
}

func NewHandler(profileService ProfileService, userService UserService, pathService PathService, logger *zap.Logger) *Handler {
	return &Handler{
		profileService: profileService,
		userService:    userService,
		pathService:    pathService,
		logger:         logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Level computes level info for ?xp=N.
func (h *Handler) Level(c *gin.Context) {
	xp, err := strconv.ParseInt(c.Query("xp"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xp must be an integer"})
		return
	}

	c.JSON(http.StatusOK, entities.CalculateLevel(xp))
}

// Path returns the learning path as shipped in content.
func (h *Handler) Path(c *gin.Context) {
	c.JSON(http.StatusOK, h.pathService.Static())
}

// Me returns the store snapshot of the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	data := initDataFrom(c)
	user := data.User.ToUser()

	if err := h.userService.EnsureUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	learner, err := h.profileService.Load(c.Request.Context(), user.ID, data.Raw)
	if errors.Is(err, service.ErrProfileUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile unavailable"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load profile",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, learner)
}
