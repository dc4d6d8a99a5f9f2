package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"guia-piracicaba-backend/discovery"
	"guia-piracicaba-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Clock returns the current time in the directory's timezone.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// paramID parses the :id path parameter, writing a 400 when it is not a UUID.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondStoreError maps store errors: not found to 404, anything else to a logged 500.
func respondStoreError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Error(failMsg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

// positionFromQuery reads lat/lng. Both absent means unknown; one absent or a bad
// value is an error.
func positionFromQuery(c *gin.Context) (discovery.PositionProvider, error) {
	latStr, lngStr := strings.TrimSpace(c.Query("lat")), strings.TrimSpace(c.Query("lng"))
	if latStr == "" && lngStr == "" {
		return discovery.Unknown{}, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errors.New("lat and lng must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid latitude")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, errors.New("invalid longitude")
	}

	pos := discovery.Position{Latitude: lat, Longitude: lng}
	if !pos.Valid() {
		return nil, errors.New("coordinates out of range")
	}
	return discovery.Fixed(pos), nil
}
