package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// EventFeed is the subscription side of the change bus.
type EventFeed interface {
	Subscribe(kind shared.EntityKind, fn func(shared.Event)) (unsubscribe func())
}

const (
	streamBuffer      = 32
	heartbeatInterval = 25 * time.Second
)

var errUnknownKind = errors.New("unknown event kind")

type EventsHandler struct {
	feed      EventFeed
	heartbeat time.Duration
}

func NewEventsHandler(feed EventFeed) *EventsHandler {
	return &EventsHandler{feed: feed, heartbeat: heartbeatInterval}
}

func parseKind(s string) (shared.EntityKind, error) {
	switch k := shared.EntityKind(s); k {
	case "", shared.KindSession, shared.KindBooking, shared.KindMember, shared.KindAnnouncement, shared.KindSettings:
		return k, nil
	default:
		return "", errUnknownKind
	}
}

// @Summary Change feed
// @Description Server-sent events for committed changes; the event name is "<kind>.<action>"
// @Tags events
// @Produce text/event-stream
// @Security BearerAuth
// @Param kind query string false "session, booking, member, announcement or settings"
// @Success 200 {object} shared.Event
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	kind, err := parseKind(c.Query("kind"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid kind", nil)
		return
	}

	events := make(chan shared.Event, streamBuffer)
	unsubscribe := h.feed.Subscribe(kind, func(ev shared.Event) {
		select {
		case events <- ev:
		default:
			// slow client; it refetches on the next event anyway
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			c.SSEvent(ev.Topic(), ev)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}
