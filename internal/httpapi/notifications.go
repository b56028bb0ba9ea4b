package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olekhv/storefront/internal/domain/notification"
)

type notificationDTO struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

type notificationListDTO struct {
	Filter        string            `json:"filter"`
	Notifications []notificationDTO `json:"notifications"`
	UnreadCount   int               `json:"unread_count"`
	ReadCount     int               `json:"read_count"`
	TotalCount    int               `json:"total_count"`
}

// listNotifications serves the caller's notification box. The filter query
// parameter narrows the listing; counts always cover the whole box.
func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())
	f := notification.ParseFilter(r.URL.Query().Get("filter"))

	inbox, err := h.notifications.List(r.Context(), u.ID, f)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	items := make([]notificationDTO, len(inbox.Notifications))
	for i, n := range inbox.Notifications {
		items[i] = notificationDTO{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			IsRead:    n.IsRead,
		}
	}

	respondJSON(w, r, http.StatusOK, notificationListDTO{
		Filter:        string(inbox.Filter),
		Notifications: items,
		UnreadCount:   inbox.Counts.Unread,
		ReadCount:     inbox.Counts.Read,
		TotalCount:    inbox.Counts.Total,
	})
}

// markNotificationRead flips one of the caller's notifications to read and
// sends the client back to the listing.
func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var req struct {
		NotificationID int64 `json:"notification_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NotificationID == 0 {
		seeOther(w, r, "/api/notifications")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), u.ID, req.NotificationID); err != nil {
		respondInternal(w, r, err)
		return
	}
	seeOther(w, r, "/api/notifications")
}
