package server

import (
	"net/http"
)

// handleListNotifications returns the authenticated user's newest
// notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	notifications, err := s.db.ListNotifications(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// handleUnreadNotificationCount returns the unread badge count.
func (s *Server) handleUnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	count, err := s.db.CountUnreadNotifications(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]int{"unread": count})
}

// handleMarkNotificationRead marks one notification as read.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	notificationID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.db.MarkNotificationRead(r.Context(), notificationID, user.ID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Notification marked read"})
}

// handleMarkAllNotificationsRead marks every notification as read.
func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.MarkAllNotificationsRead(r.Context(), user.ID); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "All notifications marked read"})
}

// handleClearNotifications deletes all of the user's notifications.
func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.ClearNotifications(r.Context(), user.ID); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Notifications cleared"})
}
