package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/types"
)

// enrichConcurrency bounds the goroutines loading per-conversation
// details for list views.
const enrichConcurrency = 8

// handleListConversations lists the authenticated user's threads, newest
// activity first. Archived threads are included with ?include_archived=true.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"
	conversations, err := s.db.ListConversations(r.Context(), user.ID, includeArchived)
	if err != nil {
		s.handleError(w, err)
		return
	}

	enriched, err := s.enrichConversations(r.Context(), conversations, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"conversations": enriched})
}

// enrichConversations loads each thread's other participant, last
// message, and unread count concurrently.
func (s *Server) enrichConversations(ctx context.Context, conversations []db.Conversation, userID uuid.UUID) ([]*types.Conversation, error) {
	enriched := make([]*types.Conversation, len(conversations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range conversations {
		g.Go(func() error {
			view, err := s.conversationView(gctx, &conversations[i], userID)
			if err != nil {
				return err
			}
			enriched[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// conversationView builds the requesting user's view of one thread.
func (s *Server) conversationView(ctx context.Context, conversation *db.Conversation, userID uuid.UUID) (*types.Conversation, error) {
	view := &types.Conversation{
		ID:           conversation.ID,
		ParticipantA: conversation.ParticipantA,
		ParticipantB: conversation.ParticipantB,
		JobID:        conversation.JobID,
		CreatedAt:    conversation.CreatedAt,
		UpdatedAt:    conversation.UpdatedAt,
	}

	other, err := s.db.GetUser(ctx, conversation.OtherParticipant(userID))
	if err != nil {
		return nil, fmt.Errorf("loading participant: %w", err)
	}
	view.OtherParticipant = convertDBUserToTypesUser(other)

	last, err := s.db.GetLastMessage(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("loading last message: %w", err)
	}
	if last != nil {
		view.LastMessage = &types.Message{
			ID:             last.ID,
			ConversationID: last.ConversationID,
			SenderID:       last.SenderID,
			Content:        last.Content,
			IsSystem:       last.IsSystem,
			Read:           last.Read,
			CreatedAt:      last.CreatedAt,
		}
	}

	unread, err := s.db.CountUnreadMessages(ctx, conversation.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("counting unread messages: %w", err)
	}
	view.UnreadCount = unread
	return view, nil
}

// handleCreateConversation opens a thread with another user, or returns
// the existing one.
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req types.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.ParticipantID == user.ID {
		s.handleError(w, &ErrValidation{Field: "participant_id", Message: "cannot open a conversation with yourself"})
		return
	}

	other, err := s.db.GetUser(r.Context(), req.ParticipantID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if other == nil {
		s.handleError(w, &ErrUserNotFound{UserID: req.ParticipantID})
		return
	}

	existing, err := s.db.FindConversationBetween(r.Context(), user.ID, req.ParticipantID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if existing != nil {
		view, err := s.conversationView(r.Context(), existing, user.ID)
		if err != nil {
			s.handleError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, view)
		return
	}

	conversationID, err := s.db.CreateConversation(r.Context(), user.ID, req.ParticipantID, req.JobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	created, err := s.db.GetConversation(r.Context(), conversationID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	view, err := s.conversationView(r.Context(), created, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, view)
}

// conversationForParticipant loads a thread and checks the caller is one
// of its two participants.
func (s *Server) conversationForParticipant(r *http.Request, userID uuid.UUID) (*db.Conversation, error) {
	conversationID, err := pathUUID(r, "id")
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: err.Error()}
	}

	conversation, err := s.db.GetConversation(r.Context(), conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, &ErrNotFound{Resource: "conversation", ID: conversationID}
	}
	if !conversation.HasParticipant(userID) {
		return nil, &ErrForbidden{Message: "not a participant in this conversation"}
	}
	return conversation, nil
}

// handleListMessages returns a thread's messages, oldest first.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	conversation, err := s.conversationForParticipant(r, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	messages, err := s.db.ListMessages(r.Context(), conversation.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"messages": messages})
}

// handleSendMessage posts a message to a thread and notifies the other
// participant.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	conversation, err := s.conversationForParticipant(r, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req types.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	messageID, err := s.db.CreateMessage(r.Context(), conversation.ID, user.ID, req.Content, false)
	if err != nil {
		s.handleError(w, err)
		return
	}

	recipient := conversation.OtherParticipant(user.ID)
	if _, err := s.db.CreateNotification(r.Context(), recipient,
		string(types.NotificationNewMessage),
		fmt.Sprintf("New message from %s", user.Name),
		&conversation.ID); err != nil {
		s.logger.Error("recording message notification", zap.Error(err))
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": messageID})
}

// handleMarkConversationRead marks all messages from the other
// participant as read.
func (s *Server) handleMarkConversationRead(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	conversation, err := s.conversationForParticipant(r, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.MarkMessagesRead(r.Context(), conversation.ID, user.ID); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Conversation marked read"})
}

// handleArchiveConversation hides a thread from the caller's default
// list without affecting the other participant.
func (s *Server) handleArchiveConversation(w http.ResponseWriter, r *http.Request) {
	s.setConversationArchived(w, r, true)
}

// handleUnarchiveConversation restores an archived thread.
func (s *Server) handleUnarchiveConversation(w http.ResponseWriter, r *http.Request) {
	s.setConversationArchived(w, r, false)
}

func (s *Server) setConversationArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	conversation, err := s.conversationForParticipant(r, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.SetConversationArchived(r.Context(), conversation.ID, user.ID, archived); err != nil {
		s.handleError(w, err)
		return
	}

	message := "Conversation archived"
	if !archived {
		message = "Conversation unarchived"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": message})
}

// handleDeleteConversation removes a thread from the caller's view. The
// other participant keeps their copy.
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	conversation, err := s.conversationForParticipant(r, user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.SetConversationDeleted(r.Context(), conversation.ID, user.ID); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Conversation deleted"})
}
