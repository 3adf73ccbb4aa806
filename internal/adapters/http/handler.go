package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ojeda-dev/ayun-chat/internal/app/chat"
	"github.com/ojeda-dev/ayun-chat/internal/app/conversation"
	"github.com/ojeda-dev/ayun-chat/internal/app/profile"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

type Server struct {
	pipeline   *chat.Pipeline
	convSvc    *conversation.Service
	profileSvc *profile.Service
}

func NewServer(pipeline *chat.Pipeline, convSvc *conversation.Service, profileSvc *profile.Service) http.Handler {
	s := &Server{
		pipeline:   pipeline,
		convSvc:    convSvc,
		profileSvc: profileSvc,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /chat → stateless search-augmented turn (POST)
	mux.HandleFunc("/chat", s.handleChat)

	// /conversations → create (POST), list by user (GET)
	mux.HandleFunc("/conversations", s.handleConversations)

	// /conversations/{id}          →  GET: conversation + messages
	// /conversations/{id}/messages → POST: send message
	mux.HandleFunc("/conversations/", s.handleConversationWithID)

	// /profile/{user_id} → GET / PUT
	mux.HandleFunc("/profile/", s.handleProfile)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type turnPayload struct {
	ID        string `json:"id,omitempty"`
	Content   string `json:"content"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp,omitempty"`
	IsLoading bool   `json:"isLoading,omitempty"`
}

type chatRequest struct {
	Messages []turnPayload `json:"messages"`
}

type searchAnalysisResponse struct {
	NeedsSearch bool   `json:"needsSearch"`
	SearchQuery string `json:"searchQuery"`
	Reasoning   string `json:"reasoning"`
}

type searchResultItemResponse struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type searchResultsResponse struct {
	OrganicResults []searchResultItemResponse `json:"organic_results,omitempty"`
}

type chatResponse struct {
	Content        string                 `json:"content"`
	Role           string                 `json:"role"`
	SearchAnalysis searchAnalysisResponse `json:"searchAnalysis"`
	SearchResults  *searchResultsResponse `json:"searchResults"`
}

type createConversationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}

type conversationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type listConversationsResponse struct {
	Conversations []conversationResponse `json:"conversations"`
}

type getConversationResponse struct {
	Conversation conversationResponse `json:"conversation"`
	Messages     []messageResponse    `json:"messages"`
}

type sendMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	UserMessage      messageResponse        `json:"user_message"`
	AssistantMessage messageResponse        `json:"assistant_message"`
	SearchAnalysis   searchAnalysisResponse `json:"searchAnalysis"`
	SearchResults    *searchResultsResponse `json:"searchResults"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type profileResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if len(req.Messages) == 0 {
		badRequest(w, "Messages array is required")
		return
	}

	turns := make([]*domain.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, &domain.Message{
			ID:        domain.MessageID(m.ID),
			Role:      domain.Role(m.Role),
			Content:   m.Content,
			IsLoading: m.IsLoading,
		})
	}

	payload, err := s.pipeline.HandleTurn(r.Context(), turns)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			badRequest(w, "Last message must be from user")
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to get response from AI",
		})
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(payload))
}

// /conversations
func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateConversation(w, r)
	case http.MethodGet:
		s.handleListConversations(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /conversations/{id} or /conversations/{id}/messages
func (s *Server) handleConversationWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/conversations/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetConversation(w, r, domain.ConversationID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "messages" {
		switch r.Method {
		case http.MethodPost:
			s.handleSendMessage(w, r, domain.ConversationID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.convSvc.StartConversation(r.Context(), conversation.StartConversationInput{
		UserID: domain.UserID(req.UserID),
		Title:  req.Title,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toConversationResponse(out.Conversation))
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	convs, err := s.convSvc.ListConversations(r.Context(), domain.UserID(userID), 0)
	if err != nil {
		internalError(w, err)
		return
	}

	resp := listConversationsResponse{
		Conversations: make([]conversationResponse, 0, len(convs)),
	}
	for _, c := range convs {
		resp.Conversations = append(resp.Conversations, toConversationResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request, id domain.ConversationID) {
	conv, msgs, err := s.convSvc.GetTimeline(r.Context(), id, 0)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := getConversationResponse{
		Conversation: toConversationResponse(conv),
		Messages:     toMessagesResponse(msgs),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, conversationID domain.ConversationID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	out, err := s.convSvc.SendMessage(r.Context(), conversation.SendMessageInput{
		ConversationID: conversationID,
		UserID:         domain.UserID(req.UserID),
		Text:           req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, domain.ErrUpstream):
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Failed to get response from AI",
			})
		default:
			internalError(w, err)
		}
		return
	}

	resp := sendMessageResponse{
		UserMessage:      toMessageResponse(out.UserMessage),
		AssistantMessage: toMessageResponse(out.AssistantMessage),
		SearchAnalysis:   toSearchAnalysisResponse(out.SearchAnalysis),
		SearchResults:    toSearchResultsResponse(out.SearchResults),
	}

	writeJSON(w, http.StatusOK, resp)
}

// /profile/{user_id}
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/profile/")
	if userID == "" || strings.Contains(userID, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.profileSvc.Get(r.Context(), domain.UserID(userID))
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))

	case http.MethodPut:
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		p, err := s.profileSvc.Put(r.Context(), domain.UserID(userID), req.Name, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				badRequest(w, "user id is required")
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))

	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Response mapping helpers
// ─────────────────────────────────────────────

func toChatResponse(p *domain.ResponsePayload) chatResponse {
	return chatResponse{
		Content:        p.Content,
		Role:           string(p.Role),
		SearchAnalysis: toSearchAnalysisResponse(p.SearchAnalysis),
		SearchResults:  toSearchResultsResponse(p.SearchResults),
	}
}

func toSearchAnalysisResponse(d domain.SearchDecision) searchAnalysisResponse {
	return searchAnalysisResponse{
		NeedsSearch: d.NeedsSearch,
		SearchQuery: d.SearchQuery,
		Reasoning:   d.Reasoning,
	}
}

// toSearchResultsResponse keeps nil as nil: a failed search serializes as
// JSON null, distinct from an empty result list.
func toSearchResultsResponse(set *domain.SearchResultSet) *searchResultsResponse {
	if set == nil {
		return nil
	}

	out := &searchResultsResponse{
		OrganicResults: make([]searchResultItemResponse, 0, len(set.OrganicResults)),
	}
	for _, item := range set.OrganicResults {
		out.OrganicResults = append(out.OrganicResults, searchResultItemResponse{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	return out
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:        string(c.ID),
		UserID:    string(c.UserID),
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:             string(m.ID),
		ConversationID: string(m.ConversationID),
		Role:           string(m.Role),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		UserID: string(p.UserID),
		Name:   p.Name,
		Email:  p.Email,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
