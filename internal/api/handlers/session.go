package handlers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/common/utils"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ElevationCounter records role elevation attempts
type ElevationCounter interface {
	IncrementElevation(result string)
}

// SessionHandler handles the session and role endpoints
type SessionHandler struct {
	sessions   *session.Service
	signingKey []byte
	tokenTTL   time.Duration
	counter    ElevationCounter
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service, signingKey []byte, tokenTTL time.Duration, counter ElevationCounter) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		counter:    counter,
	}
}

// StartSessionResponse is returned when a session is started
type StartSessionResponse struct {
	Token   string           `json:"token"`
	Session *session.Session `json:"session"`
}

// ElevateRequest carries the admin passphrase
type ElevateRequest struct {
	Passphrase string `json:"passphrase"`
}

// UpdateProfileRequest renames the administrator profile
type UpdateProfileRequest struct {
	ProfileName string `json:"profileName"`
}

// Start handles POST /session
func (h *SessionHandler) Start(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := h.sessions.Start(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	token, err := utils.IssueSessionToken(sess.ID, h.signingKey, h.tokenTTL, time.Now())
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.NewInternalError("failed to issue session token", err)
	}

	return response.Created(StartSessionResponse{Token: token, Session: sess}, requestID(request)), nil
}

// Get handles GET /session
func (h *SessionHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(sess, requestID(request)), nil
}

// Elevate handles POST /session/elevate
func (h *SessionHandler) Elevate(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req ElevateRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	elevated, err := h.sessions.Elevate(ctx, sess.ID, req.Passphrase)
	if err != nil {
		if stderrors.Is(err, errors.ErrAuthentication) {
			h.count("rejected")
		}
		return events.APIGatewayProxyResponse{}, err
	}

	h.count("granted")
	return response.OK(elevated, requestID(request)), nil
}

// Demote handles POST /session/demote
func (h *SessionHandler) Demote(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	demoted, err := h.sessions.Demote(ctx, sess.ID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(demoted, requestID(request)), nil
}

// UpdateProfile handles PUT /session/profile
func (h *SessionHandler) UpdateProfile(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req UpdateProfileRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	renamed, err := h.sessions.Rename(ctx, sess, req.ProfileName)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	logger.Info("Profile renamed", "profileName", renamed.ProfileName)
	return response.OK(renamed, requestID(request)), nil
}

func (h *SessionHandler) count(result string) {
	if h.counter != nil {
		h.counter.IncrementElevation(result)
	}
}
