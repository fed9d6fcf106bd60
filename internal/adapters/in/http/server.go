package http

import (
	"errors"
	"net/http"
	"time"

	"nexaci/internal/core/application/usecases/commands"
	"nexaci/internal/core/application/usecases/queries"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerAccountHandler commands.RegisterAccountCommandHandler
	createShipmentHandler  commands.CreateShipmentCommandHandler
	createMandateHandler   commands.CreateMandateCommandHandler
	transitionHandler      commands.TransitionEntityCommandHandler
	assignHandler          commands.AssignAgentCommandHandler

	// Query handlers
	trackHandler           queries.TrackEntityQueryHandler
	resolveIdentityHandler queries.ResolveIdentityQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerAccountHandler commands.RegisterAccountCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	createMandateHandler commands.CreateMandateCommandHandler,
	transitionHandler commands.TransitionEntityCommandHandler,
	assignHandler commands.AssignAgentCommandHandler,
	trackHandler queries.TrackEntityQueryHandler,
	resolveIdentityHandler queries.ResolveIdentityQueryHandler,
) *Server {
	return &Server{
		registerAccountHandler: registerAccountHandler,
		createShipmentHandler:  createShipmentHandler,
		createMandateHandler:   createMandateHandler,
		transitionHandler:      transitionHandler,
		assignHandler:          assignHandler,
		trackHandler:           trackHandler,
		resolveIdentityHandler: resolveIdentityHandler,
	}
}

// RegisterRoutes binds all endpoints on the echo instance under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/accounts", s.RegisterAccount)

	v1.POST("/shipments", s.CreateShipment)
	v1.POST("/shipments/:id/status", s.transitionFor(kernel.KindShipment))
	v1.POST("/shipments/:id/assign", s.assignFor(kernel.KindShipment))

	v1.POST("/mandates", s.CreateMandate)
	v1.POST("/mandates/:id/status", s.transitionFor(kernel.KindMandate))
	v1.POST("/mandates/:id/assign", s.assignFor(kernel.KindMandate))

	v1.GET("/track/:reference", s.TrackEntity)
	v1.GET("/identity", s.ResolveIdentity)
}

// Error is the JSON error body shared by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy to HTTP status codes. Requests the
// caller could fix (an edge not in the graph, an ineligible agent, malformed
// values) are 400; lost concurrent races, missing-agent conflicts and
// duplicates are 409; authorization failures are 403.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, lifecycle.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, lifecycle.ErrNotAssigned),
		errors.Is(err, lifecycle.ErrConcurrentModification),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, lifecycle.ErrIllegalTransition),
		errors.Is(err, lifecycle.ErrAgentNotEligible),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

type registerAccountRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Role     string  `json:"role"`
	AgencyID *string `json:"agencyId"`
}

type registerAccountResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
}

// RegisterAccount handles POST /api/v1/accounts - registers a new account.
func (s *Server) RegisterAccount(ctx echo.Context) error {
	var req registerAccountRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	agencyID, err := parseOptionalUUID(req.AgencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRegisterAccountCommand(
		kernel.NewUUID(), req.Name, req.Email, req.Phone, req.Role, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.registerAccountHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registerAccountResponse{
		ID:    cmd.AccountID().String(),
		Phone: cmd.Phone().String(),
	})
}

type createEntityRequest struct {
	ClientID string  `json:"clientId"`
	AgencyID *string `json:"agencyId"`
}

type createEntityResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

// CreateShipment handles POST /api/v1/shipments - registers a new shipment.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req createEntityRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	clientID, agencyID, err := parseEntityActors(req)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, clientID, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	reference, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createEntityResponse{
		ID:        shipmentID.String(),
		Reference: reference.String(),
	})
}

// CreateMandate handles POST /api/v1/mandates - registers a new mandate.
func (s *Server) CreateMandate(ctx echo.Context) error {
	var req createEntityRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	clientID, agencyID, err := parseEntityActors(req)
	if err != nil {
		return writeError(ctx, err)
	}

	mandateID := kernel.NewUUID()
	cmd, err := commands.NewCreateMandateCommand(mandateID, clientID, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	reference, err := s.createMandateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createEntityResponse{
		ID:        mandateID.String(),
		Reference: reference.String(),
	})
}

type transitionRequest struct {
	Status      string         `json:"status"`
	ActorID     string         `json:"actorId"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}

func (s *Server) transitionFor(kind kernel.EntityKind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req transitionRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}

		entityID, err := kernel.UUIDFromString(ctx.Param("id"))
		if err != nil {
			return writeError(ctx, err)
		}
		actorID, err := kernel.UUIDFromString(req.ActorID)
		if err != nil {
			return writeError(ctx, err)
		}

		cmd, err := commands.NewTransitionEntityCommand(
			kind, entityID, req.Status, actorID, req.Description, req.Details)
		if err != nil {
			return writeError(ctx, err)
		}

		if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return writeError(ctx, err)
		}

		return ctx.NoContent(http.StatusNoContent)
	}
}

type assignRequest struct {
	AgentID string `json:"agentId"`
	ActorID string `json:"actorId"`
}

func (s *Server) assignFor(kind kernel.EntityKind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req assignRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}

		entityID, err := kernel.UUIDFromString(ctx.Param("id"))
		if err != nil {
			return writeError(ctx, err)
		}
		agentID, err := kernel.UUIDFromString(req.AgentID)
		if err != nil {
			return writeError(ctx, err)
		}
		actorID, err := kernel.UUIDFromString(req.ActorID)
		if err != nil {
			return writeError(ctx, err)
		}

		cmd, err := commands.NewAssignAgentCommand(kind, entityID, agentID, actorID)
		if err != nil {
			return writeError(ctx, err)
		}

		if err = s.assignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return writeError(ctx, err)
		}

		return ctx.NoContent(http.StatusNoContent)
	}
}

type trackHistoryEntry struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
	ActorID     *string        `json:"actorId,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

type trackResponse struct {
	ID              string              `json:"id"`
	Reference       string              `json:"reference"`
	Kind            string              `json:"kind"`
	Status          string              `json:"status"`
	AssignedAgentID *string             `json:"assignedAgentId,omitempty"`
	History         []trackHistoryEntry `json:"history"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// TrackEntity handles GET /api/v1/track/:reference - the public tracking view.
func (s *Server) TrackEntity(ctx echo.Context) error {
	query, err := queries.NewTrackEntityQuery(ctx.Param("reference"))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.trackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := trackResponse{
		ID:              view.ID.String(),
		Reference:       view.Reference,
		Kind:            view.Kind,
		Status:          view.Status,
		AssignedAgentID: uuidString(view.AssignedAgentID),
		History:         make([]trackHistoryEntry, len(view.History)),
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
	for i, entry := range view.History {
		response.History[i] = trackHistoryEntry{
			Status:      entry.Status,
			Description: entry.Description,
			OccurredAt:  entry.OccurredAt,
			ActorID:     uuidString(entry.ActorID),
			Details:     entry.Details,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type identityResponse struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

// ResolveIdentity handles GET /api/v1/identity?identifier=... - resolves a
// phone number or email address to an account.
func (s *Server) ResolveIdentity(ctx echo.Context) error {
	query, err := queries.NewResolveIdentityQuery(ctx.QueryParam("identifier"))
	if err != nil {
		return writeError(ctx, err)
	}

	identity, err := s.resolveIdentityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, identityResponse{
		AccountID: identity.AccountID.String(),
		Name:      identity.Name,
		Role:      identity.Role,
		Phone:     identity.Phone,
		Email:     identity.Email,
	})
}

func parseEntityActors(req createEntityRequest) (kernel.UUID, *kernel.UUID, error) {
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	agencyID, err := parseOptionalUUID(req.AgencyID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	return clientID, agencyID, nil
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
