// Package http provides the inbound HTTP adapter. Handlers translate between
// the REST surface and the application layer's commands and queries; domain
// errors map onto stable status codes so clients can distinguish caller
// mistakes from state conflicts.
package http

import (
	"errors"
	"net/http"

	"handover/internal/core/application/usecases/commands"
	"handover/internal/core/application/usecases/queries"
	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/errs"
	"handover/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Requester identity headers, set by the authenticating gateway in front of
// this service.
const (
	HeaderRequesterID   = "X-Requester-Id"
	HeaderRequesterRole = "X-Requester-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler     commands.CreateDeliveryCommandHandler
	assignCourierHandler      commands.AssignCourierCommandHandler
	transitionDeliveryHandler commands.TransitionDeliveryCommandHandler

	// Query handlers
	getDeliveryHandler           queries.GetDeliveryQueryHandler
	listDeliveriesHandler        queries.ListDeliveriesQueryHandler
	listCourierDeliveriesHandler queries.ListCourierDeliveriesQueryHandler

	metrics *metrics.Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	transitionDeliveryHandler commands.TransitionDeliveryCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	listDeliveriesHandler queries.ListDeliveriesQueryHandler,
	listCourierDeliveriesHandler queries.ListCourierDeliveriesQueryHandler,
	m *metrics.Metrics,
) *Server {
	return &Server{
		createDeliveryHandler:        createDeliveryHandler,
		assignCourierHandler:         assignCourierHandler,
		transitionDeliveryHandler:    transitionDeliveryHandler,
		getDeliveryHandler:           getDeliveryHandler,
		listDeliveriesHandler:        listDeliveriesHandler,
		listCourierDeliveriesHandler: listCourierDeliveriesHandler,
		metrics:                      m,
	}
}

// RegisterRoutes attaches all delivery routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries", s.ListDeliveries)
	api.GET("/deliveries/:deliveryId", s.GetDelivery)
	api.GET("/deliveries/number/:number", s.GetDeliveryByNumber)
	api.POST("/deliveries/:deliveryId/assign", s.AssignCourier)
	api.POST("/deliveries/:deliveryId/transition", s.TransitionDelivery)
	api.GET("/couriers/:courierId/deliveries", s.ListCourierDeliveries)
}

// CreateDelivery handles POST /api/v1/deliveries - registers a new delivery.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	_, role, err := requester(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body NewDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	deliveryTime, err := delivery.NewDeliveryTime(body.DeliveryTime)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(),
		body.Address,
		body.Phone,
		deliveryTime,
		body.Instructions,
		body.OrderRef,
		role,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	record, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	s.metrics.DeliveriesCreated.Inc()

	return ctx.JSON(http.StatusCreated, DeliveryCreatedResponse{
		ID:               record.ID().String(),
		Number:           record.Number(),
		Status:           record.Status().String(),
		VerificationCode: record.VerificationCode().String(),
	})
}

// AssignCourier handles POST /api/v1/deliveries/{id}/assign - binds a courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	_, role, err := requester(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body AssignCourierRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(deliveryID, courierID, role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	s.metrics.CouriersAssigned.Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionDelivery handles POST /api/v1/deliveries/{id}/transition - advances
// the delivery lifecycle, including the terminal verified handover.
func (s *Server) TransitionDelivery(ctx echo.Context) error {
	requesterID, role, err := requester(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := delivery.StatusFromToken(body.Target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var cmd commands.TransitionDeliveryCommand
	if target == delivery.Delivered {
		if body.Handover == nil {
			return errorResponse(ctx, delivery.ErrProofRequired)
		}
		cmd, err = commands.NewCompleteHandoverCommand(
			deliveryID, requesterID, role, body.Note,
			commands.HandoverInput{
				EnteredCode: body.Handover.Code,
				Signature:   body.Handover.Signature,
				Rating:      body.Handover.Rating,
			},
		)
	} else {
		cmd, err = commands.NewTransitionDeliveryCommand(deliveryID, target, requesterID, role, body.Note)
	}
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.transitionDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, delivery.ErrVerificationFailed) {
			s.metrics.VerificationFailures.Inc()
		}
		return errorResponse(ctx, err)
	}

	s.metrics.StatusTransitions.WithLabelValues(target.String()).Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivery handles GET /api/v1/deliveries/{id} - retrieves one delivery
// with its full status history.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	details, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, detailsForRequester(ctx, details))
}

// GetDeliveryByNumber handles GET /api/v1/deliveries/number/{number}.
func (s *Server) GetDeliveryByNumber(ctx echo.Context) error {
	query, err := queries.NewGetDeliveryByNumberQuery(ctx.Param("number"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	details, err := s.getDeliveryHandler.HandleByNumber(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, detailsForRequester(ctx, details))
}

// ListDeliveries handles GET /api/v1/deliveries - lists deliveries, newest
// first, optionally filtered by status.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	var filter *delivery.Status
	if token := ctx.QueryParam("status"); token != "" {
		status, err := delivery.StatusFromToken(token)
		if err != nil {
			return errorResponse(ctx, err)
		}
		filter = &status
	}

	query, err := queries.NewListDeliveriesQuery(filter)
	if err != nil {
		return errorResponse(ctx, err)
	}

	summaries, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]DeliverySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListCourierDeliveries handles GET /api/v1/couriers/{id}/deliveries - the
// worklist of one courier in working order.
func (s *Server) ListCourierDeliveries(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewListCourierDeliveriesQuery(courierID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	summaries, err := s.listCourierDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]DeliverySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// detailsForRequester builds the details response, disclosing the
// verification code only to manager-tier requesters.
func detailsForRequester(ctx echo.Context, details queries.DeliveryDetails) DeliveryDetailsResponse {
	resp := detailsResponse(details)
	if role, err := delivery.RoleFromToken(ctx.Request().Header.Get(HeaderRequesterRole)); err == nil {
		if role.IsManagerTier() {
			resp.VerificationCode = details.VerificationCode
		}
	}
	return resp
}

// requester extracts the authenticated caller identity from the gateway
// headers.
func requester(ctx echo.Context) (kernel.UUID, delivery.Role, error) {
	role, err := delivery.RoleFromToken(ctx.Request().Header.Get(HeaderRequesterRole))
	if err != nil {
		return kernel.UUID{}, "", err
	}

	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderRequesterID))
	if err != nil {
		return kernel.UUID{}, "", err
	}

	return id, role, nil
}

// errorResponse maps domain and infrastructure errors onto stable HTTP
// status codes.
func errorResponse(ctx echo.Context, err error) error {
	code := statusCode(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCode(err error) int {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, delivery.ErrAlreadyAssigned),
		errors.Is(err, delivery.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, delivery.ErrVerificationFailed),
		errors.Is(err, delivery.ErrProofRequired),
		errors.Is(err, delivery.ErrCourierUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
