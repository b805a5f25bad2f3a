package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "handover/internal/adapters/in/http"
	"handover/internal/core/application/usecases/commands"
	"handover/internal/core/application/usecases/queries"
	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/core/domain/services"
	"handover/internal/core/ports"
	"handover/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByNumber(ctx context.Context, number string) (*delivery.Delivery, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

// stubUoW is a pass-through unit of work over a mocked repository.
type stubUoW struct{ repo ports.DeliveryRepository }

func (s stubUoW) Begin(context.Context) error    { return nil }
func (s stubUoW) Commit(context.Context) error   { return nil }
func (s stubUoW) Rollback(context.Context) error { return nil }

func (s stubUoW) DeliveryRepository() ports.DeliveryRepository { return s.repo }

type stubUoWFactory struct{ repo ports.DeliveryRepository }

func (s stubUoWFactory) Create() commands.DeliveryUoW { return stubUoW{repo: s.repo} }

type stubDirectory struct{ people []ports.Person }

func (s stubDirectory) ListActiveByCapability(context.Context, string) ([]ports.Person, error) {
	return s.people, nil
}

type stubHook struct{}

func (stubHook) Notify(context.Context, string, string, string) {}

func newTestServer(repo ports.DeliveryRepository, people []ports.Person) *httpin.Server {
	factory := stubUoWFactory{repo: repo}
	m := metrics.NewMetricsWith(prometheus.NewRegistry(), "handover_test")

	return httpin.NewServer(
		commands.NewCreateDeliveryCommandHandler(factory, stubHook{}),
		commands.NewAssignCourierCommandHandler(factory, stubDirectory{people: people}, stubHook{}),
		commands.NewTransitionDeliveryCommandHandler(factory, services.NewHandoverVerifier(), stubHook{}),
		queries.GetDeliveryQueryHandler{},
		queries.ListDeliveriesQueryHandler{},
		queries.ListCourierDeliveriesQueryHandler{},
		m,
	)
}

func doRequest(server *httpin.Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func managerHeaders() map[string]string {
	return map[string]string{
		httpin.HeaderRequesterID:   kernel.NewUUID().String(),
		httpin.HeaderRequesterRole: "MANAGER",
	}
}

func driverHeaders(courierID kernel.UUID) map[string]string {
	return map[string]string{
		httpin.HeaderRequesterID:   courierID.String(),
		httpin.HeaderRequesterRole: "DRIVER",
	}
}

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	code, err := delivery.VerificationCodeFromString("482913")
	require.NoError(t, err)
	deliveryTime, err := delivery.NewDeliveryTime(delivery.DeliveryTimeNow)
	require.NoError(t, err)

	record, err := delivery.NewDelivery(
		kernel.NewUUID(),
		"DEL-20260901-00042",
		"221B Baker Street",
		"+1-202-555-0147",
		deliveryTime,
		"",
		"ORD-1042",
		code,
		delivery.RoleManager,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return record
}

func newArrivedDelivery(t *testing.T, courierID kernel.UUID) *delivery.Delivery {
	t.Helper()

	record := newPendingDelivery(t)
	now := time.Now().UTC()

	require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, now))
	require.NoError(t, record.Transition(delivery.Accepted, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.OutForDelivery, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.Arrived, courierID, delivery.RoleDriver, "", now))
	return record
}

func TestCreateDelivery(t *testing.T) {
	t.Run("should create delivery and disclose the verification code once", func(t *testing.T) {
		repo := new(MockDeliveryRepository)
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
		server := newTestServer(repo, nil)

		body := `{"address":"221B Baker Street","phone":"+1-202-555-0147","delivery_time":"now","order_ref":"ORD-1042"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries", body, managerHeaders())

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING_ASSIGNMENT", resp["status"])
		assert.Len(t, resp["verification_code"], 6)
		assert.Contains(t, resp["number"], "DEL-")
		repo.AssertExpectations(t)
	})

	t.Run("should reject missing requester headers", func(t *testing.T) {
		server := newTestServer(new(MockDeliveryRepository), nil)

		body := `{"address":"a","phone":"p","delivery_time":"now"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries", body, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject malformed delivery time", func(t *testing.T) {
		server := newTestServer(new(MockDeliveryRepository), nil)

		body := `{"address":"a","phone":"p","delivery_time":"whenever"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries", body, managerHeaders())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAssignCourier(t *testing.T) {
	t.Run("should assign an available courier", func(t *testing.T) {
		record := newPendingDelivery(t)
		courierID := kernel.NewUUID()

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		server := newTestServer(repo, []ports.Person{{ID: courierID.String(), Name: "Courier"}})

		body := `{"courier_id":"` + courierID.String() + `"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/assign", body, managerHeaders())

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, delivery.Assigned, record.Status())
	})

	t.Run("should return 422 for unavailable courier", func(t *testing.T) {
		record := newPendingDelivery(t)
		courierID := kernel.NewUUID()

		server := newTestServer(new(MockDeliveryRepository), nil)

		body := `{"courier_id":"` + courierID.String() + `"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/assign", body, managerHeaders())

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("should return 409 when a courier is already bound", func(t *testing.T) {
		record := newPendingDelivery(t)
		bound := kernel.NewUUID()
		require.NoError(t, record.Assign(bound, "First", delivery.RoleManager, time.Now().UTC()))
		courierID := kernel.NewUUID()

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()

		server := newTestServer(repo, []ports.Person{{ID: courierID.String(), Name: "Second"}})

		body := `{"courier_id":"` + courierID.String() + `"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/assign", body, managerHeaders())

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should return 403 for driver requesters", func(t *testing.T) {
		record := newPendingDelivery(t)
		courierID := kernel.NewUUID()

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()

		server := newTestServer(repo, []ports.Person{{ID: courierID.String(), Name: "Courier"}})

		body := `{"courier_id":"` + courierID.String() + `"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/assign", body, driverHeaders(courierID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTransitionDelivery(t *testing.T) {
	t.Run("should accept a legal driver transition", func(t *testing.T) {
		courierID := kernel.NewUUID()
		record := newPendingDelivery(t)
		require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, time.Now().UTC()))

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		server := newTestServer(repo, nil)

		body := `{"target":"ACCEPTED","note":"on my way"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/transition", body, driverHeaders(courierID))

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, delivery.Accepted, record.Status())
	})

	t.Run("should return 409 for an out-of-order transition", func(t *testing.T) {
		courierID := kernel.NewUUID()
		record := newArrivedDelivery(t, courierID)

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()

		server := newTestServer(repo, nil)

		body := `{"target":"ACCEPTED"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/transition", body, driverHeaders(courierID))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should return 422 for the terminal target without handover input", func(t *testing.T) {
		courierID := kernel.NewUUID()
		record := newArrivedDelivery(t, courierID)

		server := newTestServer(new(MockDeliveryRepository), nil)

		body := `{"target":"DELIVERED"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/transition", body, driverHeaders(courierID))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("should complete handover with matching code", func(t *testing.T) {
		courierID := kernel.NewUUID()
		record := newArrivedDelivery(t, courierID)

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		server := newTestServer(repo, nil)

		body := `{"target":"DELIVERED","handover":{"code":"482913","signature":"c2lnbmF0dXJl","rating":5}}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/transition", body, driverHeaders(courierID))

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, delivery.Delivered, record.Status())
		require.NotNil(t, record.Proof())
	})

	t.Run("should return 422 and leave state untouched on wrong code", func(t *testing.T) {
		courierID := kernel.NewUUID()
		record := newArrivedDelivery(t, courierID)

		repo := new(MockDeliveryRepository)
		repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once()

		server := newTestServer(repo, nil)

		body := `{"target":"DELIVERED","handover":{"code":"000000","signature":"c2lnbmF0dXJl","rating":5}}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+record.ID().String()+"/transition", body, driverHeaders(courierID))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, delivery.Arrived, record.Status())
		assert.Nil(t, record.Proof())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should return 400 for an unknown target token", func(t *testing.T) {
		server := newTestServer(new(MockDeliveryRepository), nil)

		body := `{"target":"SHIPPED"}`
		rec := doRequest(server, http.MethodPost, "/api/v1/deliveries/"+kernel.NewUUID().String()+"/transition", body, driverHeaders(kernel.NewUUID()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetDelivery_InvalidID(t *testing.T) {
	server := newTestServer(new(MockDeliveryRepository), nil)

	rec := doRequest(server, http.MethodGet, "/api/v1/deliveries/not-a-uuid", "", managerHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDeliveries_InvalidStatusFilter(t *testing.T) {
	server := newTestServer(new(MockDeliveryRepository), nil)

	rec := doRequest(server, http.MethodGet, "/api/v1/deliveries?status=SHIPPED", "", managerHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
