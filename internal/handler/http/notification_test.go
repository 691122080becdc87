package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pierreiost/quadracerta/internal/domain/notification"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/handler/http/middleware"
	"github.com/pierreiost/quadracerta/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	ownComplexID      = "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"
	otherComplexID    = "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5c"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetFeed(ctx context.Context, complexID string) (notification.FeedResponse, error) {
	args := m.Called(ctx, complexID)
	return args.Get(0).(notification.FeedResponse), args.Error(1)
}

func (m *MockNotificationService) GetSummaryCount(ctx context.Context, complexID string) (notification.SummaryCountResponse, error) {
	args := m.Called(ctx, complexID)
	return args.Get(0).(notification.SummaryCountResponse), args.Error(1)
}

func newNotificationRouter(svc notification.Service, jwtSvc jwt.Service) http.Handler {
	h := NewNotificationHandler(svc)
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
	r.Use(middleware.AuthRequired(jwtSvc.JWTAuth()))
	r.Use(middleware.RequirePermission(user.PermissionNotificationView))
	r.Get("/notifications", h.Feed)
	r.Get("/notifications/summary", h.Summary)
	return r
}

func bearer(t *testing.T, jwtSvc jwt.Service, complexID *string, role user.Role) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken("user-1", "staff@example.com", complexID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doGet(handler http.Handler, path string, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestNotificationHandler_Feed(t *testing.T) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, jwtSvc)

	complexID := ownComplexID
	feed := notification.FeedResponse{
		Notifications: []notification.NotificationResponse{{
			ID:       "stock-p1",
			Type:     notification.TypeLowStock,
			Priority: notification.PriorityHigh,
			Title:    "Produto sem estoque",
			Link:     "/products",
		}},
		Count:       1,
		UnreadCount: 1,
		Summary:     notification.PrioritySummary{High: 1},
	}
	svc.On("GetFeed", mock.Anything, ownComplexID).Return(feed, nil).Once()

	rec := doGet(router, "/notifications", bearer(t, jwtSvc, &complexID, user.RoleEmployee))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "success")
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 1, body["unreadCount"])
	assert.Equal(t, map[string]interface{}{"high": 1.0, "medium": 0.0, "low": 0.0}, body["summary"])
	svc.AssertExpectations(t)
}

func TestNotificationHandler_FeedFailure(t *testing.T) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, jwtSvc)

	complexID := ownComplexID
	svc.On("GetFeed", mock.Anything, ownComplexID).Return(notification.FeedResponse{}, errors.New("connection refused"))

	rec := doGet(router, "/notifications", bearer(t, jwtSvc, &complexID, user.RoleAdmin))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro ao buscar notificações"}`, rec.Body.String())
}

func TestNotificationHandler_Summary(t *testing.T) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, jwtSvc)

	complexID := ownComplexID
	svc.On("GetSummaryCount", mock.Anything, ownComplexID).Return(notification.SummaryCountResponse{Count: 3}, nil)

	rec := doGet(router, "/notifications/summary", bearer(t, jwtSvc, &complexID, user.RoleEmployee))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	svc.On("GetSummaryCount", mock.Anything, otherComplexID).Return(notification.SummaryCountResponse{}, errors.New("timeout"))
	other := otherComplexID
	rec = doGet(router, "/notifications/summary", bearer(t, jwtSvc, &other, user.RoleEmployee))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro ao buscar notificações"}`, rec.Body.String())
}

func TestNotificationHandler_TenantSelection(t *testing.T) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	complexID := ownComplexID

	tests := []struct {
		name       string
		complexID  *string
		role       user.Role
		query      string
		wantStatus int
		wantTenant string
	}{
		{name: "unscoped super admin gets the empty tenant", complexID: nil, role: user.RoleSuperAdmin, wantStatus: http.StatusOK, wantTenant: ""},
		{name: "super admin selects a complex", complexID: nil, role: user.RoleSuperAdmin, query: "?complexId=" + otherComplexID, wantStatus: http.StatusOK, wantTenant: otherComplexID},
		{name: "super admin with malformed complex", complexID: nil, role: user.RoleSuperAdmin, query: "?complexId=abc", wantStatus: http.StatusBadRequest},
		{name: "scoped user repeating own complex", complexID: &complexID, role: user.RoleEmployee, query: "?complexId=" + ownComplexID, wantStatus: http.StatusOK, wantTenant: ownComplexID},
		{name: "scoped user selecting another complex", complexID: &complexID, role: user.RoleAdmin, query: "?complexId=" + otherComplexID, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockNotificationService)
			router := newNotificationRouter(svc, jwtSvc)
			if tt.wantStatus == http.StatusOK {
				svc.On("GetFeed", mock.Anything, tt.wantTenant).Return(notification.FeedResponse{
					Notifications: []notification.NotificationResponse{},
				}, nil).Once()
			}

			rec := doGet(router, "/notifications"+tt.query, bearer(t, jwtSvc, tt.complexID, tt.role))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
				svc.AssertNotCalled(t, "GetFeed", mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestNotificationHandler_RequiresToken(t *testing.T) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, jwtSvc)

	rec := doGet(router, "/notifications", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	refresh, _, err := jwtSvc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	rec = doGet(router, "/notifications", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.AssertNotCalled(t, "GetFeed", mock.Anything, mock.Anything)
}
