package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"walletapp/internal/models"
	"walletapp/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpToken string
	signUpErr   error
	signInToken string
	signInErr   error
	parseID     string
	parseErr    error

	lastSignUp         service.SignUpParams
	lastSignInUsername string
	lastSignInPassword string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, p service.SignUpParams) (string, error) {
	m.lastSignUp = p
	return m.signUpToken, m.signUpErr
}

func (m *mockAuth) SignIn(ctx context.Context, username, password string) (string, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInToken, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockUsers struct {
	updateErr      error
	profileUser    models.PublicUser
	profileAccount *models.Account
	profileErr     error
	searchResp     []models.PublicUser
	searchErr      error

	lastUpdateID     string
	lastUpdate       service.ProfileUpdate
	lastSearchFilter string
	updateCalls      int
}

func (m *mockUsers) UpdateProfile(ctx context.Context, userID string, p service.ProfileUpdate) error {
	m.updateCalls++
	m.lastUpdateID = userID
	m.lastUpdate = p
	return m.updateErr
}

func (m *mockUsers) Profile(ctx context.Context, userID string) (models.PublicUser, *models.Account, error) {
	return m.profileUser, m.profileAccount, m.profileErr
}

func (m *mockUsers) Search(ctx context.Context, filter string) ([]models.PublicUser, error) {
	m.lastSearchFilter = filter
	return m.searchResp, m.searchErr
}

type mockAudit struct {
	listResp []models.AuditEvent
	listErr  error

	lastFilter service.AuditFilter
	recorded   []models.AuditEvent
	events     chan models.AuditEvent
}

func (m *mockAudit) Record(ctx context.Context, typ, description string, meta map[string]any) {
	m.recorded = append(m.recorded, models.AuditEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
}

func (m *mockAudit) List(ctx context.Context, f service.AuditFilter) ([]models.AuditEvent, error) {
	m.lastFilter = f
	return m.listResp, m.listErr
}

func (m *mockAudit) Subscribe() (<-chan models.AuditEvent, func()) {
	if m.events == nil {
		m.events = make(chan models.AuditEvent, 16)
	}
	return m.events, func() {}
}

func (m *mockAudit) Run(ctx context.Context) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
