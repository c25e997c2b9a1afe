package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/medregistry/clinic-backend/internal/config"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/handlers"
	"github.com/medregistry/clinic-backend/internal/models"
	"github.com/medregistry/clinic-backend/internal/routes"
	"github.com/medregistry/clinic-backend/internal/services"
	"github.com/medregistry/clinic-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubSender struct {
	sent int
	err  error
}

func (s *stubSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent += len(m)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Doctor{}, &models.Client{}, &models.Program{}))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		SessionExpiry: time.Hour,
		SMTPFrom:      "reports@clinic.local",
	}

	sender := &stubSender{}
	authService := services.NewAuthService(db, cfg)
	clientService := services.NewClientService(db)
	programService := services.NewProgramService(db)
	reportService := services.NewReportService(db)
	mailService := services.NewMailServiceWithSender(cfg, sender)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService, cfg),
		handlers.NewClientHandler(clientService),
		handlers.NewProgramHandler(programService),
		handlers.NewReportHandler(reportService, mailService),
		handlers.NewHealthHandler(),
	)

	return app, sender
}

func doJSON(t *testing.T, app *fiber.App, method, path, cookie string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func loginDoctor(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", dto.SignupRequest{
		Username: "drwho", Name: "Dr Who", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{
		Username: "drwho", Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth dto.AuthResponse
	decode(t, resp, &auth)
	require.NotEmpty(t, auth.Token)

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			assert.True(t, c.HttpOnly, "session cookie must not be script-accessible")
			assert.Equal(t, auth.Token, c.Value)
		}
	}

	return auth.Token
}

func TestSignupConflict(t *testing.T) {
	app, _ := newTestApp(t)
	loginDoctor(t, app)

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", dto.SignupRequest{
		Username: "drwho", Name: "Impostor", Password: "other",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginFailureStatus(t *testing.T) {
	app, _ := newTestApp(t)
	loginDoctor(t, app)

	wrongPass := doJSON(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{Username: "drwho", Password: "nope"})
	unknown := doJSON(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{Username: "ghost", Password: "password123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

	var a, b dto.ErrorResponse
	decode(t, wrongPass, &a)
	decode(t, unknown, &b)
	assert.Equal(t, a.Message, b.Message, "failure modes must be indistinguishable")
}

func TestSessionRequired(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeIdentifiesDoctor(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDoctor(t, app)

	resp := doJSON(t, app, "GET", "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doctor dto.DoctorResponse
	decode(t, resp, &doctor)
	assert.Equal(t, "drwho", doctor.Username)
}

func TestClientAndEnrollmentFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDoctor(t, app)

	resp := doJSON(t, app, "POST", "/api/clients", token, dto.RegisterClientRequest{
		FirstName: "John", LastName: "Doe", DOB: "1990-01-01",
		Gender: "Male", Contact: "712345678", Address: "123 Street",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var client dto.ClientResponse
	decode(t, resp, &client)
	assert.Equal(t, "John Doe", client.Name)

	resp = doJSON(t, app, "POST", "/api/programs", token, dto.CreateProgramRequest{Name: "Diabetes Care"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var program dto.ProgramResponse
	decode(t, resp, &program)
	assert.Equal(t, "Dr Who", program.CreatedBy)

	resp = doJSON(t, app, "PUT", "/api/clients/"+client.ID.String()+"/programs", token,
		fiber.Map{"program_ids": []string{program.ID.String()}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &client)
	assert.Equal(t, []string{"Diabetes Care"}, client.Programs)

	resp = doJSON(t, app, "GET", "/api/clients?search=john", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []dto.ClientResponse
	decode(t, resp, &found)
	require.Len(t, found, 1)

	resp = doJSON(t, app, "DELETE", "/api/clients/"+client.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/clients/"+client.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/programs/"+program.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "deleting a client must not delete its programs")
}

func TestClientsCSVEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDoctor(t, app)

	resp := doJSON(t, app, "POST", "/api/clients", token, dto.RegisterClientRequest{
		FirstName: "John", LastName: "Doe", DOB: "1990-01-01",
		Gender: "Male", Contact: "712345678", Address: "123 Street",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/reports/clients.csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "filtered_clients.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestClientsPDFEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDoctor(t, app)

	resp := doJSON(t, app, "GET", "/api/reports/clients.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "client_registry_filtered.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestEmailReportEndpoint(t *testing.T) {
	app, sender := newTestApp(t)
	token := loginDoctor(t, app)

	resp := doJSON(t, app, "POST", "/api/reports/email", token, dto.EmailReportRequest{Recipients: "  , "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, sender.sent)

	resp = doJSON(t, app, "POST", "/api/reports/email", token, dto.EmailReportRequest{Recipients: "a@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, sender.sent)
}
