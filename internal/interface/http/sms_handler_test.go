package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetya/trackping/internal/application"
	"github.com/prasetya/trackping/internal/infrastructure/memory"
	"github.com/prasetya/trackping/internal/interface/middleware"
	"github.com/prasetya/trackping/pkg/geoip"
	"github.com/prasetya/trackping/pkg/notifier"
	"github.com/prasetya/trackping/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type recordingDispatcher struct {
	jobs []notifier.NotifyJob
}

func (d *recordingDispatcher) Dispatch(_ context.Context, job notifier.NotifyJob) {
	d.jobs = append(d.jobs, job)
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, _ string) geoip.Location {
	return geoip.Location{Country: "United States", Region: "California", City: "Los Angeles"}
}

type testApp struct {
	engine   *gin.Engine
	registry *memory.Registry
	disp     *recordingDispatcher
}

func newTestApp(backend application.Backend) *testApp {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg := memory.NewRegistry()
	disp := &recordingDispatcher{}
	svc := application.NewTrackingService(reg, stubResolver{}, disp, backend, "https://track.example.com", logger)

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.ClientIP())

	sms := NewSMSHandler(svc, logger)
	tracking := NewTrackingHandler(svc, logger)
	e.POST("/sms", sms.Receive)
	e.GET("/t/:id", tracking.Visit)
	e.NoRoute(tracking.Fallback)

	return &testApp{engine: e, registry: reg, disp: disp}
}

func (a *testApp) postSMS(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestWebhookSignupFlow(t *testing.T) {
	app := newTestApp(application.BackendEmail)

	w := app.postSMS(t, url.Values{"From": {"+15551111111"}, "Body": {"hello"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<Response></Response>")

	assert.Equal(t, 1, app.registry.Len())
	require.Len(t, app.disp.jobs, 1)
	assert.Contains(t, app.disp.jobs[0].Message, "Reply with the number of your carrier")
}

func TestWebhookCarrierSelectionFlow(t *testing.T) {
	app := newTestApp(application.BackendEmail)

	w := app.postSMS(t, url.Values{"From": {"+15551111111"}, "Body": {"hello"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.postSMS(t, url.Values{"From": {"+15551111111"}, "Body": {"2"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Response></Response>")

	require.Len(t, app.disp.jobs, 2)
	assert.Contains(t, app.disp.jobs[1].Message, "https://track.example.com/")
	assert.EqualValues(t, "att", app.disp.jobs[1].Carrier)
}

func TestWebhookMalformedSenderStillAcks(t *testing.T) {
	app := newTestApp(application.BackendEmail)

	w := app.postSMS(t, url.Values{"From": {"not-a-phone"}, "Body": {"hello"}})

	assert.Equal(t, http.StatusOK, w.Code, "the provider must not retry on our validation misses")
	assert.Contains(t, w.Body.String(), "<Response></Response>")
	assert.Equal(t, 0, app.registry.Len())
	assert.Empty(t, app.disp.jobs)
}

func TestWebhookMissingFieldsStillAcks(t *testing.T) {
	app := newTestApp(application.BackendSNS)

	w := app.postSMS(t, url.Values{"Body": {"hello"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, app.registry.Len())
}

func TestWebhookSNSSingleStepSignup(t *testing.T) {
	app := newTestApp(application.BackendSNS)

	w := app.postSMS(t, url.Values{"From": {"+15551111111"}, "Body": {"anything at all"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, app.registry.Len())
	require.Len(t, app.disp.jobs, 1)
	assert.Contains(t, app.disp.jobs[0].Message, "Your tracking link")
}
