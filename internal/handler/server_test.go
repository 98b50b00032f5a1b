package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/auth"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
)

// Hand-written test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	signup       func(ctx context.Context, email, password string) (domain.User, string, error)
	login        func(ctx context.Context, email, password string) (domain.User, string, error)
	requestReset func(ctx context.Context, email string) error
	confirmReset func(ctx context.Context, token, newPassword string) error
}

func (m *mockAuthServicer) Signup(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.signup(ctx, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) RequestReset(ctx context.Context, email string) error {
	return m.requestReset(ctx, email)
}
func (m *mockAuthServicer) ConfirmReset(ctx context.Context, token, newPassword string) error {
	return m.confirmReset(ctx, token, newPassword)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockTripServicer struct {
	create func(ctx context.Context, callerEmail string, trip domain.Trip) (domain.Trip, error)
	list   func(ctx context.Context, callerEmail string) ([]domain.Trip, error)
	get    func(ctx context.Context, callerEmail string, id uuid.UUID) (domain.Trip, error)
	update func(ctx context.Context, callerEmail string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	delete func(ctx context.Context, callerEmail string, id uuid.UUID) error
	invite func(ctx context.Context, callerEmail string, id uuid.UUID, inviteeEmail string) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, callerEmail string, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, callerEmail, trip)
}
func (m *mockTripServicer) List(ctx context.Context, callerEmail string) ([]domain.Trip, error) {
	return m.list(ctx, callerEmail)
}
func (m *mockTripServicer) Get(ctx context.Context, callerEmail string, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, callerEmail, id)
}
func (m *mockTripServicer) Update(ctx context.Context, callerEmail string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, callerEmail, id, upd)
}
func (m *mockTripServicer) Delete(ctx context.Context, callerEmail string, id uuid.UUID) error {
	return m.delete(ctx, callerEmail, id)
}
func (m *mockTripServicer) Invite(ctx context.Context, callerEmail string, id uuid.UUID, inviteeEmail string) (domain.Trip, error) {
	return m.invite(ctx, callerEmail, id, inviteeEmail)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockChatServicer struct {
	sendToTrip func(ctx context.Context, senderEmail string, tripID uuid.UUID, body string) (domain.Message, error)
	sendGlobal func(ctx context.Context, senderEmail, body string) (domain.Message, error)
	listTrip   func(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error)
	listGlobal func(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error)
}

func (m *mockChatServicer) SendToTrip(ctx context.Context, senderEmail string, tripID uuid.UUID, body string) (domain.Message, error) {
	return m.sendToTrip(ctx, senderEmail, tripID, body)
}
func (m *mockChatServicer) SendGlobal(ctx context.Context, senderEmail, body string) (domain.Message, error) {
	return m.sendGlobal(ctx, senderEmail, body)
}
func (m *mockChatServicer) ListTrip(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error) {
	return m.listTrip(ctx, callerEmail, tripID, p)
}
func (m *mockChatServicer) ListGlobal(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error) {
	return m.listGlobal(ctx, p)
}

var _ handler.ChatServicer = (*mockChatServicer)(nil)

type mockDestinationServicer struct {
	filter  func(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	details func(ctx context.Context, country, name string) (domain.Destination, error)
}

func (m *mockDestinationServicer) Filter(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	return m.filter(ctx, f)
}
func (m *mockDestinationServicer) Details(ctx context.Context, country, name string) (domain.Destination, error) {
	return m.details(ctx, country, name)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

type mockEnrichmentServicer struct {
	annotateWeather func(ctx context.Context, dests []domain.Destination) []domain.DestinationWeather
	collectPOIs     func(ctx context.Context, dests []domain.Destination) []domain.DestinationPOIs
}

func (m *mockEnrichmentServicer) AnnotateWeather(ctx context.Context, dests []domain.Destination) []domain.DestinationWeather {
	return m.annotateWeather(ctx, dests)
}
func (m *mockEnrichmentServicer) CollectPOIs(ctx context.Context, dests []domain.Destination) []domain.DestinationPOIs {
	return m.collectPOIs(ctx, dests)
}

var _ handler.EnrichmentServicer = (*mockEnrichmentServicer)(nil)

type mockActivityServicer struct {
	list func(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error)
}

func (m *mockActivityServicer) List(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error) {
	return m.list(ctx, callerEmail, tripID, p)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockImageServicer struct {
	destinationImage   func(ctx context.Context, name string) (string, error)
	accommodationImage func(ctx context.Context, name string) (string, error)
}

func (m *mockImageServicer) DestinationImage(ctx context.Context, name string) (string, error) {
	return m.destinationImage(ctx, name)
}
func (m *mockImageServicer) AccommodationImage(ctx context.Context, name string) (string, error) {
	return m.accommodationImage(ctx, name)
}

var _ handler.ImageServicer = (*mockImageServicer)(nil)

// ---- harness ---------------------------------------------------------------

const callerEmail = "caller@example.com"

// testEnv bundles the wired router, the mocks behind it, and the token
// machinery needed to authenticate requests.
type testEnv struct {
	router http.Handler
	tokens *auth.Tokens
	hub    *realtime.Hub

	auth       *mockAuthServicer
	trips      *mockTripServicer
	chat       *mockChatServicer
	dests      *mockDestinationServicer
	enrich     *mockEnrichmentServicer
	activities *mockActivityServicer
	images     *mockImageServicer
}

// newTestEnv wires a Server exactly like main.go does, with every service
// mocked out.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		tokens:     auth.NewTokens([]byte("test-secret")),
		hub:        realtime.NewHub(),
		auth:       &mockAuthServicer{},
		trips:      &mockTripServicer{},
		chat:       &mockChatServicer{},
		dests:      &mockDestinationServicer{},
		enrich:     &mockEnrichmentServicer{},
		activities: &mockActivityServicer{},
		images:     &mockImageServicer{},
	}

	srv := handler.NewServer(handler.Deps{
		Auth:         env.auth,
		Trips:        env.trips,
		Chat:         env.chat,
		Destinations: env.dests,
		Enrich:       env.enrich,
		Activities:   env.activities,
		Images:       env.images,
		Hub:          env.hub,
		Tokens:       env.tokens,
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	env.router = srv.Routes()
	return env
}

// request performs req against the router and returns the recorder.
func (env *testEnv) request(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// authedRequest builds a request carrying a valid access token for
// callerEmail.
func (env *testEnv) authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	token, err := env.tokens.IssueAccess(uuid.New(), callerEmail)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeBody unmarshals the recorder's JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// errorCode extracts the machine-readable code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	decodeBody(t, rec, &body)
	return body.Error.Code
}
