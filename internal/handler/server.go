// Package handler implements the HTTP handlers for the travel-planner API.
// All handlers are methods on Server and are split into domain-specific files
// (auth.go, trip.go, chat.go, etc.), but share the same Server struct so they
// can access its dependencies. Routes assembles the full chi route tree.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/auth"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
)

// The servicer interfaces below define the business operations each handler
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.

// AuthServicer defines the business operations the auth handler depends on.
type AuthServicer interface {
	Signup(ctx context.Context, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, token, newPassword string) error
}

// TripServicer defines the business operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, callerEmail string, trip domain.Trip) (domain.Trip, error)
	List(ctx context.Context, callerEmail string) ([]domain.Trip, error)
	Get(ctx context.Context, callerEmail string, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, callerEmail string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, callerEmail string, id uuid.UUID) error
	Invite(ctx context.Context, callerEmail string, id uuid.UUID, inviteeEmail string) (domain.Trip, error)
}

// ChatServicer defines the business operations the chat handler depends on.
type ChatServicer interface {
	SendToTrip(ctx context.Context, senderEmail string, tripID uuid.UUID, body string) (domain.Message, error)
	SendGlobal(ctx context.Context, senderEmail, body string) (domain.Message, error)
	ListTrip(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error)
	ListGlobal(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error)
}

// DestinationServicer defines the catalog operations the destination handler
// depends on.
type DestinationServicer interface {
	Filter(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	Details(ctx context.Context, country, name string) (domain.Destination, error)
}

// EnrichmentServicer defines the weather/POI fan-outs the destination handler
// depends on. Neither returns an error: failures are per-destination
// annotations.
type EnrichmentServicer interface {
	AnnotateWeather(ctx context.Context, dests []domain.Destination) []domain.DestinationWeather
	CollectPOIs(ctx context.Context, dests []domain.Destination) []domain.DestinationPOIs
}

// ActivityServicer defines the audit-trail reads the activity handler
// depends on.
type ActivityServicer interface {
	List(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error)
}

// ImageServicer defines the thumbnail lookups the image handler depends on.
type ImageServicer interface {
	DestinationImage(ctx context.Context, name string) (string, error)
	AccommodationImage(ctx context.Context, name string) (string, error)
}

// Deps bundles everything a Server needs. Grouped in a struct because the
// handler layer fronts seven services plus the hub and tokens.
type Deps struct {
	Auth         AuthServicer
	Trips        TripServicer
	Chat         ChatServicer
	Destinations DestinationServicer
	Enrich       EnrichmentServicer
	Activities   ActivityServicer
	Images       ImageServicer

	Hub    *realtime.Hub
	Tokens *auth.Tokens
	Log    *slog.Logger
}

// Server holds the handler dependencies. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	deps     Deps
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(deps Deps) *Server {
	return &Server{
		deps:     deps,
		validate: validator.New(),
	}
}

// Routes mounts every endpoint on a fresh router. Global middleware (request
// ID, logging, CORS, body limits) is wired by the caller; Routes only adds
// the auth gate around the protected surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.Post("/password-reset", s.RequestPasswordReset)
		r.Post("/password-reset/confirm", s.ConfirmPasswordReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.deps.Tokens))

		r.Get("/me", s.Me)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Post("/invite", s.InviteCollaborator)
				r.Get("/messages", s.ListTripMessages)
				r.Post("/messages", s.SendTripMessage)
				r.Get("/activities", s.ListTripActivities)
			})
		})

		r.Route("/chat/messages", func(r chi.Router) {
			r.Get("/", s.ListGlobalMessages)
			r.Post("/", s.SendGlobalMessage)
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", s.ListDestinations)
			r.Get("/details", s.GetDestinationDetails)
			r.Get("/weather", s.ListDestinationWeather)
			r.Get("/pois", s.ListDestinationPOIs)
			r.Post("/enrich", s.EnrichDestinations)
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/destination", s.GetDestinationImage)
			r.Get("/accommodation", s.GetAccommodationImage)
		})

		r.Route("/streams", func(r chi.Router) {
			r.Get("/trips", s.StreamTrips)
			r.Get("/trips/{tripID}/messages", s.StreamTripMessages)
			r.Get("/trips/{tripID}/activities", s.StreamTripActivities)
			r.Get("/chat", s.StreamGlobalChat)
		})
	})

	return r
}

// identity pulls the authenticated caller from the request context. Handlers
// behind RequireAuth can rely on ok being true; the false branch only fires
// on a miswired route.
func (s *Server) identity(r *http.Request) (auth.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}
