package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
	"github.com/ppongpeauk/xcs/pkg/metricsx"
	"github.com/ppongpeauk/xcs/pkg/slogx"

	_ "github.com/ppongpeauk/xcs/api/xcs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	identity     httpx.IdentityResolver
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SessionService      *service.SessionService
	BootstrapService    *service.BootstrapService
	UserService         *service.UserService
	VerificationService *service.VerificationService
	LinkService         *service.LinkService
	OrganizationService *service.OrganizationService
	MembershipService   *service.MembershipService
	InviteService       *service.InviteService
	NotificationService *service.NotificationService
	AccessGroupService  *service.AccessGroupService
	LocationService     *service.LocationService
	AccessPointService  *service.AccessPointService
	APIKeyService       *service.APIKeyService
	AccessService       *service.AccessService
	LegacySyncService   *service.LegacySyncService
}

func NewRouter(
	keys *jwtx.KeySet,
	identity httpx.IdentityResolver,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		identity:     identity,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerSessions()
	r.registerUsers()
	r.registerOrganizations()
	r.registerMembers()
	r.registerInvites()
	r.registerNotifications()
	r.registerAccessGroups()
	r.registerLocations()
	r.registerDevices()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			XCS Access Control API
//	@version		0.1.0
//	@description	Multi-tenant access control: organizations, members, locations, access points and device scans.
//	@description
//	@description				Session tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-API-Key
//	@description				Organization API key. Format: "xcs_{id}_{secret}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with per-route metrics.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, metricsx.InstrumentRoute(pattern, httpx.Chain(h, mws...)))
}

// authed chains bearer authentication and a per-user rate limit.
func (r *Router) authed(limit httpx.RateLimitConfig) []httpx.Middleware {
	return []httpx.Middleware{
		httpx.AuthnMiddleware(r.identity),
		httpx.RateLimitByUser(limit),
	}
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metricsx.Handler())

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSessions() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.handle("POST /api/v1/bootstrap",
		&BootstrapHandler{BootstrapService: r.BootstrapService},
		httpx.RateLimitByIP(httpx.StrictLimit),
	)

	h := &SessionHandler{SessionService: r.SessionService, UserService: r.UserService}

	// Credential endpoints - strict rate limit by IP to slow brute force
	r.handle("POST /api/v1/login", http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIP(httpx.StrictLimit))
	r.handle("POST /api/v1/register", http.HandlerFunc(h.HandleRegister), httpx.RateLimitByIP(httpx.StrictLimit))
}

func (r *Router) registerUsers() {
	h := &UserHandler{
		UserService:         r.UserService,
		VerificationService: r.VerificationService,
		LinkService:         r.LinkService,
		InviteService:       r.InviteService,
	}

	r.handle("GET /api/v1/me", http.HandlerFunc(h.HandleMe), r.authed(httpx.LenientLimit)...)
	r.handle("PATCH /api/v1/me", http.HandlerFunc(h.HandleUpdateProfile), r.authed(httpx.ModerateLimit)...)
	r.handle("PUT /api/v1/me/privacy", http.HandlerFunc(h.HandleUpdatePrivacy), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/me/email/resend", http.HandlerFunc(h.HandleResendVerification), r.authed(httpx.StrictLimit)...)
	r.handle("POST /api/v1/me/email/verify", http.HandlerFunc(h.HandleVerifyEmail), r.authed(httpx.StrictLimit)...)
	r.handle("POST /api/v1/me/links/{provider}", http.HandlerFunc(h.HandleLink), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/me/links/{provider}", http.HandlerFunc(h.HandleUnlink), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/me/invites", http.HandlerFunc(h.HandlePlatformInvite), r.authed(httpx.ModerateLimit)...)

	// Public profiles
	r.handle("GET /api/v1/users/{username}", http.HandlerFunc(h.HandlePublicProfile), httpx.RateLimitByIP(httpx.LenientLimit))
}

func (r *Router) registerOrganizations() {
	h := &OrganizationHandler{OrganizationService: r.OrganizationService}

	r.handle("POST /api/v1/organizations", http.HandlerFunc(h.HandleCreate), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/organizations", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("GET /api/v1/organizations/{orgID}", http.HandlerFunc(h.HandleGet), r.authed(httpx.LenientLimit)...)
	r.handle("PATCH /api/v1/organizations/{orgID}", http.HandlerFunc(h.HandleUpdate), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/organizations/{orgID}", http.HandlerFunc(h.HandleDelete), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/organizations/{orgID}/logs", http.HandlerFunc(h.HandleLogs), r.authed(httpx.LenientLimit)...)

	keys := &APIKeyHandler{APIKeyService: r.APIKeyService}
	r.handle("POST /api/v1/organizations/{orgID}/api-keys", http.HandlerFunc(keys.HandleCreate), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/organizations/{orgID}/api-keys", http.HandlerFunc(keys.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("DELETE /api/v1/organizations/{orgID}/api-keys/{keyID}", http.HandlerFunc(keys.HandleRevoke), r.authed(httpx.ModerateLimit)...)
}

func (r *Router) registerMembers() {
	h := &MemberHandler{MembershipService: r.MembershipService}

	r.handle("GET /api/v1/organizations/{orgID}/members", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/members/invitations", http.HandlerFunc(h.HandleInvite), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/members/roblox", http.HandlerFunc(h.HandleAddRoblox), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/members/roblox-groups", http.HandlerFunc(h.HandleAddRobloxGroup), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/members/cards", http.HandlerFunc(h.HandleAddCard), r.authed(httpx.ModerateLimit)...)
	r.handle("PATCH /api/v1/organizations/{orgID}/members/{key}", http.HandlerFunc(h.HandleUpdate), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/organizations/{orgID}/members/{key}", http.HandlerFunc(h.HandleRemove), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/leave", http.HandlerFunc(h.HandleLeave), r.authed(httpx.ModerateLimit)...)
}

func (r *Router) registerInvites() {
	h := &InviteHandler{InviteService: r.InviteService}

	r.handle("POST /api/v1/organizations/{orgID}/invite-codes", http.HandlerFunc(h.HandleCreate), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/organizations/{orgID}/invite-codes", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("DELETE /api/v1/organizations/{orgID}/invite-codes/{inviteID}", http.HandlerFunc(h.HandleRevoke), r.authed(httpx.ModerateLimit)...)

	// Previews are public; redemption guesses codes so it is strict
	r.handle("GET /api/v1/invites/{code}", http.HandlerFunc(h.HandlePreview), httpx.RateLimitByIP(httpx.ModerateLimit))
	r.handle("POST /api/v1/invites/redeem", http.HandlerFunc(h.HandleRedeem), r.authed(httpx.StrictLimit)...)
}

func (r *Router) registerNotifications() {
	h := &NotificationHandler{
		NotificationService: r.NotificationService,
		MembershipService:   r.MembershipService,
	}

	r.handle("GET /api/v1/notifications", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("POST /api/v1/notifications/{id}/read", http.HandlerFunc(h.HandleRead), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/notifications/{id}/accept", http.HandlerFunc(h.HandleAccept), r.authed(httpx.ModerateLimit)...)
	r.handle("POST /api/v1/notifications/{id}/reject", http.HandlerFunc(h.HandleReject), r.authed(httpx.ModerateLimit)...)
}

func (r *Router) registerAccessGroups() {
	h := &AccessGroupHandler{AccessGroupService: r.AccessGroupService}

	r.handle("GET /api/v1/organizations/{orgID}/access-groups", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/access-groups", http.HandlerFunc(h.HandleCreate), r.authed(httpx.ModerateLimit)...)
	r.handle("PUT /api/v1/organizations/{orgID}/access-groups/{groupID}", http.HandlerFunc(h.HandleUpdate), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/organizations/{orgID}/access-groups/{groupID}", http.HandlerFunc(h.HandleDelete), r.authed(httpx.ModerateLimit)...)
}

func (r *Router) registerLocations() {
	h := &LocationHandler{
		LocationService:    r.LocationService,
		AccessPointService: r.AccessPointService,
	}

	r.handle("GET /api/v1/organizations/{orgID}/locations", http.HandlerFunc(h.HandleList), r.authed(httpx.LenientLimit)...)
	r.handle("POST /api/v1/organizations/{orgID}/locations", http.HandlerFunc(h.HandleCreate), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/locations/{locationID}", http.HandlerFunc(h.HandleGet), r.authed(httpx.LenientLimit)...)
	r.handle("PUT /api/v1/locations/{locationID}", http.HandlerFunc(h.HandleUpdate), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/locations/{locationID}", http.HandlerFunc(h.HandleDelete), r.authed(httpx.ModerateLimit)...)

	r.handle("GET /api/v1/locations/{locationID}/access-points", http.HandlerFunc(h.HandleListAccessPoints), r.authed(httpx.LenientLimit)...)
	r.handle("POST /api/v1/locations/{locationID}/access-points", http.HandlerFunc(h.HandleCreateAccessPoint), r.authed(httpx.ModerateLimit)...)
	r.handle("GET /api/v1/access-points/{apID}", http.HandlerFunc(h.HandleGetAccessPoint), r.authed(httpx.LenientLimit)...)
	r.handle("PUT /api/v1/access-points/{apID}", http.HandlerFunc(h.HandleUpdateAccessPoint), r.authed(httpx.ModerateLimit)...)
	r.handle("DELETE /api/v1/access-points/{apID}", http.HandlerFunc(h.HandleDeleteAccessPoint), r.authed(httpx.ModerateLimit)...)
}

func (r *Router) registerDevices() {
	h := &DeviceHandler{
		AccessService:     r.AccessService,
		LegacySyncService: r.LegacySyncService,
	}

	// Device traffic - high limit per API key
	device := []httpx.Middleware{
		httpx.APIKeyMiddleware(),
		httpx.RateLimitByAPIKey(httpx.PublicLimit),
	}
	r.handle("POST /api/v1/access-points/{apID}/scan", http.HandlerFunc(h.HandleScan), device...)
	r.handle("GET /api/v1/axesys/sync/{locationID}", http.HandlerFunc(h.HandleLegacySync), device...)
}
