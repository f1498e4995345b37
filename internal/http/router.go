package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"propmatch/internal/domain/user"
	"propmatch/internal/http/handlers"
	"propmatch/internal/http/metrics"
	httpmw "propmatch/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	ProfileHandler      *handlers.ProfileHandler
	ProposalHandler     *handlers.ProposalHandler
	MatchHandler        *handlers.MatchHandler
	NotificationHandler *handlers.NotificationHandler
	MetricsHandler      *handlers.MetricsHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	Logger              *slog.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/users") || strings.HasPrefix(path, "/profiles") || strings.HasPrefix(path, "/students") || strings.HasPrefix(path, "/companies") || strings.HasPrefix(path, "/departments") || strings.HasPrefix(path, "/proposals") || strings.HasPrefix(path, "/matches") || strings.HasPrefix(path, "/notifications") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/users":
		httpmw.RequireRole(user.RoleAdministrator)(http.HandlerFunc(r.deps.UserHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Get(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/users/"):
		httpmw.RequireRole(user.RoleAdministrator)(http.HandlerFunc(r.deps.UserHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/profiles/me":
		r.deps.ProfileHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/students":
		r.deps.ProfileHandler.ListStudents(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/matches":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.MatchHandler.ListOwn)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.GetStudent)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.UpsertStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/profile/deletion-request":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.RequestStudentDeletion)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/students/"):
		httpmw.RequireRole(user.RoleAdministrator, user.RoleManager)(http.HandlerFunc(r.deps.ProfileHandler.DeleteStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies":
		r.deps.ProfileHandler.ListCompanies(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.GetCompany)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.UpsertCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/departments/profile":
		httpmw.RequireRole(user.RoleManager)(http.HandlerFunc(r.deps.ProfileHandler.GetDepartment)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/departments/profile":
		httpmw.RequireRole(user.RoleManager)(http.HandlerFunc(r.deps.ProfileHandler.UpsertDepartment)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/proposals":
		httpmw.RequireRole(user.RoleCompany, user.RoleAdministrator, user.RoleManager)(http.HandlerFunc(r.deps.ProposalHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/proposals":
		r.deps.ProposalHandler.List(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/validate"):
		httpmw.RequireRole(user.RoleAdministrator, user.RoleManager)(http.HandlerFunc(r.deps.ProposalHandler.Validate)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/reject"):
		httpmw.RequireRole(user.RoleAdministrator, user.RoleManager)(http.HandlerFunc(r.deps.ProposalHandler.Reject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/inactivate"):
		r.deps.ProposalHandler.Inactivate(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/reactivate"):
		r.deps.ProposalHandler.Reactivate(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/matches"):
		httpmw.RequireRole(user.RoleCompany, user.RoleAdministrator, user.RoleManager)(http.HandlerFunc(r.deps.MatchHandler.Assign)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/proposals/") && strings.HasSuffix(path, "/matches"):
		r.deps.MatchHandler.ListByProposal(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/proposals/"):
		r.deps.ProposalHandler.Get(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/proposals/"):
		r.deps.ProposalHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/proposals/"):
		r.deps.ProposalHandler.Remove(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/matches/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.MatchHandler.Respond)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/notifications/"):
		r.deps.NotificationHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}
