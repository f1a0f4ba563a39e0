package app

import (
	"fmt"
	"net/http"

	"github.com/datavista/hris-backend-go/internal/config"
	hrisgraphql "github.com/datavista/hris-backend-go/internal/handler/graphql"
	appHTTP "github.com/datavista/hris-backend-go/internal/handler/http"
	"github.com/datavista/hris-backend-go/internal/handler/http/middleware"
	"github.com/datavista/hris-backend-go/internal/pkg/jwt"
	"github.com/datavista/hris-backend-go/internal/pkg/metrics"
	attendanceService "github.com/datavista/hris-backend-go/internal/service/attendance"
	authService "github.com/datavista/hris-backend-go/internal/service/auth"
	employeeService "github.com/datavista/hris-backend-go/internal/service/employee"
	taskService "github.com/datavista/hris-backend-go/internal/service/task"
	"golang.org/x/time/rate"
)

// Server is the assembled HTTP surface.
type Server struct {
	Handler http.Handler
	Limiter *middleware.IPRateLimiter
}

// NewServer wires services, the GraphQL schema and the router over repos.
func NewServer(cfg *config.Config, repos *Storage, version string) (*Server, error) {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	resolver := hrisgraphql.NewResolver(
		authService.NewAuthService(repos.Transactor, repos.Users, jwtService),
		employeeService.NewEmployeeService(repos.Transactor, repos.Employees, repos.Tasks, repos.Attendance),
		taskService.NewTaskService(repos.Transactor, repos.Tasks, repos.Employees, cfg.Auth.TaskOwnershipEnforced),
		attendanceService.NewAttendanceService(repos.Transactor, repos.Attendance),
		cfg.IsProduction(),
	)
	schema, err := hrisgraphql.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "hris-backend",
			Version:        version,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		jwtService,
		hrisgraphql.NewHandler(schema),
		limiter,
		metrics.New(),
	)
	return &Server{Handler: router, Limiter: limiter}, nil
}
