package router

import (
	"employee-records/internal/api/docs"
	"employee-records/internal/api/handlers"
	"employee-records/internal/api/middleware"
	"employee-records/internal/domain/employee"
	"employee-records/internal/metrics"
	"employee-records/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the router wires into handlers.
// IdempotencyService may be nil.
type Dependencies struct {
	EmployeeService    employee.EmployeeService
	IdempotencyService *service.IdempotencyService
	Metrics            *metrics.Metrics
	Gatherer           prometheus.Gatherer
	HealthChecks       map[string]handlers.Pinger
	BasePath           string
	Version            string
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/health", "/ready", "/live", "/metrics"))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(cors.Default())
	r.Use(gin.Recovery())

	employeeHandler := handlers.NewEmployeeHandler(deps.EmployeeService, deps.IdempotencyService, deps.Metrics)
	healthHandler := handlers.NewHealthHandler(deps.Version, deps.HealthChecks)
	docsHandler := handlers.NewDocsHandler(docs.NewDocument(deps.BasePath, deps.Version))

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	r.GET("/v3/api-docs", docsHandler.JSON)
	r.GET("/v3/api-docs.yaml", docsHandler.YAML)

	api := r.Group(deps.BasePath)
	{
		employees := api.Group("/employees")
		{
			employees.POST("", middleware.IdempotencyMiddleware(), employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.GetAllEmployees)
			employees.GET("/:id", employeeHandler.GetEmployeeByID)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
			employees.GET("/pagination/:offset/:pageSize", employeeHandler.GetAllEmployeesWithPagination)
			employees.GET("/sort/:field", employeeHandler.GetAllEmployeesWithSorting)
			employees.GET("/filter", employeeHandler.GetAllEmployeesWithFilter)
		}
	}
	return r
}
