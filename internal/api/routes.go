package api

import (
	"io"
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/auth"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
)

// Handlers содержит зависимости от сервисов
type Handlers struct {
	sessions  *auth.Sessions
	secure    bool
	accounts  *service.AccountService
	routines  *service.RoutineService
	planning  *service.PlanningService
	health    *service.HealthService
	workouts  *service.WorkoutService
	dashboard *service.DashboardService
}

// Services - всё, что нужно роутеру
type Services struct {
	Accounts  *service.AccountService
	Routines  *service.RoutineService
	Planning  *service.PlanningService
	Health    *service.HealthService
	Workouts  *service.WorkoutService
	Dashboard *service.DashboardService
}

func NewHandlers(sessions *auth.Sessions, secureCookies bool, s Services) *Handlers {
	return &Handlers{
		sessions:  sessions,
		secure:    secureCookies,
		accounts:  s.Accounts,
		routines:  s.Routines,
		planning:  s.Planning,
		health:    s.Health,
		workouts:  s.Workouts,
		dashboard: s.Dashboard,
	}
}

// SetupRoutes регистрирует все маршруты /api
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)

	api := r.Group("/api", AuthMiddleware(h.sessions, h.accounts))
	api.GET("/auth/session", h.Session)

	// Рутины
	h.registerRoutines(api.Group("/routines"), models.RoutineMorning)
	h.registerRoutines(api.Group("/night-routines"), models.RoutineNight)

	// Планирование
	p := h.planning
	resource{listOf(p.ListTasks), createOf(p.CreateTask), updateOf(p.UpdateTask), deleteOf(p.DeleteTask)}.mount(api, "/tasks")
	resource{listOf(p.ListMissions), createOf(p.CreateMission), updateOf(p.UpdateMission), deleteOf(p.DeleteMission)}.mount(api, "/missions")
	resource{listOf(p.ListProjects), createOf(p.CreateProject), updateOf(p.UpdateProject), deleteOf(p.DeleteProject)}.mount(api, "/projects")
	resource{listOf(p.ListEvents), createOf(p.CreateEvent), updateOf(p.UpdateEvent), deleteOf(p.DeleteEvent)}.mount(api, "/calendar")
	resource{listOf(p.ListNotes), createOf(p.CreateNote), updateOf(p.UpdateNote), deleteOf(p.DeleteNote)}.mount(api, "/notes")

	// Здоровье. POST /sleep перезаписывает запись за ту же дату
	hs := h.health
	resource{listOf(hs.ListSleep), updateOf(hs.SaveSleep), updateOf(hs.UpdateSleep), deleteOf(hs.DeleteSleep)}.mount(api, "/sleep")
	resource{listOf(hs.ListRecords), createOf(hs.CreateRecord), updateOf(hs.UpdateRecord), deleteOf(hs.DeleteRecord)}.mount(api, "/personal-records")

	api.GET("/fitness-profile", h.GetProfile)
	api.PUT("/fitness-profile", updateOf(hs.SaveProfile))
	api.GET("/fitness-profile/targets", h.Targets)

	api.GET("/nutrition", h.GetNutrition)
	api.POST("/nutrition", createOf(hs.AddMeal))
	api.DELETE("/nutrition", h.RemoveMeal)

	// Тренировки
	w := h.workouts
	resource{listOf(w.ListSessions), createOf(w.CreateSession), updateOf(w.UpdateSession), deleteOf(w.DeleteSession)}.mount(api, "/workouts")
	resource{listOf(w.ListPrograms), createOf(w.CreateProgram), updateOf(w.UpdateProgram), deleteOf(w.DeleteProgram)}.mount(api, "/workout-programs")
	api.POST("/workout-programs/apply", h.ApplyProgram)

	// Дашборд и настройки
	api.GET("/dashboard/widgets", h.GetWidgets)
	api.PUT("/dashboard/widgets", h.ReplaceWidgets)
	api.POST("/dashboard/widgets/actions", h.WidgetAction)

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.POST("/reset", h.Reset)
}

// NewRouter собирает gin.Engine со всеми маршрутами
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies(nil)
	SetupRoutes(router, h)
	return router
}

// WrapHTTP добавляет CORS для SPA и access log
func WrapHTTP(router http.Handler, origins []string, accessLog io.Writer) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
	return handlers.LoggingHandler(accessLog, cors(router))
}
