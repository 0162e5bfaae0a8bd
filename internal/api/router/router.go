package router

import (
	"time"

	"class-timetable/internal/api/handlers"
	"class-timetable/internal/api/middleware"
	"class-timetable/internal/domain/user"
	interfaces "class-timetable/internal/interfaces/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Version        string
	Schedule       interfaces.ScheduleService
	Catalog        interfaces.CatalogService
	Auth           interfaces.AuthService
	Users          user.UserService
	Friends        user.FriendService
	Comments       interfaces.CommentService
	HealthChecks   map[string]handlers.Checker
	AllowedOrigins []string
}

func NewRouter(deps Dependencies) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))
	r.Use(gin.Recovery())

	scheduleHandler := handlers.NewScheduleHandler(deps.Schedule)
	lectureHandler := handlers.NewLectureHandler(deps.Catalog)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)
	friendHandler := handlers.NewFriendHandler(deps.Friends)
	commentHandler := handlers.NewCommentHandler(deps.Comments)
	healthHandler := handlers.NewHealthHandler(deps.Version, deps.HealthChecks)

	requireAuth := middleware.JWTAuth(deps.Auth)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		sched := v1.Group("/schedule")
		{
			sched.GET("", requireAuth, scheduleHandler.GetSchedule)
			sched.GET("/:lectureId", scheduleHandler.GetLecture)
			sched.POST("/:lectureId", requireAuth, scheduleHandler.AddLecture)
			sched.DELETE("/:lectureId", requireAuth, scheduleHandler.RemoveLecture)
		}

		lectures := v1.Group("/lectures")
		{
			lectures.GET("", lectureHandler.ListLectures)
			lectures.POST("", requireAuth, lectureHandler.CreateLecture)
			lectures.GET("/:id", scheduleHandler.GetLecture)
			lectures.GET("/:id/times", lectureHandler.ListTimeSlots)
			lectures.POST("/:id/times", requireAuth, lectureHandler.AddTimeSlot)
			lectures.GET("/:id/comments", commentHandler.ListComments)
			lectures.POST("/:id/comments", requireAuth, commentHandler.AddComment)
		}

		users := v1.Group("/users", requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		friends := v1.Group("/friends", requireAuth)
		{
			friends.GET("", friendHandler.ListFriends)
			friends.GET("/search/:userName", friendHandler.SearchUser)
			friends.POST("/me/:friendName", friendHandler.AddFriend)
			friends.DELETE("/me/:friendName", friendHandler.RemoveFriend)
		}
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
