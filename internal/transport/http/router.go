package handlers

import (
	"strings"

	"eduplatform/internal/infrastructure/security"
	"eduplatform/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	userHandler *UserHandler,
	courseHandler *CourseHandler,
	lessonHandler *LessonHandler,
	paymentHandler *PaymentHandler,
	tokens *security.TokenManager,
	corsOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = corsOrigins != ""
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	auth := middleware.AuthMiddleware(tokens)

	users := r.Group("/users")
	{
		users.POST("/register/", userHandler.Register)
		users.POST("/login/", userHandler.Login)
		users.POST("/token/refresh/", userHandler.Refresh)

		users.GET("/", auth, userHandler.List)
		users.GET("/view/:id/", auth, userHandler.Get)
		users.PATCH("/update/:id/", auth, userHandler.Update)
		users.DELETE("/delete/:id/", auth, userHandler.Delete)
	}

	course := r.Group("/course", auth)
	{
		course.GET("/", courseHandler.List)
		course.POST("/", courseHandler.Create)
		course.GET("/:id/", courseHandler.Get)
		course.PATCH("/:id/", courseHandler.Update)
		course.DELETE("/:id/", courseHandler.Delete)
		course.POST("/:id/subscribe/", courseHandler.Subscribe)
	}

	lesson := r.Group("/lesson", auth)
	{
		lesson.GET("/", lessonHandler.List)
		lesson.POST("/create/", lessonHandler.Create)
		lesson.GET("/:id/", lessonHandler.Get)
		lesson.PATCH("/update/:id/", lessonHandler.Update)
		lesson.DELETE("/delete/:id/", lessonHandler.Delete)
	}

	payment := r.Group("/payment", auth)
	{
		payment.GET("/", paymentHandler.List)
		payment.POST("/", paymentHandler.Create)
		payment.GET("/:id/status/", paymentHandler.GetStatus)
	}

	return r
}
