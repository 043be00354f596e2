package app

import (
	"learning_center_backend/docs"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/middleware"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/monitoring"
	"learning_center_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// guards bundles the per-route middleware so the route tables stay readable.
type guards struct {
	authn gin.HandlerFunc
	admin gin.HandlerFunc
	id    gin.HandlerFunc
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	g := guards{
		authn: middleware.Auth(cfg.JWT.Secret, a.Codec),
		admin: middleware.AdminOnly(),
		id:    middleware.DecodeHashID(a.Codec),
	}

	// 1. Static files. The private tree needs a session.
	files := router.Group("/uploads")
	{
		files.GET("/public/*filepath", c.upload.ServeFile(util.ScopePublic))
		files.GET("/private/*filepath", g.authn, c.upload.ServeFile(util.ScopePrivate))
	}

	api := router.Group("/api")
	api.Use(security.RateLimiter(
		a.ctx,
		cfg.RateLimit.APIMaxRequests,
		time.Duration(cfg.RateLimit.APIWindowMinutes)*time.Minute,
		"Too many API requests, please try again later",
	))
	api.Use(middleware.SanitizeBody())

	// 2. Routes that keep their own statistics or none at all.
	api.GET("/health", c.health.HealthCheck)
	a.registerAuthRoutes(api, c)
	stats := api.Group("/stats", g.authn, g.admin)
	{
		stats.GET("", c.stats.GetStats)
	}

	// 3. Everything else leaves a stats row per request.
	tracked := api.Group("", middleware.StatsLogger(repos.stats))
	a.registerUserRoutes(tracked, c, g)
	a.registerTeachingRoutes(tracked, c, g)
	a.registerSiteRoutes(tracked, c, g)
	a.registerClientRoutes(tracked, c, g)
	a.registerUploadRoutes(tracked, c, g)
}

func (a *App) registerAuthRoutes(api *gin.RouterGroup, c *controllers) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.auth.Login)
		auth.GET("/logout", c.auth.Logout)
		auth.POST("/request-otp", c.auth.RequestOTP)
		auth.POST("/login-otp", c.auth.LoginOTP)
	}
}

func (a *App) registerUserRoutes(api *gin.RouterGroup, c *controllers, g guards) {
	users := api.Group("/user")
	{
		users.POST("/verify", c.user.Verify)
		users.POST("/resend-otp", c.user.ResendOTP)
		users.POST("/forgot-password", c.user.ForgotPassword)
		users.POST("/reset-password", c.user.ResetPassword)

		users.GET("", g.authn, c.user.GetUsers)
		users.POST("", g.authn, g.admin, c.user.CreateUser)
		users.POST("/generate", g.authn, g.admin, c.user.GenerateUsers)
		users.GET("/profile", g.authn, c.user.GetProfile)
		users.PATCH("/profile/:hashId", g.authn, g.id, c.user.UpdateProfile)
		users.PATCH("/activate", g.authn, g.admin, c.user.ActivateMany)
		users.GET("/:hashId", g.authn, g.admin, g.id, c.user.GetUser)
		users.PATCH("/:hashId", g.authn, g.admin, g.id, c.user.UpdateUser)
		users.DELETE("/:hashId", g.authn, g.id, c.user.DeleteUser)
		users.PATCH("/:hashId/activate", g.authn, g.admin, g.id, c.user.ActivateUser)
	}
}

// registerTeachingRoutes covers groups, lessons and exams.
func (a *App) registerTeachingRoutes(api *gin.RouterGroup, c *controllers, g guards) {
	groups := api.Group("/group", g.authn)
	{
		groups.GET("", c.group.GetGroups)
		groups.POST("", g.admin, c.group.CreateGroup)
		groups.GET("/:hashId", g.id, c.group.GetGroup)
		groups.PATCH("/:hashId", g.admin, g.id, c.group.UpdateGroup)
		groups.DELETE("/:hashId", g.admin, g.id, c.group.DeleteGroup)
	}

	lessons := api.Group("/lesson", g.authn)
	{
		lessons.GET("", c.lesson.GetLessons)
		lessons.POST("", g.admin, c.lesson.CreateLesson)
		lessons.GET("/:slug", c.lesson.GetLesson)
		lessons.PATCH("/:hashId", g.admin, g.id, c.lesson.UpdateLesson)
		lessons.DELETE("/:hashId", g.admin, g.id, c.lesson.DeleteLesson)
	}

	exams := api.Group("/exam", g.authn)
	{
		exams.GET("", c.exam.GetExams)
		exams.POST("", g.admin, c.exam.CreateExam)
		exams.POST("/submit", c.exam.SubmitExam)
		exams.GET("/attempts", g.admin, c.exam.GetAttempts)
		exams.GET("/:slug", c.exam.GetExam)
		exams.PATCH("/:hashId", g.admin, g.id, c.exam.UpdateExam)
		exams.DELETE("/:hashId", g.admin, g.id, c.exam.DeleteExam)
	}
}

// registerSiteRoutes covers the public website content and its admin side.
func (a *App) registerSiteRoutes(api *gin.RouterGroup, c *controllers, g guards) {
	courses := api.Group("/course")
	{
		courses.GET("", c.course.GetCourses)
		courses.POST("", g.authn, g.admin, c.course.CreateCourse)
		courses.PATCH("/:hashId", g.authn, g.admin, g.id, c.course.UpdateCourse)
		courses.DELETE("/:hashId", g.authn, g.admin, g.id, c.course.DeleteCourse)
		courses.GET("/slug/:slug", c.course.GetCourse)

		subs := courses.Group("/slug/:slug/subcourses")
		subs.GET("", c.course.GetSubCourses)
		subs.POST("", g.authn, g.admin, c.course.CreateSubCourse)
		subs.GET("/:hashId", g.id, c.course.GetSubCourse)
		subs.PATCH("/:hashId", g.authn, g.admin, g.id, c.course.UpdateSubCourse)
		subs.DELETE("/:hashId", g.authn, g.admin, g.id, c.course.DeleteSubCourse)
	}

	news := api.Group("/news")
	{
		news.GET("", g.authn, g.admin, c.news.GetNews)
		news.POST("", g.authn, g.admin, c.news.CreateNews)
		news.PATCH("/:hashId", g.authn, g.admin, g.id, c.news.UpdateNews)
		news.DELETE("/:hashId", g.authn, g.admin, g.id, c.news.DeleteNews)
		news.GET("/slug/:slug", c.news.GetNewsBySlug)
	}

	blog := api.Group("/blog")
	{
		blog.GET("", c.news.GetBlog)
		blog.GET("/:slug", c.news.GetBlogPost)
	}

	contacts := api.Group("/contacts")
	{
		contacts.POST("", c.contact.CreateContact)
		contacts.GET("", g.authn, g.admin, c.contact.GetContacts)
		contacts.POST("/reply", g.authn, g.admin, c.contact.ReplyContact)
		contacts.DELETE("/:hashId", g.authn, g.admin, g.id, c.contact.DeleteContact)
	}

	api.GET("/homepage", c.content.GetHomepage)
	api.PATCH("/homepage", g.authn, g.admin, c.content.UpdateHomepage)
	api.GET("/faq", c.content.GetFAQ)
	api.PATCH("/faq", g.authn, g.admin, c.content.UpdateFAQ)
	api.GET("/about-us", c.content.GetAboutUs)
	api.PATCH("/about-us", g.authn, g.admin, c.content.UpdateAboutUs)

	dictionary := api.Group("/dictionary")
	{
		dictionary.GET("/get-blog-tags", c.dictionary.GetBlogTags)
		dictionary.GET("/get-exams", g.authn, g.admin, c.dictionary.GetExams)
		dictionary.GET("/get-lessons", g.authn, g.admin, c.dictionary.GetLessons)
		dictionary.GET("/get-users", g.authn, g.admin, c.dictionary.GetUsers)
		dictionary.GET("/get-groups", g.authn, g.admin, c.dictionary.GetGroups)
	}
}

func (a *App) registerClientRoutes(api *gin.RouterGroup, c *controllers, g guards) {
	client := api.Group("/client", g.authn)
	{
		client.GET("/get-profile", c.client.GetProfile)
		client.POST("/change-password", c.client.ChangePassword)
		client.GET("/lesson", c.client.GetLessons)
		client.GET("/lesson/:slug", c.client.GetLesson)
		client.GET("/exam", c.client.GetExams)
		client.GET("/exam/:slug", c.client.GetExam)
	}
}

func (a *App) registerUploadRoutes(api *gin.RouterGroup, c *controllers, g guards) {
	uploads := api.Group("/uploads")
	{
		uploads.GET("", g.authn, c.upload.ListFolder)
		uploads.POST("", g.authn, g.admin, c.upload.CreateFolder)
		uploads.GET("/public", c.upload.ListPublic)
		uploads.GET("/public/:slug/:nameFolder", c.upload.ListPublic)
		uploads.GET("/private", g.authn, c.upload.ListPrivate)
		uploads.GET("/private/:slug/:nameFolder", g.authn, c.upload.ListPrivate)

		manage := uploads.Group("/:scope/:category/:folder", g.authn, middleware.RequireRoles(model.RoleAdmin))
		manage.POST("", c.upload.UploadFiles)
		manage.DELETE("", c.upload.DeleteFolder)
		manage.DELETE("/multiple", c.upload.DeleteFiles)
		manage.PATCH("/rename", c.upload.RenameFile)
		manage.DELETE("/:filename", c.upload.DeleteFile)
	}
}
