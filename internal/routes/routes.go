package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/config"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/handlers"
	"github.com/BruksfildServices01/barbemnt/internal/imaging"
	"github.com/BruksfildServices01/barbemnt/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barbemnt/internal/infra/repository"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/metrics"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	ucAdmin "github.com/BruksfildServices01/barbemnt/internal/usecase/admin"
	ucBooking "github.com/BruksfildServices01/barbemnt/internal/usecase/booking"
	ucPost "github.com/BruksfildServices01/barbemnt/internal/usecase/post"
)

// Infra holds the process-wide collaborators built in main.
type Infra struct {
	Log      *logger.Logger
	Activity *audit.Logger
	Audit    *audit.Dispatcher
	Feed     *cache.FeedCache
	// Images is nil when object storage is not configured.
	Images ucPost.ImageStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// REPOSITORIES
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	postRepo := infraRepo.NewPostGormRepository(db)
	teamRepo := infraRepo.NewTeamGormRepository(db)
	tenantUoW := infraRepo.NewTenantGormUnitOfWork(db)
	directory := infraRepo.NewDirectoryGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	deleteUserUC := ucAdmin.NewDeleteUser(tenantUoW, infra.Images, infra.Log)
	overviewUC := ucAdmin.NewOverview(directory)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, infra.Audit)
	transitionBookingUC := ucBooking.NewTransitionBooking(bookingRepo, infra.Audit)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	processor := imaging.Processor{
		MaxBytes:     cfg.Upload.MaxBytes,
		MaxDimension: cfg.Upload.MaxDimension,
		Quality:      float32(cfg.Upload.WebPQuality),
	}
	uploadUC := ucPost.NewUploadImage(infra.Images, processor, infra.Log)
	createPostUC := ucPost.NewCreatePost(postRepo, infra.Feed, infra.Audit, infra.Log)
	deletePostUC := ucPost.NewDeletePost(postRepo, infra.Images, infra.Feed, infra.Audit, infra.Log)
	listPostsUC := ucPost.NewListPosts(postRepo, infra.Feed, infra.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg.JWT, cfg.App.EmailMXCheck, infra.Audit, infra.Log)
	meHandler := handlers.NewMeHandler(db, infra.Activity)
	adminHandler := handlers.NewAdminHandler(deleteUserUC, overviewUC, infra.Feed, infra.Log)
	teamHandler := handlers.NewTeamHandler(db, teamRepo, infra.Audit)
	catalogHandler := handlers.NewCatalogHandler(db)
	barberHandler := handlers.NewBarberHandler(db, infra.Audit)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, transitionBookingUC, listBookingsUC)
	postHandler := handlers.NewPostHandler(uploadUC, createPostUC, deletePostUC, listPostsUC, cfg.Upload.MaxBytes)
	publicHandler := handlers.NewPublicHandler(db, listPostsUC, availabilityUC)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/sign-up", authHandler.SignUp)
		api.POST("/auth/sign-in", authHandler.SignIn)

		public := api.Group("/public")
		{
			public.GET("/feed", publicHandler.Feed)
			public.GET("/teams/:id/services", publicHandler.Services)
			public.GET("/teams/:id/barbers/:barberId/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWT, directory, infra.Log))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/activity", meHandler.Activity)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/mine", bookingHandler.Mine)

			// the admin use cases enforce super_admin themselves
			admin := secured.Group("/admin")
			{
				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/users", adminHandler.Users)
				admin.GET("/teams", adminHandler.Teams)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
			}

			// everything below needs a team membership
			teamScoped := secured.Group("/", middleware.TeamScope(teamRepo))

			team := teamScoped.Group("/team")
			{
				team.GET("", teamHandler.Get)
				team.POST("/invitations", teamHandler.Invite)
				team.GET("/invitations", teamHandler.ListInvitations)
				team.DELETE("/invitations/:id", teamHandler.RevokeInvitation)
				team.DELETE("/members/:id", teamHandler.RemoveMember)

				team.GET("/services", catalogHandler.ListServices)
				team.POST("/services", catalogHandler.CreateService)
				team.DELETE("/services/:id", catalogHandler.DeleteService)
				team.PATCH("/services/:id/active", catalogHandler.SetServiceActive)

				team.GET("/products", catalogHandler.ListProducts)
				team.POST("/products", catalogHandler.CreateProduct)
				team.DELETE("/products/:id", catalogHandler.DeleteProduct)

				team.GET("/posts", postHandler.ListTeam)
			}

			staff := teamScoped.Group("/", middleware.RequireRoles(role.Owner, role.Barber))
			{
				staff.GET("/barber/profile", barberHandler.GetProfile)
				staff.PUT("/barber/profile", barberHandler.UpdateProfile)
				staff.PUT("/barber/availability", barberHandler.UpdateAvailability)
				staff.PUT("/barber/profile-schedule", barberHandler.UpdateProfileSchedule)

				staff.GET("/barber/bookings", bookingHandler.BarberDay)
				staff.PATCH("/barber/bookings/:id/confirm", bookingHandler.Confirm)
				staff.PATCH("/barber/bookings/:id/cancel", bookingHandler.Cancel)
				staff.PATCH("/barber/bookings/:id/complete", bookingHandler.Complete)

				staff.POST("/uploads", postHandler.Upload)
				staff.POST("/posts", postHandler.Create)
				staff.DELETE("/posts/:id", postHandler.Delete)
			}
		}
	}
}
