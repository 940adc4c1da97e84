package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/controllers"
	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/middleware"
)

// Controllers bundles every controller for route registration
type Controllers struct {
	Auth         *controllers.AuthController
	Student      *controllers.StudentController
	Hostel       *controllers.HostelController
	Room         *controllers.RoomController
	Allotment    *controllers.AllotmentController
	Application  *controllers.ApplicationController
	Maintenance  *controllers.MaintenanceController
	Fee          *controllers.FeeController
	Notification *controllers.NotificationController
	Dashboard    *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	staff := []models.RoleType{models.RoleWarden, models.RoleSuperAdmin}

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.GET("/auth/me", c.Auth.GetProfile)

		// Super admin provisions staff accounts
		authenticated.POST("/auth/staff",
			authMiddleware.RoleRequired(models.RoleSuperAdmin), c.Auth.CreateStaffUser)

		// Student records
		students := authenticated.Group("/students")
		{
			students.GET("/me", c.Student.GetMyRecord)

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				studentsStaff.POST("", c.Student.CreateStudent)
				studentsStaff.GET("", c.Student.ListStudents)
				studentsStaff.GET("/:id", c.Student.GetStudent)
				studentsStaff.PUT("/:id", c.Student.UpdateStudent)
				studentsStaff.DELETE("/:id", c.Student.DeleteStudent)
				studentsStaff.POST("/:id/link", c.Student.LinkUser)
				studentsStaff.GET("/:id/allotments", c.Student.GetStudentAllotments)
				studentsStaff.GET("/:id/fees", c.Fee.ListStudentFees)
			}
		}

		// Hostels and rooms
		hostels := authenticated.Group("/hostels")
		{
			hostels.GET("", c.Hostel.ListHostels)
			hostels.GET("/:id", c.Hostel.GetHostel)
			hostels.GET("/:id/rooms", c.Room.ListRoomsByHostel)

			hostelsStaff := hostels.Group("")
			hostelsStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				hostelsStaff.POST("", c.Hostel.CreateHostel)
				hostelsStaff.PUT("/:id", c.Hostel.UpdateHostel)
				hostelsStaff.DELETE("/:id", c.Hostel.DeleteHostel)
				hostelsStaff.POST("/:id/rooms", c.Room.CreateRoom)
				hostelsStaff.POST("/:id/fees", c.Fee.CreateHostelFees)
			}
		}

		rooms := authenticated.Group("/rooms")
		{
			rooms.GET("/available", c.Room.ListAvailableRooms)
			rooms.GET("/:id", c.Room.GetRoom)

			roomsStaff := rooms.Group("")
			roomsStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				roomsStaff.PUT("/:id", c.Room.UpdateRoom)
				roomsStaff.DELETE("/:id", c.Room.DeleteRoom)
				roomsStaff.PUT("/:id/status", c.Room.SetRoomStatus)
				roomsStaff.GET("/:id/occupants", c.Room.GetRoomOccupants)
				roomsStaff.POST("/:id/vacate", c.Room.VacateRoom)
			}
		}

		// Allotments
		allotments := authenticated.Group("/allotments")
		{
			allotments.GET("/me", c.Allotment.GetMyAllotment)

			allotmentsStaff := allotments.Group("")
			allotmentsStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				allotmentsStaff.POST("", c.Allotment.CreateAllotment)
				allotmentsStaff.GET("/:id", c.Allotment.GetAllotment)
				allotmentsStaff.POST("/:id/vacate", c.Allotment.VacateAllotment)
			}
		}

		// Applications
		applications := authenticated.Group("/applications")
		{
			applications.POST("", c.Application.SubmitApplication)
			applications.GET("/me", c.Application.ListMyApplications)

			applicationsStaff := applications.Group("")
			applicationsStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				applicationsStaff.GET("/pending", c.Application.ListPendingScored)
				applicationsStaff.GET("/:id", c.Application.GetApplication)
				applicationsStaff.POST("/:id/approve", c.Application.ApproveApplication)
				applicationsStaff.POST("/:id/reject", c.Application.RejectApplication)
				applicationsStaff.POST("/:id/allocate", c.Application.AllocateApplication)
			}
		}

		// Maintenance
		maintenance := authenticated.Group("/maintenance")
		{
			maintenance.POST("", c.Maintenance.ReportIssue)
			maintenance.GET("/me", c.Maintenance.ListMyRequests)

			maintenanceStaff := maintenance.Group("")
			maintenanceStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				maintenanceStaff.GET("", c.Maintenance.ListRequests)
				maintenanceStaff.GET("/:id", c.Maintenance.GetRequest)
				maintenanceStaff.PUT("/:id/status", c.Maintenance.UpdateStatus)
			}
		}

		// Fees
		fees := authenticated.Group("/fees")
		{
			fees.GET("/me", c.Fee.ListMyFees)

			feesStaff := fees.Group("")
			feesStaff.Use(authMiddleware.RoleRequired(staff...))
			{
				feesStaff.POST("", c.Fee.CreateFee)
				feesStaff.GET("", c.Fee.ListFees)
				feesStaff.GET("/summary", c.Fee.Summary)
				feesStaff.GET("/export", c.Fee.ExportCSV)
				feesStaff.POST("/:id/payment", c.Fee.RecordPayment)
			}
		}

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.ListMyNotifications)
			notifications.POST("/:id/read", c.Notification.MarkRead)
			notifications.POST("/announcements",
				authMiddleware.RoleRequired(staff...), c.Notification.PublishAnnouncement)
		}

		// Dashboard and settings
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RoleRequired(staff...))
		{
			dashboard.GET("/stats", c.Dashboard.Stats)
		}

		settings := authenticated.Group("/settings")
		settings.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			settings.GET("", c.Dashboard.ListSettings)
			settings.GET("/:key", c.Dashboard.GetSetting)
			settings.PUT("/:key", c.Dashboard.SetSetting)
		}
	}
}
