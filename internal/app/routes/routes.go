package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/controllers"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	profileController *controllers.ProfileController,
	roleController *controllers.RoleController,
	academyController *controllers.AcademyController,
	memberController *controllers.MemberController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// User administration
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetCurrentUser)
			users.PUT("/me/password", userController.ChangePassword)
			users.GET("", userController.GetAllUsers)
			users.GET("/:id", userController.GetUserByID)
			users.POST("", userController.CreateUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Profiles
		profiles := authenticated.Group("/user-profiles")
		{
			profiles.GET("/user/:userId", profileController.GetProfileByUserID)
			profiles.POST("", profileController.CreateProfile)
			profiles.PUT("/:id", profileController.UpdateProfile)
		}

		// Role administration
		roles := authenticated.Group("/roles")
		{
			roles.POST("/assign", roleController.AssignRole)
			roles.GET("/user/:userId", roleController.GetUserRoles)
			roles.PUT("/user/:userId", roleController.ReplaceRole)
		}

		// Academies and memberships
		academies := authenticated.Group("/academies")
		{
			academies.POST("", academyController.CreateAcademy)
			academies.GET("", academyController.GetAllAcademies)
			academies.GET("/:id", academyController.GetAcademyByID)
			academies.PUT("/:id", academyController.UpdateAcademy)
			academies.DELETE("/:id", academyController.DeleteAcademy)

			academies.GET("/:id/members", academyController.GetMembers)
			academies.POST("/:id/members/:userId", academyController.AddMember)
			academies.DELETE("/:id/members/:userId", academyController.RemoveMember)
			academies.GET("/:id/members/:userId", memberController.GetMemberDetails)
			academies.PATCH("/:id/members/:userId/status", memberController.UpdateMemberStatus)
			academies.PATCH("/:id/members/:userId/level", memberController.UpdateMemberLevel)
			academies.PATCH("/:id/members/:userId/income", memberController.AddMemberIncome)
			academies.GET("/:id/membership", academyController.CheckMembership)

			academies.POST("/:id/students", studentController.CreateStudent)
			academies.POST("/:id/invitations/:userId", studentController.InviteStudent)
		}

		// Invitations addressed to the caller
		invitations := authenticated.Group("/invitations")
		{
			invitations.GET("", studentController.GetPendingInvitations)
			invitations.PATCH("/:id/respond", studentController.RespondToInvitation)
		}

		// Students
		students := authenticated.Group("/students")
		{
			students.GET("/available", studentController.GetAvailableStudents)
		}
	}
}
