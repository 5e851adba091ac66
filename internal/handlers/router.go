package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/auth"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type HandlerManager struct {
	gradoHandler    *GradoHandler
	areaHandler     *AreaHandler
	temaHandler     *TemaHandler
	articuloHandler *ArticuloHandler
	usuarioHandler  *UsuarioHandler
	authHandler     *AuthHandler
	backupHandler   *BackupHandler
	importHandler   *ImportHandler
	statsHandler    *StatsHandler
	authMiddleware  *AuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	tokens *auth.TokenManager,
) *HandlerManager {
	return &HandlerManager{
		gradoHandler:    NewGradoHandler(serviceManager.Grado(), logger),
		areaHandler:     NewAreaHandler(serviceManager.Area(), logger),
		temaHandler:     NewTemaHandler(serviceManager.Tema(), logger),
		articuloHandler: NewArticuloHandler(serviceManager.Articulo(), logger),
		usuarioHandler:  NewUsuarioHandler(serviceManager.Usuario(), logger),
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		backupHandler:   NewBackupHandler(serviceManager.Backup(), logger),
		importHandler:   NewImportHandler(serviceManager.Import(), logger),
		statsHandler:    NewStatsHandler(serviceManager.Stats(), logger),
		authMiddleware:  NewAuthMiddleware(tokens, logger),
		serviceManager:  serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public reads. Lists are cache-backed.
		api.GET("/grados", hm.gradoHandler.List)
		api.GET("/grados/:id", hm.gradoHandler.Get)
		api.GET("/areas", hm.areaHandler.List)
		api.GET("/areas/:id", hm.areaHandler.Get)
		api.GET("/temas", hm.temaHandler.List)
		api.GET("/temas/:id", hm.temaHandler.Get)
		api.GET("/articulos", hm.articuloHandler.List)
		api.GET("/articulos/:id", hm.articuloHandler.Get)

		api.GET("/check-email", hm.usuarioHandler.CheckEmail)
		api.GET("/usuarios/existen", hm.usuarioHandler.Exist)
		api.POST("/usuarios/primer-usuario", hm.usuarioHandler.CreateFirst)

		api.POST("/auth/register", hm.authHandler.Register)
		api.POST("/auth/login", hm.authHandler.Login)
		api.GET("/auth/perfil", hm.authMiddleware.RequireAuth(), hm.authHandler.Profile)

		api.GET("/time", hm.statsHandler.Time)

		// Everything below requires an administrador token.
		admin := api.Group("")
		admin.Use(hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RolAdministrador))
		{
			admin.POST("/grados", hm.gradoHandler.Create)
			admin.PUT("/grados/:id", hm.gradoHandler.Update)
			admin.DELETE("/grados/:id", hm.gradoHandler.Delete)
			admin.POST("/grados/duplicar/:id", hm.gradoHandler.Duplicate)

			admin.POST("/areas", hm.areaHandler.Create)
			admin.PUT("/areas/:id", hm.areaHandler.Update)
			admin.DELETE("/areas/:id", hm.areaHandler.Delete)
			admin.POST("/areas/duplicar/:id", hm.areaHandler.Duplicate)

			admin.POST("/temas", hm.temaHandler.Create)
			admin.PUT("/temas/:id", hm.temaHandler.Update)
			admin.DELETE("/temas/:id", hm.temaHandler.Delete)
			admin.POST("/temas/duplicar/:id", hm.temaHandler.Duplicate)

			admin.POST("/articulos", hm.articuloHandler.Create)
			admin.PUT("/articulos/:id", hm.articuloHandler.Update)
			admin.DELETE("/articulos/:id", hm.articuloHandler.Delete)

			admin.GET("/usuarios", hm.usuarioHandler.List)
			admin.POST("/usuarios", hm.usuarioHandler.Create)
			admin.PUT("/usuarios/:id", hm.usuarioHandler.Update)
			admin.DELETE("/usuarios/:id", hm.usuarioHandler.Delete)

			admin.GET("/backup", hm.backupHandler.Backup)
			admin.POST("/restore", hm.backupHandler.Restore)
			admin.DELETE("/clear", hm.backupHandler.Clear)

			admin.GET("/getTableColumns", hm.importHandler.GetTableColumns)
			admin.GET("/getExistingData", hm.importHandler.GetExistingData)
			admin.GET("/validateForeignKey", hm.importHandler.ValidateForeignKey)
			admin.POST("/insertData", hm.importHandler.InsertData)
			admin.PUT("/updateData", hm.importHandler.UpdateData)
			admin.POST("/importData", hm.importHandler.ImportData)
			admin.POST("/importFile", hm.importHandler.ImportFile)

			admin.GET("/stats", hm.statsHandler.Stats)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "content-service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "content-service",
		})
	})
}
