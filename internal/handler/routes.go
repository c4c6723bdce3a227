package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint on the router
func RegisterRoutes(router *gin.Engine, chat *ChatHandler, catalog *CatalogHandler, system *SystemHandler) {
	router.GET("/", system.Root)
	router.GET("/health", system.Health)
	router.GET("/version", system.Version)

	router.POST("/chat", chat.Chat)
	router.POST("/chat/stream", chat.ChatStream)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/products/search", catalog.SearchProducts)
		apiV1.GET("/care-guides", catalog.CareGuides)
		apiV1.GET("/categories", catalog.Categories)
	}
}
