package api

import "github.com/gin-gonic/gin"

func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/rankcard", s.rankcardHandler)
		api.GET("/members", s.membersHandler)
		api.GET("/leaderboard", s.leaderboardHandler)
		api.GET("/members/:id/card", s.memberCardHandler)
		api.GET("/members/:id/qr", s.memberQRHandler)
	}
}
