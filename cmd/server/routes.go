package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/http/api"
	adminapi "github.com/Halcyon-Displays/halcyon/internal/http/api/admin/endpoints"
	tvapi "github.com/Halcyon-Displays/halcyon/internal/http/api/tv/endpoints"
	"github.com/Halcyon-Displays/halcyon/internal/mqtt"
	"github.com/Halcyon-Displays/halcyon/internal/schedule"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, notifier *mqtt.Notifier) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.ContentModule(store, notifier),
		adminapi.AssignmentModule(store, notifier),
		adminapi.DeviceModule(store),
		adminapi.SystemModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.PlaylistModule(store, schedule.RealClock{}),
	)

	// uploaded media served as static files; storage itself is out of
	// scope, devices only need the rendering URLs to resolve
	r.Static("/uploads", env.UploadsDir)
}
