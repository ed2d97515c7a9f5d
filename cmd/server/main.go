package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/rankcard/internal/api"
	"github.com/youruser/rankcard/internal/assets"
	"github.com/youruser/rankcard/internal/members"
	"github.com/youruser/rankcard/internal/rankcard"
)

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Load members at startup (best-effort)
	if _, err := members.LoadMembersFromDataDir(dataDir); err != nil {
		log.Println("Warning: failed to load member CSVs at startup:", err)
	}

	loader, err := assetLoader(os.Getenv("ASSETS_DIR"))
	if err != nil {
		log.Fatal(err)
	}

	background := os.Getenv("BACKGROUND")
	if background == "" {
		background = dataDir + "/background.png"
	}
	profileBase := os.Getenv("PROFILE_BASE_URL")
	if profileBase == "" {
		profileBase = "http://localhost:8080/members"
	}

	srv := &api.Server{
		Renderer: rankcard.NewRenderer(loader),
		Settings: rankcard.Settings{
			Background: rankcard.SourceFromString(background),
			BarColor:   os.Getenv("BAR_COLOR"),
			TextColor:  os.Getenv("TEXT_COLOR"),
		},
		DataDir:        dataDir,
		ProfileBaseURL: profileBase,
	}

	r := gin.Default()
	srv.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// assetLoader prefers card artwork installed on disk and falls back to the
// built-in procedural set.
func assetLoader(dir string) (assets.Loader, error) {
	if dir != "" {
		d, err := assets.NewDir(dir)
		if err == nil {
			return d, nil
		}
		log.Println("Warning: asset dir unusable, using built-in assets:", err)
	}
	return assets.NewBuiltin()
}
