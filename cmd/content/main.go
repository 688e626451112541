package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/knst/site-services/internal/content/handler"
	"github.com/knst/site-services/internal/content/provider"
	"github.com/knst/site-services/internal/content/repository"
	"github.com/knst/site-services/internal/database"
)

// Standalone read-only content service: serves the merged site content and
// the SSE watch stream without the admin surface. Useful for previews and
// for running the public site against a replica.
func main() {
	port := os.Getenv("CONTENT_SERVICE_PORT")
	if port == "" {
		port = "5012"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var repo repository.Repository
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v) — serving defaults from memory", err)
			repo = repository.NewMemoryRepo()
		} else {
			col := client.Database(os.Getenv("MONGODB_DATABASE")).Collection(repository.Collection)
			repo = repository.NewMongoRepo(col)
		}
	} else {
		repo = repository.NewMemoryRepo()
	}

	live := os.Getenv("MONGODB_LIVE") == "true"
	prov := provider.New(repo, live)
	if err := prov.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	defer prov.Stop()

	handler.RegisterContentRoutes(r, prov)

	log.Printf("content service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
