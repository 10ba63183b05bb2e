package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"

	"github.com/m-saad-siddique/graphql-backend/graph"
	"github.com/m-saad-siddique/graphql-backend/graph/generated"
	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/internal/blob"
	"github.com/m-saad-siddique/graphql-backend/internal/config"
	"github.com/m-saad-siddique/graphql-backend/internal/like"
	"github.com/m-saad-siddique/graphql-backend/internal/node"
	"github.com/m-saad-siddique/graphql-backend/internal/photo"
	"github.com/m-saad-siddique/graphql-backend/internal/storage/disk"
	"github.com/m-saad-siddique/graphql-backend/internal/storage/memory"
	"github.com/m-saad-siddique/graphql-backend/internal/storage/postgres"
	"github.com/m-saad-siddique/graphql-backend/internal/subscription"
	"github.com/m-saad-siddique/graphql-backend/internal/user"
	"github.com/m-saad-siddique/graphql-backend/models"
)

func main() {
	storageType := flag.String("storage", "memory", "storage backend: memory or postgres")
	flag.Parse()

	config.LoadEnv()

	var userStore user.UserStorage
	var photoStore photo.PhotoStorage
	var likeStore like.LikeStorage
	var blobStore blob.BlobStorage

	uploadDir := config.GetEnvDefault("UPLOAD_DIR", "uploads")

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Photo{}, &models.Like{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Using PostgreSQL storage")
		userStore = postgres.NewUserPostgresStorage()
		photoStore = postgres.NewPhotoPostgresStorage()
		likeStore = postgres.NewLikePostgresStorage()

	case "memory":
		log.Println("Using in-memory storage")
		userStore = memory.NewUserMemoryStorage()
		memPhotoStore := memory.NewPhotoMemoryStorage()
		photoStore = memPhotoStore
		likeStore = memory.NewLikeMemoryStorage(memPhotoStore)

	default:
		log.Fatalf("unknown storage type: %s", *storageType)
	}

	diskStore, err := disk.NewBlobDiskStorage(uploadDir)
	if err != nil {
		log.Fatalf("failed to init blob storage: %v", err)
	}
	blobStore = diskStore

	subscriptionManager := subscription.NewPhotoSubscriptionManager()

	// one lookup per nodeable kind; anything unregistered resolves to null
	registry := node.NewRegistry()
	registry.Register("User", func(id string) (model.Node, error) {
		u, err := userStore.GetUserById(id)
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	registry.Register("Photo", func(id string) (model.Node, error) {
		p, err := photoStore.GetPhotoById(id)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	registry.Register("Like", func(id string) (model.Node, error) {
		l, err := likeStore.GetLikeById(id)
		if err != nil {
			return nil, err
		}
		return l, nil
	})

	resolver := &graph.Resolver{
		UserStore:           userStore,
		PhotoStore:          photoStore,
		LikeStore:           likeStore,
		BlobStore:           blobStore,
		NodeRegistry:        registry,
		SubscriptionManager: subscriptionManager,
	}

	srv := handler.NewDefaultServer(generated.NewExecutableSchema(generated.Config{
		Resolvers: resolver,
	}))
	srv.SetErrorPresenter(graph.ErrorPresenter)

	// AuthMiddleware pulls the bearer token out of the request, validates it
	// and stores the userID in the context; invalid tokens mean anonymous.
	http.Handle("/query", auth.AuthMiddleware(srv))
	http.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	// uploaded images are served straight from the upload directory
	http.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	port := config.GetEnvDefault("PORT", "8080")
	server := &http.Server{
		Addr: ":" + port,
	}

	go func() {
		log.Printf("Server running on http://localhost:%s/", port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// wait for SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("error during shutdown: %v", err)
	}

	log.Println("Server stopped cleanly")
}
