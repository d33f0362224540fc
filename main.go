package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/WardLink/WL-Backend/internal/auth"
	"github.com/WardLink/WL-Backend/internal/cache"
	"github.com/WardLink/WL-Backend/internal/db"
	"github.com/WardLink/WL-Backend/internal/middleware"
	"github.com/WardLink/WL-Backend/internal/registry"
	"github.com/WardLink/WL-Backend/internal/reports"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "WardLink API")
}

func main() {
	err := godotenv.Load(".env.local")
	if err != nil {
		log.Println("No .env.local file found, relying on system env vars")
	}

	db.Connect()
	auth.Init()
	registry.Init()

	var store cache.Store = cache.Noop{}
	redisStore, err := cache.Connect()
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	if redisStore != nil {
		store = redisStore
		defer redisStore.Close()
	} else {
		log.Println("[Cache] REDIS_URL not set, report caching disabled")
	}

	sentinels, err := reports.LoadSentinels()
	if err != nil {
		log.Fatal("Invalid sentinel configuration: ", err)
	}

	svc := reports.NewService(db.DB, store, sentinels)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/", RootHandler)
	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/reports", svc.SetupRoutes(auth.SessionInfo{}))

	log.Println("Server starting on port " + port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, r))
}
