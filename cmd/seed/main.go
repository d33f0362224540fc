package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/WardLink/WL-Backend/internal/auth"
	"github.com/WardLink/WL-Backend/internal/db"
	"github.com/WardLink/WL-Backend/internal/registry"
	"github.com/WardLink/WL-Backend/internal/seeds"
)

func main() {
	if err := godotenv.Load(".env.local"); err != nil {
		log.Println("No .env.local file found, relying on system env vars")
	}

	db.Connect()
	auth.Init()
	registry.Init()

	seeds.Run()
	log.Println("Seeding complete")
}
