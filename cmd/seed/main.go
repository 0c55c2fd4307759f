package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"radioplayer/internal/database"
	"radioplayer/internal/domain"
	"radioplayer/internal/repository"
)

// Seeds the demo station and, for local development, a sample account
// with a couple of favorites and recent plays.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "radio_player.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	stationRepo := repository.NewStationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	recentRepo := repository.NewRecentlyPlayedRepository(db)

	demo, err := stationRepo.EnsureDemoStation(ctx)
	if err != nil {
		log.Fatal("demo station seed failed:", err)
	}
	log.Printf("demo station ready: id=%d url=%s", demo.ID, demo.URL)

	if os.Getenv("SEED_SAMPLE_DATA") == "" {
		return
	}

	log.Println("Creating sample user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("listen123"), bcrypt.DefaultCost)
	user := domain.User{Username: "demo", PasswordHash: string(hash)}
	if err := db.Where(domain.User{Username: user.Username}).Attrs(user).FirstOrCreate(&user).Error; err != nil {
		log.Fatal("sample user failed:", err)
	}

	jazz, err := stationRepo.FindOrCreate(ctx, domain.Station{
		Name:     "Smooth Jazz 24/7",
		URL:      "https://streams.example.org/smoothjazz",
		Genre:    "jazz",
		Country:  "United States",
		Language: "English",
		Bitrate:  192,
		Codec:    "AAC",
		Tags:     "jazz,smooth",
	})
	if err != nil {
		log.Fatal("sample station failed:", err)
	}

	for _, stationID := range []int64{demo.ID, jazz.ID} {
		if _, err := favoriteRepo.Add(ctx, user.ID, stationID); err != nil {
			log.Fatal("sample favorite failed:", err)
		}
	}

	if err := recentRepo.Replace(ctx, user.ID, jazz.Name, jazz.URL); err != nil {
		log.Fatal("sample recent play failed:", err)
	}

	log.Println("Seed completed")
}
