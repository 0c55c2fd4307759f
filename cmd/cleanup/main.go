package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"radioplayer/internal/database"
	"radioplayer/internal/repository"
)

// Prunes recently-played history: the API only ever serves the newest
// entries per user, so anything older or deeper is dead weight.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	retentionDays := 90
	if v := os.Getenv("RECENT_RETENTION_DAYS"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			log.Fatalf("invalid RECENT_RETENTION_DAYS value %q", v)
		}
		retentionDays = d
	}

	keepPerUser := 50
	if v := os.Getenv("RECENT_KEEP_PER_USER"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k <= 0 {
			log.Fatalf("invalid RECENT_KEEP_PER_USER value %q", v)
		}
		keepPerUser = k
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	recentRepo := repository.NewRecentlyPlayedRepository(db)

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	aged, err := recentRepo.PruneOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatalf("cleanup by age failed: %v", err)
	}

	deep, err := recentRepo.PruneBeyondNewest(ctx, keepPerUser)
	if err != nil {
		log.Fatalf("cleanup by depth failed: %v", err)
	}

	log.Printf("recently-played cleanup completed: aged_out=%d beyond_newest_%d=%d", aged, keepPerUser, deep)
}
