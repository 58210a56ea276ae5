//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"grafeio-data/internal/config"
	"grafeio-data/internal/database"
	"grafeio-data/internal/domain"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     getTestEnv("TEST_DB_HOST", "localhost"),
		Port:     getTestEnvInt("TEST_DB_PORT", 5432),
		User:     getTestEnv("TEST_DB_USER", "postgres"),
		Password: getTestEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getTestEnv("TEST_DB_NAME", "grafeio"),
		SSLMode:  getTestEnv("TEST_DB_SSLMODE", "disable"),
		MaxConns: 5,
		MaxIdle:  2,
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		t.Skipf("Skipping integration test: cannot ping database: %v", err)
		return nil
	}
	return db
}

func getTestEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getTestEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// seedTestCitizens inserts citizens tagged with a marker in
// recommendation_from so the assertions stay exact on a shared database.
func seedTestCitizens(t *testing.T, repo *PostgresCitizensRepository, marker string, citizens []*domain.Citizen) {
	ctx := context.Background()
	for _, c := range citizens {
		c.RecommendationFrom = marker
		if _, err := repo.CreateCitizen(ctx, c); err != nil {
			t.Fatalf("CreateCitizen failed: %v", err)
		}
	}
}

func cleanupTestCitizens(t *testing.T, db *sql.DB, marker string) {
	db.Exec(`DELETE FROM citizens WHERE recommendation_from = $1`, marker)
}

// Five citizens across two electoral districts; the district filter alone
// scopes the listing, a search term narrows within it, and clearing the
// term restores the filtered set.
func TestPostgresCitizensRepository_ListCitizens_FilterAndSearch(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewPostgresCitizensRepository(db)
	ctx := context.Background()

	marker := "itest-list-citizens"
	defer cleanupTestCitizens(t, db, marker)

	seedTestCitizens(t, repo, marker, []*domain.Citizen{
		{Surname: "ΠΑΠΑΔΟΠΟΥΛΟΣ", Name: "ΓΙΩΡΓΟΣ", Municipality: "ΘΕΣΣΑΛΟΝΙΚΗΣ", ElectoralDistrict: "Α ΘΕΣΣΑΛΟΝΙΚΗΣ"},
		{Surname: "ΠΑΠΑΔΑΚΗ", Name: "ΕΛΕΝΗ", Municipality: "ΚΑΛΑΜΑΡΙΑΣ", ElectoralDistrict: "Α ΘΕΣΣΑΛΟΝΙΚΗΣ"},
		{Surname: "ΝΙΚΟΛΑΟΥ", Name: "ΚΩΣΤΑΣ", Municipality: "ΘΕΣΣΑΛΟΝΙΚΗΣ", ElectoralDistrict: "Α ΘΕΣΣΑΛΟΝΙΚΗΣ"},
		{Surname: "ΓΕΩΡΓΙΟΥ", Name: "ΜΑΡΙΑ", Municipality: "ΠΑΥΛΟΥ ΜΕΛΑ", ElectoralDistrict: "Β ΘΕΣΣΑΛΟΝΙΚΗΣ"},
		{Surname: "ΔΗΜΗΤΡΙΟΥ", Name: "ΑΝΝΑ", Municipality: "ΠΑΥΛΟΥ ΜΕΛΑ", ElectoralDistrict: "Β ΘΕΣΣΑΛΟΝΙΚΗΣ"},
	})

	// district filter alone
	filters := CitizenFilters{ElectoralDistrict: "Α ΘΕΣΣΑΛΟΝΙΚΗΣ", RecommendationFrom: marker}
	items, total, err := repo.ListCitizens(ctx, filters, 1, 10)
	if err != nil {
		t.Fatalf("ListCitizens (district filter) failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 citizens in district, got %d", total)
	}
	if len(items) != 3 {
		t.Errorf("Expected 3 citizens in result, got %d", len(items))
	}
	for _, c := range items {
		if c.ElectoralDistrict != "Α ΘΕΣΣΑΛΟΝΙΚΗΣ" {
			t.Errorf("Expected district 'Α ΘΕΣΣΑΛΟΝΙΚΗΣ', got '%s'", c.ElectoralDistrict)
		}
	}

	// a search term narrows within the filter, it does not replace it
	filters.Search = "ΠΑΠΑΔ"
	_, total, err = repo.ListCitizens(ctx, filters, 1, 10)
	if err != nil {
		t.Fatalf("ListCitizens (filter and search) failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 citizens matching search within district, got %d", total)
	}

	// a term matching nothing empties the page but keeps the query valid
	filters.Search = "ΧΨΖ"
	items, total, err = repo.ListCitizens(ctx, filters, 1, 10)
	if err != nil {
		t.Fatalf("ListCitizens (unmatched search) failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 citizens for unmatched search, got %d", total)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty result for unmatched search, got %d", len(items))
	}

	// clearing the term restores the filtered set
	filters.Search = ""
	_, total, err = repo.ListCitizens(ctx, filters, 1, 10)
	if err != nil {
		t.Fatalf("ListCitizens (filter restored) failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 citizens after clearing search, got %d", total)
	}
}
