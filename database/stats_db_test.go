package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/adzibilal/kondanginbackend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGetDashboardStats(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := AutoMigrateModels(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	guests := []models.Guest{
		{Name: "Budi", Session: 1, TotalGuest: 2},
		{Name: "Sinta", Session: 2, TotalGuest: 3},
	}
	for i := range guests {
		if err := db.Create(&guests[i]).Error; err != nil {
			t.Fatalf("failed to seed guest: %v", err)
		}
	}

	slugYes, slugNo := guests[0].Slug, guests[1].Slug
	rsvps := []models.RSVP{
		{Name: "Budi", Attendance: models.AttendanceYes, GuestCount: 2, GuestSlug: &slugYes},
		{Name: "Sinta", Attendance: models.AttendanceNo, GuestCount: 1, GuestSlug: &slugNo},
		{Name: "legacy", Attendance: models.AttendanceYes, GuestCount: 3},
	}
	for i := range rsvps {
		if err := db.Create(&rsvps[i]).Error; err != nil {
			t.Fatalf("failed to seed rsvp: %v", err)
		}
	}

	if err := db.Create(&models.Wish{Name: "Budi", AudioURL: "https://cdn.example/a.mp3"}).Error; err != nil {
		t.Fatalf("failed to seed wish: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}

	stats, err := GetDashboardStats(sqlDB)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalGuests != 2 || stats.TotalInvited != 5 {
		t.Errorf("unexpected guest stats: %+v", stats)
	}
	if stats.RSVPYes != 2 || stats.RSVPNo != 1 {
		t.Errorf("unexpected rsvp counters: %+v", stats)
	}
	if stats.ConfirmedGuests != 5 {
		t.Errorf("expected 5 confirmed attendees (2 slugged + 3 legacy), got %d", stats.ConfirmedGuests)
	}
	if stats.TotalWishes != 1 {
		t.Errorf("expected 1 wish, got %d", stats.TotalWishes)
	}
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := AutoMigrateModels(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}

	stats, err := GetDashboardStats(sqlDB)
	if err != nil {
		t.Fatal(err)
	}
	if stats != (DashboardStats{}) {
		t.Errorf("expected zeroed stats on an empty database, got %+v", stats)
	}
}
