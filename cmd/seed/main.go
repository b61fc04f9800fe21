package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/config"
	"github.com/arjunmehta/rechargehub-backend/pkg/db"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
	"github.com/arjunmehta/rechargehub-backend/pkg/security"
)

var catalog = []models.Plan{
	{Name: "Daily Pack", Price: 19, Validity: "1 day", Data: "1GB", Description: "Perfect for daily usage with unlimited calls"},
	{Name: "Talk Time", Price: 49, Validity: "28 days", Data: "100MB", Description: "Talk time recharge with basic data"},
	{Name: "Data Booster", Price: 98, Validity: "28 days", Data: "6GB", Description: "Additional data pack for existing users"},
	{Name: "Weekly Starter", Price: 129, Validity: "7 days", Data: "1GB/day", Description: "Weekly pack with daily data allowance"},
	{Name: "Basic Plan", Price: 199, Validity: "28 days", Data: "1GB/day", Description: "Perfect for light users with basic data needs"},
	{Name: "Monthly Basic", Price: 299, Validity: "28 days", Data: "1.5GB/day", Description: "Monthly pack with good data and unlimited calls"},
	{Name: "Popular Plan", Price: 399, Validity: "56 days", Data: "2GB/day", Description: "Most popular plan with unlimited calls and SMS"},
	{Name: "Monthly Standard", Price: 449, Validity: "28 days", Data: "2GB/day", Description: "Standard monthly pack with extra data"},
	{Name: "Premium Plan", Price: 599, Validity: "84 days", Data: "3GB/day", Description: "High-speed data with premium benefits"},
	{Name: "Monthly Premium", Price: 699, Validity: "28 days", Data: "3GB/day", Description: "Premium pack with high-speed data and OTT benefits"},
	{Name: "Quarterly Value", Price: 999, Validity: "84 days", Data: "2GB/day", Description: "Best value quarterly pack with maximum savings"},
	{Name: "Half Yearly", Price: 1799, Validity: "180 days", Data: "2GB/day", Description: "Half yearly pack with great savings"},
	{Name: "Annual Super", Price: 2999, Validity: "365 days", Data: "2.5GB/day", Description: "Annual pack with maximum benefits and savings"},
	{Name: "Unlimited Plan", Price: 999, Validity: "365 days", Data: "2GB/day", Description: "Annual plan with maximum savings"},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	adminEmail := flag.String("admin-email", "admin@rechargehub.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required to seed the admin)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	seeded, err := seedPlans(ctx, dbClient.DB())
	if err != nil {
		logg.Error(ctx, "failed to seed plans", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "plans", seeded), "plan catalog seeded")

	if *adminPassword != "" {
		if err := seedAdmin(ctx, dbClient.DB(), cfg.Password, *adminEmail, *adminPassword); err != nil {
			logg.Error(ctx, "failed to seed admin", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "email", *adminEmail), "admin account seeded")
	}
}

// seedPlans inserts any catalog entry that is not already present, keyed
// by name. Existing plans are left untouched so reruns are safe.
func seedPlans(ctx context.Context, conn *gorm.DB) (int, error) {
	seeded := 0
	for _, entry := range catalog {
		var existing models.Plan
		err := conn.WithContext(ctx).Where("name = ?", entry.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, fmt.Errorf("checking plan %q: %w", entry.Name, err)
		}

		entry.ID = uuid.New()
		entry.IsActive = true
		if err := conn.WithContext(ctx).Create(&entry).Error; err != nil {
			return seeded, fmt.Errorf("creating plan %q: %w", entry.Name, err)
		}
		seeded++
	}
	return seeded, nil
}

func seedAdmin(ctx context.Context, conn *gorm.DB, pwCfg config.PasswordConfig, email, password string) error {
	var existing models.User
	err := conn.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking admin account: %w", err)
	}

	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := models.User{
		ID:           uuid.New(),
		Name:         "RechargeHub Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	}
	if err := conn.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	return nil
}
