package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/infrastructure/config"
	mongorepo "github.com/inkwell/publishing-api/internal/infrastructure/db/mongo"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

// createAdminCmd seeds a verified admin account plus a default interest so a
// fresh deployment has a working category and someone who can manage it.
// Safe to re-run: an existing admin email is reported, not overwritten.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Seed a verified admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}

		client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		users := mongorepo.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}

		interests := mongorepo.NewInterestRepository(db)
		existing, err := interests.List(ctx)
		if err != nil {
			return fmt.Errorf("list interests: %w", err)
		}
		if len(existing) == 0 {
			if _, err := interests.Create(ctx, &domain.Interest{
				Name:        "General",
				Description: "General topics",
				CreatedAt:   time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("seed interest: %w", err)
			}
			fmt.Println("created default interest: General")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		now := time.Now().UTC()
		_, err = users.Create(ctx, &domain.User{
			Username:     adminUsername,
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			IsVerified:   true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, domain.ErrDuplicateEmail) {
			fmt.Printf("admin %s already exists, nothing to do\n", adminEmail)
			return nil
		}
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		fmt.Printf("created admin %s\n", adminEmail)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
