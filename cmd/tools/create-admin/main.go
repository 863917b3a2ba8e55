// create-admin creates a staff/superuser account, the equivalent of a
// "create superuser" management command.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/recipebox-dev/recipebox/internal/config"
	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/logger"
	"github.com/recipebox-dev/recipebox/internal/service"
	"github.com/recipebox-dev/recipebox/internal/storage/pg"
)

func main() {
	var configFolder, email, password string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&email, "email", "", "admin account email (required)")
	flag.StringVar(&password, "password", "", "admin account password (generated when empty)")
	flag.Parse()

	if email == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -email admin@example.com [-password ...]")
		os.Exit(2)
	}

	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	storage, err := pg.New(cfg)
	if err != nil {
		logger.Log.Error("failed to connect to storage", "error", err)
		os.Exit(1)
	}
	defer storage.Cleanup()

	auth := service.NewAuth(storage)
	user, err := auth.CreateSuperuser(domain.Credentials{Email: email, Password: password})
	if err != nil {
		logger.Log.Error("failed to create admin account", "error", err)
		os.Exit(1)
	}

	fmt.Printf("created admin account %s (id %d)\n", user.Email, user.Id)
	if generated {
		fmt.Printf("generated password: %s\n", password)
	}
}
