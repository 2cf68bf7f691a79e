package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/auth"
	"github.com/hoshop/backend/internal/infrastructure/config"
	"github.com/hoshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		userID     string
		role       string
		expiration time.Duration
	)

	flag.StringVar(&userID, "user", "", "User id (UUID) to put in the token (default: a random one)")
	flag.StringVar(&role, "role", string(shared.RoleOwner), "Role: customer, admin, owner or staff")
	flag.DurationVar(&expiration, "ttl", 0, "Token lifetime (default: jwt.expiration from config)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.App.IsProduction() {
		log.Fatal("Refusing to mint tokens with the production configuration")
	}

	r := shared.Role(role)
	if !r.IsValid() {
		log.Fatal("Unknown role", zap.String("role", role))
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	jwtCfg := cfg.JWT
	if expiration > 0 {
		jwtCfg.Expiration = expiration
	}
	token, err := auth.NewJWTService(jwtCfg).GenerateToken(userID, r)
	if err != nil {
		log.Fatal("Failed to generate token", zap.Error(err))
	}

	log.Info("Token minted",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.Time("expires_at", token.ExpiresAt),
	)
	// the bare token goes to stdout so it can be captured by a shell
	fmt.Println(token.AccessToken)
}
