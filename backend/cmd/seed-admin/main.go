package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"packsite/backend/internal/app"
	userdomain "packsite/backend/internal/domain/user"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/repository"
)

var (
	username    = flag.String("username", "admin", "login name for the account")
	password    = flag.String("password", "", "initial password (required)")
	displayName = flag.String("display-name", "", "display name, defaults to the username")
	role        = flag.String("role", userdomain.RoleAdmin, "account role: admin or editor")
)

// Seeds an admin account so a fresh deployment has someone who can log
// in. Refuses to overwrite an existing account with the same username.
func main() {
	flag.Parse()

	zapLogger, err := logger.Init()
	if err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	defer logger.Sync()
	sugar := zapLogger.Sugar()

	pass := strings.TrimSpace(*password)
	if pass == "" {
		sugar.Fatalw("password flag is required")
	}
	if *role != userdomain.RoleAdmin && *role != userdomain.RoleEditor {
		sugar.Fatalw("invalid role", "role", *role)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := app.Bootstrap(ctx)
	if err != nil {
		sugar.Fatalw("bootstrap resources failed", "error", err)
	}
	defer func() {
		if closeErr := resources.Close(); closeErr != nil {
			sugar.Warnw("close resources failed", "error", closeErr)
		}
	}()

	users := repository.NewUserRepository(resources.DB)

	name := strings.TrimSpace(*username)
	if _, err := users.FindByUsername(ctx, name); err == nil {
		sugar.Fatalw("account already exists", "username", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		sugar.Fatalw("check existing account failed", "error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		sugar.Fatalw("hash password failed", "error", err)
	}

	display := strings.TrimSpace(*displayName)
	if display == "" {
		display = name
	}

	account := &userdomain.User{
		Username:     name,
		PasswordHash: string(hash),
		DisplayName:  display,
		Role:         *role,
	}
	if err := users.Create(ctx, account); err != nil {
		sugar.Fatalw("create account failed", "error", err)
	}

	sugar.Infow("account created", "id", account.ID, "username", account.Username, "role", account.Role)
}
