package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/model"
	"github.com/micropost/micropost/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "User email (required)")
		password    = flag.String("password", "", "User password (required)")
		username    = flag.String("username", "seeded", "Username")
		name        = flag.String("name", "Seeded User", "Display name")
		age         = flag.Int("age", 0, "Age")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if existing, err := repo.GetUserByEmail(ctx, *email); err == nil {
		fmt.Fprintf(os.Stderr, "email %s already used by user %s\n", *email, existing.ID)
		os.Exit(1)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		fmt.Fprintln(os.Stderr, "lookup user:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        *email,
		Username:     *username,
		Name:         *name,
		Age:          *age,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}
