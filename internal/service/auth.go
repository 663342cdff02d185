package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/shopcart/internal/events"
	"github.com/Skotchmaster/shopcart/internal/hash"
	"github.com/Skotchmaster/shopcart/internal/models"
	"github.com/Skotchmaster/shopcart/internal/repo"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

const (
	MsgFieldsRequired      = "All fields are required"
	MsgCredentialsRequired = "Username and password are required"

	publishTimeout = 5 * time.Second
)

type AuthService struct {
	Repo       *repo.GormRepo
	Events     events.Publisher
	Iterations int
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Username == "" || in.Password == "" || in.Email == "" || in.FullName == "" {
		return nil, invalid(MsgFieldsRequired)
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password, s.Iterations)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: pwHash,
		Email:        in.Email,
		FullName:     in.FullName,
	}
	if err := s.Repo.InsertUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
		}
		return nil, storeErr("register", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	publish(ctx, s.Events, events.TopicUsers, strconv.FormatInt(user.ID, 10),
		events.New(events.TypeUserRegistered, map[string]any{
			"user_id":  user.ID,
			"username": user.Username,
			"email":    user.Email,
		}))
	return user, nil
}

// Login verifies the password against the stored hash. Unknown users and
// wrong passwords yield the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, invalid(MsgCredentialsRequired)
	}

	user, err := s.Repo.FetchUser(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr("login", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// publish sends an event without failing the caller; the store write it
// describes has already committed.
func publish(ctx context.Context, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(pubCtx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
