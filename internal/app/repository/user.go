package repository

import (
	"context"
	"errors"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/utils"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetUserByLogin returns user by login
func (r *Repository) GetUserByLogin(ctx context.Context, login string) (ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ds.User{}, fmt.Errorf("user %q: %w", login, ds.ErrNotFound)
	}
	return user, err
}

func (r *Repository) GetUserByID(ctx context.Context, userID int) (ds.User, error) {
	var user ds.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return ds.User{}, wrapErr(err, "user", userID)
	}
	user.Password = ""
	return user, nil
}

// RegisterUser creates an operator account. The password is hashed by the
// model hook.
func (r *Repository) RegisterUser(ctx context.Context, user ds.User) (ds.User, error) {
	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" || len(user.Password) < 6 {
		return ds.User{}, fmt.Errorf("login and a password of at least 6 characters are required: %w", ds.ErrInvalidPayload)
	}
	if _, err := r.GetUserByLogin(ctx, user.Login); err == nil {
		return ds.User{}, fmt.Errorf("user %q: %w", user.Login, ds.ErrDuplicateKey)
	} else if !errors.Is(err, ds.ErrNotFound) {
		return ds.User{}, err
	}
	if user.Role != ds.RoleAdmin {
		user.Role = ds.RoleOperator
	}
	user.UserID = 0
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return ds.User{}, wrapErr(err, "user "+user.Login, 0)
	}
	user.Password = ""
	return user, nil
}

// Authenticate returns the user when login and password match.
func (r *Repository) Authenticate(ctx context.Context, login, password string) (ds.User, error) {
	user, err := r.GetUserByLogin(ctx, login)
	if errors.Is(err, ds.ErrNotFound) {
		return ds.User{}, fmt.Errorf("unknown login: %w", ds.ErrInvalidCredentials)
	}
	if err != nil {
		return ds.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ds.User{}, fmt.Errorf("wrong password: %w", ds.ErrInvalidCredentials)
	}
	user.Password = ""
	return user, nil
}

// LoginUser checks the credentials, signs a JWT and records the session in
// Redis when a client is configured.
func (r *Repository) LoginUser(ctx context.Context, login, password string) (string, ds.User, error) {
	user, err := r.Authenticate(ctx, login, password)
	if err != nil {
		return "", ds.User{}, err
	}
	token, err := utils.GenerateJWT([]byte(r.jwtKey), user.UserID, user.Role, time.Now())
	if err != nil {
		return "", ds.User{}, err
	}
	if r.redis != nil {
		if err := utils.SetSession(ctx, r.redis, token, user.UserID, user.Role, utils.TokenTTL); err != nil {
			return "", ds.User{}, fmt.Errorf("save session error: %w", err)
		}
	}
	return token, user, nil
}

// SessionUser validates token and, with Redis configured, checks that its
// session was not revoked.
func (r *Repository) SessionUser(ctx context.Context, token string) (*ds.JWTClaims, error) {
	claims, err := utils.ParseJWT([]byte(r.jwtKey), token)
	if err != nil {
		return nil, err
	}
	if r.redis == nil {
		return claims, nil
	}
	session, ok, err := utils.GetSession(ctx, r.redis, token)
	if err != nil {
		return nil, err
	}
	if !ok || session["user_id"] != strconv.Itoa(claims.UserID) {
		return nil, fmt.Errorf("session revoked: %w", ds.ErrInvalidCredentials)
	}
	return claims, nil
}

func (r *Repository) Logout(ctx context.Context, token string) error {
	return utils.DeleteSession(ctx, r.redis, token)
}
