package app

import (
	"fmt"
	"strings"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
)

// LoginByEmail upserts the account for a verified email and issues a
// session token. OTP verification happens in the transport layer before
// this is called.
func (a *App) LoginByEmail(email string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.User{}, "", ErrEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		user = domain.User{
			ID:        util.NewID(),
			Email:     email,
			CreatedAt: a.now(),
		}
		if err := a.store.SaveUser(user); err != nil {
			return domain.User{}, "", fmt.Errorf("create user: %w", err)
		}
		profile := domain.UserProfile{UserID: user.ID, CitiesOfExperience: []string{}}
		if err := a.store.SaveProfile(profile); err != nil {
			return domain.User{}, "", fmt.Errorf("create profile: %w", err)
		}
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// UserFromToken resolves a user from a session token.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	userID, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(userID)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// Logout invalidates the session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}
