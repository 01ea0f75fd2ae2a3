package model

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	AuthProvider    string    `json:"auth_provider"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CheckPassword compares a given password with the user's hashed password.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// CreateUser inserts a new user. The caller is expected to have hashed the
// password already.
func (u *User) CreateUser(db *sql.DB) error {
	if u.AuthProvider == "" {
		u.AuthProvider = "local"
	}
	query := `
	INSERT INTO users (username, password, email, auth_provider, is_email_verified)
	VALUES (?, ?, ?, ?, ?)`
	res, err := db.Exec(query, u.Username, u.Password, u.Email, u.AuthProvider, u.IsEmailVerified)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

const userColumns = `id, username, password, email, auth_provider, is_email_verified`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.AuthProvider, &u.IsEmailVerified)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// SetVerificationToken stores an email verification token with its expiry.
func SetVerificationToken(db *sql.DB, userID int64, token string, expiresAt time.Time) error {
	_, err := db.Exec(`
		UPDATE users
		SET email_verification_token = ?, email_verification_token_expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, token, expiresAt, userID)
	return err
}

// VerifyEmailByToken marks the matching user as verified and clears the
// token. Returns an error if the token is unknown or expired.
func VerifyEmailByToken(db *sql.DB, token string) error {
	res, err := db.Exec(`
		UPDATE users
		SET is_email_verified = TRUE,
			email_verification_token = NULL,
			email_verification_token_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE email_verification_token = ?
		  AND email_verification_token_expires_at > CURRENT_TIMESTAMP`, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("invalid or expired verification token")
	}
	return nil
}

// SetPasswordResetToken stores a password reset token with its expiry.
func SetPasswordResetToken(db *sql.DB, userID int64, token string, expiresAt time.Time) error {
	_, err := db.Exec(`
		UPDATE users
		SET password_reset_token = ?, password_reset_token_expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, token, expiresAt, userID)
	return err
}

// ResetPasswordByToken replaces the password of the user holding a valid
// reset token and clears the token.
func ResetPasswordByToken(db *sql.DB, token, hashedPassword string) error {
	res, err := db.Exec(`
		UPDATE users
		SET password = ?,
			password_reset_token = NULL,
			password_reset_token_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE password_reset_token = ?
		  AND password_reset_token_expires_at > CURRENT_TIMESTAMP`, hashedPassword, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("invalid or expired password reset token")
	}
	return nil
}

func CreateSession(db *sql.DB, session *Session) error {
	query := `
	INSERT INTO sessions (user_id, token, refresh_token, user_agent, client_ip, is_blocked, expires_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := db.Exec(query, session.UserID, session.Token, session.RefreshToken,
		session.UserAgent, session.ClientIP, session.IsBlocked, session.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	session.ID = id
	return nil
}

func GetSessionByToken(db *sql.DB, token string) (*Session, error) {
	var s Session
	err := db.QueryRow(`
		SELECT id, user_id, token, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
		FROM sessions
		WHERE token = ? AND is_blocked = FALSE AND expires_at > CURRENT_TIMESTAMP`, token).
		Scan(&s.ID, &s.UserID, &s.Token, &s.RefreshToken, &s.UserAgent, &s.ClientIP,
			&s.IsBlocked, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSessionByRefreshToken(db *sql.DB, refreshToken string) (*Session, error) {
	var s Session
	err := db.QueryRow(`
		SELECT id, user_id, token, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
		FROM sessions
		WHERE refresh_token = ? AND is_blocked = FALSE AND expires_at > CURRENT_TIMESTAMP`, refreshToken).
		Scan(&s.ID, &s.UserID, &s.Token, &s.RefreshToken, &s.UserAgent, &s.ClientIP,
			&s.IsBlocked, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func DeleteSessionByToken(db *sql.DB, token string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}
