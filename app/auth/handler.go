package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/electromaison/storefront-api/models"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

type UserProvider interface {
	GetByEmail(email string) (*models.User, error)
}

type RoleProvider interface {
	RoleOf(userID string) (string, error)
}

type AuthHandler struct {
	users  UserProvider
	roles  RoleProvider
	tokens *TokenIssuer
}

func NewAuthHandler(users UserProvider, roles RoleProvider, tokens *TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		roles:  roles,
		tokens: tokens,
	}
}

// HandleLogin issues a session for email+password. Any failure — bad
// email, bad password, backend trouble — surfaces as the same rejected
// sign-in message.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.Password == "" {
		jsonError(w, "Missing email or password", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			jsonError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		jsonError(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		jsonError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		jsonError(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 3600,
		HttpOnly: true,
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":      token,
		"token_type": "Bearer",
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// HandleMe returns the current user, with the role read from the
// profile side table.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claimsFrom(r)
	if err != nil {
		jsonError(w, "Login required", http.StatusUnauthorized)
		return
	}

	role, err := h.roles.RoleOf(claims.UserID)
	if err != nil {
		jsonError(w, "Failed to resolve role", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  role,
	})
}

// RequireAdmin gates a handler behind a valid session whose profile
// role is admin.
func (h *AuthHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.claimsFrom(r)
		if err != nil {
			jsonError(w, "Login required", http.StatusUnauthorized)
			return
		}

		role, err := h.roles.RoleOf(claims.UserID)
		if err != nil {
			jsonError(w, "Failed to resolve role", http.StatusInternalServerError)
			return
		}
		if role != models.RoleAdmin {
			jsonError(w, "Admin access required", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

// claimsFrom accepts the token from the Authorization header or the
// session cookie.
func (h *AuthHandler) claimsFrom(r *http.Request) (*Claims, error) {
	var token string
	if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		token = strings.TrimPrefix(ah, "Bearer ")
	}
	if token == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return nil, errors.New("no session token")
	}
	return h.tokens.Parse(token)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
