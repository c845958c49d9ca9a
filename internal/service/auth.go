package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/lib/job"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// nonPhoneChars strips everything except digits and a leading plus so
// "+1 (555) 123-4567" and "15551234567" compare equal-ish.
var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// TokenClaims is the JWT payload for issued bearer tokens.
type TokenClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthResult is returned by all sign-in flows.
type AuthResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *repository.User `json:"user"`
}

// AuthService handles sign-in flows and bearer token issuance.
//
// Three flows exist:
//   - Google sign-in for tutors (ID token verified against the
//     configured client ID)
//   - passwordless parent access matched on parent contact info
//   - email/password register+login, for local development
type AuthService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		repos:  repos,
	}
}

// GoogleSignIn verifies a Google ID token and signs the tutor in,
// creating the account on first sign-in.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error) {
	clientID := s.server.Config.Integration.GoogleClientID
	if clientID == "" {
		return nil, errs.NewUnauthorizedError("Google sign-in is not configured", true)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, errs.NewUnauthorizedError("Invalid Google ID token", true)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid Google ID token", true)
	}

	user, err := s.repos.Users.GetByGoogleID(ctx, claimSet.Sub)
	if err != nil {
		// First sign-in: create the tutor account.
		user, err = s.repos.Users.Create(ctx, &repository.User{
			Email:    &claimSet.Email,
			GoogleID: &claimSet.Sub,
			Role:     repository.RoleTutor,
			Name:     claimSet.Name,
		})
		if err != nil {
			return nil, err
		}
		s.enqueueWelcome(claimSet.Email, user.Name)
	}

	return s.issue(user)
}

// ParentAccess signs a parent in without a password. The contact value
// (email or phone) must match the parent contact on at least one
// student; otherwise access is refused.
func (s *AuthService) ParentAccess(ctx context.Context, contact string) (*AuthResult, error) {
	email, phone := splitContact(contact)

	students, err := s.repos.Students.ListByParentContact(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, errs.NewUnauthorizedError("No student found for this contact", true)
	}

	user, err := s.findParentUser(ctx, email, phone)
	if err != nil {
		// First access: create the parent account from the contact.
		newUser := &repository.User{Role: repository.RoleParent}
		if email != "" {
			newUser.Email = &email
		}
		if phone != "" {
			newUser.Phone = &phone
		}
		user, err = s.repos.Users.Create(ctx, newUser)
		if err != nil {
			return nil, err
		}
		if email != "" {
			s.enqueueWelcome(email, user.Name)
		}
	}

	return s.issue(user)
}

// Register creates an email/password tutor account. Intended for local
// development where Google sign-in is not configured.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hashStr := string(hash)
	user, err := s.repos.Users.Create(ctx, &repository.User{
		Email:        &email,
		PasswordHash: &hashStr,
		Role:         repository.RoleTutor,
		Name:         name,
	})
	if err != nil {
		return nil, err
	}
	s.enqueueWelcome(email, name)

	return s.issue(user)
}

// Login authenticates an email/password account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}
	if user.PasswordHash == nil {
		return nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}

	return s.issue(user)
}

// CurrentUser loads the acting user for an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*repository.User, error) {
	return s.repos.Users.GetByID(ctx, userID)
}

// UpdateProfile changes the acting user's display name and phone. An
// empty phone clears it; otherwise it is normalized before the write so
// parent contact matching keeps working.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name, phone string) (*repository.User, error) {
	var phonePtr *string
	if phone != "" {
		normalized := NormalizePhone(phone)
		phonePtr = &normalized
	}
	return s.repos.Users.UpdateProfile(ctx, userID, strings.TrimSpace(name), phonePtr)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewUnauthorizedError("Unexpected signing method", false)
		}
		return []byte(s.server.Config.Auth.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.NewUnauthorizedError("Invalid or expired token", true)
	}
	return claims, nil
}

// issue signs a bearer token for the user.
func (s *AuthService) issue(user *repository.User) (*AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.server.Config.Auth.TokenTTL) * time.Hour)

	claims := TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.server.Config.Auth.SecretKey))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *AuthService) findParentUser(ctx context.Context, email, phone string) (*repository.User, error) {
	if email != "" {
		if user, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
			return user, nil
		}
	}
	if phone != "" {
		return s.repos.Users.GetByPhone(ctx, phone)
	}
	return nil, errs.NewUnauthorizedError("No account for this contact", false)
}

// enqueueWelcome pushes the welcome email task. Failures are logged and
// swallowed; sign-up must not fail because Redis is down.
func (s *AuthService) enqueueWelcome(email, firstName string) {
	if s.server.Config.Integration.ResendAPIKey == "" {
		return
	}
	task, err := job.NewWelcomeEmailTask(email, firstName)
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("Failed to build welcome email task")
		return
	}
	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Error().Err(err).Msg("Failed to enqueue welcome email task")
	}
}

// splitContact classifies a raw contact value as email or phone and
// normalizes it. Phone normalization keeps digits and a leading plus.
func splitContact(contact string) (email, phone string) {
	contact = strings.TrimSpace(contact)
	if strings.Contains(contact, "@") {
		return strings.ToLower(contact), ""
	}
	return "", NormalizePhone(contact)
}

// NormalizePhone strips formatting characters from a phone number.
func NormalizePhone(phone string) string {
	return nonPhoneChars.ReplaceAllString(phone, "")
}
