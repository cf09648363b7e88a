package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/internal/utils"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

const (
	otpTTL = 10 * time.Minute

	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@gym.lk"
	defaultAdminPassword = "admin123"
)

// OTPStore persists password-reset codes.
type OTPStore interface {
	Issue(ctx context.Context, email, code string, expiresAt time.Time) error
	Find(ctx context.Context, email string) (*models.OTP, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

// Mailer sends the outbound mail the auth flows need.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

type AuthService struct {
	users  IdentityStore
	otps   OTPStore
	mailer Mailer
	jwtCfg *config.JWTConfig
}

func NewAuthService(users IdentityStore, otps OTPStore, mailer Mailer, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		users:  users,
		otps:   otps,
		mailer: mailer,
		jwtCfg: jwtCfg,
	}
}

type LoginResult struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expire_at"`
}

// Login authenticates an identity by email and password and returns a JWT.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*LoginResult, error) {
	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:    token,
		User:     user,
		ExpireAt: time.Now().Add(time.Duration(s.jwtCfg.ExpireHour) * time.Hour),
	}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	Gender   string
}

// Register creates an identity only. Role profiles for trainer and member
// identities are synthesized lazily by the reconciler the first time a read
// needs them.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, response.NewValidation("name, email and password are required")
	}
	if in.Role == "" {
		in.Role = models.RoleMember
	}
	if !models.ValidIdentityRole(in.Role) {
		return nil, response.NewValidation("invalid role: " + in.Role)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Phone:    in.Phone,
		Password: hash,
		Role:     in.Role,
		Gender:   in.Gender,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, conflictOr(err, "a user with this email already exists")
	}
	return s.issueToken(user)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewNotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return response.NewValidation("new password must be at least 6 characters")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(oldPassword, user.Password) {
		return response.NewUnauthorized("incorrect old password")
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdateFields(ctx, user.ID, bson.M{"password": hash})
}

// RequestPasswordReset issues a fresh reset code for the account and mails
// it. Issuing again replaces any earlier code.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return response.NewNotFound("no account for this email")
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Issue(ctx, email, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordResetCode(ctx, email, code); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("failed to send reset code")
		return response.NewServerError("failed to send reset code")
	}
	return nil
}

// VerifyResetCode checks a reset code and marks it verified for the
// subsequent password reset.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	otp, err := s.otps.Find(ctx, email)
	if err != nil {
		return err
	}
	if otp == nil || otp.Code != code {
		return response.NewValidation("invalid code")
	}
	if time.Now().After(otp.ExpiresAt) {
		return response.NewValidation("code has expired")
	}
	return s.otps.MarkVerified(ctx, email)
}

// ResetPassword sets a new password for an account that holds a verified,
// unexpired reset code. The code is consumed on success.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return response.NewValidation("new password must be at least 6 characters")
	}
	email = NormalizeEmail(email)
	otp, err := s.otps.Find(ctx, email)
	if err != nil {
		return err
	}
	if otp == nil || otp.Code != code || !otp.Verified {
		return response.NewValidation("invalid or unverified code")
	}
	if time.Now().After(otp.ExpiresAt) {
		return response.NewValidation("code has expired")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return response.NewNotFound("no account for this email")
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdateFields(ctx, user.ID, bson.M{"password": hash}); err != nil {
		return err
	}
	return s.otps.Delete(ctx, email)
}

// CreateAdminIfNotExists seeds the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists(ctx context.Context) error {
	admins, err := s.users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}
	hash, err := utils.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:     defaultAdminName,
		Email:    defaultAdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Insert(ctx, admin); err != nil {
		return err
	}
	logger.Warn().Str("email", defaultAdminEmail).Msg("seeded default admin account; change its password")
	return nil
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
