package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/evently/internal/adapter"
	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/crypto"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/metrics"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
)

const (
	// VerificationTokenTTL is how long an e-mail verification link stays valid.
	VerificationTokenTTL = 24 * time.Hour

	// ResetOTPTTL is how long a password reset code stays valid.
	ResetOTPTTL = 10 * time.Minute
)

const authDomain = "auth"

// authService is the concrete implementation of AuthService.
// It owns the verification and reset flows on top of a UserRepository and
// issues HS256 session tokens.
type authService struct {
	userRepository store.UserRepository
	sender         adapter.EmailSender
	hasher         crypto.PasswordHasher
	secrets        crypto.SecretGenerator
	validator      validators.Validator
	mails          *mailComposer

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	allowUnverifiedLogin bool
	allowResetWithoutOTP bool

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository,
// mail sender and secret primitives, with token and flow settings taken from
// cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	sender adapter.EmailSender,
	hasher crypto.PasswordHasher,
	secrets crypto.SecretGenerator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:       userRepository,
		sender:               sender,
		hasher:               hasher,
		secrets:              secrets,
		validator:            validators.NewUserValidator(),
		mails:                newMailComposer(cfg.VerificationURL),
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		tokenDuration:        cfg.TokenDuration,
		allowUnverifiedLogin: cfg.AllowUnverifiedLogin,
		allowResetWithoutOTP: cfg.AllowResetWithoutOTP,
		now:                  time.Now,
		logger:               logger,
	}
}

// Register creates an unverified account and mails its verification link.
//
// E-mail uniqueness is checked before username uniqueness. A duplicate that
// slips past the checks and is rejected by the store's unique index is
// reported the same way.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return newValidationError(err)
	}

	email := models.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	if err := a.ensureFree(ctx, a.userRepository.FindByEmail, email, ErrDuplicateEmail); err != nil {
		return a.fail("register", err)
	}
	if err := a.ensureFree(ctx, a.userRepository.FindByUsername, username, ErrDuplicateUsername); err != nil {
		return a.fail("register", err)
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return a.fail("register", internalError(authDomain, err, "error hashing password"))
	}

	token, err := a.secrets.VerificationToken()
	if err != nil {
		log.Err(err).Msg("error generating verification token")
		return a.fail("register", internalError(authDomain, err, "error generating verification token"))
	}

	user := models.User{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Username:       username,
		Email:          email,
		PasswordDigest: digest,
		AcceptedTerms:  req.AcceptedTerms,
	}
	user.SetVerificationToken(token, a.now().Add(VerificationTokenTTL))

	created, err := a.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return a.fail("register", mapStoreError(authDomain, err))
	}

	if err = a.sendVerification(ctx, created, token); err != nil {
		return a.fail("register", err)
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")
	metrics.RecordAuthEvent("register", metrics.OutcomeSuccess)
	return nil
}

// VerifyEmail marks the account owning token as verified. The token is
// single-use: it is cleared together with its expiry.
func (a *authService) VerifyEmail(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return a.fail("verify_email", ErrInvalidOrExpiredToken)
	}

	user, err := a.userRepository.FindByVerificationToken(ctx, token, a.now())
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return a.fail("verify_email", ErrInvalidOrExpiredToken)
		}
		log.Err(err).Msg("error looking up verification token")
		return a.fail("verify_email", mapStoreError(authDomain, err))
	}

	user.MarkVerified()
	if _, err = a.userRepository.Update(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error saving verified user")
		return a.fail("verify_email", mapStoreError(authDomain, err))
	}

	metrics.RecordAuthEvent("verify_email", metrics.OutcomeSuccess)
	return nil
}

// ResendVerificationEmail rotates the verification token of an unverified
// account, refreshes its expiry and mails the new link.
func (a *authService) ResendVerificationEmail(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return newValidationError(err)
	}

	user, err := a.findByEmail(ctx, email)
	if err != nil {
		return a.fail("resend_verification", err)
	}
	if user.IsVerified {
		return a.fail("resend_verification", ErrAlreadyVerified)
	}

	token, err := a.secrets.VerificationToken()
	if err != nil {
		log.Err(err).Msg("error generating verification token")
		return a.fail("resend_verification", internalError(authDomain, err, "error generating verification token"))
	}

	user.SetVerificationToken(token, a.now().Add(VerificationTokenTTL))
	updated, err := a.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error saving verification token")
		return a.fail("resend_verification", mapStoreError(authDomain, err))
	}

	if err = a.sendVerification(ctx, updated, token); err != nil {
		return a.fail("resend_verification", err)
	}

	metrics.RecordAuthEvent("resend_verification", metrics.OutcomeSuccess)
	return nil
}

// Login checks the credentials and issues a session token.
//
// Unknown e-mail and wrong password produce the same [ErrInvalidCredentials].
// Unverified accounts are rejected before the password is compared unless
// the service runs with AllowUnverifiedLogin.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Session{}, newValidationError(err)
	}

	user, err := a.findByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			err = ErrInvalidCredentials
		}
		return models.Session{}, a.fail("login", err)
	}

	if !user.IsVerified && !a.allowUnverifiedLogin {
		return models.Session{}, a.fail("login", ErrEmailNotVerified)
	}

	if !a.hasher.Verify(req.Password, user.PasswordDigest) {
		log.Info().Str("user_id", user.ID).Msg("wrong password")
		return models.Session{}, a.fail("login", ErrInvalidCredentials)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error creating token")
		return models.Session{}, a.fail("login", internalError(authDomain, err, "error creating session token"))
	}

	metrics.RecordAuthEvent("login", metrics.OutcomeSuccess)
	return models.Session{Token: token.String(), User: user.Profile()}, nil
}

// ForgotPassword stores a fresh six-digit reset code valid for
// [ResetOTPTTL] and mails it. A previous code is overwritten.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return newValidationError(err)
	}

	user, err := a.findByEmail(ctx, email)
	if err != nil {
		return a.fail("forgot_password", err)
	}

	otp, err := a.secrets.OTP()
	if err != nil {
		log.Err(err).Msg("error generating otp")
		return a.fail("forgot_password", internalError(authDomain, err, "error generating otp"))
	}

	user.SetResetOTP(otp, a.now().Add(ResetOTPTTL))
	updated, err := a.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error saving reset otp")
		return a.fail("forgot_password", mapStoreError(authDomain, err))
	}

	msg, err := a.mails.resetOTP(updated, otp, ResetOTPTTL)
	if err != nil {
		log.Err(err).Msg("error rendering otp email")
		return a.fail("forgot_password", internalError(authDomain, err, "error rendering otp email"))
	}
	if err = a.send(ctx, "reset_otp", msg); err != nil {
		return a.fail("forgot_password", err)
	}

	metrics.RecordAuthEvent("forgot_password", metrics.OutcomeSuccess)
	return nil
}

// VerifyOTP checks a reset code without consuming it.
func (a *authService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return newValidationError(err)
	}

	user, err := a.findByEmail(ctx, req.Email)
	if err != nil {
		return a.fail("verify_otp", err)
	}

	if !user.ResetOTPMatches(strings.TrimSpace(req.OTP), a.now()) {
		return a.fail("verify_otp", ErrInvalidOrExpiredOTP)
	}

	metrics.RecordAuthEvent("verify_otp", metrics.OutcomeSuccess)
	return nil
}

// ResetPassword replaces the password digest and clears the reset code.
//
// The reset code is checked again unless the service runs with
// AllowResetWithoutOTP; even then a code that is supplied must be valid.
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	fields := []string{validators.FieldEmail, validators.FieldOTP, validators.FieldNewPassword}
	if a.allowResetWithoutOTP {
		fields = []string{validators.FieldEmail, validators.FieldNewPassword}
	}
	if err := a.validator.Validate(ctx, req, fields...); err != nil {
		return newValidationError(err)
	}

	user, err := a.findByEmail(ctx, req.Email)
	if err != nil {
		return a.fail("reset_password", err)
	}

	otp := strings.TrimSpace(req.OTP)
	if (!a.allowResetWithoutOTP || otp != "") && !user.ResetOTPMatches(otp, a.now()) {
		return a.fail("reset_password", ErrInvalidOrExpiredOTP)
	}

	digest, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return a.fail("reset_password", internalError(authDomain, err, "error hashing password"))
	}

	user.PasswordDigest = digest
	user.ClearResetOTP()
	if _, err = a.userRepository.Update(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error saving new password")
		return a.fail("reset_password", mapStoreError(authDomain, err))
	}

	metrics.RecordAuthEvent("reset_password", metrics.OutcomeSuccess)
	return nil
}

// GetCurrentUser returns the profile of the account a session token belongs
// to.
func (a *authService) GetCurrentUser(ctx context.Context, token string) (models.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return models.Profile{}, ErrUnauthorized
	}

	parsed, err := a.ParseToken(ctx, token)
	if err != nil {
		return models.Profile{}, err
	}

	user, err := a.userRepository.FindByID(ctx, parsed.UserID)
	if err != nil {
		return models.Profile{}, mapStoreError(authDomain, err)
	}

	return user.Profile(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (bad signature, expired, wrong issuer, malformed)
// is normalised to [ErrInvalidToken] so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("rejected session token")
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}

// ensureFree fails with taken when find locates a record for value.
func (a *authService) ensureFree(ctx context.Context, find func(context.Context, string) (models.User, error), value string, taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		logger.FromContext(ctx).Err(err).Msg("error checking uniqueness")
		return mapStoreError(authDomain, err)
	}
}

func (a *authService) findByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := a.userRepository.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContext(ctx).Err(err).Msg("error finding user by email")
		}
		return models.User{}, mapStoreError(authDomain, err)
	}
	return user, nil
}

func (a *authService) sendVerification(ctx context.Context, user models.User, token string) error {
	msg, err := a.mails.verification(user, token, VerificationTokenTTL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error rendering verification email")
		return internalError(authDomain, err, "error rendering verification email")
	}
	return a.send(ctx, "verification", msg)
}

// send delivers msg once; a failure is internal and is not retried.
func (a *authService) send(ctx context.Context, kind string, msg models.EmailMessage) error {
	err := a.sender.Send(ctx, msg)
	metrics.RecordEmail(kind, err)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("kind", kind).Msg("error sending email")
		return internalError(authDomain, err, "error sending email")
	}
	return nil
}

// fail records the outcome of a failed operation and returns err unchanged.
func (a *authService) fail(operation string, err error) error {
	outcome := metrics.OutcomeFailure
	if isInternal(err) {
		outcome = metrics.OutcomeError
	}
	metrics.RecordAuthEvent(operation, outcome)
	return err
}
