package identity

// Request and response payloads for the identity provider's REST API.
// Field names and claim shapes are fixed by the API handoff contract.

// SignupRequest creates a tenant and its first admin user - POST /auth/signup
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	GivenName       string `json:"givenName" validate:"required"`
	FamilyName      string `json:"familyName" validate:"required"`
	CompanyName     string `json:"companyName" validate:"required"`
	InvitationToken string `json:"invitationToken,omitempty" validate:"omitempty"`
}

// SigninRequest - POST /auth/signin
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MFAVerifyRequest - POST /auth/mfa/verify
type MFAVerifyRequest struct {
	Session string `json:"session" validate:"required"`
	Code    string `json:"code" validate:"required,numeric,len=6"`
}

// RefreshRequest - POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ForgotPasswordRequest - POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmForgotPasswordRequest - POST /auth/confirm-forgot-password
type ConfirmForgotPasswordRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
	NewPassword      string `json:"newPassword" validate:"required,min=8"`
}

// ChangePasswordRequest - POST /auth/change-password (authenticated)
type ChangePasswordRequest struct {
	PreviousPassword string `json:"previousPassword" validate:"required"`
	ProposedPassword string `json:"proposedPassword" validate:"required,min=8"`
}

// SignupUser is the user record returned alongside the first tokens.
type SignupUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

// SignupResult - 201 Created
type SignupResult struct {
	Tokens Credentials `json:"tokens"`
	User   SignupUser  `json:"user"`
}

// MFAChallenge is returned by signin when the account requires a second factor.
type MFAChallenge struct {
	ChallengeName       string            `json:"challengeName"` // e.g. "SOFTWARE_TOKEN_MFA"
	Session             string            `json:"session"`       // Pass back to VerifyMFA
	ChallengeParameters map[string]string `json:"challengeParameters"`
}

// SigninResult is a discriminated result: exactly one of Tokens or Challenge is set.
type SigninResult struct {
	Tokens    *Credentials
	Challenge *MFAChallenge
}

// signinResponse is the wire shape of the discriminated signin response.
type signinResponse struct {
	Type      string        `json:"type"` // "tokens" or "mfa_challenge"
	Tokens    *Credentials  `json:"tokens,omitempty"`
	Challenge *MFAChallenge `json:"challenge,omitempty"`
}

// MessageResponse is the standard success envelope for message-only endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// apiError is the provider's JSON error envelope.
type apiError struct {
	Message string `json:"error"` // Human-readable message
	Code    string `json:"code"`  // Machine-readable code, e.g. "UNAUTHORIZED"
}
