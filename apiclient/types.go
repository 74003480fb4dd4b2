package apiclient

import "github.com/akriva/portal/session"

// TenantStatus is the tenant lifecycle state reported by the backend.
type TenantStatus string

const (
	TenantStatusInit     TenantStatus = "init"
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusRemoved  TenantStatus = "removed"
)

// InviteStatus is the lifecycle state of a team invitation.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusExpired  InviteStatus = "expired"
	InviteStatusRevoked  InviteStatus = "revoked"
)

// Tenant - GET /v1/tenants/{id} and PATCH /v1/tenants/settings
type Tenant struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	Slug                  string       `json:"slug"`
	Status                TenantStatus `json:"status"`
	HQCountry             *string      `json:"hqCountry"`
	StateProvince         *string      `json:"stateProvince"`
	City                  *string      `json:"city"`
	ReportingCurrency     *string      `json:"reportingCurrency"`
	FiscalYearStartMonth  *int         `json:"fiscalYearStartMonth"`
	FiscalYearStartDay    *int         `json:"fiscalYearStartDay"`
	BaseYear              *int         `json:"baseYear"`
	Sector                *string      `json:"sector"`
	SubSector             *string      `json:"subSector"`
	ConsolidationApproach *string      `json:"consolidationApproach"`
	CreatedAt             string       `json:"createdAt"`
	UpdatedAt             string       `json:"updatedAt"`
}

// UpdateTenantSettingsRequest - PATCH /v1/tenants/settings; nil fields are
// omitted and left untouched by the backend.
type UpdateTenantSettingsRequest struct {
	Name                  *string `json:"name,omitempty"`
	Slug                  *string `json:"slug,omitempty"`
	HQCountry             *string `json:"hqCountry,omitempty"`
	StateProvince         *string `json:"stateProvince,omitempty"`
	City                  *string `json:"city,omitempty"`
	ReportingCurrency     *string `json:"reportingCurrency,omitempty"`
	FiscalYearStartMonth  *int    `json:"fiscalYearStartMonth,omitempty"`
	FiscalYearStartDay    *int    `json:"fiscalYearStartDay,omitempty"`
	BaseYear              *int    `json:"baseYear,omitempty"`
	Sector                *string `json:"sector,omitempty"`
	SubSector             *string `json:"subSector,omitempty"`
	ConsolidationApproach *string `json:"consolidationApproach,omitempty"`
}

// CurrentUser - GET /v1/users/me
type CurrentUser struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	DisplayName *string      `json:"displayName"`
	Role        session.Role `json:"role"`
	IsActive    bool         `json:"isActive"`
	CognitoSub  *string      `json:"cognitoSub"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// TeamMember - GET /v1/users
type TeamMember struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	DisplayName *string      `json:"displayName"`
	Role        session.Role `json:"role"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// Invite - GET/POST/DELETE /v1/users/invites
type Invite struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Role      session.Role `json:"role"`
	Status    InviteStatus `json:"status"`
	InvitedBy *string      `json:"invitedBy"`
	ExpiresAt *string      `json:"expiresAt"`
	CreatedAt string       `json:"createdAt"`
}

type userListResponse struct {
	Users []TeamMember `json:"users"`
}

type inviteListResponse struct {
	Invites []Invite `json:"invites"`
}

// apiError is the backend's JSON error envelope.
type apiError struct {
	Message string `json:"error"`
	Code    string `json:"code"`
}
