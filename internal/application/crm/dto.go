package crm

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	FirstName     string           `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string           `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber      string           `json:"id_number" binding:"max=50"`
	Email         string           `json:"email" binding:"omitempty,email,max=200"`
	Phone         string           `json:"phone" binding:"max=50"`
	Address       string           `json:"address" binding:"max=500"`
	City          string           `json:"city" binding:"max=100"`
	PostalCode    string           `json:"postal_code" binding:"max=20"`
	Employer      string           `json:"employer" binding:"max=200"`
	Occupation    string           `json:"occupation" binding:"max=100"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	Notes         string           `json:"notes"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	FirstName     *string          `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName      *string          `json:"last_name" binding:"omitempty,min=1,max=100"`
	IDNumber      *string          `json:"id_number" binding:"omitempty,max=50"`
	Email         *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone         *string          `json:"phone" binding:"omitempty,max=50"`
	Address       *string          `json:"address" binding:"omitempty,max=500"`
	City          *string          `json:"city" binding:"omitempty,max=100"`
	PostalCode    *string          `json:"postal_code" binding:"omitempty,max=20"`
	Employer      *string          `json:"employer" binding:"omitempty,max=200"`
	Occupation    *string          `json:"occupation" binding:"omitempty,max=100"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	Notes         *string          `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            uuid.UUID       `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FullName      string          `json:"full_name"`
	IDNumber      string          `json:"id_number"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Employer      string          `json:"employer"`
	Occupation    string          `json:"occupation"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ClientListResponse represents a list item for clients
type ClientListResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	IDNumber  string    `json:"id_number"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active archived"`
	City     string `form:"city"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DocumentResponse represents document metadata in API responses
type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *crm.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		FullName:      c.FullName(),
		IDNumber:      c.IDNumber,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		PostalCode:    c.PostalCode,
		Employer:      c.Employer,
		Occupation:    c.Occupation,
		MonthlyIncome: c.MonthlyIncome,
		Notes:         c.Notes,
		Status:        string(c.Status),
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

// ToClientListResponse converts a domain client to a list item DTO
func ToClientListResponse(c *crm.Client) ClientListResponse {
	return ClientListResponse{
		ID:        c.ID,
		FullName:  c.FullName(),
		IDNumber:  c.IDNumber,
		Email:     c.Email,
		Phone:     c.Phone,
		City:      c.City,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

// ToDocumentResponse converts domain document metadata to a response DTO
func ToDocumentResponse(d *crm.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		ClientID:   d.ClientID,
		Name:       d.Name,
		Size:       d.Size,
		MimeType:   d.MimeType,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}
