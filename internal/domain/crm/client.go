package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the status of a client record
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Client represents a client of the practice.
// It is the aggregate root for client-related operations: documents,
// appointments and quotations all hang off a client.
type Client struct {
	shared.BaseAggregateRoot
	FirstName     string          `gorm:"type:varchar(100);not null"`
	LastName      string          `gorm:"type:varchar(100);not null"`
	IDNumber      string          `gorm:"type:varchar(50);index"` // National ID / passport number
	Email         string          `gorm:"type:varchar(200);index"`
	Phone         string          `gorm:"type:varchar(50);index"`
	Address       string          `gorm:"type:text"`
	City          string          `gorm:"type:varchar(100)"`
	PostalCode    string          `gorm:"type:varchar(20)"`
	Employer      string          `gorm:"type:varchar(200)"`
	Occupation    string          `gorm:"type:varchar(100)"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	Status        ClientStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null;index"` // Owning user
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client owned by the given user
func NewClient(createdBy uuid.UUID, firstName, lastName string) (*Client, error) {
	if err := validateClientName(firstName, lastName); err != nil {
		return nil, err
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Client must have a creating user")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		MonthlyIncome:     decimal.Zero,
		Status:            ClientStatusActive,
		CreatedBy:         createdBy,
	}, nil
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Update updates the client's personal information
func (c *Client) Update(firstName, lastName, idNumber string) error {
	if err := validateClientName(firstName, lastName); err != nil {
		return err
	}
	if len(idNumber) > 50 {
		return shared.NewDomainError("INVALID_ID_NUMBER", "ID number cannot exceed 50 characters")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.IDNumber = idNumber
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the client's contact details
func (c *Client) SetContact(email, phone string) error {
	if email != "" {
		if len(email) > 200 || !clientEmailRegex.MatchString(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	c.Email = strings.ToLower(email)
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetAddress sets the client's address
func (c *Client) SetAddress(address, city, postalCode string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if len(postalCode) > 20 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 20 characters")
	}
	c.Address = address
	c.City = city
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetFinancialProfile sets employment and income details used by quotations
func (c *Client) SetFinancialProfile(employer, occupation string, monthlyIncome decimal.Decimal) error {
	if monthlyIncome.IsNegative() {
		return shared.NewDomainError("INVALID_INCOME", "Monthly income cannot be negative")
	}
	if len(employer) > 200 {
		return shared.NewDomainError("INVALID_EMPLOYER", "Employer cannot exceed 200 characters")
	}
	c.Employer = employer
	c.Occupation = occupation
	c.MonthlyIncome = monthlyIncome
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Archive archives the client record
func (c *Client) Archive() error {
	if c.Status == ClientStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Client is already archived")
	}
	c.Status = ClientStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsArchived returns true if the client has been archived
func (c *Client) IsArchived() bool {
	return c.Status == ClientStatusArchived
}

var clientEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateClientName(firstName, lastName string) error {
	if firstName == "" || lastName == "" {
		return shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
