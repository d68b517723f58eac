package crm

import (
	"context"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo crm.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo crm.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client owned by the acting user
func (s *ClientService) Create(ctx context.Context, createdBy uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	if req.IDNumber != "" {
		exists, err := s.clientRepo.ExistsByIDNumber(ctx, req.IDNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this ID number already exists")
		}
	}

	client, err := crm.NewClient(createdBy, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	if req.IDNumber != "" {
		if err := client.Update(req.FirstName, req.LastName, req.IDNumber); err != nil {
			return nil, err
		}
	}
	if req.Email != "" || req.Phone != "" {
		if err := client.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.City != "" || req.PostalCode != "" {
		if err := client.SetAddress(req.Address, req.City, req.PostalCode); err != nil {
			return nil, err
		}
	}
	if req.Employer != "" || req.Occupation != "" || req.MonthlyIncome != nil {
		income := client.MonthlyIncome
		if req.MonthlyIncome != nil {
			income = *req.MonthlyIncome
		}
		if err := client.SetFinancialProfile(req.Employer, req.Occupation, income); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		client.SetNotes(req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) ([]ClientListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientListResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientListResponse(&clients[i])
	}
	return responses, total, nil
}

// Update updates an existing client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.IsArchived() {
		return nil, shared.NewDomainError("CLIENT_ARCHIVED", "Archived clients cannot be modified")
	}

	if req.FirstName != nil || req.LastName != nil || req.IDNumber != nil {
		firstName := client.FirstName
		lastName := client.LastName
		idNumber := client.IDNumber
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if req.IDNumber != nil {
			idNumber = *req.IDNumber
		}
		if idNumber != client.IDNumber && idNumber != "" {
			exists, err := s.clientRepo.ExistsByIDNumber(ctx, idNumber)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this ID number already exists")
			}
		}
		if err := client.Update(firstName, lastName, idNumber); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email := client.Email
		phone := client.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := client.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil || req.PostalCode != nil {
		address := client.Address
		city := client.City
		postalCode := client.PostalCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		if err := client.SetAddress(address, city, postalCode); err != nil {
			return nil, err
		}
	}

	if req.Employer != nil || req.Occupation != nil || req.MonthlyIncome != nil {
		employer := client.Employer
		occupation := client.Occupation
		income := client.MonthlyIncome
		if req.Employer != nil {
			employer = *req.Employer
		}
		if req.Occupation != nil {
			occupation = *req.Occupation
		}
		if req.MonthlyIncome != nil {
			income = *req.MonthlyIncome
		}
		if err := client.SetFinancialProfile(employer, occupation, income); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		client.SetNotes(*req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Archive archives a client record
func (s *ClientService) Archive(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := client.Archive(); err != nil {
		return err
	}
	return s.clientRepo.Save(ctx, client)
}

// Delete permanently removes a client and its dependent records.
// Archiving is the usual flow; delete exists for records created in error.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
