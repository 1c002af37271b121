// Package party manages customer and vendor profiles.
package party

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// Service provides party business logic over a repository.
type Service struct {
	repo store.Repository
}

// NewService creates a party Service.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new party.
func (s *Service) Create(p model.Party) (model.Party, error) {
	if strings.TrimSpace(p.Name) == "" {
		return model.Party{}, fmt.Errorf("party name is required")
	}
	if p.Kind != model.PartyCustomer && p.Kind != model.PartyVendor {
		return model.Party{}, fmt.Errorf("invalid party kind %q", p.Kind)
	}
	if p.CreditTermDays < 0 {
		return model.Party{}, fmt.Errorf("credit term days must not be negative")
	}

	p.ID = uuid.NewString()
	if err := s.repo.SaveParty(p); err != nil {
		return model.Party{}, fmt.Errorf("saving party: %w", err)
	}
	return p, nil
}

// Delete removes a party. Invoices referencing it keep their customer
// ID; listings fall back to a placeholder label.
func (s *Service) Delete(id string) error {
	if err := s.repo.DeleteParty(id); err != nil {
		return fmt.Errorf("deleting party %s: %w", id, err)
	}
	return nil
}

// All returns every party.
func (s *Service) All() ([]model.Party, error) {
	return s.repo.ListParties()
}

// Customers returns parties of kind customer.
func (s *Service) Customers() ([]model.Party, error) {
	return s.byKind(model.PartyCustomer)
}

// Vendors returns parties of kind vendor.
func (s *Service) Vendors() ([]model.Party, error) {
	return s.byKind(model.PartyVendor)
}

func (s *Service) byKind(kind model.PartyKind) ([]model.Party, error) {
	parties, err := s.repo.ListParties()
	if err != nil {
		return nil, err
	}
	var out []model.Party
	for _, p := range parties {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

// NameFor resolves a party ID to its name, with a placeholder for
// deleted parties.
func (s *Service) NameFor(id string) string {
	parties, err := s.repo.ListParties()
	if err != nil {
		return "Party removed"
	}
	for _, p := range parties {
		if p.ID == id {
			return p.Name
		}
	}
	return "Party removed"
}
