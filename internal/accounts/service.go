package accounts

import (
	"fmt"
	"strings"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// PlaceholderName labels journal lines whose account has been deleted.
const PlaceholderName = "Account removed"

// Service provides chart-of-accounts lookups and mutations over a
// repository.
type Service struct {
	repo store.Repository
}

// NewService creates an accounts Service.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo}
}

// Chart is an indexed snapshot of the chart of accounts.
type Chart struct {
	accounts []model.Account
	byID     map[int]model.Account
}

// Snapshot loads the chart of accounts into an indexed snapshot.
func (s *Service) Snapshot() (*Chart, error) {
	accts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}
	return NewChart(accts), nil
}

// NewChart indexes a slice of accounts.
func NewChart(accounts []model.Account) *Chart {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Chart{accounts: accounts, byID: byID}
}

// All returns all accounts.
func (c *Chart) All() []model.Account {
	return c.accounts
}

// Get returns an account by ID.
func (c *Chart) Get(id int) (model.Account, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (c *Chart) Exists(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Name returns the account's name, or the removed-account placeholder
// when the ID no longer resolves.
func (c *Chart) Name(id int) string {
	if a, ok := c.byID[id]; ok {
		return a.Name
	}
	return PlaceholderName
}

// ByType returns all accounts of the given type.
func (c *Chart) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Create validates and adds a new account.
func (s *Service) Create(a model.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name is required")
	}
	if !model.ValidAccountType(a.Type) {
		return fmt.Errorf("invalid account type %q", a.Type)
	}

	chart, err := s.Snapshot()
	if err != nil {
		return err
	}
	if chart.Exists(a.ID) {
		return fmt.Errorf("account %d already exists", a.ID)
	}
	return s.repo.SaveAccount(a)
}

// Delete removes an account. System accounts are refused by the store.
// Deleting an account still referenced by historical entries is
// allowed; reports label those lines with the removed placeholder.
func (s *Service) Delete(id int) error {
	if err := s.repo.DeleteAccount(id); err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}
	return nil
}

// Seed writes the default chart into an empty repository.
func (s *Service) Seed() error {
	chart, err := s.Snapshot()
	if err != nil {
		return err
	}
	if len(chart.All()) > 0 {
		return fmt.Errorf("chart of accounts already seeded")
	}
	for _, a := range DefaultChart() {
		if err := s.repo.SaveAccount(a); err != nil {
			return fmt.Errorf("seeding account %d: %w", a.ID, err)
		}
	}
	return nil
}
