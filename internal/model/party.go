package model

// PartyKind distinguishes customers from vendors.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyVendor   PartyKind = "vendor"
)

// Party is a customer or vendor profile referenced by invoices.
type Party struct {
	ID             string
	Name           string
	Kind           PartyKind
	Email          string
	Phone          string
	GSTIN          string
	Address        string
	CreditTermDays int
}
