package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type AddressType string

const (
	AddressTypeResidential AddressType = "residencial"
	AddressTypeCommercial  AddressType = "comercial"
	AddressTypeDelivery    AddressType = "entrega"
	AddressTypeBilling     AddressType = "cobranca"
)

var ErrInvalidAddress = errors.New("invalid address")

// Address belongs to one user; at most one of a user's addresses is
// principal.
type Address struct {
	ID         uuid.UUID   `gorm:"column:id;primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"column:user_id" json:"user_id"`
	Type       AddressType `gorm:"column:type" json:"tipo"`
	CEP        string      `gorm:"column:cep" json:"cep"`
	Street     string      `gorm:"column:street" json:"logradouro"`
	Number     string      `gorm:"column:number" json:"numero"`
	Complement string      `gorm:"column:complement" json:"complemento"`
	District   string      `gorm:"column:district" json:"bairro"`
	City       string      `gorm:"column:city" json:"cidade"`
	State      string      `gorm:"column:state" json:"estado"`
	Principal  bool        `gorm:"column:principal" json:"principal"`
	CreatedAt  time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}

// Normalize strips CEP formatting and tidies free-text fields.
func (a *Address) Normalize() {
	a.CEP = digitsOnly(a.CEP)
	a.State = strings.ToUpper(strings.TrimSpace(a.State))
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.Complement = strings.TrimSpace(a.Complement)
	a.District = strings.TrimSpace(a.District)
	a.City = strings.TrimSpace(a.City)
	a.Type = AddressType(strings.ToLower(strings.TrimSpace(string(a.Type))))
}

func (a *Address) Validate() error {
	switch a.Type {
	case AddressTypeResidential, AddressTypeCommercial, AddressTypeDelivery, AddressTypeBilling:
	default:
		return fmt.Errorf("%w: tipo must be one of residencial, comercial, entrega, cobranca", ErrInvalidAddress)
	}
	if len(a.CEP) != 8 {
		return fmt.Errorf("%w: cep must have 8 digits", ErrInvalidAddress)
	}
	required := map[string]string{
		"logradouro": a.Street,
		"numero":     a.Number,
		"bairro":     a.District,
		"cidade":     a.City,
	}
	for _, field := range []string{"logradouro", "numero", "bairro", "cidade"} {
		if required[field] == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidAddress, field)
		}
	}
	if !ValidState(a.State) {
		return fmt.Errorf("%w: estado must be a valid UF", ErrInvalidAddress)
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
