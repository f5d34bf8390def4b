package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodNone    PaymentMethod = ""
	PaymentMethodPix     PaymentMethod = "pix"
	PaymentMethodBoleto  PaymentMethod = "boleto"
	PaymentMethodDebito  PaymentMethod = "debito"
	PaymentMethodCredito PaymentMethod = "credito"
)

const (
	MaxInstallments       = 24
	DefaultContractMonths = 12
	maxMarginPercent      = 1000
)

const moneyPlaces int32 = 2

var ErrInvalidInput = errors.New("invalid pricing input")

var hundred = decimal.NewFromInt(100)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return PaymentMethodNone, nil
	case "pix":
		return PaymentMethodPix, nil
	case "boleto":
		return PaymentMethodBoleto, nil
	case "debito", "débito", "debit":
		return PaymentMethodDebito, nil
	case "credito", "crédito", "credit":
		return PaymentMethodCredito, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, raw)
	}
}

// FeeTable holds the percentage charged by each payment method. Credit card
// sales pay CreditPerInstallment for every installment after the first.
type FeeTable struct {
	Pix                  decimal.Decimal
	Boleto               decimal.Decimal
	Debito               decimal.Decimal
	Credito              decimal.Decimal
	CreditPerInstallment decimal.Decimal
}

func DefaultFeeTable() FeeTable {
	return FeeTable{
		Pix:                  decimal.Zero,
		Boleto:               decimal.RequireFromString("1.99"),
		Debito:               decimal.RequireFromString("1.99"),
		Credito:              decimal.RequireFromString("4.99"),
		CreditPerInstallment: decimal.RequireFromString("1.49"),
	}
}

func (f FeeTable) Percent(method PaymentMethod, installments int) decimal.Decimal {
	switch method {
	case PaymentMethodPix:
		return f.Pix
	case PaymentMethodBoleto:
		return f.Boleto
	case PaymentMethodDebito:
		return f.Debito
	case PaymentMethodCredito:
		extra := installments - 1
		if extra < 0 {
			extra = 0
		}
		return f.Credito.Add(f.CreditPerInstallment.Mul(decimal.NewFromInt(int64(extra))))
	default:
		return decimal.Zero
	}
}

type Input struct {
	BaseCost      decimal.Decimal
	Freight       decimal.Decimal
	ExtraCosts    []decimal.Decimal
	MarginPercent decimal.Decimal
	PaymentMethod PaymentMethod
	Installments  int
}

func (in Input) Validate() error {
	if in.BaseCost.IsNegative() {
		return fmt.Errorf("%w: base cost must not be negative", ErrInvalidInput)
	}
	if in.Freight.IsNegative() {
		return fmt.Errorf("%w: freight must not be negative", ErrInvalidInput)
	}
	for i, extra := range in.ExtraCosts {
		if extra.IsNegative() {
			return fmt.Errorf("%w: extra cost %d must not be negative", ErrInvalidInput, i+1)
		}
	}
	if in.MarginPercent.IsNegative() || in.MarginPercent.GreaterThan(decimal.NewFromInt(maxMarginPercent)) {
		return fmt.Errorf("%w: margin must be between 0 and %d", ErrInvalidInput, maxMarginPercent)
	}
	if _, err := ParsePaymentMethod(string(in.PaymentMethod)); err != nil {
		return err
	}
	installments := in.installments()
	if installments > MaxInstallments {
		return fmt.Errorf("%w: at most %d installments", ErrInvalidInput, MaxInstallments)
	}
	if installments > 1 && in.PaymentMethod != PaymentMethodCredito {
		return fmt.Errorf("%w: installments are only available for credit card", ErrInvalidInput)
	}
	return nil
}

func (in Input) installments() int {
	if in.Installments < 1 {
		return 1
	}
	return in.Installments
}

func (in Input) TotalCost() decimal.Decimal {
	total := in.BaseCost.Add(in.Freight)
	for _, extra := range in.ExtraCosts {
		total = total.Add(extra)
	}
	return total
}

type Result struct {
	TotalCost        decimal.Decimal
	SaleValue        decimal.Decimal
	GrossProfit      decimal.Decimal
	TotalFees        decimal.Decimal
	NetProfit        decimal.Decimal
	ProfitPercent    decimal.Decimal
	InstallmentValue *decimal.Decimal
}

type RentalInput struct {
	Input
	ContractMonths int
}

type RentalResult struct {
	Result
	ContractValue  decimal.Decimal
	ContractMonths int
}

type Calculator struct {
	Fees                  FeeTable
	DefaultContractMonths int
}

func NewCalculator(fees FeeTable, defaultContractMonths int) Calculator {
	if defaultContractMonths <= 0 {
		defaultContractMonths = DefaultContractMonths
	}
	return Calculator{Fees: fees, DefaultContractMonths: defaultContractMonths}
}

// Product prices a one-off sale: markup over total cost, payment fees taken
// out of the profit.
func (c Calculator) Product(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	totalCost := in.TotalCost()
	sale := markup(totalCost, in.MarginPercent)

	res := c.settle(totalCost, sale, in.PaymentMethod, in.installments())
	res.SaleValue = round(sale)

	if n := in.installments(); n > 1 {
		value := round(sale.Div(decimal.NewFromInt(int64(n))))
		res.InstallmentValue = &value
	}
	return res, nil
}

// Rental spreads the marked-up cost over the contract and reports the
// periodic rate as SaleValue.
func (c Calculator) Rental(in RentalInput) (RentalResult, error) {
	if err := in.Validate(); err != nil {
		return RentalResult{}, err
	}
	months := in.ContractMonths
	if months < 0 {
		return RentalResult{}, fmt.Errorf("%w: contract duration must be positive", ErrInvalidInput)
	}
	if months == 0 {
		months = c.DefaultContractMonths
		if months <= 0 {
			months = DefaultContractMonths
		}
	}

	totalCost := in.TotalCost()
	contract := markup(totalCost, in.MarginPercent)

	res := c.settle(totalCost, contract, in.PaymentMethod, in.installments())
	res.SaleValue = round(contract.Div(decimal.NewFromInt(int64(months))))

	return RentalResult{
		Result:         res,
		ContractValue:  round(contract),
		ContractMonths: months,
	}, nil
}

func (c Calculator) settle(totalCost, revenue decimal.Decimal, method PaymentMethod, installments int) Result {
	fees := revenue.Mul(c.Fees.Percent(method, installments)).Div(hundred)
	gross := revenue.Sub(totalCost)
	net := gross.Sub(fees)

	profitPercent := decimal.Zero
	if revenue.IsPositive() {
		profitPercent = net.Div(revenue).Mul(hundred)
	}

	return Result{
		TotalCost:     round(totalCost),
		GrossProfit:   round(gross),
		TotalFees:     round(fees),
		NetProfit:     round(net),
		ProfitPercent: round(profitPercent),
	}
}

func markup(cost, marginPercent decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(marginPercent.Div(hundred)))
}

func round(value decimal.Decimal) decimal.Decimal {
	return value.Round(moneyPlaces)
}
