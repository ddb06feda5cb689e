// Package pricing derives the financial fields of a sale from its raw
// inputs. All functions are pure and operate on whole pesos (int64).
package pricing

// Status represents the payment state of a sale.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusUnpaid  Status = "unpaid"
)

// taxRatePercent is the VAT rate applied to the net amount.
const taxRatePercent = 19

// Tax returns the VAT for a net amount, rounded half away from zero.
func Tax(net int64) int64 {
	if net < 0 {
		return -Tax(-net)
	}

	return (net*taxRatePercent + 50) / 100
}

// Total returns the gross amount of a sale.
func Total(net, tax int64) int64 {
	return net + tax
}

// Debt returns the outstanding balance after both installments.
// Overpayment clamps to zero; excess is not tracked as credit.
func Debt(total, installment1, installment2 int64) int64 {
	d := total - (installment1 + installment2)
	if d < 0 {
		return 0
	}

	return d
}

// PaymentStatus classifies a sale from its debt and installments.
// A sale with zero total and no installments is paid.
func PaymentStatus(debt, installment1, installment2 int64) Status {
	if debt == 0 {
		return StatusPaid
	}

	if installment1+installment2 > 0 {
		return StatusPartial
	}

	return StatusUnpaid
}

// Profit returns the margin of a sale. When the base cost is unknown the
// net amount stands in for it, so ad-hoc sales report tax-only margin.
func Profit(saleAmount int64, cost *int64, net int64) int64 {
	if cost != nil {
		return saleAmount - *cost
	}

	return saleAmount - net
}

// Input holds the raw fields a sale is derived from.
type Input struct {
	Net          int64
	Installment1 int64
	Installment2 int64

	// SaleAmount overrides the derived sale amount when set.
	SaleAmount *int64

	// Cost is the base cost used for profit; net is used when nil.
	Cost *int64
}

// Breakdown holds every derived field of a sale. The fields are always
// produced together; storing a subset of them is a bug.
type Breakdown struct {
	Tax        int64
	Total      int64
	Debt       int64
	SaleAmount int64
	Profit     int64
	Status     Status
}

// Calculate derives all financial fields from the input. It is the single
// entry point the store uses when materializing or recalculating a sale.
func Calculate(in Input) Breakdown {
	tax := Tax(in.Net)
	total := Total(in.Net, tax)
	debt := Debt(total, in.Installment1, in.Installment2)

	saleAmount := total
	if in.SaleAmount != nil {
		saleAmount = *in.SaleAmount
	}

	return Breakdown{
		Tax:        tax,
		Total:      total,
		Debt:       debt,
		SaleAmount: saleAmount,
		Profit:     Profit(saleAmount, in.Cost, in.Net),
		Status:     PaymentStatus(debt, in.Installment1, in.Installment2),
	}
}
