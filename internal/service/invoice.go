package service

import (
	"fmt"
	"math/rand/v2"
)

const maxInvoiceAttempts = 5

// InvoiceGenerator proposes invoice numbers. Uniqueness is checked by the caller.
type InvoiceGenerator interface {
	Next() string
}

type randomInvoices struct {
	prefix string
}

// NewInvoiceGenerator returns numbers shaped <prefix>-NNNNNN.
func NewInvoiceGenerator(prefix string) InvoiceGenerator {
	return randomInvoices{prefix: prefix}
}

func (g randomInvoices) Next() string {
	return fmt.Sprintf("%s-%06d", g.prefix, 100000+rand.IntN(900000))
}
