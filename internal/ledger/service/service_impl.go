package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	CustomerRepo customerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	customerRepo customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("ledger.service"),
		genID:        p.GenID,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) TopUp(ctx context.Context, customerID string, amount int64, description string) (domain.TopUpResult, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return domain.TopUpResult{}, err
	}
	if amount <= 0 {
		return domain.TopUpResult{}, domain.ErrInvalidAmount
	}

	var result domain.TopUpResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn := s.newTransaction(id, domain.TransactionIn, amount, nil, domain.CategoryTopUp, description)
		if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
			return err
		}

		balance, err := s.rematerializeBalance(ctx, tx, id)
		if err != nil {
			return err
		}

		result = domain.TopUpResult{Transaction: txn, NewBalance: balance}
		return nil
	})
	if err != nil {
		return domain.TopUpResult{}, err
	}

	s.log.Info("top-up applied",
		zap.String("customer_id", id.String()),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", result.NewBalance),
	)
	return result, nil
}

func (s *Service) AutoPayAfterTopUp(ctx context.Context, customerID string, available int64) (domain.AutoPayResult, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return domain.AutoPayResult{}, err
	}
	if available < 0 {
		// A balance still in debt after the top-up leaves nothing to settle.
		available = 0
	}

	var result domain.AutoPayResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices, err := s.unpaidInvoicesFIFO(ctx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range invoices {
			inv := &invoices[i]

			remaining, err := s.remainingAmount(ctx, tx, inv)
			if err != nil {
				return err
			}
			if remaining <= 0 {
				// Stale UNPAID status with nothing left to pay; heal it.
				if err := s.markPaid(ctx, tx, inv.ID, now); err != nil {
					return err
				}
				continue
			}
			if available <= 0 {
				break
			}

			apply := available
			if remaining < apply {
				apply = remaining
			}

			txn := s.newTransaction(id, domain.TransactionOut, apply, &inv.ID, domain.CategoryPayment, "pembayaran "+inv.InvoiceNumber)
			if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
				return err
			}

			available -= apply
			result.TotalApplied += apply
			if apply == remaining {
				if err := s.markPaid(ctx, tx, inv.ID, now); err != nil {
					return err
				}
				result.InvoicesPaid++
			}
		}

		balance, err := s.rematerializeBalance(ctx, tx, id)
		if err != nil {
			return err
		}
		result.NewBalance = balance
		return nil
	})
	if err != nil {
		return domain.AutoPayResult{}, err
	}

	s.log.Info("auto-pay settled",
		zap.String("customer_id", id.String()),
		zap.Int("invoices_paid", result.InvoicesPaid),
		zap.Int64("total_applied", result.TotalApplied),
		zap.Int64("new_balance", result.NewBalance),
	)
	return result, nil
}

func (s *Service) PayAllUnpaid(ctx context.Context, customerID string) (domain.PayAllResult, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return domain.PayAllResult{}, err
	}

	var result domain.PayAllResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balance, err := s.deriveBalance(ctx, tx, id)
		if err != nil {
			return err
		}

		invoices, err := s.unpaidInvoicesFIFO(ctx, tx, id)
		if err != nil {
			return err
		}

		type due struct {
			invoice   *invoicedomain.Invoice
			remaining int64
		}
		dues := make([]due, 0, len(invoices))
		var outstanding int64
		for i := range invoices {
			remaining, err := s.remainingAmount(ctx, tx, &invoices[i])
			if err != nil {
				return err
			}
			if remaining <= 0 {
				continue
			}
			dues = append(dues, due{invoice: &invoices[i], remaining: remaining})
			outstanding += remaining
		}

		if outstanding == 0 {
			result.NewBalance = balance
			return nil
		}
		if balance < outstanding {
			// Returning the error rolls back the transaction: no partial
			// payment on this path.
			return &domain.InsufficientBalanceError{Shortfall: outstanding - balance}
		}

		now := time.Now().UTC()
		for _, d := range dues {
			txn := s.newTransaction(id, domain.TransactionOut, d.remaining, &d.invoice.ID, domain.CategoryPayment, "pelunasan "+d.invoice.InvoiceNumber)
			if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
				return err
			}
			if err := s.markPaid(ctx, tx, d.invoice.ID, now); err != nil {
				return err
			}
			result.InvoicesPaid++
			result.TotalPaid += d.remaining
		}

		newBalance, err := s.rematerializeBalance(ctx, tx, id)
		if err != nil {
			return err
		}
		result.NewBalance = newBalance
		return nil
	})
	if err != nil {
		return domain.PayAllResult{}, err
	}

	return result, nil
}

func (s *Service) Adjust(ctx context.Context, customerID string, amount int64, direction domain.AdjustDirection, description string) (domain.TopUpResult, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return domain.TopUpResult{}, err
	}
	if amount <= 0 {
		return domain.TopUpResult{}, domain.ErrInvalidAmount
	}

	var txType domain.TransactionType
	switch direction {
	case domain.AdjustAdd:
		txType = domain.TransactionIn
	case domain.AdjustDeduct:
		txType = domain.TransactionOut
	default:
		return domain.TopUpResult{}, domain.ErrInvalidDirection
	}

	var result domain.TopUpResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn := s.newTransaction(id, txType, amount, nil, domain.CategoryAdjustment, description)
		if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
			return err
		}

		balance, err := s.rematerializeBalance(ctx, tx, id)
		if err != nil {
			return err
		}
		result = domain.TopUpResult{Transaction: txn, NewBalance: balance}
		return nil
	})
	if err != nil {
		return domain.TopUpResult{}, err
	}

	s.log.Info("adjustment applied",
		zap.String("customer_id", id.String()),
		zap.String("direction", string(direction)),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", result.NewBalance),
	)
	return result, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.AccountTransaction, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var txns []domain.AccountTransaction
	err = s.db.WithContext(ctx).
		Where("customer_id = ?", id).
		Order("transaction_date desc, id desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Service) newTransaction(customerID snowflake.ID, txType domain.TransactionType, amount int64, invoiceID *snowflake.ID, category, description string) domain.AccountTransaction {
	now := time.Now().UTC()
	return domain.AccountTransaction{
		ID:              s.genID.Generate(),
		CustomerID:      customerID,
		Type:            txType,
		Amount:          amount,
		TransactionDate: now,
		InvoiceID:       invoiceID,
		Category:        category,
		Description:     strings.TrimSpace(description),
		CreatedAt:       now,
	}
}

// deriveBalance computes the balance from the transaction set.
func (s *Service) deriveBalance(ctx context.Context, tx *gorm.DB, customerID snowflake.ID) (int64, error) {
	var balance int64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)
		 FROM account_transactions
		 WHERE customer_id = ?`,
		domain.TransactionIn,
		customerID,
	).Scan(&balance).Error
	return balance, err
}

// rematerializeBalance refreshes the cached customers.current_balance column
// from the transaction set. It must run inside the transaction that appended
// the rows, so the cache is never observably out of sync.
func (s *Service) rematerializeBalance(ctx context.Context, tx *gorm.DB, customerID snowflake.ID) (int64, error) {
	balance, err := s.deriveBalance(ctx, tx, customerID)
	if err != nil {
		return 0, err
	}

	err = tx.WithContext(ctx).Exec(
		`UPDATE customers SET current_balance = ?, updated_at = ? WHERE id = ?`,
		balance,
		time.Now().UTC(),
		customerID,
	).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// unpaidInvoicesFIFO orders unpaid invoices oldest billed period first,
// joining through the reading because the invoice row does not carry the
// period itself.
func (s *Service) unpaidInvoicesFIFO(ctx context.Context, tx *gorm.DB, customerID snowflake.ID) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := tx.WithContext(ctx).Raw(
		`SELECT i.*
		 FROM invoices i
		 JOIN meter_readings r ON r.id = i.reading_id
		 WHERE i.customer_id = ? AND i.status = ?
		 ORDER BY r.period_year ASC, r.period_month ASC, i.id ASC`,
		customerID,
		invoicedomain.InvoiceStatusUnpaid,
	).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) remainingAmount(ctx context.Context, tx *gorm.DB, inv *invoicedomain.Invoice) (int64, error) {
	var paid int64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM account_transactions
		 WHERE invoice_id = ? AND type = ?`,
		inv.ID,
		domain.TransactionOut,
	).Scan(&paid).Error
	if err != nil {
		return 0, err
	}

	remaining := inv.TotalAmount - paid
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *Service) markPaid(ctx context.Context, tx *gorm.DB, invoiceID snowflake.ID, paidAt time.Time) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		invoicedomain.InvoiceStatusPaid,
		paidAt,
		paidAt,
		invoiceID,
	).Error
}

func (s *Service) resolveCustomer(ctx context.Context, customerID string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, customerdomain.ErrNotFound
	}
	return id, nil
}
