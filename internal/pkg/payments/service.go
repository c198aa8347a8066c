package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
)

var (
	// ErrUnknownIntent is returned when a confirmation references a gateway
	// intent this service never issued.
	ErrUnknownIntent = errors.New("unknown payment intent")
	// ErrIntentOwnership is returned when a confirmation references an
	// intent issued to a different user.
	ErrIntentOwnership = errors.New("payment intent belongs to another user")
	// ErrIntentMismatch is returned when the confirmed amount or payment
	// type differs from what was staged at the gateway.
	ErrIntentMismatch = errors.New("payment does not match its staged intent")
)

// GatewayClient is the capability interface the service needs from the
// payment gateway.
type GatewayClient interface {
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
}

// Service owns the two-phase payment flow: staging intents at the gateway
// with a durable local ledger entry, and recording client-confirmed charges
// exactly once.
type Service struct {
	repo    repository.PaymentRepository
	gateway GatewayClient
}

// NewService creates a payment service from injected dependencies.
func NewService(repo repository.PaymentRepository, gateway GatewayClient) *Service {
	return &Service{repo: repo, gateway: gateway}
}

// CreateIntent stages a charge at the gateway and persists a pending intent
// row before the client secret is released. Amount is in whole currency
// units; the gateway is billed in minor units.
func (s *Service) CreateIntent(ctx context.Context, userID string, amount int64, paymentType string) (*models.PaymentIntent, string, error) {
	if amount <= 0 {
		return nil, "", errors.New("amount must be positive")
	}
	if !models.ValidPaymentType(paymentType) {
		return nil, "", fmt.Errorf("invalid payment type %q", paymentType)
	}

	key := uuid.NewString()
	intent, err := s.gateway.CreatePaymentIntent(ctx, CreateIntentParams{
		AmountMinor: amount * 100,
		Currency:    "usd",
		Metadata: map[string]string{
			"user_id":      userID,
			"payment_type": paymentType,
		},
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create gateway intent: %w", err)
	}

	record := &models.PaymentIntent{
		ID:             intent.ID,
		UserID:         userID,
		Amount:         amount,
		PaymentType:    paymentType,
		IdempotencyKey: key,
		Status:         models.IntentStatusPending,
	}
	if err := s.repo.CreateIntent(record); err != nil {
		return nil, "", fmt.Errorf("persist payment intent: %w", err)
	}

	return record, intent.ClientSecret, nil
}

// RecordCompleted inserts the completed payment row for a client-confirmed
// charge. Every confirmation must reference a pending intent owned by the
// caller and match its staged amount and type; replaying the same gateway
// intent returns the already-recorded payment instead of creating a
// duplicate.
func (s *Service) RecordCompleted(ctx context.Context, userID, taxProfileID string, amount int64, paymentType, gatewayIntentID string) (*models.Payment, error) {
	_ = ctx
	gatewayIntentID = strings.TrimSpace(gatewayIntentID)
	if gatewayIntentID == "" {
		return nil, ErrUnknownIntent
	}

	if existing, err := s.repo.GetByGatewayIntentID(gatewayIntentID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	intent, err := s.repo.GetIntent(gatewayIntentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownIntent
		}
		return nil, err
	}
	if intent.UserID != userID {
		return nil, ErrIntentOwnership
	}
	if intent.Amount != amount || intent.PaymentType != paymentType {
		return nil, ErrIntentMismatch
	}

	payment := &models.Payment{
		UserID:          userID,
		TaxProfileID:    taxProfileID,
		Amount:          amount,
		PaymentType:     paymentType,
		Status:          models.PaymentStatusCompleted,
		GatewayIntentID: &gatewayIntentID,
	}
	if err := s.repo.Create(payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	// The payment row is the durable record; a failed consume flag only
	// delays intent cleanup and must not fail a recorded charge.
	if err := s.repo.MarkIntentConsumed(gatewayIntentID); err != nil {
		fiberlog.Error(fmt.Sprintf("mark intent %s consumed failed: %v", gatewayIntentID, err))
	}
	return payment, nil
}
