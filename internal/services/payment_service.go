package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/request_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/gateway"
	"tradewise/pkg/utils"
)

const providerRazorpay = "razorpay"

type PaymentService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, planID string) (*response_models.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID uuid.UUID, req request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.TransactionResponse, error)
	GetTransaction(ctx context.Context, userID uuid.UUID, transactionID string) (*response_models.TransactionResponse, error)
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	db       *gorm.DB
	txns     repositories.ITransactionRepository
	gw       gateway.Gateway
	settings SettingsServiceInterface
	mail     IMailService
	loc      *time.Location
}

func NewPaymentService(db *gorm.DB, gw gateway.Gateway, settings SettingsServiceInterface, mail IMailService) (PaymentService, error) {
	if gw == nil {
		return nil, utils.ErrGatewayUnavailable
	}

	return &paymentService{
		db:       db,
		txns:     repositories.NewTransactionRepository(db),
		gw:       gw,
		settings: settings,
		mail:     mail,
		loc:      utils.ISTLocation(),
	}, nil
}

// CreateOrder creates a pending transaction and a matching gateway order. A
// pending row that the user abandons is never cleaned up here; retrying the
// pay action always mints a fresh transaction.
func (p *paymentService) CreateOrder(ctx context.Context, userID uuid.UUID, planID string) (*response_models.CreateOrderResponse, error) {
	// Accept either a plan id or a slug; malformed uuid input would error on
	// the uuid column, so branch instead of OR-ing the predicates.
	planQuery := "slug = ?"
	if _, err := uuid.Parse(planID); err == nil {
		planQuery = "id = ?"
	}

	var plan db_models.Plan
	if err := p.db.WithContext(ctx).
		Where(planQuery, planID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrPlanNotFound
		}
		return nil, utils.ErrDatabaseError
	}

	if !plan.IsActive {
		return nil, utils.ErrPlanInactive
	}

	base, ok := plan.Price()
	if !ok {
		return nil, utils.ErrPlanNotBillable
	}

	// Base, tax and total are frozen now; invoices read these columns and
	// never recompute from the rate in force later.
	taxRate := p.settings.TaxRatePercent()
	taxAmount := utils.TaxAmount(base, taxRate)
	total := utils.TotalWithTax(base, taxRate)

	txn := &db_models.Transaction{
		UserID:     userID,
		PlanID:     plan.ID,
		BaseAmount: base,
		TaxAmount:  taxAmount,
		Amount:     total,
		TaxRate:    taxRate,
		Currency:   plan.Currency,
		Status:     db_models.TxnStatusPending,
		PlanType:   plan.PlanType,
		Provider:   providerRazorpay,
	}

	if err := p.txns.Insert(ctx, txn); err != nil {
		return nil, fmt.Errorf("create transaction: %w", utils.ErrDatabaseError)
	}

	order, err := p.gw.CreateOrder(ctx, gateway.CreateOrderParams{
		AmountMinor: utils.ToMinorUnits(total),
		Currency:    plan.Currency,
		Receipt:     txn.ID.String(),
		Notes: map[string]interface{}{
			"plan_id": plan.ID.String(),
			"user_id": userID.String(),
		},
	})
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).
			Updates(map[string]interface{}{
				"status":        db_models.TxnStatusFailed,
				"error_message": err.Error(),
			}).Error
		log.Printf("payment: gateway order for txn %s failed: %v", txn.ID, err)
		return nil, utils.ErrGatewayRejected
	}

	if err := p.db.WithContext(ctx).Model(txn).
		Update("razorpay_order_id", order.ID).Error; err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateOrderResponse{
		TransactionID: txn.ID,
		OrderID:       order.ID,
		Amount:        order.AmountMinor,
		Currency:      order.Currency,
		Key:           p.gw.KeyID(),
		PlanName:      plan.Name,
	}, nil
}

// VerifyPayment validates the gateway-signed success payload and settles the
// transaction. The signature is the trust anchor: a mismatch is terminal for
// the transaction and is reported distinctly from gateway declines.
func (p *paymentService) VerifyPayment(ctx context.Context, userID uuid.UUID, req request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error) {
	if _, err := uuid.Parse(req.TransactionID); err != nil {
		return nil, utils.ErrTransactionNotFound
	}

	txn, err := p.txns.GetById(ctx, req.TransactionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}

	if txn.UserID != userID {
		return nil, utils.ErrUnauthorized
	}
	if txn.Closed() {
		return nil, utils.ErrTransactionClosed
	}
	if txn.RazorpayOrderID == "" || txn.RazorpayOrderID != req.RazorpayOrderID {
		return nil, p.rejectTransaction(ctx, txn, "order id mismatch")
	}

	if !p.gw.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, p.rejectTransaction(ctx, txn, "signature verification failed")
	}

	if err := p.settle(ctx, txn, req.RazorpayPaymentID, req.RazorpaySubscriptionID); err != nil {
		if errors.Is(err, utils.ErrTransactionClosed) {
			// The webhook got there first; the payment is already settled.
			return nil, utils.ErrTransactionClosed
		}
		log.Printf("payment: settle txn %s failed: %v", txn.ID, err)
		return nil, utils.ErrDatabaseError
	}

	p.sendReceipt(ctx, txn)

	return &response_models.VerifyPaymentResponse{
		TransactionID: txn.ID,
		PaymentID:     req.RazorpayPaymentID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Status:        string(db_models.TxnStatusSuccess),
	}, nil
}

// rejectTransaction flips a pending transaction to failed and returns the
// verification error the caller surfaces.
func (p *paymentService) rejectTransaction(ctx context.Context, txn *db_models.Transaction, reason string) error {
	if err := p.db.WithContext(ctx).Model(txn).
		Updates(map[string]interface{}{
			"status":        db_models.TxnStatusFailed,
			"error_message": reason,
		}).Error; err != nil {
		log.Printf("payment: mark txn %s failed: %v", txn.ID, err)
	}
	return utils.ErrSignatureMismatch
}

// settle flips the transaction to success and creates or extends the
// subscription, atomically. Commission for the referring associate rides in
// the same database transaction. The flip is conditional on the row still
// being pending so that the webhook and the client verify path cannot both
// settle one payment: the first writer wins and the second aborts.
func (p *paymentService) settle(ctx context.Context, txn *db_models.Transaction, paymentID, subscriptionID string) error {
	now := time.Now().Unix()
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":              db_models.TxnStatusSuccess,
			"paid_at":             now,
			"razorpay_payment_id": paymentID,
		}
		if subscriptionID != "" {
			updates["razorpay_subscription_id"] = subscriptionID
		}
		res := tx.Model(txn).
			Where("status = ?", db_models.TxnStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrTransactionClosed
		}
		if err := p.activateSubscription(tx, txn, subscriptionID); err != nil {
			return err
		}
		return p.recordCommission(tx, txn)
	})
}

func (p *paymentService) activateSubscription(tx *gorm.DB, txn *db_models.Transaction, subscriptionID string) error {
	var plan db_models.Plan
	if err := tx.First(&plan, "id = ?", txn.PlanID).Error; err != nil {
		return fmt.Errorf("plan not found while activating: %w", err)
	}

	now := time.Now().In(p.loc)
	starts := now

	// At most one active subscription per user: a renewal of the same plan
	// extends from the current window's end; anything else supersedes it.
	var current db_models.Subscription
	err := tx.
		Where("user_id = ? AND status = ?", txn.UserID, db_models.SubStatusActive).
		Order("starts_at DESC").
		First(&current).Error

	if err == nil {
		samePlan := current.PlanID == plan.ID && current.AutoRenew
		if samePlan && current.EndsAt != nil && *current.EndsAt > now.Unix() {
			starts = time.Unix(*current.EndsAt, 0).In(p.loc)
		}
		if err := tx.Model(&current).
			Update("status", db_models.SubStatusExpired).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var endsAt *int64
	switch plan.PlanType {
	case db_models.PlanTypeMonthly:
		e := starts.AddDate(0, 1, 0).Unix()
		endsAt = &e
	case db_models.PlanTypeYearly:
		e := starts.AddDate(1, 0, 0).Unix()
		endsAt = &e
	default:
		// lifetime and custom plans have no end date
	}

	sub := db_models.Subscription{
		UserID:                 txn.UserID,
		PlanID:                 plan.ID,
		PlanName:               plan.Name,
		PlanType:               plan.PlanType,
		Status:                 db_models.SubStatusActive,
		StartsAt:               starts.Unix(),
		EndsAt:                 endsAt,
		AutoRenew:              endsAt != nil,
		Provider:               providerRazorpay,
		RazorpaySubscriptionID: subscriptionID,
	}

	return tx.Create(&sub).Error
}

func (p *paymentService) recordCommission(tx *gorm.DB, txn *db_models.Transaction) error {
	var payer db_models.User
	if err := tx.First(&payer, "id = ?", txn.UserID).Error; err != nil {
		return err
	}
	if payer.ReferredBy == "" {
		return nil
	}

	var associate db_models.User
	err := tx.
		Where("referral_code = ? AND role = ?", payer.ReferredBy, "associate").
		First(&associate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stale referral code; not the payer's problem.
			return nil
		}
		return err
	}

	rate := p.settings.CommissionRatePercent()
	if rate <= 0 {
		return nil
	}

	commission := db_models.Commission{
		AssociateID:   associate.ID,
		TransactionID: txn.ID,
		Amount:        utils.Round2(txn.BaseAmount * rate / 100),
		RatePct:       rate,
		Currency:      txn.Currency,
		Status:        db_models.CommissionStatusPending,
	}

	return tx.Create(&commission).Error
}

func (p *paymentService) sendReceipt(ctx context.Context, txn *db_models.Transaction) {
	if p.mail == nil {
		return
	}

	var payer db_models.User
	if err := p.db.WithContext(ctx).First(&payer, "id = ?", txn.UserID).Error; err != nil {
		return
	}

	if err := p.mail.SendPaymentReceipt(payer.Email, payer.Name, txn.ID.String(),
		txn.Amount, txn.Currency); err != nil {
		log.Printf("payment: receipt mail for txn %s failed: %v", txn.ID, err)
	}
}

func (p *paymentService) ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.TransactionResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	txns, err := p.txns.ListByUser(ctx, userID.String(), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		result = append(result, toTransactionResponse(&txns[i]))
	}

	return result, nil
}

func (p *paymentService) GetTransaction(ctx context.Context, userID uuid.UUID, transactionID string) (*response_models.TransactionResponse, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, utils.ErrTransactionNotFound
	}

	txn, err := p.txns.GetById(ctx, transactionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil || txn.UserID != userID {
		return nil, utils.ErrTransactionNotFound
	}

	resp := toTransactionResponse(txn)
	return &resp, nil
}

func toTransactionResponse(txn *db_models.Transaction) response_models.TransactionResponse {
	return response_models.TransactionResponse{
		ID:                txn.ID,
		PlanID:            txn.PlanID,
		BaseAmount:        txn.BaseAmount,
		TaxAmount:         txn.TaxAmount,
		Amount:            txn.Amount,
		Currency:          txn.Currency,
		Status:            string(txn.Status),
		RazorpayOrderID:   txn.RazorpayOrderID,
		RazorpayPaymentID: txn.RazorpayPaymentID,
		CreatedAt:         txn.CreatedAt,
		PaidAt:            txn.PaidAt,
		ErrorMessage:      txn.ErrorMessage,
	}
}

type razorpayWebhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
		Subscription struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"subscription"`
	} `json:"payload"`
}

// HandleWebhook settles transactions for users who paid but never returned to
// the app. It is idempotent against the client verify path: whichever writer
// reaches the row first wins, the other sees a closed transaction.
func (p *paymentService) HandleWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: read body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !p.gw.VerifyWebhookSignature(rawBody, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var body razorpayWebhookBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		log.Printf("webhook: parse payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	if body.Event != "payment.captured" {
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		return
	}

	orderID := body.Payload.Payment.Entity.OrderID
	ctx := c.Request.Context()

	txn, err := p.txns.GetByOrderId(ctx, orderID)
	if err != nil {
		log.Printf("webhook: lookup order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		return
	}
	if txn == nil {
		// Ack unknown orders to avoid a retry storm, but log for
		// investigation.
		log.Printf("webhook: transaction not found for order %s", orderID)
		c.JSON(http.StatusOK, gin.H{"message": "Unknown order"})
		return
	}

	if txn.Closed() {
		c.JSON(http.StatusOK, gin.H{"message": "Already settled"})
		return
	}

	subID := body.Payload.Subscription.Entity.ID
	if err := p.settle(ctx, txn, body.Payload.Payment.Entity.ID, subID); err != nil {
		if errors.Is(err, utils.ErrTransactionClosed) {
			c.JSON(http.StatusOK, gin.H{"message": "Already settled"})
			return
		}
		log.Printf("webhook: settle txn %s failed: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		return
	}

	p.sendReceipt(ctx, txn)
	c.JSON(http.StatusOK, gin.H{"message": "Processed"})
}
