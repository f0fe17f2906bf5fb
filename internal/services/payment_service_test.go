package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradewise/internal/infra"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/request_models"
	"tradewise/pkg/gateway"
	"tradewise/pkg/utils"
)

const (
	testKeySecret     = "test_secret"
	testWebhookSecret = "webhook_secret"
)

// fakeGateway signs and verifies with the same HMAC scheme as the real one,
// without any network I/O.
type fakeGateway struct {
	orders  int
	failing bool
}

func (f *fakeGateway) CreateOrder(ctx context.Context, p gateway.CreateOrderParams) (*gateway.Order, error) {
	if f.failing {
		return nil, errors.New("order creation failed")
	}
	f.orders++
	return &gateway.Order{
		ID:          fmt.Sprintf("order_test%d", f.orders),
		AmountMinor: p.AmountMinor,
		Currency:    p.Currency,
		Receipt:     p.Receipt,
		Status:      "created",
	}, nil
}

func (f *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return signature == signPayment(orderID, paymentID)
}

func (f *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return signature == hex.EncodeToString(mac.Sum(nil))
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fixedSettings struct{}

func (fixedSettings) Get(key string) string              { return "" }
func (fixedSettings) Snapshot() map[string]string        { return nil }
func (fixedSettings) Refresh(ctx context.Context) error  { return nil }
func (fixedSettings) Upsert(ctx context.Context, k, v string) error { return nil }
func (fixedSettings) TaxRatePercent() float64            { return 18 }
func (fixedSettings) CommissionRatePercent() float64     { return 10 }
func (fixedSettings) CurrencySymbol() string             { return "₹" }
func (fixedSettings) CurrencyCode() string               { return "INR" }

func setupPaymentService(t *testing.T) (*gorm.DB, PaymentService, *fakeGateway) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gw := &fakeGateway{}
	svc, err := NewPaymentService(db, gw, fixedSettings{}, nil)
	if err != nil {
		t.Fatalf("NewPaymentService: %v", err)
	}

	return db, svc, gw
}

func createTestUser(t *testing.T, db *gorm.DB, role, referralCode, referredBy string) *db_models.User {
	t.Helper()
	u := &db_models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Role:         role,
		ReferralCode: referralCode,
		ReferredBy:   referredBy,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestPlan(t *testing.T, db *gorm.DB, planType db_models.PlanType, price float64, active bool) *db_models.Plan {
	t.Helper()
	p := &db_models.Plan{
		Name:     fmt.Sprintf("%s plan", planType),
		Slug:     fmt.Sprintf("%s-%s", planType, uuid.NewString()[:8]),
		PlanType: planType,
		Currency: "INR",
		IsActive: active,
	}
	switch planType {
	case db_models.PlanTypeMonthly:
		p.MonthlyPrice = &price
	case db_models.PlanTypeYearly:
		p.YearlyPrice = &price
	default:
		p.LifetimePrice = &price
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return p
}

func TestCreateOrderFreezesPricing(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	resp, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if resp.Amount != 117882 {
		t.Errorf("gateway amount = %d paise, want 117882", resp.Amount)
	}
	if resp.Key != "rzp_test_key" {
		t.Errorf("key = %s, want rzp_test_key", resp.Key)
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", resp.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.BaseAmount != 999 || txn.TaxAmount != 179.82 || txn.Amount != 1178.82 {
		t.Errorf("stored pricing = %v/%v/%v, want 999/179.82/1178.82",
			txn.BaseAmount, txn.TaxAmount, txn.Amount)
	}
	if txn.TaxRate != 18 {
		t.Errorf("tax rate = %v, want 18", txn.TaxRate)
	}
	if txn.Status != db_models.TxnStatusPending {
		t.Errorf("status = %s, want pending", txn.Status)
	}
	if txn.RazorpayOrderID != resp.OrderID {
		t.Errorf("order id not persisted on the transaction")
	}
}

func TestCreateOrderBySlug(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeYearly, 9999, true)

	if _, err := svc.CreateOrder(context.Background(), user.ID, plan.Slug); err != nil {
		t.Fatalf("CreateOrder by slug: %v", err)
	}
}

func TestCreateOrderRejectsUnknownAndInactivePlans(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")

	if _, err := svc.CreateOrder(context.Background(), user.ID, uuid.NewString()); !errors.Is(err, utils.ErrPlanNotFound) {
		t.Errorf("unknown plan: err = %v, want %v", err, utils.ErrPlanNotFound)
	}

	inactive := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, false)
	if _, err := svc.CreateOrder(context.Background(), user.ID, inactive.ID.String()); !errors.Is(err, utils.ErrPlanInactive) {
		t.Errorf("inactive plan: err = %v, want %v", err, utils.ErrPlanInactive)
	}
}

func TestCreateOrderGatewayFailureMarksTransactionFailed(t *testing.T) {
	db, svc, gw := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	gw.failing = true
	if _, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String()); !errors.Is(err, utils.ErrGatewayRejected) {
		t.Fatalf("err = %v, want %v", err, utils.ErrGatewayRejected)
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Status != db_models.TxnStatusFailed {
		t.Errorf("status = %s, want failed", txn.Status)
	}
}

func TestVerifyPaymentActivatesSubscription(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	resp, err := svc.VerifyPayment(context.Background(), user.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_test1",
		RazorpaySignature: signPayment(order.OrderID, "pay_test1"),
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %s, want success", resp.Status)
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Status != db_models.TxnStatusSuccess {
		t.Errorf("txn status = %s, want success", txn.Status)
	}
	if txn.PaidAt == nil {
		t.Error("paid_at not set")
	}
	if txn.RazorpayPaymentID != "pay_test1" {
		t.Errorf("payment id = %s, want pay_test1", txn.RazorpayPaymentID)
	}

	var subs []db_models.Subscription
	if err := db.Where("user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Find(&subs).Error; err != nil {
		t.Fatalf("load subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("active subscriptions = %d, want 1", len(subs))
	}
	sub := subs[0]
	if sub.PlanID != plan.ID || sub.PlanName != plan.Name {
		t.Errorf("subscription not linked to the paid plan: %+v", sub)
	}
	if sub.EndsAt == nil {
		t.Fatal("monthly subscription must have an end date")
	}
	wantEnd := time.Unix(sub.StartsAt, 0).AddDate(0, 1, 0).Unix()
	if *sub.EndsAt != wantEnd {
		t.Errorf("ends_at = %d, want %d", *sub.EndsAt, wantEnd)
	}

	// Settling twice is refused.
	_, err = svc.VerifyPayment(context.Background(), user.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_test1",
		RazorpaySignature: signPayment(order.OrderID, "pay_test1"),
	})
	if !errors.Is(err, utils.ErrTransactionClosed) {
		t.Errorf("second verify err = %v, want %v", err, utils.ErrTransactionClosed)
	}
}

func TestVerifyPaymentRejectsTamperedSignature(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	_, err = svc.VerifyPayment(context.Background(), user.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_test1",
		RazorpaySignature: "deadbeef",
	})
	if !errors.Is(err, utils.ErrSignatureMismatch) {
		t.Fatalf("err = %v, want %v", err, utils.ErrSignatureMismatch)
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Status != db_models.TxnStatusFailed {
		t.Errorf("txn status = %s, want failed", txn.Status)
	}

	var count int64
	db.Model(&db_models.Subscription{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("subscriptions = %d, want 0 after a rejected verification", count)
	}
}

func TestVerifyPaymentRejectsForeignTransaction(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	owner := createTestUser(t, db, "user", "", "")
	intruder := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), owner.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	_, err = svc.VerifyPayment(context.Background(), intruder.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_test1",
		RazorpaySignature: signPayment(order.OrderID, "pay_test1"),
	})
	if !errors.Is(err, utils.ErrUnauthorized) {
		t.Errorf("err = %v, want %v", err, utils.ErrUnauthorized)
	}
}

func TestRetryMintsFreshTransaction(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	first, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}
	second, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("second CreateOrder: %v", err)
	}

	if first.TransactionID == second.TransactionID {
		t.Fatal("retry reused the transaction id")
	}
	if first.OrderID == second.OrderID {
		t.Fatal("retry reused the gateway order id")
	}

	// The abandoned first attempt stays pending.
	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", first.TransactionID).Error; err != nil {
		t.Fatalf("load first transaction: %v", err)
	}
	if txn.Status != db_models.TxnStatusPending {
		t.Errorf("abandoned txn status = %s, want pending", txn.Status)
	}
}

func TestLifetimePlanHasNoEndDate(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeLifetime, 24999, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := svc.VerifyPayment(context.Background(), user.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_life",
		RazorpaySignature: signPayment(order.OrderID, "pay_life"),
	}); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	var sub db_models.Subscription
	if err := db.First(&sub, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if sub.EndsAt != nil {
		t.Errorf("lifetime subscription ends_at = %v, want nil", *sub.EndsAt)
	}
	if sub.AutoRenew {
		t.Error("lifetime subscription must not auto-renew")
	}
}

func TestCommissionRecordedForReferredPayer(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	associate := createTestUser(t, db, "associate", "ASSOC10", "")
	payer := createTestUser(t, db, "user", "", "ASSOC10")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), payer.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := svc.VerifyPayment(context.Background(), payer.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_ref",
		RazorpaySignature: signPayment(order.OrderID, "pay_ref"),
	}); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	var commission db_models.Commission
	if err := db.First(&commission, "associate_id = ?", associate.ID).Error; err != nil {
		t.Fatalf("load commission: %v", err)
	}
	// 10% of the pre-tax base, never of the tax-inclusive total.
	if commission.Amount != 99.90 {
		t.Errorf("commission amount = %v, want 99.90", commission.Amount)
	}
	if commission.RatePct != 10 {
		t.Errorf("commission rate = %v, want 10", commission.RatePct)
	}
	if commission.Status != db_models.CommissionStatusPending {
		t.Errorf("commission status = %s, want pending", commission.Status)
	}
	if commission.TransactionID != order.TransactionID {
		t.Error("commission not linked to the settled transaction")
	}
}

func TestCommissionSkippedForStaleReferral(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	payer := createTestUser(t, db, "user", "", "GONE")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), payer.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := svc.VerifyPayment(context.Background(), payer.ID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		PlanID:            plan.ID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: "pay_stale",
		RazorpaySignature: signPayment(order.OrderID, "pay_stale"),
	}); err != nil {
		t.Fatalf("VerifyPayment must not fail on a stale referral: %v", err)
	}

	var count int64
	db.Model(&db_models.Commission{}).Count(&count)
	if count != 0 {
		t.Errorf("commissions = %d, want 0", count)
	}
}

func webhookRequest(t *testing.T, svc PaymentService, body string, sign bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/payments/webhook", strings.NewReader(body))
	if sign {
		mac := hmac.New(sha256.New, []byte(testWebhookSecret))
		mac.Write([]byte(body))
		c.Request.Header.Set("X-Razorpay-Signature", hex.EncodeToString(mac.Sum(nil)))
	}
	svc.HandleWebhook(c)
	return w
}

func TestWebhookSettlesPendingTransaction(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	body := fmt.Sprintf(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_hook","order_id":"%s","status":"captured"}}}}`, order.OrderID)

	w := webhookRequest(t, svc, body, true)
	if w.Code != 200 {
		t.Fatalf("webhook status = %d, body %s", w.Code, w.Body.String())
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Status != db_models.TxnStatusSuccess {
		t.Errorf("txn status = %s, want success", txn.Status)
	}

	// Replays ack without settling twice.
	w = webhookRequest(t, svc, body, true)
	if w.Code != 200 {
		t.Fatalf("replay status = %d", w.Code)
	}
	var count int64
	db.Model(&db_models.Subscription{}).Where("user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Count(&count)
	if count != 1 {
		t.Errorf("active subscriptions after replay = %d, want 1", count)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	_, svc, _ := setupPaymentService(t)

	w := webhookRequest(t, svc, `{"event":"payment.captured","payload":{}}`, false)
	if w.Code != 401 {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	_, svc, _ := setupPaymentService(t)

	w := webhookRequest(t, svc, `{"event":"payment.authorized","payload":{}}`, true)
	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// completePurchase drives a full order-and-verify cycle and returns the
// settled transaction id.
func completePurchase(t *testing.T, svc PaymentService, userID uuid.UUID, planID string) uuid.UUID {
	t.Helper()

	order, err := svc.CreateOrder(context.Background(), userID, planID)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	paymentID := fmt.Sprintf("pay_%s", order.OrderID)
	_, err = svc.VerifyPayment(context.Background(), userID, request_models.VerifyPaymentRequest{
		TransactionID:     order.TransactionID.String(),
		RazorpayOrderID:   order.OrderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: signPayment(order.OrderID, paymentID),
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	return order.TransactionID
}

func TestSamePlanRenewalExtendsCurrentWindow(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	completePurchase(t, svc, user.ID, plan.ID.String())

	var first db_models.Subscription
	if err := db.First(&first, "user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Error; err != nil {
		t.Fatalf("load first subscription: %v", err)
	}
	if first.EndsAt == nil {
		t.Fatal("monthly subscription has no end date")
	}
	firstEnd := *first.EndsAt

	completePurchase(t, svc, user.ID, plan.ID.String())

	var active []db_models.Subscription
	if err := db.Where("user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Find(&active).Error; err != nil {
		t.Fatalf("load subscriptions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active subscriptions = %d, want 1", len(active))
	}

	renewal := active[0]
	if renewal.StartsAt != firstEnd {
		t.Errorf("renewal starts at %d, want the first window's end %d", renewal.StartsAt, firstEnd)
	}
	wantEnd := time.Unix(firstEnd, 0).In(utils.ISTLocation()).AddDate(0, 1, 0).Unix()
	if renewal.EndsAt == nil || *renewal.EndsAt != wantEnd {
		t.Errorf("renewal ends at %v, want %d", renewal.EndsAt, wantEnd)
	}

	var expired db_models.Subscription
	if err := db.First(&expired, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload first subscription: %v", err)
	}
	if expired.Status != db_models.SubStatusExpired {
		t.Errorf("first subscription status = %s, want expired", expired.Status)
	}
}

func TestPlanSwitchSupersedesActiveSubscription(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	monthly := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)
	yearly := createTestPlan(t, db, db_models.PlanTypeYearly, 9999, true)

	completePurchase(t, svc, user.ID, monthly.ID.String())

	var first db_models.Subscription
	if err := db.First(&first, "user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Error; err != nil {
		t.Fatalf("load first subscription: %v", err)
	}

	before := time.Now().Unix()
	completePurchase(t, svc, user.ID, yearly.ID.String())

	var active []db_models.Subscription
	if err := db.Where("user_id = ? AND status = ?", user.ID, db_models.SubStatusActive).Find(&active).Error; err != nil {
		t.Fatalf("load subscriptions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active subscriptions = %d, want 1", len(active))
	}
	if active[0].PlanID != yearly.ID {
		t.Errorf("active plan = %s, want the yearly plan", active[0].PlanID)
	}
	// Switching plans does not inherit the old window; the new one starts now.
	if active[0].StartsAt < before {
		t.Errorf("new subscription starts at %d, before the purchase at %d", active[0].StartsAt, before)
	}

	var old db_models.Subscription
	if err := db.First(&old, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload first subscription: %v", err)
	}
	if old.Status != db_models.SubStatusExpired {
		t.Errorf("superseded subscription status = %s, want expired", old.Status)
	}
}

func TestConcurrentSettlementIsFirstWriterWins(t *testing.T) {
	db, svc, _ := setupPaymentService(t)
	user := createTestUser(t, db, "user", "", "")
	plan := createTestPlan(t, db, db_models.PlanTypeMonthly, 999, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, plan.ID.String())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Two writers race: each loads the row while it is still pending, so
	// both pass the status precheck before either settles.
	var fromWebhook, fromVerify db_models.Transaction
	if err := db.First(&fromWebhook, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if err := db.First(&fromVerify, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}

	ps := svc.(*paymentService)
	if err := ps.settle(context.Background(), &fromWebhook, "pay_first", ""); err != nil {
		t.Fatalf("first settle: %v", err)
	}
	if err := ps.settle(context.Background(), &fromVerify, "pay_second", ""); !errors.Is(err, utils.ErrTransactionClosed) {
		t.Fatalf("second settle: err = %v, want %v", err, utils.ErrTransactionClosed)
	}

	var subs []db_models.Subscription
	if err := db.Where("user_id = ?", user.ID).Find(&subs).Error; err != nil {
		t.Fatalf("load subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("subscriptions after racing settles = %d, want 1", len(subs))
	}
	if subs[0].Status != db_models.SubStatusActive {
		t.Errorf("subscription status = %s, want active", subs[0].Status)
	}

	var txn db_models.Transaction
	if err := db.First(&txn, "id = ?", order.TransactionID).Error; err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if txn.RazorpayPaymentID != "pay_first" {
		t.Errorf("payment id = %s, the losing writer overwrote the winner", txn.RazorpayPaymentID)
	}
}
