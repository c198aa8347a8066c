package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// newTestApp wires a handler behind a middleware that injects the given
// user context, the way the session middleware does in production.
func newTestApp(ctx usercontext.UserContext, method, path string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, ctx)
		return c.Next()
	})
	app.Add(method, path, handler)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

type fakeTaxProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.TaxProfile
	seq      int
}

func newFakeTaxProfileRepo() *fakeTaxProfileRepo {
	return &fakeTaxProfileRepo{profiles: make(map[string]*models.TaxProfile)}
}

func (r *fakeTaxProfileRepo) GetByUserID(userID string) (*models.TaxProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeTaxProfileRepo) Create(profile *models.TaxProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if profile.ID == "" {
		r.seq++
		profile.ID = fmt.Sprintf("profile-%d", r.seq)
	}
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeTaxProfileRepo) Update(userID string, updates map[string]interface{}) (*models.TaxProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "full_name":
			p.FullName = val.(string)
		case "nin":
			p.NIN = val.(string)
		case "property_id":
			p.PropertyID = val.(string)
		case "property_address":
			p.PropertyAddress = val.(string)
		case "property_value":
			p.PropertyValue = val.(int64)
		case "property_tax":
			p.PropertyTax = val.(int64)
		case "income":
			p.Income = val.(int64)
		case "income_tax_due":
			p.IncomeTaxDue = val.(int64)
		case "electric_bill":
			p.ElectricBill = val.(int64)
		case "gas_bill":
			p.GasBill = val.(int64)
		}
	}
	cp := *p
	return &cp, nil
}

func (r *fakeTaxProfileRepo) GetAllWithUsers() ([]models.TaxProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TaxProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaxProfileRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), nil
}

type fakeContactMessageRepo struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	seq      int
}

func (r *fakeContactMessageRepo) Create(message *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	message.ID = fmt.Sprintf("msg-%d", r.seq)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeContactMessageRepo) ListByUserID(userID string) ([]models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ContactMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []models.Payment
	intents  map[string]*models.PaymentIntent
	seq      int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{intents: make(map[string]*models.PaymentIntent)}
}

func (r *fakePaymentRepo) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.GatewayIntentID != nil {
		for _, p := range r.payments {
			if p.GatewayIntentID != nil && *p.GatewayIntentID == *payment.GatewayIntentID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.seq++
	payment.ID = fmt.Sprintf("pay-%d", r.seq)
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) ListByUserID(userID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetByGatewayIntentID(intentID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.GatewayIntentID != nil && *p.GatewayIntentID == intentID {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) UpdateStatus(paymentID, status string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].ID == paymentID {
			r.payments[i].Status = status
			cp := r.payments[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) GetAllWithRelations() ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Payment, len(r.payments))
	copy(out, r.payments)
	return out, nil
}

func (r *fakePaymentRepo) CreateIntent(intent *models.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *intent
	r.intents[intent.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetIntent(id string) (*models.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.intents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *in
	return &cp, nil
}

func (r *fakePaymentRepo) MarkIntentConsumed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.intents[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	in.Status = models.IntentStatusConsumed
	return nil
}
