package paymentControllers

import (
	"context"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
)

// fakeStore is a map-backed Store. Lookups return copies so mutations only
// land through the save methods, like rows from a real database.
type fakeStore struct {
	orders   map[string]*models.Order
	users    map[string]*models.User
	payments map[string]*models.Payment
	saves    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[string]*models.Order),
		users:    make(map[string]*models.User),
		payments: make(map[string]*models.Payment),
	}
}

func (s *fakeStore) FindOrder(_ context.Context, orderID string) (*models.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *fakeStore) FindUser(_ context.Context, userID string) (*models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) FindPaymentByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	for _, p := range s.payments {
		if p.OrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindPaymentByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	for _, p := range s.payments {
		if p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreatePayment(_ context.Context, p *models.Payment) error {
	for _, existing := range s.payments {
		if existing.OrderID == p.OrderID || existing.TransactionID == p.TransactionID {
			return apperrors.New(apperrors.KindPaymentExists, "payment already exists for this order")
		}
	}
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *fakeStore) SavePaymentAndOrder(_ context.Context, p *models.Payment, o *models.Order) error {
	pc := *p
	oc := *o
	s.payments[p.ID] = &pc
	s.orders[o.ID] = &oc
	s.saves++
	return nil
}

type fakeGateway struct {
	chargeResp  *midtrans.ChargeResponse
	chargeErr   error
	chargeCalls int

	statusResp  *midtrans.TransactionStatus
	statusErr   error
	statusCalls int
}

func (g *fakeGateway) CreateTransaction(_ context.Context, _ midtrans.ChargeRequest) (*midtrans.ChargeResponse, error) {
	g.chargeCalls++
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	return g.chargeResp, nil
}

func (g *fakeGateway) Status(_ context.Context, _ string) (*midtrans.TransactionStatus, error) {
	g.statusCalls++
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	return g.statusResp, nil
}

type fakeInvalidator struct {
	customers []string
}

func (f *fakeInvalidator) InvalidateCustomerOrders(_ context.Context, customerID string) {
	f.customers = append(f.customers, customerID)
}
