package quota

import (
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository with scripted failure injection. It
// emulates the store behaviors the engine depends on: ordered subscription
// scans, the unique (vendor_id, lead_id) index, and driver error numbers.
type fakeRepo struct {
	leads     map[uint]*models.Lead
	subs      []models.VendorSubscription
	plans     map[uint]*models.Plan
	purchases []*models.LeadPurchase
	quotas    map[uint]*models.VendorQuota
	nextID    uint

	// insertErrs are popped on each InsertPurchase call before any other
	// handling, letting tests script schema drift and races.
	insertErrs []error
	insertCols []map[string]any

	// suppressGetPurchase makes the next N GetPurchase calls miss, to
	// simulate a concurrent insert landing between the existing-purchase
	// gate and the ledger insert.
	suppressGetPurchase int

	procOutcome *ProcedureOutcome
	procErr     error
	procCalls   int

	markedPurchased []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leads:  map[uint]*models.Lead{},
		plans:  map[uint]*models.Plan{},
		quotas: map[uint]*models.VendorQuota{},
	}
}

func (f *fakeRepo) addLead(l models.Lead) *models.Lead {
	f.nextID++
	l.ID = f.nextID
	if l.Status == "" {
		l.Status = models.LeadStatusAvailable
	}
	f.leads[l.ID] = &l
	return &l
}

func (f *fakeRepo) addPlan(p models.Plan) *models.Plan {
	f.nextID++
	p.ID = f.nextID
	f.plans[p.ID] = &p
	return &p
}

func (f *fakeRepo) addSubscription(s models.VendorSubscription) *models.VendorSubscription {
	f.nextID++
	s.ID = f.nextID
	if s.Status == "" {
		s.Status = models.SubscriptionStatusActive
	}
	f.subs = append(f.subs, s)
	return &f.subs[len(f.subs)-1]
}

func (f *fakeRepo) addPurchase(p models.LeadPurchase) *models.LeadPurchase {
	f.nextID++
	p.ID = f.nextID
	f.purchases = append(f.purchases, &p)
	return &p
}

func (f *fakeRepo) GetLeadByID(id uint) (*models.Lead, error) {
	if l, ok := f.leads[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) MarkLeadPurchased(leadID uint) error {
	f.markedPurchased = append(f.markedPurchased, leadID)
	if l, ok := f.leads[leadID]; ok && l.Status == models.LeadStatusAvailable {
		l.Status = models.LeadStatusPurchased
	}
	return nil
}

func (f *fakeRepo) ListActiveSubscriptions(vendorID uint) ([]models.VendorSubscription, error) {
	var subs []models.VendorSubscription
	for _, s := range f.subs {
		if s.VendorID == vendorID && s.Status == models.SubscriptionStatusActive {
			subs = append(subs, s)
		}
	}
	// ends_at DESC with NULLs last, then starts_at DESC, then id DESC.
	sort.Slice(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]
		switch {
		case a.EndsAt == nil && b.EndsAt != nil:
			return false
		case a.EndsAt != nil && b.EndsAt == nil:
			return true
		case a.EndsAt != nil && b.EndsAt != nil && !a.EndsAt.Equal(*b.EndsAt):
			return a.EndsAt.After(*b.EndsAt)
		}
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.After(b.StartsAt)
		}
		return a.ID > b.ID
	})
	if len(subs) > subscriptionScanLimit {
		subs = subs[:subscriptionScanLimit]
	}
	return subs, nil
}

func (f *fakeRepo) GetPlanByID(id uint) (*models.Plan, error) {
	if p, ok := f.plans[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetPurchase(vendorID, leadID uint) (*models.LeadPurchase, error) {
	if f.suppressGetPurchase > 0 {
		f.suppressGetPurchase--
		return nil, gorm.ErrRecordNotFound
	}
	for _, p := range f.purchases {
		if p.VendorID == vendorID && p.LeadID == leadID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListVendorPurchases(vendorID uint) ([]models.LeadPurchase, error) {
	var out []models.LeadPurchase
	for _, p := range f.purchases {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountLeadPurchases(leadID uint) (int64, error) {
	var count int64
	for _, p := range f.purchases {
		if p.LeadID == leadID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) InsertPurchase(columns map[string]any) error {
	f.insertCols = append(f.insertCols, columns)

	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}

	vendorID := columns["vendor_id"].(uint)
	leadID := columns["lead_id"].(uint)
	for _, p := range f.purchases {
		if p.VendorID == vendorID && p.LeadID == leadID {
			return &mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry"}
		}
	}

	row := models.LeadPurchase{
		VendorID:        vendorID,
		LeadID:          leadID,
		ConsumptionType: models.ConsumptionPaidExtra,
		PaymentStatus:   models.PaymentStatusCompleted,
	}
	if v, ok := columns["consumption_type"].(string); ok {
		row.ConsumptionType = v
	}
	if v, ok := columns["purchase_price"].(float64); ok {
		row.PurchasePrice = v
	}
	if v, ok := columns["amount"].(float64); ok {
		row.PurchasePrice = v
	}
	if v, ok := columns["plan_name"].(string); ok {
		row.PlanName = v
	}
	if v, ok := columns["plan_status"].(string); ok {
		row.PlanStatus = v
	}
	if v, ok := columns["purchased_at"].(time.Time); ok {
		row.PurchasedAt = v
		row.CreatedAt = v
	}
	f.addPurchase(row)
	return nil
}

func (f *fakeRepo) GetPurchaseByID(id uint) (*models.LeadPurchase, error) {
	for _, p := range f.purchases {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetQuotaSnapshot(vendorID uint) (*models.VendorQuota, error) {
	if q, ok := f.quotas[vendorID]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateQuotaSnapshot(q *models.VendorQuota) error {
	f.nextID++
	q.ID = f.nextID
	copied := *q
	f.quotas[q.VendorID] = &copied
	return nil
}

func (f *fakeRepo) SaveQuotaSnapshot(q *models.VendorQuota) error {
	copied := *q
	f.quotas[q.VendorID] = &copied
	return nil
}

func (f *fakeRepo) CallConsumeProcedure(vendorID, leadID uint, mode string, price float64) (*ProcedureOutcome, error) {
	f.procCalls++
	if f.procErr != nil {
		return nil, f.procErr
	}
	if f.procOutcome != nil {
		return f.procOutcome, nil
	}
	return nil, &mysql.MySQLError{Number: mysqlErrMissingProcedure, Message: "PROCEDURE leadkart.consume_lead_quota does not exist"}
}
