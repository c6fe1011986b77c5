package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"autohub-api/internal/domain"
)

// In-memory repository fakes. Each keeps just enough behavior for the
// service under test; forced errors simulate a failing store.

type fakeUserRepo struct {
	users  []*domain.User
	nextID uint
	err    error
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) LinkGoogleID(_ context.Context, userID uint, googleID string) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.ID == userID {
			gid := googleID
			u.GoogleID = &gid
			u.EmailVerified = true
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, userID uint) error {
	for _, u := range f.users {
		if u.ID == userID {
			now := time.Now()
			u.LastLogin = &now
		}
	}
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	for i, ex := range f.users {
		if ex.ID == u.ID {
			cp := *u
			f.users[i] = &cp
			return nil
		}
	}
	return errors.New("user not found")
}

type fakeAdminRepo struct {
	admins []*domain.Admin
}

func (f *fakeAdminRepo) FindActiveByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range f.admins {
		if a.Active && a.Email == strings.ToLower(email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) TouchLastLogin(_ context.Context, adminID uint) error {
	for _, a := range f.admins {
		if a.ID == adminID {
			now := time.Now()
			a.LastLogin = &now
		}
	}
	return nil
}

type fakeProductRepo struct {
	products []*domain.Product
	nextID   uint
	err      error
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.products = append(f.products, &cp)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(_ context.Context, fl domain.ProductFilter) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Product
	for _, p := range f.products {
		if !fl.IncludeAll && p.Status != domain.ProductActive {
			continue
		}
		if fl.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, *p)
		if fl.Limit > 0 && len(out) == fl.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if f.err != nil {
		return f.err
	}
	for i, ex := range f.products {
		if ex.ID == p.ID {
			cp := *p
			f.products[i] = &cp
			return nil
		}
	}
	return errors.New("product not found")
}

func (f *fakeProductRepo) Delete(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return errors.New("product not found")
}

func (f *fakeProductRepo) SKUExists(_ context.Context, sku string, excludeID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, p := range f.products {
		if p.SKU == sku && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategoryRepo struct {
	categories     []*domain.Category
	nextID         uint
	activeProducts map[uint]int64
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, featuredOnly bool) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		if featuredOnly && !c.Featured {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	for i, ex := range f.categories {
		if ex.ID == c.ID {
			cp := *c
			f.categories[i] = &cp
			return nil
		}
	}
	return errors.New("category not found")
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return errors.New("category not found")
}

func (f *fakeCategoryRepo) CountChildren(_ context.Context, id uint) (int64, error) {
	var n int64
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeCategoryRepo) CountActiveProducts(_ context.Context, id uint) (int64, error) {
	return f.activeProducts[id], nil
}

type fakeCartRepo struct {
	items  []*domain.CartItem
	lines  map[uint]*domain.CartLine // extra display fields keyed by item ID
	nextID uint
	err    error
}

func (f *fakeCartRepo) Upsert(_ context.Context, item *domain.CartItem) error {
	if f.err != nil {
		return f.err
	}
	for _, ex := range f.items {
		if ex.UserID == item.UserID && ex.ProductID == item.ProductID && ex.VariantID == item.VariantID {
			ex.Quantity += item.Quantity
			*item = *ex
			return nil
		}
	}
	f.nextID++
	item.ID = f.nextID
	item.CreatedAt = time.Now()
	cp := *item
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeCartRepo) Lines(_ context.Context, userID uint) ([]domain.CartLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.CartLine
	for _, it := range f.items {
		if it.UserID != userID {
			continue
		}
		line := domain.CartLine{CartItem: *it}
		if extra, ok := f.lines[it.ID]; ok {
			line.ProductName = extra.ProductName
			line.ProductSKU = extra.ProductSKU
			line.ProductBrand = extra.ProductBrand
			line.ImageURL = extra.ImageURL
		}
		out = append(out, line)
	}
	return out, nil
}

func (f *fakeCartRepo) FindLine(_ context.Context, userID, itemID uint) (*domain.CartItem, error) {
	for _, it := range f.items {
		if it.UserID == userID && it.ID == itemID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) SetQuantity(_ context.Context, userID, itemID uint, quantity int) error {
	if f.err != nil {
		return f.err
	}
	for _, it := range f.items {
		if it.UserID == userID && it.ID == itemID {
			it.Quantity = quantity
			return nil
		}
	}
	return errors.New("cart item not found")
}

func (f *fakeCartRepo) Remove(_ context.Context, userID, itemID uint) error {
	if f.err != nil {
		return f.err
	}
	for i, it := range f.items {
		if it.UserID == userID && it.ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("cart item not found")
}

func (f *fakeCartRepo) Clear(_ context.Context, userID uint) error {
	if f.err != nil {
		return f.err
	}
	kept := f.items[:0]
	for _, it := range f.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

type fakeOrderRepo struct {
	orders    []*domain.Order
	nextID    uint
	createErr error
	analytics *domain.OrderAnalytics
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, o *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	o.ID = f.nextID
	cp := *o
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return errors.New("order not found")
}

func (f *fakeOrderRepo) Analytics(_ context.Context) (*domain.OrderAnalytics, error) {
	if f.analytics != nil {
		return f.analytics, nil
	}
	return &domain.OrderAnalytics{}, nil
}
