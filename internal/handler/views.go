package handler

import (
	"time"

	"github.com/cempakacafe/reservation/internal/model"
)

// View structs shape JSON responses. Domain models stay free of JSON
// tags; every surface that renders one goes through these converters so
// the wire format is defined in exactly one place.

type reservationView struct {
	ID              uint64  `json:"id"`
	Code            string  `json:"code"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerEmail   string  `json:"customer_email"`
	Date            string  `json:"date"`
	TimeSlot        string  `json:"time_slot"`
	GuestCount      int     `json:"guest_count"`
	PackageID       uint64  `json:"package_id"`
	Location        string  `json:"location"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	Status          string  `json:"status"`
	AssignedTableID *uint64 `json:"assigned_table_id,omitempty"`
	ProofOfPayment  *string `json:"proof_of_payment,omitempty"`
	TotalPriceCents uint32  `json:"total_price_cents"`
	StaffNote       *string `json:"staff_note,omitempty"`
	Version         uint32  `json:"version"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toReservationView(r *model.Reservation) reservationView {
	return reservationView{
		ID:              r.ID,
		Code:            r.Code,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		Date:            r.Date.UTC().Format("2006-01-02"),
		TimeSlot:        r.TimeSlot,
		GuestCount:      r.GuestCount,
		PackageID:       r.PackageID,
		Location:        string(r.Location),
		SpecialRequests: r.SpecialRequests,
		Status:          string(r.Status),
		AssignedTableID: r.AssignedTableID,
		ProofOfPayment:  r.ProofOfPayment,
		TotalPriceCents: r.TotalPriceCents,
		StaffNote:       r.StaffNote,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toReservationViews(rs []model.Reservation) []reservationView {
	out := make([]reservationView, 0, len(rs))
	for i := range rs {
		out = append(out, toReservationView(&rs[i]))
	}
	return out
}

type tableView struct {
	ID             uint64  `json:"id"`
	Number         uint32  `json:"number"`
	DisplayName    string  `json:"display_name"`
	Capacity       int     `json:"capacity"`
	LocationType   string  `json:"location_type"`
	LocationDetail *string `json:"location_detail,omitempty"`
	Status         string  `json:"status"`
}

func toTableView(t *model.Table) tableView {
	return tableView{
		ID:             t.ID,
		Number:         t.Number,
		DisplayName:    t.DisplayName,
		Capacity:       t.Capacity,
		LocationType:   string(t.LocationType),
		LocationDetail: t.LocationDetail,
		Status:         string(t.Status),
	}
}

func toTableViews(ts []model.Table) []tableView {
	out := make([]tableView, 0, len(ts))
	for i := range ts {
		out = append(out, toTableView(&ts[i]))
	}
	return out
}

type packageView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"price_cents"`
	MaxGuests   int    `json:"max_guests"`
	Inclusions  string `json:"inclusions"`
	IsActive    bool   `json:"is_active"`
}

func toPackageView(p *model.Package) packageView {
	return packageView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		MaxGuests:   p.MaxGuests,
		Inclusions:  p.Inclusions,
		IsActive:    p.IsActive,
	}
}

func toPackageViews(ps []model.Package) []packageView {
	out := make([]packageView, 0, len(ps))
	for i := range ps {
		out = append(out, toPackageView(&ps[i]))
	}
	return out
}

type menuItemView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	PriceCents  uint32  `json:"price_cents"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

func toMenuItemView(m *model.MenuItem) menuItemView {
	return menuItemView{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		ImageURL:    m.ImageURL,
		IsAvailable: m.IsAvailable,
	}
}

func toMenuItemViews(ms []model.MenuItem) []menuItemView {
	out := make([]menuItemView, 0, len(ms))
	for i := range ms {
		out = append(out, toMenuItemView(&ms[i]))
	}
	return out
}

type orderItemView struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	PriceCents uint32 `json:"price_cents"`
}

type orderView struct {
	ID           uint64          `json:"id"`
	TableID      *uint64         `json:"table_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	TotalCents   uint32          `json:"total_cents"`
	Items        []orderItemView `json:"items,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func toOrderView(o *model.Order, items []model.OrderItem) orderView {
	v := orderView{
		ID:           o.ID,
		TableID:      o.TableID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		TotalCents:   o.TotalCents,
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, it := range items {
		v.Items = append(v.Items, orderItemView{MenuItemID: it.MenuItemID, Quantity: it.Quantity, PriceCents: it.PriceCents})
	}
	return v
}

func toOrderViews(os []model.Order) []orderView {
	out := make([]orderView, 0, len(os))
	for i := range os {
		out = append(out, toOrderView(&os[i], nil))
	}
	return out
}
