package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gorent/internal/domain"
)

// revenueStatuses are the contracts that count as earned revenue. Drafts
// and quotes are pipeline, not income.
var revenueStatuses = []domain.ContractStatus{
	domain.ContractSigned,
	domain.ContractActive,
	domain.ContractCompleted,
}

type MonthlyRevenue struct {
	Month           string          `json:"month"`
	ContractRevenue decimal.Decimal `json:"contract_revenue"`
	InvoicedAmount  decimal.Decimal `json:"invoiced_amount"`
	Contracts       int             `json:"contracts"`
	Invoices        int             `json:"invoices"`
}

type VehicleOccupancy struct {
	VehicleID    int64   `json:"vehicle_id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	RentedDays   int     `json:"rented_days"`
	PeriodDays   int     `json:"period_days"`
	OccupancyPct float64 `json:"occupancy_pct"`
}

type VehicleROI struct {
	VehicleID       int64           `json:"vehicle_id"`
	Brand           string          `json:"brand"`
	Model           string          `json:"model"`
	Revenue         decimal.Decimal `json:"revenue"`
	MaintenanceCost decimal.Decimal `json:"maintenance_cost"`

	// ROI is nil when the vehicle had no maintenance spend in the
	// period; the ratio is undefined, not infinite.
	ROI *decimal.Decimal `json:"roi,omitempty"`
}

type ExpenseLine struct {
	Type    string          `json:"type"`
	Records int             `json:"records"`
	Total   decimal.Decimal `json:"total"`
}

type Service struct {
	contracts   ContractReader
	invoices    InvoiceReader
	maintenance MaintenanceReader
	vehicles    VehicleLister
}

func NewService(contracts ContractReader, invoices InvoiceReader, maintenance MaintenanceReader, vehicles VehicleLister) *Service {
	return &Service{
		contracts:   contracts,
		invoices:    invoices,
		maintenance: maintenance,
		vehicles:    vehicles,
	}
}

// MonthlyRevenue folds a calendar year into twelve rows: contract revenue
// by month of the rental start, invoiced amounts by invoice date.
func (s *Service) MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	contracts, err := s.contracts.ListInPeriod(ctx, from, to, revenueStatuses)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListIssuedInPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]MonthlyRevenue, 12)
	for i := range rows {
		rows[i] = MonthlyRevenue{
			Month:           time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			ContractRevenue: decimal.Zero,
			InvoicedAmount:  decimal.Zero,
		}
	}

	for _, c := range contracts {
		if c.StartDate.Year() != year {
			continue
		}
		m := int(c.StartDate.Month()) - 1
		rows[m].ContractRevenue = rows[m].ContractRevenue.Add(c.TotalAmount)
		rows[m].Contracts++
	}
	for _, inv := range invoices {
		m := int(inv.Date.Month()) - 1
		rows[m].InvoicedAmount = rows[m].InvoicedAmount.Add(inv.TotalAmount)
		rows[m].Invoices++
	}

	return rows, nil
}

// Occupancy reports, per vehicle, the share of the period it was out on a
// contract. Contract ranges are clipped to the period so a rental
// straddling the boundary only counts its inside days; the percentage is
// clamped to [0, 100].
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) ([]VehicleOccupancy, error) {
	if !to.After(from) {
		return nil, ErrInvalidPeriod
	}

	vehicles, err := s.vehicles.List(ctx, domain.VehicleFilter{})
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListInPeriod(ctx, from, to, []domain.ContractStatus{
		domain.ContractActive, domain.ContractCompleted,
	})
	if err != nil {
		return nil, err
	}

	periodDays := daysBetween(from, to)
	rentedByVehicle := make(map[int64]int)
	for _, c := range contracts {
		rentedByVehicle[c.VehicleID] += overlapDays(c.StartDate, c.EndDate, from, to)
	}

	out := make([]VehicleOccupancy, 0, len(vehicles))
	for _, v := range vehicles {
		rented := rentedByVehicle[v.ID]
		pct := float64(rented) / float64(periodDays) * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		out = append(out, VehicleOccupancy{
			VehicleID:    v.ID,
			Brand:        v.Brand,
			Model:        v.Model,
			RentedDays:   rented,
			PeriodDays:   periodDays,
			OccupancyPct: pct,
		})
	}
	return out, nil
}

// ROI compares contract revenue against maintenance spend per vehicle.
func (s *Service) ROI(ctx context.Context, from, to time.Time) ([]VehicleROI, error) {
	if !to.After(from) {
		return nil, ErrInvalidPeriod
	}

	vehicles, err := s.vehicles.List(ctx, domain.VehicleFilter{})
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListInPeriod(ctx, from, to, revenueStatuses)
	if err != nil {
		return nil, err
	}
	records, err := s.maintenance.ListInPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	revenue := make(map[int64]decimal.Decimal)
	for _, c := range contracts {
		revenue[c.VehicleID] = revenue[c.VehicleID].Add(c.TotalAmount)
	}
	cost := make(map[int64]decimal.Decimal)
	for _, m := range records {
		cost[m.VehicleID] = cost[m.VehicleID].Add(m.TotalCost)
	}

	out := make([]VehicleROI, 0, len(vehicles))
	for _, v := range vehicles {
		row := VehicleROI{
			VehicleID:       v.ID,
			Brand:           v.Brand,
			Model:           v.Model,
			Revenue:         revenue[v.ID],
			MaintenanceCost: cost[v.ID],
		}
		if row.MaintenanceCost.IsPositive() {
			roi := row.Revenue.Sub(row.MaintenanceCost).Div(row.MaintenanceCost)
			row.ROI = &roi
		}
		out = append(out, row)
	}
	return out, nil
}

// Expenses breaks maintenance spend down by work type.
func (s *Service) Expenses(ctx context.Context, from, to time.Time) ([]ExpenseLine, error) {
	if !to.After(from) {
		return nil, ErrInvalidPeriod
	}

	records, err := s.maintenance.ListInPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*ExpenseLine)
	for _, m := range records {
		line, ok := byType[m.Type]
		if !ok {
			line = &ExpenseLine{Type: m.Type, Total: decimal.Zero}
			byType[m.Type] = line
		}
		line.Records++
		line.Total = line.Total.Add(m.TotalCost)
	}

	out := make([]ExpenseLine, 0, len(byType))
	for _, line := range byType {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 1 {
		d = 1
	}
	return d
}

// overlapDays counts the whole days of [start, end) falling inside
// [from, to).
func overlapDays(start, end, from, to time.Time) int {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
