package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fr0stylo/orderlens/internal/app/domain"
	"github.com/fr0stylo/orderlens/internal/app/ports"
	"github.com/fr0stylo/orderlens/internal/join"
)

// DefaultResource is the upstream collection searched by default.
const DefaultResource = "orders"

var validate = validator.New()

type searchTerm struct {
	Value string `validate:"required,max=200"`
}

// StockLookupService searches orders and projects them into stock rows.
type StockLookupService struct {
	searcher ports.OrderSearcher
	resource string
	log      *slog.Logger
}

// NewStockLookupService constructs the lookup service. An empty resource selects DefaultResource.
func NewStockLookupService(searcher ports.OrderSearcher, resource string, log *slog.Logger) *StockLookupService {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		resource = DefaultResource
	}
	if log == nil {
		log = slog.Default()
	}
	return &StockLookupService{searcher: searcher, resource: resource, log: log}
}

// Lookup searches the configured resource for term and returns the joined stock rows.
func (s *StockLookupService) Lookup(ctx context.Context, term string) ([]domain.StockRow, error) {
	const op = "services.StockLookupService.Lookup"

	term = strings.TrimSpace(term)
	if err := validate.Struct(searchTerm{Value: term}); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSearchTerm, describeTermError(err))
	}

	payload, err := s.searcher.Search(ctx, s.resource, term)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.resource, err)
	}

	rows, err := Project(payload)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to project search payload", slog.String("op", op), slog.String("error", err.Error()))
		return nil, err
	}

	s.log.InfoContext(ctx, "stock lookup completed",
		slog.String("op", op),
		slog.String("resource", s.resource),
		slog.Int("orders", len(payload.Results)),
		slog.Int("production", len(payload.ResultsProd)),
		slog.Int("rows", len(rows)),
	)
	return rows, nil
}

// Project joins production records to order records on uniq and extracts
// the stock columns. Output follows the order of payload.ResultsProd.
func Project(payload domain.SearchPayload) ([]domain.StockRow, error) {
	joined, err := join.Hash(payload.Results, payload.ResultsProd, orderKey, productionKey, domain.Record.Merge)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.StockRow, 0, len(joined))
	for _, record := range joined {
		row, err := projectRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func orderKey(r domain.Record) (any, error) {
	if !r.HasUniq() {
		return nil, &domain.MissingFieldError{Field: domain.FieldUniq}
	}
	key, ok := r.Uniq()
	if !ok {
		return nil, fmt.Errorf("order record has unusable uniq value of type %T", r[domain.FieldUniq])
	}
	return key, nil
}

// productionKey keys a record without uniq as nil, so it joins an order
// whose uniq is null. Non-scalar keys are dropped.
func productionKey(r domain.Record) (any, bool) {
	if !r.HasUniq() {
		return nil, true
	}
	return r.Uniq()
}

func projectRow(r domain.Record) (domain.StockRow, error) {
	fields := [4]string{domain.FieldShopSaleName, domain.FieldSKUCode, domain.FieldStockCode, domain.FieldStockCount}
	var values [4]string
	for i, field := range fields {
		value, ok := r.Text(field)
		if !ok {
			uniq, _ := r.Uniq()
			return domain.StockRow{}, &domain.MissingFieldError{Field: field, Uniq: uniq}
		}
		values[i] = value
	}
	return domain.StockRow{
		ShopSaleName: values[0],
		SKUCode:      values[1],
		StockCode:    values[2],
		StockCount:   values[3],
	}, nil
}

func describeTermError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	switch errs[0].Tag() {
	case "required":
		return "search term is required"
	case "max":
		return "search term must be at most " + errs[0].Param() + " characters"
	default:
		return errs[0].Error()
	}
}
