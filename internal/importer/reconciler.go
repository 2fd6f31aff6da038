// Package importer ingests externally-sourced recurring schedule rows with
// per-row fault isolation: one bad row is recorded and skipped, never
// aborting the batch.
package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
	"maintrack/internal/pkg/utils"
	"maintrack/internal/schedule"
)

// DefinitionCreator persists new recurring work order definitions.
type DefinitionCreator interface {
	Create(rwo *models.RecurringWorkOrder) error
}

// MappingResolver resolves external location labels. The reconciler never
// creates locations or mappings.
type MappingResolver interface {
	FindByCSVName(name string) (*models.LocationMapping, error)
}

// CategoryResolver resolves or creates service categories by exact name.
type CategoryResolver interface {
	GetOrCreate(name string) (*models.Category, error)
}

// CompanyFinder and ClientFinder back the batch-level default-entity
// preconditions.
type CompanyFinder interface {
	FindByName(name string) (*models.Company, error)
}

type ClientFinder interface {
	FindByEmail(email string) (*models.Client, error)
}

// Config carries the default entities every imported definition is attached
// to, plus display defaults for the derived invoice schedule.
type Config struct {
	DefaultCompanyName string
	DefaultClientEmail string
	DefaultPriority    string
	DefaultTimeOfDay   string
	DefaultTimezone    string
}

// Reconciler ingests import batches.
type Reconciler struct {
	defs       DefinitionCreator
	mappings   MappingResolver
	categories CategoryResolver
	companies  CompanyFinder
	clients    ClientFinder
	cfg        Config
	logger     *zap.Logger
}

func NewReconciler(
	defs DefinitionCreator,
	mappings MappingResolver,
	categories CategoryResolver,
	companies CompanyFinder,
	clients ClientFinder,
	cfg Config,
	logger *zap.Logger,
) *Reconciler {
	if cfg.DefaultPriority == "" {
		cfg.DefaultPriority = "medium"
	}
	if cfg.DefaultTimeOfDay == "" {
		cfg.DefaultTimeOfDay = "09:00"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "UTC"
	}
	return &Reconciler{
		defs:       defs,
		mappings:   mappings,
		categories: categories,
		companies:  companies,
		clients:    clients,
		cfg:        cfg,
		logger:     logger,
	}
}

// ImportBatch processes rows strictly sequentially so row indices in the
// error list stay stable and category get-or-create never races itself.
// Batch-level preconditions (default company and client present) reject the
// whole batch before any row is touched.
func (r *Reconciler) ImportBatch(ctx context.Context, rows []models.ImportRow) (*models.ImportResponse, error) {
	company, err := r.companies.FindByName(r.cfg.DefaultCompanyName)
	if err != nil {
		return nil, fmt.Errorf("lookup default company: %w", err)
	}
	if company == nil {
		return nil, apperr.Newf(apperr.KindValidation,
			"default company %q does not exist", r.cfg.DefaultCompanyName)
	}

	client, err := r.clients.FindByEmail(r.cfg.DefaultClientEmail)
	if err != nil {
		return nil, fmt.Errorf("lookup default client: %w", err)
	}
	if client == nil {
		return nil, apperr.Newf(apperr.KindValidation,
			"default client %q does not exist", r.cfg.DefaultClientEmail)
	}

	resp := &models.ImportResponse{Success: true, Errors: []models.RowError{}}
	for i, row := range rows {
		rowNum := i + 1
		if err := r.importRow(ctx, row, i, company, client); err != nil {
			r.logger.Warn("Import row failed",
				zap.Int("row", rowNum), zap.String("restaurant", row.Restaurant), zap.Error(err))
			resp.Errors = append(resp.Errors, models.RowError{Row: rowNum, Error: err.Error()})
			continue
		}
		resp.Created++
	}

	r.logger.Info("Import batch completed",
		zap.Int("rows", len(rows)), zap.Int("created", resp.Created), zap.Int("failed", len(resp.Errors)))
	return resp, nil
}

func (r *Reconciler) importRow(ctx context.Context, row models.ImportRow, index int, company *models.Company, client *models.Client) error {
	restaurant := strings.TrimSpace(row.Restaurant)
	serviceType := strings.TrimSpace(row.ServiceType)
	if restaurant == "" || serviceType == "" {
		return fmt.Errorf("restaurant and serviceType are required")
	}

	mapping, err := r.mappings.FindByCSVName(restaurant)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return fmt.Errorf("location mapping not found for %q", restaurant)
		}
		return err
	}

	category, err := r.categories.GetOrCreate(serviceType)
	if err != nil {
		return fmt.Errorf("resolve category %q: %w", serviceType, err)
	}

	pattern := schedule.MapFrequency(row.FrequencyLabel)

	nextExecution, ok := earliestDate(row.NextServiceDates)
	if !ok {
		nextExecution = schedule.Next(pattern, timeNow())
	}

	rwo := &models.RecurringWorkOrder{
		ID:                utils.GenerateUUID(),
		Title:             fmt.Sprintf("%s - %s", serviceType, mapping.SystemLocationName),
		Description:       buildDescription(row),
		ClientID:          client.ID,
		ClientName:        client.Name,
		ClientEmail:       client.Email,
		CompanyID:         company.ID,
		CompanyName:       company.Name,
		LocationID:        mapping.SystemLocationID,
		LocationName:      mapping.SystemLocationName,
		CategoryID:        category.ID,
		CategoryName:      category.Name,
		Priority:          r.cfg.DefaultPriority,
		Status:            models.RecurringStatusActive,
		WorkOrderNumber:   utils.GenerateWorkOrderNumber(index),
		RecurrencePattern: pattern,
		InvoiceSchedule: models.InvoiceSchedule{
			Type:      pattern.Type,
			Interval:  pattern.Interval,
			TimeOfDay: r.cfg.DefaultTimeOfDay,
			Timezone:  r.cfg.DefaultTimezone,
		},
		NextExecution: &nextExecution,
	}

	if lastServiced, ok := parseFlexibleDate(row.LastServiced); ok {
		rwo.LastExecution = &lastServiced
	}

	if err := r.defs.Create(rwo); err != nil {
		return fmt.Errorf("create recurring work order: %w", err)
	}
	return nil
}

func buildDescription(row models.ImportRow) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(row.Scheduling); s != "" {
		parts = append(parts, "Scheduling: "+s)
	}
	if s := strings.TrimSpace(row.Notes); s != "" {
		parts = append(parts, "Notes: "+s)
	}
	return strings.Join(parts, "\n")
}
