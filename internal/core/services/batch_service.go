package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/ports"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/platform/metrics"
	"github.com/SscSPs/eft_batch_service/internal/utils/accounting"
	"github.com/SscSPs/eft_batch_service/internal/utils/sequencing"
)

// maxAmount is the first value NUMERIC(18,2) cannot store.
var maxAmount = decimal.New(1, 16)

const (
	maxBatchNameLength     = 100
	maxFileReferenceLength = 16
	maxReferenceAttempts   = 3
)

// batchService is the batch ledger: it owns batch status, enforces legal
// transitions, keeps sequences and totals consistent and emits audit events.
type batchService struct {
	BaseService
	batchRepo  portsrepo.BatchRepositoryWithTx
	masterData portsrepo.MasterDataReader
	auditLog   portsrepo.AuditLogReader
	audit      *auditSink
	locker     ports.BatchLocker
	metrics    *metrics.Metrics
	clock      func() time.Time
	references *referenceGenerator

	defaultCurrency string
}

// BatchServiceOption configures optional collaborators of the batch service.
type BatchServiceOption func(*batchService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) BatchServiceOption {
	return func(s *batchService) {
		s.clock = clock
		s.references.clock = clock
	}
}

// WithLocker sets the per-batch lock. Without one only the storage
// transaction serialises writers.
func WithLocker(locker ports.BatchLocker) BatchServiceOption {
	return func(s *batchService) {
		s.locker = locker
	}
}

// WithMetrics records committed transitions.
func WithMetrics(m *metrics.Metrics) BatchServiceOption {
	return func(s *batchService) {
		s.metrics = m
	}
}

// WithAuditPublisher forwards committed audit events downstream.
func WithAuditPublisher(p ports.AuditPublisher) BatchServiceOption {
	return func(s *batchService) {
		s.audit.publisher = p
	}
}

// WithDefaults sets the default currency and the reference prefix.
func WithDefaults(currency, referencePrefix string) BatchServiceOption {
	return func(s *batchService) {
		if currency != "" {
			s.defaultCurrency = strings.ToUpper(currency)
		}
		if referencePrefix != "" {
			s.references.prefix = referencePrefix
		}
	}
}

// NewBatchService creates the batch ledger.
func NewBatchService(
	batchRepo portsrepo.BatchRepositoryWithTx,
	masterData portsrepo.MasterDataReader,
	auditLog portsrepo.AuditLogRepositoryFacade,
	policy domain.RolePolicy,
	opts ...BatchServiceOption,
) portssvc.BatchSvcFacade {
	s := &batchService{
		BaseService:     BaseService{Policy: policy},
		batchRepo:       batchRepo,
		masterData:      masterData,
		auditLog:        auditLog,
		audit:           &auditSink{writer: auditLog},
		clock:           time.Now,
		references:      newReferenceGenerator("CRWB", time.Now),
		defaultCurrency: "MWK",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure batchService implements the portssvc.BatchSvcFacade interface
var _ portssvc.BatchSvcFacade = (*batchService)(nil)

func (s *batchService) now() time.Time {
	return s.clock().UTC()
}

// batchChange is what a mutation asks the ledger to commit.
type batchChange struct {
	deleted bool
	events  []domain.AuditEvent
	action  domain.AuditAction
}

// access decides who may act on a loaded batch.
type access int

const (
	creatorOnly access = iota
	anyPermitted
)

// mutate loads the batch under lock and transaction, applies fn and commits
// the result with a version bump. Events are recorded only after commit.
func (s *batchService) mutate(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64, who access, fn func(b *domain.Batch) (batchChange, error)) (*domain.Batch, error) {
	var (
		result *domain.Batch
		change batchChange
	)

	run := func(ctx context.Context) error {
		return s.batchRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.BatchTx) error {
			b, err := tx.LoadBatchForUpdate(ctx, batchID)
			if err != nil {
				return err
			}
			if who == creatorOnly && !b.IsCreatedBy(actor.UserID) {
				return fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, batchID)
			}
			if expectedVersion != nil && *expectedVersion != b.Version {
				return fmt.Errorf("%w: batch %s is at version %d, request expected %d",
					apperrors.ErrConflict, batchID, b.Version, *expectedVersion)
			}

			stored := b.Version
			change, err = fn(b)
			if err != nil {
				return err
			}
			if change.deleted {
				return tx.DeleteBatch(ctx, batchID, stored)
			}

			b.Version = stored + 1
			b.Touch(actor.UserID, s.now())
			if err := tx.SaveBatch(ctx, *b, stored); err != nil {
				return err
			}
			result = b
			return nil
		})
	}

	var err error
	if s.locker != nil {
		err = s.locker.WithLock(ctx, batchID, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, err
	}

	if change.action != "" {
		s.metrics.IncTransition(string(change.action))
	}
	s.audit.Record(ctx, change.events...)
	return result, nil
}

func (s *batchService) newEvent(b *domain.Batch, actor domain.Actor, action domain.AuditAction, remarks string) domain.AuditEvent {
	e := domain.AuditEvent{
		AuditID:        uuid.NewString(),
		BatchID:        b.BatchID,
		BatchReference: b.BatchReference,
		Action:         action,
		ActorID:        actor.UserID,
		Timestamp:      s.now(),
	}
	if remarks != "" {
		e.Remarks = &remarks
	}
	if actor.OriginAddress != "" {
		origin := actor.OriginAddress
		e.OriginAddress = &origin
	}
	return e
}

// canView reports whether actor may read b: its creator, or anyone allowed to approve.
func (s *batchService) canView(actor domain.Actor, b *domain.Batch) bool {
	return b.IsCreatedBy(actor.UserID) || s.Policy.Allows(actor, domain.PermApproveBatch)
}

// GetBatch retrieves a batch with its line items.
func (s *batchService) GetBatch(ctx context.Context, actor domain.Actor, batchID string) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermViewBatch); err != nil {
		return nil, err
	}
	b, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load batch", slog.String("batch_id", batchID))
		}
		return nil, err
	}
	if !s.canView(actor, b) {
		s.GetLogger(ctx).Warn("Batch hidden from non-owner", slog.String("batch_id", batchID), slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, batchID)
	}
	return b, nil
}

// ListBatches returns one page of batches. The "mine" scope lists the actor's
// own batches; "review" lists every submitted batch and needs approve permission.
func (s *batchService) ListBatches(ctx context.Context, actor domain.Actor, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error) {
	if err := s.Authorize(ctx, actor, domain.PermViewBatch); err != nil {
		return nil, err
	}

	filter := portsrepo.BatchFilter{
		Status:    domain.BatchStatus(params.Status),
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError("status", "unknown batch status")
	}
	switch params.Scope {
	case "", "mine":
		filter.CreatedBy = actor.UserID
	case "review":
		if err := s.Authorize(ctx, actor, domain.PermApproveBatch); err != nil {
			return nil, err
		}
		filter.ExcludeDrafts = true
	default:
		return nil, apperrors.NewValidationError("scope", "must be mine or review")
	}

	batches, next, err := s.batchRepo.ListBatches(ctx, filter)
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to list batches", slog.String("user_id", actor.UserID))
		return nil, err
	}
	return &dto.ListBatchesResponse{Batches: dto.ToBatchResponses(batches), NextToken: next}, nil
}

// ListAuditTrail returns the batch's audit events, newest first.
func (s *batchService) ListAuditTrail(ctx context.Context, actor domain.Actor, batchID string) ([]domain.AuditEvent, error) {
	if _, err := s.GetBatch(ctx, actor, batchID); err != nil {
		return nil, err
	}
	events, err := s.auditLog.ListAuditLogsByBatch(ctx, batchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit trail", slog.String("batch_id", batchID))
		return nil, err
	}
	return events, nil
}

// CreateBatch opens a DRAFT batch with zero totals and a fresh reference.
func (s *batchService) CreateBatch(ctx context.Context, actor domain.Actor, req dto.CreateBatchRequest) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermCreateBatch); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.BatchName)
	if name == "" {
		return nil, apperrors.NewValidationError("Batch name", "is required")
	}
	if utf8.RuneCountInString(name) > maxBatchNameLength {
		return nil, apperrors.NewValidationError("Batch name", fmt.Sprintf("must be at most %d characters", maxBatchNameLength))
	}

	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if !isCurrencyCode(currency) {
		return nil, apperrors.NewValidationError("Currency", "must be a 3 letter code")
	}

	now := s.now()
	fileRef := strings.TrimSpace(req.FileReference)
	if fileRef == "" {
		fileRef = s.references.FileReference(now)
	}
	if utf8.RuneCountInString(fileRef) > maxFileReferenceLength {
		return nil, apperrors.NewValidationError("File reference", fmt.Sprintf("must be at most %d characters", maxFileReferenceLength))
	}

	batch := domain.Batch{
		BatchID:       uuid.NewString(),
		BatchName:     name,
		FileReference: fileRef,
		CurrencyCode:  currency,
		Status:        domain.Draft,
		Version:       1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	var err error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		batch.BatchReference = s.references.BatchReference(now)
		err = s.batchRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.BatchTx) error {
			return tx.CreateBatch(ctx, batch)
		})
		if !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create batch", slog.String("batch_name", name))
		return nil, err
	}

	s.GetLogger(ctx).Info("Batch created",
		slog.String("batch_id", batch.BatchID),
		slog.String("batch_reference", batch.BatchReference))
	return &batch, nil
}

// UpdateBatch changes the name or file reference of a DRAFT batch.
func (s *batchService) UpdateBatch(ctx context.Context, actor domain.Actor, batchID string, req dto.UpdateBatchRequest, expectedVersion *int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermEditBatch); err != nil {
		return nil, err
	}
	b, err := s.mutate(ctx, actor, batchID, expectedVersion, creatorOnly, func(b *domain.Batch) (batchChange, error) {
		if !b.IsEditable() {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "edit", Status: string(b.Status)}
		}
		if req.BatchName != nil {
			name := strings.TrimSpace(*req.BatchName)
			if name == "" || utf8.RuneCountInString(name) > maxBatchNameLength {
				return batchChange{}, apperrors.NewValidationError("Batch name", fmt.Sprintf("must be 1 to %d characters", maxBatchNameLength))
			}
			b.BatchName = name
		}
		if req.FileReference != nil {
			ref := strings.TrimSpace(*req.FileReference)
			if ref == "" || utf8.RuneCountInString(ref) > maxFileReferenceLength {
				return batchChange{}, apperrors.NewValidationError("File reference", fmt.Sprintf("must be 1 to %d characters", maxFileReferenceLength))
			}
			b.FileReference = ref
		}
		return batchChange{}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to update batch", slog.String("batch_id", batchID))
		return nil, err
	}
	return b, nil
}

// AddItem appends a line item to a DRAFT batch, resolving its master data
// snapshot, assigning the next sequence number and recomputing totals.
func (s *batchService) AddItem(ctx context.Context, actor domain.Actor, batchID string, req dto.AddLineItemRequest, expectedVersion *int64) (*domain.Batch, *domain.LineItem, error) {
	if err := s.Authorize(ctx, actor, domain.PermEditBatch); err != nil {
		return nil, nil, err
	}

	var added domain.LineItem
	b, err := s.mutate(ctx, actor, batchID, expectedVersion, creatorOnly, func(b *domain.Batch) (batchChange, error) {
		if !b.IsEditable() {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "add items to", Status: string(b.Status)}
		}
		seq, err := sequencing.Format(len(b.Items) + 1)
		if err != nil {
			return batchChange{}, err
		}

		item, err := s.resolveItem(ctx, req)
		if err != nil {
			return batchChange{}, err
		}
		item.LineItemID = uuid.NewString()
		item.BatchID = b.BatchID
		item.SequenceNumber = seq
		item.CreatedAt = s.now()
		item.CreatedBy = actor.UserID

		b.Items = append(b.Items, item)
		accounting.Recompute(b)
		added = item
		return batchChange{}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to add line item", slog.String("batch_id", batchID))
		return nil, nil, err
	}

	s.GetLogger(ctx).Info("Line item added",
		slog.String("batch_id", batchID),
		slog.String("sequence_number", added.SequenceNumber),
		slog.String("amount", added.Amount.StringFixed(2)))
	return b, &added, nil
}

// resolveItem validates the request and freezes the referenced master data onto a new item.
// Zone and cost center set explicitly are kept; otherwise they come from the scheme.
func (s *batchService) resolveItem(ctx context.Context, req dto.AddLineItemRequest) (domain.LineItem, error) {
	var item domain.LineItem

	if !req.Amount.IsPositive() {
		return item, apperrors.NewValidationError("Amount", "must be greater than zero")
	}
	// Exponent is bounded before any arithmetic rescales the value.
	if exp := req.Amount.Exponent(); exp < -2 {
		return item, apperrors.NewValidationError("Amount", "must have at most two decimal places")
	} else if exp > 16 || req.Amount.Cmp(maxAmount) >= 0 {
		return item, apperrors.NewValidationError("Amount", "is too large")
	}
	item.Amount = req.Amount

	if strings.TrimSpace(req.DebitAccountID) == "" {
		return item, apperrors.NewValidationError("Debit account", "is required")
	}
	account, err := s.masterData.FindDebitAccountByID(ctx, req.DebitAccountID)
	if err := lookupFailure("Debit account", err, account != nil && account.IsActive && account.AccountNumber != ""); err != nil {
		return item, err
	}
	item.DebitAccountID = account.DebitAccountID
	item.DebitAccountNumber = account.AccountNumber

	if strings.TrimSpace(req.PayeeID) == "" {
		return item, apperrors.NewValidationError("Payee", "is required")
	}
	supplier, err := s.masterData.FindSupplierByID(ctx, req.PayeeID)
	if err := lookupFailure("Payee", err, supplier != nil && supplier.IsActive && supplier.AccountNumber != ""); err != nil {
		return item, err
	}
	item.PayeeID = supplier.SupplierID
	item.PayeeName = supplier.SupplierName
	item.PayeeAccountNumber = supplier.AccountNumber
	item.PayeeCreditReference = supplier.CreditReference

	if supplier.BankID == "" {
		return item, apperrors.NewValidationError("Payee bank", "payee has no bank")
	}
	bank, err := s.masterData.FindBankByID(ctx, supplier.BankID)
	if err := lookupFailure("Payee bank", err, bank != nil && bank.IsActive && bank.SwiftCode != ""); err != nil {
		return item, err
	}
	item.PayeeBankID = bank.BankID
	item.PayeeBankCode = bank.SwiftCode

	if strings.TrimSpace(req.SchemeID) == "" {
		return item, apperrors.NewValidationError("Scheme", "is required")
	}
	scheme, err := s.masterData.FindSchemeByID(ctx, req.SchemeID)
	if err := lookupFailure("Scheme", err, scheme != nil && scheme.IsActive); err != nil {
		return item, err
	}
	item.SchemeID = scheme.SchemeID
	item.SchemeCode = scheme.SchemeCode

	zoneID := scheme.ZoneID
	if req.ZoneID != nil && strings.TrimSpace(*req.ZoneID) != "" {
		zoneID = strings.TrimSpace(*req.ZoneID)
	}
	if zoneID == "" {
		return item, apperrors.NewValidationError("Zone", "scheme has no zone")
	}
	zone, err := s.masterData.FindZoneByID(ctx, zoneID)
	if err := lookupFailure("Zone", err, zone != nil && zone.IsActive && zone.ZoneCode != ""); err != nil {
		return item, err
	}
	item.ZoneID = zone.ZoneID
	item.ZoneCode = zone.ZoneCode

	item.CostCenter = scheme.DefaultCostCenter
	if req.CostCenter != nil {
		item.CostCenter = strings.TrimSpace(*req.CostCenter)
	}

	item.Narration = strings.TrimSpace(req.Narration)
	item.ReferenceNumber = strings.TrimSpace(req.ReferenceNumber)
	item.EmployeeNumber = strings.TrimSpace(req.EmployeeNumber)
	item.NationalID = strings.TrimSpace(req.NationalID)
	item.SourceReference = strings.TrimSpace(req.SourceReference)

	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"Narration", item.Narration, domain.MaxNarrationLength},
		{"Reference number", item.ReferenceNumber, domain.MaxReferenceNumberLength},
		{"Employee number", item.EmployeeNumber, domain.MaxEmployeeNumberLength},
		{"National ID", item.NationalID, domain.MaxNationalIDLength},
		{"Cost center", item.CostCenter, domain.MaxCostCenterLength},
		{"Source reference", item.SourceReference, domain.MaxSourceReferenceLength},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return item, apperrors.NewValidationError(f.name, fmt.Sprintf("must be at most %d characters", f.max))
		}
	}
	return item, nil
}

// lookupFailure turns a missing or unusable master data record into a
// validation error naming field. Storage errors pass through.
func lookupFailure(field string, err error, usable bool) error {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError(field, "not found")
		}
		return err
	}
	if !usable {
		return apperrors.NewValidationError(field, "is inactive or incomplete")
	}
	return nil
}

// RemoveItem deletes a line item from a DRAFT batch and renumbers the rest.
func (s *batchService) RemoveItem(ctx context.Context, actor domain.Actor, batchID, lineItemID string, expectedVersion *int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermEditBatch); err != nil {
		return nil, err
	}
	b, err := s.mutate(ctx, actor, batchID, expectedVersion, creatorOnly, func(b *domain.Batch) (batchChange, error) {
		if !b.IsEditable() {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "remove items from", Status: string(b.Status)}
		}
		idx := b.FindItem(lineItemID)
		if idx < 0 {
			return batchChange{}, fmt.Errorf("%w: line item %s", apperrors.ErrNotFound, lineItemID)
		}
		b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
		if err := sequencing.Renumber(b.Items); err != nil {
			return batchChange{}, err
		}
		accounting.Recompute(b)
		return batchChange{}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to remove line item", slog.String("batch_id", batchID), slog.String("line_item_id", lineItemID))
		return nil, err
	}
	return b, nil
}

// Submit moves a non-empty DRAFT batch to PENDING.
func (s *batchService) Submit(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermEditBatch); err != nil {
		return nil, err
	}
	b, err := s.mutate(ctx, actor, batchID, expectedVersion, creatorOnly, func(b *domain.Batch) (batchChange, error) {
		if !b.Status.CanTransitionTo(domain.Pending) {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "submit", Status: string(b.Status)}
		}
		if len(b.Items) == 0 {
			return batchChange{}, apperrors.ErrEmptyBatch
		}
		accounting.Recompute(b)
		b.Status = domain.Pending
		return batchChange{
			action: domain.ActionSubmitted,
			events: []domain.AuditEvent{s.newEvent(b, actor, domain.ActionSubmitted, "")},
		}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to submit batch", slog.String("batch_id", batchID))
		return nil, err
	}
	s.GetLogger(ctx).Info("Batch submitted", slog.String("batch_id", batchID))
	return b, nil
}

// decide applies an authorizer decision to a PENDING batch.
func (s *batchService) decide(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64, next domain.BatchStatus, apply func(b *domain.Batch, at time.Time) domain.AuditEvent) (*domain.Batch, error) {
	return s.mutate(ctx, actor, batchID, expectedVersion, anyPermitted, func(b *domain.Batch) (batchChange, error) {
		if !b.Status.CanTransitionTo(next) {
			op := "approve"
			if next == domain.Rejected {
				op = "reject"
			}
			return batchChange{}, &apperrors.InvalidStateError{Operation: op, Status: string(b.Status)}
		}
		if b.IsCreatedBy(actor.UserID) {
			return batchChange{}, apperrors.ErrSelfApproval
		}
		b.Status = next
		event := apply(b, s.now())
		return batchChange{action: event.Action, events: []domain.AuditEvent{event}}, nil
	})
}

// Approve moves a PENDING batch to APPROVED. The creator can never approve their own batch.
func (s *batchService) Approve(ctx context.Context, actor domain.Actor, batchID, remarks string, expectedVersion *int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermApproveBatch); err != nil {
		return nil, err
	}
	remarks = strings.TrimSpace(remarks)
	b, err := s.decide(ctx, actor, batchID, expectedVersion, domain.Approved, func(b *domain.Batch, at time.Time) domain.AuditEvent {
		approver := actor.UserID
		b.ApprovedBy = &approver
		b.ApprovedAt = &at
		b.RejectedBy, b.RejectedAt, b.RejectionReason = nil, nil, nil
		return s.newEvent(b, actor, domain.ActionApproved, remarks)
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to approve batch", slog.String("batch_id", batchID))
		return nil, err
	}
	s.GetLogger(ctx).Info("Batch approved", slog.String("batch_id", batchID))
	return b, nil
}

// Reject moves a PENDING batch to REJECTED with a mandatory reason.
func (s *batchService) Reject(ctx context.Context, actor domain.Actor, batchID, reason string, expectedVersion *int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermApproveBatch); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("Rejection reason", "is required")
	}
	b, err := s.decide(ctx, actor, batchID, expectedVersion, domain.Rejected, func(b *domain.Batch, at time.Time) domain.AuditEvent {
		rejecter := actor.UserID
		b.RejectedBy = &rejecter
		b.RejectedAt = &at
		b.RejectionReason = &reason
		b.ApprovedBy, b.ApprovedAt = nil, nil
		return s.newEvent(b, actor, domain.ActionRejected, reason)
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to reject batch", slog.String("batch_id", batchID))
		return nil, err
	}
	s.GetLogger(ctx).Info("Batch rejected", slog.String("batch_id", batchID))
	return b, nil
}

// MarkExported stores the generated file and moves APPROVED to EXPORTED.
// Re-exporting an EXPORTED batch refreshes the snapshot without a status change.
func (s *batchService) MarkExported(ctx context.Context, actor domain.Actor, batchID string, file portssvc.GeneratedFile, expectedVersion int64) (*domain.Batch, error) {
	if err := s.Authorize(ctx, actor, domain.PermExportBatch); err != nil {
		return nil, err
	}
	b, err := s.mutate(ctx, actor, batchID, &expectedVersion, anyPermitted, func(b *domain.Batch) (batchChange, error) {
		if b.Status != domain.Exported && !b.Status.CanTransitionTo(domain.Exported) {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "export", Status: string(b.Status)}
		}
		content := file.Content
		generatedAt := file.GeneratedAt.UTC()
		b.GeneratedFile = &content
		b.GeneratedAt = &generatedAt
		b.Status = domain.Exported
		return batchChange{
			action: domain.ActionExported,
			events: []domain.AuditEvent{s.newEvent(b, actor, domain.ActionExported, file.Remarks)},
		}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to mark batch exported", slog.String("batch_id", batchID))
		return nil, err
	}
	return b, nil
}

// DeleteBatch removes a DRAFT batch and its items.
func (s *batchService) DeleteBatch(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) error {
	if err := s.Authorize(ctx, actor, domain.PermEditBatch); err != nil {
		return err
	}
	_, err := s.mutate(ctx, actor, batchID, expectedVersion, creatorOnly, func(b *domain.Batch) (batchChange, error) {
		if !b.IsEditable() {
			return batchChange{}, &apperrors.InvalidStateError{Operation: "delete", Status: string(b.Status)}
		}
		return batchChange{deleted: true}, nil
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to delete batch", slog.String("batch_id", batchID))
		return err
	}
	s.GetLogger(ctx).Info("Batch deleted", slog.String("batch_id", batchID))
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
