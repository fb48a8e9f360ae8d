package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/dto"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/mapper"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/notifier"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/repository"
)

// Result is the outcome of handling one webhook delivery.
type Result struct {
	Outcome string
	ItemID  string
}

// LifecycleService dispatches lifecycle events onto the upsert protocol. It
// is state-free: every request builds its own event and column set, and the
// only shared collaborators (resolver tables, API client) are read-only.
type LifecycleService struct {
	mapper     *mapper.Mapper
	boards     BoardResolver
	upserter   ItemUpserter
	notifier   notifier.Notifier
	deliveries repository.DeliveryRepository
	log        *zap.Logger
}

// NewLifecycleService creates the dispatcher. deliveries may be nil when the
// audit store is not configured.
func NewLifecycleService(m *mapper.Mapper, boards BoardResolver, upserter ItemUpserter, n notifier.Notifier, deliveries repository.DeliveryRepository, log *zap.Logger) *LifecycleService {
	return &LifecycleService{
		mapper:     m,
		boards:     boards,
		upserter:   upserter,
		notifier:   n,
		deliveries: deliveries,
		log:        log,
	}
}

// HandleEvent routes one inbound webhook to the upsert protocol. Unknown
// event kinds are acknowledged and ignored. A find miss after retries skips
// the update and still reports success; only remote call failures and
// unmapped applications propagate as errors.
func (s *LifecycleService) HandleEvent(ctx context.Context, req *dto.WebhookRequest) (*Result, error) {
	event := buildEvent(req)

	kind := event.Kind
	if kind == domain.KindUnknown {
		s.log.Info("Ignoring unhandled event type", zap.String("type", req.Type))
		result := &Result{Outcome: domain.OutcomeIgnored}
		s.recordDelivery(ctx, event, "", result, nil)
		return result, nil
	}

	target, err := s.boards.Resolve(event.ApplicationID)
	if err != nil {
		s.log.Warn("No board mapping found for app", zap.String("app_id", event.ApplicationID))
		return nil, fmt.Errorf("resolving board for app %s: %w", event.ApplicationID, err)
	}

	result, err := s.dispatch(ctx, kind, event, target)
	s.recordDelivery(ctx, event, target.BoardID, result, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, event)

	return result, nil
}

func (s *LifecycleService) dispatch(ctx context.Context, kind domain.EventKind, event *domain.LifecycleEvent, target domain.BoardTarget) (*Result, error) {
	columns := s.mapper.Map(event)

	switch kind {
	case domain.KindInstall:
		itemName := event.AccountName
		if itemName == "" {
			itemName = "Unnamed Account"
		}
		itemID, err := s.upserter.CreateItem(ctx, itemName, columns, target)
		if err != nil {
			return nil, err
		}
		return &Result{Outcome: domain.OutcomeCreated, ItemID: itemID}, nil

	case domain.KindUninstall:
		return s.findAndUpdate(ctx, event, target, domain.ColumnValueSet{
			domain.ColumnStatus: domain.LabelValue{Label: domain.StatusUninstalled},
		})

	case domain.KindSubscriptionCreated:
		return s.findAndUpdate(ctx, event, target, domain.ColumnValueSet{
			domain.ColumnStatus: domain.LabelValue{Label: domain.StatusSubscriptionCreated},
			domain.ColumnPlanID: event.PlanID,
		})

	case domain.KindSubscriptionCancelled:
		return s.findAndUpdate(ctx, event, target, domain.ColumnValueSet{
			domain.ColumnStatus: domain.LabelValue{Label: domain.StatusSubscriptionCancelled},
		})

	case domain.KindSubscriptionRenewed:
		return s.findAndUpdate(ctx, event, target, domain.ColumnValueSet{
			domain.ColumnStatus: domain.LabelValue{Label: domain.StatusSubscriptionRenewed},
		})

	default:
		// ParseKind is closed; unknown kinds were acknowledged earlier.
		return &Result{Outcome: domain.OutcomeIgnored}, nil
	}
}

// findAndUpdate locates the account's item and applies the column deltas. A
// miss after the bounded retries is a logged no-op, not a failure: the
// marketplace sender gets a success response either way.
func (s *LifecycleService) findAndUpdate(ctx context.Context, event *domain.LifecycleEvent, target domain.BoardTarget, deltas domain.ColumnValueSet) (*Result, error) {
	itemID, found, err := s.upserter.FindItemWithRetry(ctx, event.AccountID, target.BoardID)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.Warn("Skipping update, item not found",
			zap.String("kind", event.Kind.String()),
			zap.String("account_id", event.AccountID),
			zap.String("board_id", target.BoardID))
		return &Result{Outcome: domain.OutcomeSkipped}, nil
	}

	if err := s.upserter.UpdateItem(ctx, itemID, deltas, target.BoardID, event.AccountID); err != nil {
		return nil, err
	}

	return &Result{Outcome: domain.OutcomeUpdated, ItemID: itemID}, nil
}

func (s *LifecycleService) notify(ctx context.Context, event *domain.LifecycleEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn("Failed to send notification",
			zap.String("kind", event.Kind.String()),
			zap.String("account_id", event.AccountID),
			zap.Error(err))
	}
}

func (s *LifecycleService) recordDelivery(ctx context.Context, event *domain.LifecycleEvent, boardID string, result *Result, handleErr error) {
	if s.deliveries == nil {
		return
	}

	record := &domain.DeliveryRecord{
		DeliveryID:    uuid.NewString(),
		Kind:          event.Kind.String(),
		ApplicationID: event.ApplicationID,
		AccountID:     event.AccountID,
		BoardID:       boardID,
	}
	if result != nil {
		record.Outcome = result.Outcome
		record.ItemID = result.ItemID
	}
	if handleErr != nil {
		record.Outcome = domain.OutcomeFailed
		record.Error = handleErr.Error()
	}

	if err := s.deliveries.RecordDelivery(ctx, record); err != nil {
		s.log.Warn("Failed to record delivery",
			zap.String("delivery_id", record.DeliveryID),
			zap.String("account_id", record.AccountID),
			zap.Error(err))
	}
}

// buildEvent coerces the wire payload into a LifecycleEvent. Numeric-ish
// fields are stringified; nothing here fails on an absent field.
func buildEvent(req *dto.WebhookRequest) *domain.LifecycleEvent {
	data := req.Data
	if data == nil {
		data = &dto.WebhookPayload{}
	}

	return &domain.LifecycleEvent{
		Kind:          domain.ParseKind(req.Type),
		ApplicationID: coerceString(data.AppID),
		AccountID:     coerceString(data.AccountID),
		AccountName:   data.AccountName,
		AccountSlug:   data.AccountSlug,
		UserName:      data.UserName,
		UserEmail:     data.UserEmail,
		UserCountry:   data.UserCountry,
		UserCluster:   data.UserCluster,
		AccountTier:   data.AccountTier,
		PlanID:        coerceString(data.PlanID),
		MaxUsers:      coerceString(data.AccountMaxUsers),
		Timestamp:     data.Timestamp,
	}
}

// coerceString renders a payload field that may arrive as a JSON string or
// number. Absent fields become empty strings, never an error.
func coerceString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return fmt.Sprintf("%v", value)
	}
}
