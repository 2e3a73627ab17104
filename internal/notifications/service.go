package notifications

import (
	"context"
	"fmt"

	"github.com/Rehan-4778/JobHunt-BE/internal/authz"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	dbtypes "github.com/Rehan-4778/JobHunt-BE/pkg/db/types"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/google/uuid"
)

// Event describes a notification to be delivered to one user.
type Event struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    enums.NotificationType
	Data    map[string]any
}

// Emitter delivers notification events without surfacing delivery failures
// to the caller.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Service defines the behavior needed by the notifications controller.
type Service interface {
	Emitter
	List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	notifications notificationRepository
	logg          *logger.Logger
	ownerGuard    authz.Guard[*models.Notification]
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	NotificationRepo notificationRepository
	Logger           *logger.Logger
}

// NewService constructs a notifications service.
func NewService(params ServiceParams) (Service, error) {
	if params.NotificationRepo == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		notifications: params.NotificationRepo,
		logg:          params.Logger,
		ownerGuard: authz.Guard[*models.Notification]{
			Resource: "notification",
			Fetch:    params.NotificationRepo.FindByID,
			OwnerOf:  func(n *models.Notification) uuid.UUID { return n.UserID },
		},
	}, nil
}

// Emit persists the event best-effort. Failures are logged and swallowed so
// callers in the application pipeline never fail on delivery.
func (s *service) Emit(ctx context.Context, event Event) {
	notificationType := event.Type
	if !notificationType.IsValid() {
		notificationType = enums.NotificationTypeGeneral
	}
	notification := &models.Notification{
		UserID:  event.UserID,
		Title:   event.Title,
		Message: event.Message,
		Type:    notificationType,
		Data:    dbtypes.JSONMap(event.Data),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logg.Error(ctx, "notification delivery failed", err)
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Notification, error) {
	notification, err := s.ownerGuard.Resolve(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	notification.IsRead = true
	return notification, nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notifications read")
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count unread notifications")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if _, err := s.ownerGuard.Resolve(ctx, actor, id); err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete notification")
	}
	return nil
}
