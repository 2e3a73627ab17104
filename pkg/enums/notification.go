package enums

import "fmt"

// NotificationType categorizes user-facing event records.
type NotificationType string

const (
	NotificationTypeApplication NotificationType = "application"
	NotificationTypeJob         NotificationType = "job"
	NotificationTypeStatus      NotificationType = "status"
	NotificationTypeMessage     NotificationType = "message"
	NotificationTypeGeneral     NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeApplication,
	NotificationTypeJob,
	NotificationTypeStatus,
	NotificationTypeMessage,
	NotificationTypeGeneral,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
