package worker

import (
	"github.com/spec-kit/finance-tracker/internal/service"
)

// StartNotificationWorker hooks the notification service into the event
// dispatcher at boot. Events dispatch synchronously, so there is no
// goroutine to manage here; this exists so main wires workers uniformly.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
