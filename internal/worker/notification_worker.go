package worker

import (
	"github.com/spec-kit/resource-service/internal/service"
)

// StartNotificationWorker registers notification handlers and starts delivering
// queued events to them.
func StartNotificationWorker(notificationService *service.NotificationService, queue *AsyncDispatcher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if queue != nil {
		queue.Start()
	}
}
