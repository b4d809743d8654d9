package instances

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const calendarService = "SMC-AvailabilityService"

// buildCalendar сериализует экземпляры в VCALENDAR; UID события = ID экземпляра
func buildCalendar(productID string, list []domain.ProductInstance, now time.Time) string {
	cal := ical.NewCalendarFor(calendarService)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("product " + productID)

	for i := range list {
		inst := &list[i]

		event := cal.AddEvent(inst.ID.String())
		event.SetDtStampTime(now)
		if !inst.CreatedAt.IsZero() {
			event.SetCreatedTime(inst.CreatedAt)
		}
		event.SetStartAt(inst.StartTime)
		event.SetEndAt(inst.EndTime)
		event.SetSummary(fmt.Sprintf("%d/%d places available", inst.AvailableQuantity, inst.MaxQuantity))
		event.SetStatus(eventStatus(inst.Status))
	}

	return cal.Serialize()
}

func eventStatus(s domain.InstanceStatus) ical.ObjectStatus {
	if s == domain.InstanceStatusCancelled {
		return ical.ObjectStatusCancelled
	}
	return ical.ObjectStatusConfirmed
}
