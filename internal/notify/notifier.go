package notify

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hotelier/internal/domain"
	"hotelier/internal/events"
)

// Notifier пересылает события по броням в телеграм-чаты операторов.
type Notifier struct {
	sender  domain.TelegramSender
	chatIDs []int64
	log     zerolog.Logger
}

func NewNotifier(sender domain.TelegramSender, chatIDs []int64, logger *zerolog.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		chatIDs: chatIDs,
		log:     logger.With().Str("component", "notify").Logger(),
	}
}

// SubscribeAll registers handlers for every reservation event type.
func (n *Notifier) SubscribeAll(bus *events.EventBus) {
	bus.Subscribe(events.EventReservationCreated, n.handle)
	bus.Subscribe(events.EventReservationUpdated, n.handle)
	bus.Subscribe(events.EventReservationCancelled, n.handle)
	bus.Subscribe(events.EventReservationDeleted, n.handle)
}

func (n *Notifier) handle(ev *events.Event) error {
	var payload events.ReservationEventPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		n.log.Error().Err(err).Str("event", ev.Type).Msg("decode payload")
		return nil
	}

	text := formatMessage(ev.Type, payload)
	if text == "" {
		return nil
	}

	for _, chatID := range n.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := n.sender.Send(msg); err != nil {
			n.log.Error().Err(err).Int64("chat_id", chatID).Str("event", ev.Type).Msg("send notification")
		}
	}
	return nil
}

func formatMessage(eventType string, p events.ReservationEventPayload) string {
	switch eventType {
	case events.EventReservationCreated:
		return fmt.Sprintf(`🆕 Новая бронь #%d

🏨 Отель: %d, номер: %d
📅 Даты: %s - %s
👤 Гость: %d
💰 Сумма: %.2f
Статус: %s`,
			p.ReservationID, p.HotelID, p.RoomID,
			p.StartDate, p.EndDate, p.VisitorID, p.TotalPrice, p.Status)
	case events.EventReservationUpdated:
		return fmt.Sprintf(`✏️ Бронь #%d изменена

🏨 Отель: %d, номер: %d
📅 Даты: %s - %s
Статус: %s`,
			p.ReservationID, p.HotelID, p.RoomID,
			p.StartDate, p.EndDate, p.Status)
	case events.EventReservationCancelled:
		return fmt.Sprintf(`❌ Бронь #%d отменена

🏨 Отель: %d, номер: %d
📅 Даты: %s - %s`,
			p.ReservationID, p.HotelID, p.RoomID, p.StartDate, p.EndDate)
	case events.EventReservationDeleted:
		return fmt.Sprintf("🗑 Бронь #%d удалена (отель %d, номер %d)",
			p.ReservationID, p.HotelID, p.RoomID)
	default:
		return ""
	}
}
