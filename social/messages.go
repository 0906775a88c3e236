package social

import (
	"github.com/google/uuid"
	"socialnet/event"
	"socialnet/model"
)

// SendMessage persists a message and publishes MessageSent, flagging the
// reply variant. A reply must reference a message that exists at creation
// time; the check is best-effort, not transactional.
func (s *Service) SendMessage(m *model.Message) error {
	if m == nil {
		return invalidInput("message cannot be nil")
	}
	if len(m.Recipients()) == 0 {
		return invalidInput("message needs at least one recipient")
	}
	if m.ReplyToID != nil {
		replied, err := s.messages.GetOne(*m.ReplyToID)
		if err != nil {
			return storageError("could not look up replied-to message", err)
		}
		if replied == nil {
			return notFound("replied-to message %s does not exist", *m.ReplyToID)
		}
	}

	if _, err := s.messages.Save(m); err != nil {
		return storageError("could not send message", err)
	}

	s.bus.Publish(event.MessageSent{Message: *m, Reply: m.IsReply()})
	return nil
}

// GetMessage looks a message up by id.
func (s *Service) GetMessage(id uuid.UUID) (*model.Message, error) {
	m, err := s.messages.GetOne(id)
	if err != nil {
		return nil, storageError("could not look up message", err)
	}
	if m == nil {
		return nil, notFound("message %s does not exist", id)
	}
	return m, nil
}

// MessagesBetween returns every message exchanged between the two users,
// in either direction, sorted ascending by timestamp.
func (s *Service) MessagesBetween(a, b uuid.UUID) ([]model.Message, error) {
	msgs, err := s.messages.Between(a, b)
	if err != nil {
		return nil, storageError("could not list messages", err)
	}
	return msgs, nil
}
