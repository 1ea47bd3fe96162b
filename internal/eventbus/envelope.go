package eventbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBusClosed возвращается при публикации в закрытую шину
var ErrBusClosed = errors.New("event bus closed")

// Типы игровых событий
const (
	EventTick              = "sim.tick"
	EventItemHit           = "item.hit"
	EventItemDespawned     = "item.despawned"
	EventItemPickedUp      = "item.picked_up"
	EventRelevanceChanged  = "item.relevance"
	EventPortalEntered     = "player.portal"
	EventAreaEntered       = "player.area"
	EventInteractionFailed = "item.interaction_failed"
)

// PayloadVersion — текущая версия схемы полезной нагрузки
const PayloadVersion = 1

// NewEnvelope собирает событие; payload сериализуется как google.protobuf.Struct.
// Допустимые значения payload — те, что принимает structpb.NewValue.
func NewEnvelope(source, eventType string, payload map[string]interface{}) (*Envelope, error) {
	data, err := EncodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   PayloadVersion,
		Payload:   data,
		Metadata:  make(map[string]string),
	}, nil
}

// EncodePayload сериализует карту в protobuf Struct
func EncodePayload(payload map[string]interface{}) ([]byte, error) {
	st, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

// DecodePayload восстанавливает карту из полезной нагрузки события.
// Числа возвращаются как float64 (семантика google.protobuf.Value).
func DecodePayload(ev *Envelope) (map[string]interface{}, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(ev.Payload, st); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", ev.EventType, err)
	}
	return st.AsMap(), nil
}
