package exercise

import (
	"encoding/json"
	"fmt"
)

// Kinds lists every action kind accepted on the wire.
var Kinds = []ActionKind{
	KindInit,
	KindSelectQuestion,
	KindTokenDragging,
	KindTokenDragComplete,
	KindTokenUpdatePosition,
	KindTokenSort,
	KindTokenRearrange,
	KindTokenUnsort,
	KindAdjacentTokenUpdate,
}

func IsKnownKind(kind string) bool {
	for _, k := range Kinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// DecodeAction turns a wire action into its typed form. The select_question
// payload is a bare index; every other payload is an object.
func DecodeAction(kind string, payload json.RawMessage) (Action, error) {
	switch ActionKind(kind) {
	case KindInit:
		return decodePayload[Init](kind, payload)
	case KindSelectQuestion:
		var index int
		if err := json.Unmarshal(payload, &index); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return SelectQuestion{Index: index}, nil
	case KindTokenDragging:
		return decodePayload[TokenDragging](kind, payload)
	case KindTokenDragComplete:
		return decodePayload[TokenDragComplete](kind, payload)
	case KindTokenUpdatePosition:
		return decodePayload[TokenUpdatePosition](kind, payload)
	case KindTokenSort:
		return decodePayload[TokenSort](kind, payload)
	case KindTokenRearrange:
		return decodePayload[TokenRearrange](kind, payload)
	case KindTokenUnsort:
		return decodePayload[TokenUnsort](kind, payload)
	case KindAdjacentTokenUpdate:
		return decodePayload[AdjacentTokenUpdate](kind, payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionKind, kind)
	}
}

func decodePayload[T Action](kind string, payload json.RawMessage) (Action, error) {
	var a T
	if len(payload) == 0 {
		return nil, fmt.Errorf("decode %s payload: missing payload", kind)
	}
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return a, nil
}
