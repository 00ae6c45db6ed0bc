package utils

import (
	"encoding/json"
	"log/slog"
)

// SerializeToJSON encodes an outbound record for the assessments topic and
// logs the payload type when encoding fails.
func SerializeToJSON(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("[KafkaUtils] Could not encode outbound record",
			slog.String("error", err.Error()))
		return nil, err
	}
	return data, nil
}

// DeserializeFromJSON decodes an inbound analysis request. Malformed
// payloads are logged and skipped by the caller rather than retried.
func DeserializeFromJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("[KafkaUtils] Could not decode inbound record",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// HandleConsumerError logs a poll error from the analysis consumer loop.
func HandleConsumerError(err error) {
	if err == nil {
		return
	}
	slog.Error("[KafkaUtils] Consumer poll failed",
		slog.String("error", err.Error()))
}
