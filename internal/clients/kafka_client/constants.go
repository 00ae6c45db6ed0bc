package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_REQUESTS = "wellbeing-analysis-requests" // incoming text/behavior payloads awaiting assessment
	KAFKA_TOPIC_ASSESSMENTS       = "wellbeing-assessments"       // finished stress assessments ready for downstream consumers
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
