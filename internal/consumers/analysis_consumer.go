package consumers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/campuswell/stresslens/config"
	"github.com/campuswell/stresslens/internal/analysis/behavior"
	"github.com/campuswell/stresslens/internal/analysis/fusion"
	"github.com/campuswell/stresslens/internal/analysis/text"
	"github.com/campuswell/stresslens/internal/clients"
	"github.com/campuswell/stresslens/internal/clients/kafka_client"
	kafkautils "github.com/campuswell/stresslens/internal/clients/kafka_client/utils"
	"github.com/campuswell/stresslens/internal/db"
	"github.com/campuswell/stresslens/internal/models"
	"github.com/campuswell/stresslens/internal/preprocess"
	"github.com/campuswell/stresslens/internal/privacy"
	"github.com/campuswell/stresslens/internal/utils"
	"github.com/campuswell/stresslens/internal/validation"
)

var (
	assessmentBuffer = utils.NewBatchBuffer[models.AssessmentRecord]()

	textExtractor     = text.NewExtractor()
	behaviorExtractor = behavior.NewExtractor()
)

// StartAnalysisConsumer drains the analysis-requests topic: each request is
// validated, analyzed per source, fused into an assessment, noised when
// differential privacy is enabled, and batched out to the assessments topic
// and DynamoDB before its offset is committed.
func StartAnalysisConsumer(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	settings := config.GetSettings()
	scorer := fusion.NewScorer(fusion.Thresholds{
		Medium: settings.StressThresholdMedium,
		High:   settings.StressThresholdHigh,
	})

	var mechanism *privacy.Mechanism
	if settings.EnableDifferentialPrivacy {
		mechanism = privacy.NewMechanism(settings.PrivacyEpsilon)
	}

	slog.Info("[AnalysisConsumer] Listening for messages...")

	ticker := time.NewTicker(kafka_client.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisConsumer] Stopping consumer...")
			flushAssessments(ctx, committer)
			return
		case <-ticker.C:
			go flushAssessments(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				kafkautils.HandleConsumerError(err)
				continue
			}

			var request models.AnalysisRequest
			if err := kafkautils.DeserializeFromJSON(msg.Value, &request); err != nil {
				continue
			}

			if skip, reason := shouldSkip(ctx, request); skip {
				slog.Warn("[AnalysisConsumer] Skipping request",
					slog.String("request_id", request.RequestID),
					slog.String("reason", reason))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[AnalysisConsumer] Failed to commit skipped message",
						slog.String("error", err.Error()))
				}
				continue
			}

			record, err := assessRequest(request, scorer, settings.MaxTextLength)
			if err != nil {
				slog.Error("[AnalysisConsumer] Failed to assess request",
					slog.String("request_id", request.RequestID),
					slog.String("error", err.Error()))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[AnalysisConsumer] Failed to commit failed message",
						slog.String("error", err.Error()))
				}
				continue
			}

			if mechanism != nil {
				record = mechanism.ProtectRecord(record)
			}

			kafkautils.TrackMessage(record.RequestID, msg)
			assessmentBuffer.Add(record)

			if assessmentBuffer.Size() >= kafka_client.BATCH_SIZE {
				go flushAssessments(ctx, committer)
			}
		}
	}
}

func shouldSkip(ctx context.Context, request models.AnalysisRequest) (bool, string) {
	if request.RequestID == "" {
		return true, "missing request id"
	}
	if err := validation.ValidateUserID(request.UserID); err != nil {
		return true, err.Error()
	}
	if request.Text == "" && request.Activity == nil {
		return true, "no text or activity payload"
	}
	if clients.GetValkeyClient().IsRequestProcessed(ctx, request.RequestID) {
		return true, "duplicate request"
	}
	return false, ""
}

// assessRequest runs each available source independently so one bad source
// degrades the assessment rather than failing it outright.
func assessRequest(request models.AnalysisRequest, scorer *fusion.Scorer, maxTextLength int) (models.AssessmentRecord, error) {
	var (
		textFeatures     *models.TextFeatureSet
		behaviorFeatures *models.BehaviorFeatureSet
		sources          []string
		polarityScore    float64
		polarityLabel    string
	)

	if request.Text != "" {
		if err := validation.ValidateText(request.Text, maxTextLength); err != nil {
			slog.Warn("[AnalysisConsumer] Dropping text source",
				slog.String("request_id", request.RequestID),
				slog.String("error", err.Error()))
		} else {
			plain := preprocess.MarkdownToPlain(preprocess.StripLinks(request.Text))
			signals := textExtractor.Analyze(plain)
			textFeatures = signals.Features()
			polarityScore, polarityLabel = preprocess.Polarity(plain)
			sources = append(sources, "text")
		}
	}

	if request.Activity != nil {
		windowDays := request.WindowDays
		if windowDays == 0 {
			windowDays = config.DEFAULT_TIME_WINDOW_DAYS
		}
		signals, err := behaviorExtractor.Analyze(*request.Activity, windowDays)
		if err != nil {
			slog.Warn("[AnalysisConsumer] Dropping behavior source",
				slog.String("request_id", request.RequestID),
				slog.String("error", err.Error()))
		} else {
			behaviorFeatures = signals.Features()
			sources = append(sources, "behavior")
		}
	}

	assessment, err := scorer.CalculateScore(textFeatures, behaviorFeatures)
	if err != nil {
		return models.AssessmentRecord{}, err
	}

	return models.AssessmentRecord{
		StressAssessment: assessment,
		RequestID:        request.RequestID,
		UserID:           request.UserID,
		Sources:          sources,
		PolarityScore:    polarityScore,
		PolarityLabel:    polarityLabel,
		Timestamp:        time.Now().UTC(),
	}, nil
}

func flushAssessments(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := assessmentBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_ASSESSMENTS, batch[0].RequestID, batch)
		if err == nil {
			break
		}
		slog.Warn("[AnalysisConsumer] Batch publishing Failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	if err := db.StoreBatchedAssessments(ctx, batch); err != nil {
		slog.Error("[AnalysisConsumer] Failed to store assessment batch",
			slog.String("error", err.Error()))
	}

	for _, record := range batch {
		if err := clients.GetValkeyClient().MarkProcessed(ctx, record.RequestID); err != nil {
			slog.Warn("[AnalysisConsumer] Failed to mark request processed",
				slog.String("request_id", record.RequestID),
				slog.String("error", err.Error()))
		}

		trackedMsg, found := kafkautils.GetMessageForRequest(record.RequestID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[AnalysisConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
