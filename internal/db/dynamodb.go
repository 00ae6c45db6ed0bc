package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/campuswell/stresslens/config"
	"github.com/campuswell/stresslens/internal/clients"
	"github.com/campuswell/stresslens/internal/models"
)

// Assessments are retained for 30 days, then expired by DynamoDB TTL.
const ASSESSMENT_RETENTION = 30 * 24 * time.Hour

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

func assessmentsTable() string {
	return config.GetSettings().AssessmentsTable
}

// StoreBatchedAssessments writes assessment records in chunks of 25, the
// BatchWriteItem limit, retrying unprocessed items with backoff.
func StoreBatchedAssessments(ctx context.Context, records []models.AssessmentRecord) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	table := assessmentsTable()
	expirationTime := time.Now().Add(ASSESSMENT_RETENTION).Unix()

	const maxBatchSize = 25
	for i := 0; i < len(records); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(records) {
				end = len(records)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, record := range records[i:end] {
				item, err := RecordToDynamoDBItem(record, expirationTime)
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to marshal assessment: %w", err)
				}
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: item},
				})
			}

			out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					table: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write assessments: %w", err)
			}

			retryCount := 0
			backoff := 500 * time.Millisecond
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoff)
				backoff *= 2

				slog.Warn("[DynamoDB] Retrying unprocessed assessment items...",
					slog.Int("attempt", retryCount+1),
					slog.Int("remaining", len(out.UnprocessedItems[table])))

				out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
				}
				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some assessments were not written even after retries",
					slog.Int("remaining", len(out.UnprocessedItems[table])))
			}
		}
	}
	slog.Info("[DynamoDB] Successfully stored assessments",
		slog.Int("count", len(records)))
	return nil
}

// GetAssessmentsForUser returns the stored assessments for one user,
// newest first.
func GetAssessmentsForUser(ctx context.Context, userID string) ([]models.AssessmentRecord, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	out, err := dbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(assessmentsTable()),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Query for assessments failed: %w", err)
	}

	var records []models.AssessmentRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		slog.Error("[DynamoDB] Unable to unmarshal assessment page", slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[DynamoDB] Successfully retrieved assessments",
		slog.Int("count", len(records)))
	return records, nil
}

func RecordToDynamoDBItem(record models.AssessmentRecord, expiresAt int64) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, err
	}

	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)}
	item["created_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())}

	return item, nil
}
