package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultSessionsTableName = "payment_sessions"
	dynamoMaxUpdateAttempts  = 5
)

// dynamoAPI is the subset of *dynamodb.Client used by the session store.
type dynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type customerItem struct {
	Name              string `dynamodbav:"name"`
	Document          string `dynamodbav:"document"`
	Email             string `dynamodbav:"email"`
	Phone             string `dynamodbav:"phone"`
	SyntheticDocument bool   `dynamodbav:"synthetic_document"`
	SyntheticContact  bool   `dynamodbav:"synthetic_contact"`
}

type sessionItem struct {
	ID              string       `dynamodbav:"id"`
	Status          string       `dynamodbav:"status"`
	PixCode         string       `dynamodbav:"pix_code"`
	PixQRCode       string       `dynamodbav:"pix_qr_code"`
	Customer        customerItem `dynamodbav:"customer"`
	Amount          string       `dynamodbav:"amount"`
	AmountUnit      string       `dynamodbav:"amount_unit"`
	Description     string       `dynamodbav:"description,omitempty"`
	Demo            bool         `dynamodbav:"demo"`
	CreatedAt       string       `dynamodbav:"created_at"`
	CreatedAtEpoch  int64        `dynamodbav:"created_at_epoch"`
	ApprovedAt      string       `dynamodbav:"approved_at,omitempty"`
	RejectedAt      string       `dynamodbav:"rejected_at,omitempty"`
	Reported        bool         `dynamodbav:"reported"`
	ReportClaimedAt string       `dynamodbav:"report_claimed_at,omitempty"`
	Version         int64        `dynamodbav:"version"`
	ExpiresAt       int64        `dynamodbav:"expires_at"`
}

// SessionDynamoRepository persists PaymentSession entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - TTL attribute: expires_at (epoch seconds)
//
// Updates are optimistic: each write is conditioned on the version it read.

type SessionDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
	retention time.Duration
	now       func() time.Time
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb *dynamodb.Client, tableName string, retention time.Duration) *SessionDynamoRepository {
	return newSessionDynamoRepository(ddb, tableName, retention)
}

func newSessionDynamoRepository(ddb dynamoAPI, tableName string, retention time.Duration) *SessionDynamoRepository {
	if tableName == "" {
		tableName = defaultSessionsTableName
	}
	if retention <= 0 {
		retention = entities.SessionRetentionWindow
	}
	return &SessionDynamoRepository{ddb: ddb, tableName: tableName, retention: retention, now: time.Now}
}

func (r *SessionDynamoRepository) sessionKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *SessionDynamoRepository) Put(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	it := r.toSessionItem(s, 1)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentSession{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.PaymentSession{}, err
	}
	return s, nil
}

func (r *SessionDynamoRepository) getItem(ctx context.Context, id string) (sessionItem, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            r.sessionKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return sessionItem{}, false, err
	}
	if len(out.Item) == 0 {
		return sessionItem{}, false, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return sessionItem{}, false, err
	}
	return it, true, nil
}

func (r *SessionDynamoRepository) Get(ctx context.Context, id string) (entities.PaymentSession, error) {
	it, ok, err := r.getItem(ctx, id)
	if err != nil || !ok {
		return entities.PaymentSession{}, err
	}
	s := fromSessionItem(it)
	if s.ExpiredForRetention(r.now(), r.retention) {
		return entities.PaymentSession{}, nil
	}
	return s, nil
}

func (r *SessionDynamoRepository) Update(ctx context.Context, id string, mutate interfaces.SessionMutator) (entities.PaymentSession, error) {
	for attempt := 0; attempt < dynamoMaxUpdateAttempts; attempt++ {
		it, ok, err := r.getItem(ctx, id)
		if err != nil || !ok {
			return entities.PaymentSession{}, err
		}
		s := fromSessionItem(it)
		if s.ExpiredForRetention(r.now(), r.retention) {
			return entities.PaymentSession{}, nil
		}
		if err := mutate(&s); err != nil {
			return entities.PaymentSession{}, err
		}

		av, err := attributevalue.MarshalMap(r.toSessionItem(s, it.Version+1))
		if err != nil {
			return entities.PaymentSession{}, err
		}
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("#version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#version": "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(it.Version, 10)},
			},
		})
		if isConditionalCheckFailed(err) {
			continue
		}
		if err != nil {
			return entities.PaymentSession{}, err
		}
		return s, nil
	}
	return entities.PaymentSession{}, fmt.Errorf("%w: id=%s", ErrSessionUpdateContention, id)
}

// SweepExpired scans for sessions created at or before now-retention and deletes
// them. Each delete is conditioned on the scanned version, so a session updated
// mid-sweep survives until the next pass.
func (r *SessionDynamoRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-r.retention).UnixMilli()
	removed := 0

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			FilterExpression:     aws.String("#created <= :cutoff"),
			ProjectionExpression: aws.String("id, version"),
			ExpressionAttributeNames: map[string]string{
				"#created": "created_at_epoch",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cutoff": &types.AttributeValueMemberN{Value: strconv.FormatInt(cutoff, 10)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return removed, err
		}

		for _, raw := range out.Items {
			var it sessionItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return removed, err
			}
			_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName:           aws.String(r.tableName),
				Key:                 r.sessionKey(it.ID),
				ConditionExpression: aws.String("#version = :version"),
				ExpressionAttributeNames: map[string]string{
					"#version": "version",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(it.Version, 10)},
				},
			})
			if isConditionalCheckFailed(err) {
				continue
			}
			if err != nil {
				return removed, err
			}
			removed++
		}

		if len(out.LastEvaluatedKey) == 0 {
			return removed, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return err != nil && errors.As(err, &ccf)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func (r *SessionDynamoRepository) toSessionItem(s entities.PaymentSession, version int64) sessionItem {
	return sessionItem{
		ID:        s.ID,
		Status:    string(s.Status),
		PixCode:   s.PixCode,
		PixQRCode: s.PixQRCode,
		Customer: customerItem{
			Name:              s.Customer.Name,
			Document:          s.Customer.Document,
			Email:             s.Customer.Email,
			Phone:             s.Customer.Phone,
			SyntheticDocument: s.Customer.SyntheticDocument,
			SyntheticContact:  s.Customer.SyntheticContact,
		},
		Amount:          s.Amount.Value.String(),
		AmountUnit:      string(s.Amount.Unit),
		Description:     s.Description,
		Demo:            s.Demo,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339Nano),
		CreatedAtEpoch:  s.CreatedAt.UnixMilli(),
		ApprovedAt:      formatOptionalTime(s.ApprovedAt),
		RejectedAt:      formatOptionalTime(s.RejectedAt),
		Reported:        s.Reported,
		ReportClaimedAt: formatOptionalTime(s.ReportClaimedAt),
		Version:         version,
		ExpiresAt:       s.CreatedAt.Add(r.retention + retentionGrace).Unix(),
	}
}

func fromSessionItem(it sessionItem) entities.PaymentSession {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	amount, _ := decimal.NewFromString(it.Amount)
	return entities.PaymentSession{
		ID:        it.ID,
		Status:    entities.SessionStatus(it.Status),
		PixCode:   it.PixCode,
		PixQRCode: it.PixQRCode,
		Customer: entities.CustomerSnapshot{
			Name:              it.Customer.Name,
			Document:          it.Customer.Document,
			Email:             it.Customer.Email,
			Phone:             it.Customer.Phone,
			SyntheticDocument: it.Customer.SyntheticDocument,
			SyntheticContact:  it.Customer.SyntheticContact,
		},
		Amount:          entities.Amount{Value: amount, Unit: entities.AmountUnit(it.AmountUnit)},
		Description:     it.Description,
		Demo:            it.Demo,
		CreatedAt:       createdAt,
		ApprovedAt:      parseOptionalTime(it.ApprovedAt),
		RejectedAt:      parseOptionalTime(it.RejectedAt),
		Reported:        it.Reported,
		ReportClaimedAt: parseOptionalTime(it.ReportClaimedAt),
	}
}
