package repository

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo implements the handful of DynamoDB calls the session store makes,
// including the version condition and the created_at_epoch scan filter.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	puts  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func attrS(m map[string]types.AttributeValue, key string) string {
	if v, ok := m[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func attrN(m map[string]types.AttributeValue, key string) int64 {
	if v, ok := m[key].(*types.AttributeValueMemberN); ok {
		n, _ := strconv.ParseInt(v.Value, 10, 64)
		return n
	}
	return 0
}

func (f *fakeDynamo) versionMatches(id string, cond *string, values map[string]types.AttributeValue) bool {
	if cond == nil {
		return true
	}
	cur, ok := f.items[id]
	if !ok {
		return false
	}
	return attrN(cur, "version") == attrN(values, ":version")
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[attrS(in.Key, "id")]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := attrS(in.Item, "id")
	if !f.versionMatches(id, in.ConditionExpression, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("version mismatch")}
	}
	f.items[id] = in.Item
	f.puts++
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := attrS(in.Key, "id")
	if !f.versionMatches(id, in.ConditionExpression, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("version mismatch")}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := attrN(in.ExpressionAttributeValues, ":cutoff")
	out := &dynamodb.ScanOutput{}
	for id, it := range f.items {
		if attrN(it, "created_at_epoch") <= cutoff {
			out.Items = append(out.Items, map[string]types.AttributeValue{
				"id":      &types.AttributeValueMemberS{Value: id},
				"version": it["version"],
			})
		}
	}
	return out, nil
}

func TestSessionDynamoRepository(t *testing.T) {
	repo := newSessionDynamoRepository(newFakeDynamo(), "", time.Hour)
	runSessionRepositoryContract(t, repo, func(now time.Time) {
		repo.now = func() time.Time { return now }
	})
}

func TestSessionDynamoRepository_ItemLayout(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	repo := newSessionDynamoRepository(fake, "sessions", time.Hour)
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return created }

	s := newTestSession("sess-layout", created)
	if _, err := repo.Put(ctx, s); err != nil {
		t.Fatal(err)
	}
	it := fake.items["sess-layout"]
	if attrN(it, "version") != 1 {
		t.Fatalf("expected version 1, got %d", attrN(it, "version"))
	}
	wantExpiry := created.Add(time.Hour + retentionGrace).Unix()
	if attrN(it, "expires_at") != wantExpiry {
		t.Fatalf("expected expires_at %d, got %d", wantExpiry, attrN(it, "expires_at"))
	}
	if attrS(it, "amount") != "49.9" || attrS(it, "amount_unit") != "major" {
		t.Fatalf("unexpected amount attrs: %v %v", attrS(it, "amount"), attrS(it, "amount_unit"))
	}

	if _, err := repo.Update(ctx, s.ID, func(*entities.PaymentSession) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if attrN(fake.items["sess-layout"], "version") != 2 {
		t.Fatalf("update must bump version")
	}
}
