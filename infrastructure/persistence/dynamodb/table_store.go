// Package dynamodb implements the persistence ports against DynamoDB, the
// primary backend. Every logical table is a plain document table: whole
// items are put/get/scanned and list filtering happens in process.
package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	apperrors "sweetshop-backend/pkg/errors"
)

// TableStore is a generic document store over one DynamoDB table with a
// single string partition key. The typed repositories are thin wrappers
// around it.
type TableStore struct {
	client    *dynamodb.Client
	tableName string
	keyName   string
	logger    *zap.Logger
}

// NewTableStore creates a store for the given table and key attribute.
func NewTableStore(client *dynamodb.Client, tableName, keyName string, logger *zap.Logger) *TableStore {
	return &TableStore{
		client:    client,
		tableName: tableName,
		keyName:   keyName,
		logger:    logger,
	}
}

// Put marshals and stores an item, fully replacing any prior item with the
// same key.
func (s *TableStore) Put(ctx context.Context, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal item").WithCause(err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		s.logger.Error("dynamodb put failed",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return apperrors.NewStoreUnavailableError("put", err)
	}
	return nil
}

// Get loads the item with the given key into out. The second return is
// false when no item exists; not-found is a normal outcome here, not an
// error.
func (s *TableStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(key),
	})
	if err != nil {
		s.logger.Error("dynamodb get failed",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return false, apperrors.NewStoreUnavailableError("get", err)
	}
	if len(result.Item) == 0 {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, apperrors.NewInternalError("failed to unmarshal item").WithCause(err)
	}
	return true, nil
}

// Scan reads the whole table into out (a pointer to a slice), following
// pagination. Filtering and sorting are the caller's concern.
func (s *TableStore) Scan(ctx context.Context, out interface{}) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			s.logger.Error("dynamodb scan failed",
				zap.String("table", s.tableName),
				zap.Error(err),
			)
			return apperrors.NewStoreUnavailableError("scan", err)
		}

		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return apperrors.NewInternalError("failed to unmarshal scan result").WithCause(err)
	}
	return nil
}

// Update applies a field patch to the item with the given key. The item
// must exist; patching a missing item is a not-found error.
func (s *TableStore) Update(ctx context.Context, key string, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return apperrors.NewValidationError("empty patch")
	}

	var update expression.UpdateBuilder
	for field, value := range patch {
		update = update.Set(expression.Name(field), expression.Value(value))
	}
	cond := expression.AttributeExists(expression.Name(s.keyName))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build update expression").WithCause(err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return apperrors.NewNotFoundError("item")
		}
		s.logger.Error("dynamodb update failed",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return apperrors.NewStoreUnavailableError("update", err)
	}
	return nil
}

// Add atomically adds delta to a numeric field of the item with the given
// key, so concurrent writers cannot lose counts the way a read-then-patch
// would. The item must exist.
func (s *TableStore) Add(ctx context.Context, key, field string, delta int) error {
	update := expression.Add(expression.Name(field), expression.Value(delta))
	cond := expression.AttributeExists(expression.Name(s.keyName))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build add expression").WithCause(err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return apperrors.NewNotFoundError("item")
		}
		s.logger.Error("dynamodb add failed",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return apperrors.NewStoreUnavailableError("add", err)
	}
	return nil
}

// Delete removes the item with the given key. Deleting a missing item is a
// no-op, matching DynamoDB semantics.
func (s *TableStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(key),
	})
	if err != nil {
		s.logger.Error("dynamodb delete failed",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return apperrors.NewStoreUnavailableError("delete", err)
	}
	return nil
}

func (s *TableStore) key(value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.keyName: &types.AttributeValueMemberS{Value: value},
	}
}
