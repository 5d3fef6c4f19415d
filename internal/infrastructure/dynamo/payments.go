package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alterera/academy-api/internal/domain"
)

// PaymentRepo provides typed DynamoDB operations for the payments table.
// PK: payment_id (the gateway's payment id), so the store enforces the
// one-record-per-payment invariant.
type PaymentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPaymentRepo(client *dynamodb.Client, tableName string) *PaymentRepo {
	return &PaymentRepo{client: client, tableName: tableName}
}

// Put writes a payment record, rejecting duplicates of the same payment id
// with ErrConditionFailed. Records are immutable once written.
func (r *PaymentRepo) Put(ctx context.Context, p *domain.Payment) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
	})
	return asConditionFailed(err)
}

// ListByUser returns a user's payments via the user_id-created_at-index GSI,
// newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-created_at-index"),
		KeyConditionExpression: aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var payments []domain.Payment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
