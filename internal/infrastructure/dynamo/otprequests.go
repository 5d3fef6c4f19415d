package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alterera/academy-api/internal/domain"
)

// OtpRequestRepo manages the OTP request ledger.
// PK: request_id. The purge_at attribute is the table's TTL, set to one hour
// past expiry so terminal entries age out on their own.
type OtpRequestRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpRequestRepo(client *dynamodb.Client, tableName string) *OtpRequestRepo {
	return &OtpRequestRepo{client: client, tableName: tableName}
}

func (r *OtpRequestRepo) Put(ctx context.Context, o *domain.OtpRequest) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal otp request: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OtpRequestRepo) Get(ctx context.Context, requestID string) (*domain.OtpRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("request_id", requestID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.E(domain.CodeRequestNotFound, "OTP request not found")
	}
	var o domain.OtpRequest
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Rotate replaces the code hash and expiry and resets the attempt counter,
// guarded on the entry not having been consumed. A resend grants a full new
// attempt budget.
func (r *OtpRequestRepo) Rotate(ctx context.Context, requestID, otpHash string, expiresAt, lastSentAt time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldOtpHash:    otpHash,
		fieldExpiresAt:  expiresAt,
		fieldAttempts:   0,
		fieldLastSentAt: lastSentAt,
		fieldPurgeAt:    expiresAt.Add(domain.OTPRetention).Unix(),
		"updated_at":    lastSentAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	ue.Values[":f"] = &types.AttributeValueMemberBOOL{Value: false}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("request_id", requestID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("used = :f"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return asConditionFailed(err)
}

// IncrementAttempts bumps the failed-attempt counter atomically, with the
// budget as a store-level ceiling: once attempts reaches the maximum (or the
// entry is consumed) the condition fails and ErrConditionFailed is returned,
// so concurrent wrong submissions cannot exceed the budget. Returns the
// post-increment counter value.
func (r *OtpRequestRepo) IncrementAttempts(ctx context.Context, requestID string) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("request_id", requestID),
		UpdateExpression:    aws.String("ADD attempts :one"),
		ConditionExpression: aws.String("attempts < :max AND used = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":max": &types.AttributeValueMemberN{Value: strconv.Itoa(domain.MaxOTPAttempts)},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, asConditionFailed(err)
	}
	n, ok := out.Attributes[fieldAttempts].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("attempts attribute missing from update result")
	}
	attempts, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("parse attempts: %w", err)
	}
	return attempts, nil
}

// MarkUsed consumes the entry. The flip is conditional on used being false,
// so an entry can be consumed exactly once.
func (r *OtpRequestRepo) MarkUsed(ctx context.Context, requestID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("request_id", requestID),
		UpdateExpression:    aws.String("SET used = :t"),
		ConditionExpression: aws.String("used = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	return asConditionFailed(err)
}
