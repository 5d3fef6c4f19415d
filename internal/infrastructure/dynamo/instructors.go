package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alterera/academy-api/internal/domain"
)

// InstructorRepo provides typed DynamoDB operations for the instructors table.
type InstructorRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInstructorRepo(client *dynamodb.Client, tableName string) *InstructorRepo {
	return &InstructorRepo{client: client, tableName: tableName}
}

func (r *InstructorRepo) Put(ctx context.Context, in *domain.Instructor) error {
	item, err := attributevalue.MarshalMap(in)
	if err != nil {
		return fmt.Errorf("marshal instructor: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InstructorRepo) Get(ctx context.Context, instructorID string) (*domain.Instructor, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("instructor_id", instructorID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.E(domain.CodeInstructorNotFound, "instructor not found")
	}
	var in domain.Instructor
	if err := attributevalue.UnmarshalMap(out.Item, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetByEmail looks up an instructor via the email-index GSI.
func (r *InstructorRepo) GetByEmail(ctx context.Context, email string) (*domain.Instructor, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("email-index"),
		KeyConditionExpression:    aws.String("#e = :e"),
		ExpressionAttributeNames:  map[string]string{"#e": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":e": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, domain.E(domain.CodeInstructorNotFound, "instructor not found")
	}
	var in domain.Instructor
	if err := attributevalue.UnmarshalMap(out.Items[0], &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *InstructorRepo) Update(ctx context.Context, instructorID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("instructor_id", instructorID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
