package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
)

// ErrDuplicateLine is returned when a cart line with the same id already exists.
var ErrDuplicateLine = errors.New("cart line already exists")

// Item is one cart line as stored in the cart items table.
type Item struct {
	LineID     string                 `dynamodbav:"line_id"` // PK
	ProductKey string                 `dynamodbav:"product_key"`
	Variant    string                 `dynamodbav:"variant"`
	Title      string                 `dynamodbav:"title,omitempty"`
	Price      string                 `dynamodbav:"price,omitempty"` // as displayed, may be non-numeric
	Payload    map[string]interface{} `dynamodbav:"payload"`
	CreatedAt  time.Time              `dynamodbav:"created_at"`
}

// NewItem builds the stored line for a payload.
func NewItem(lineID string, p Payload, now time.Time) Item {
	r := p.Record()
	view := catalog.Derive(r)
	return Item{
		LineID:     lineID,
		ProductKey: r.Key(),
		Variant:    string(p.Variant()),
		Title:      view.Title,
		Price:      view.DisplayPrice,
		Payload:    p,
		CreatedAt:  now,
	}
}

// DynamoStore writes submissions straight to the cart items table.
type DynamoStore struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

func NewDynamoStore(client aws.DynamoDBAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// AddItem stores the payload as a new cart line. A resubmission carrying the
// same submission key maps to the same line and is accepted without a second
// write.
func (s *DynamoStore) AddItem(ctx context.Context, p Payload) error {
	err := s.Put(ctx, NewItem(LineID(ctx), p, s.nowFunc().UTC()))
	if errors.Is(err, ErrDuplicateLine) {
		return nil
	}
	return err
}

// Put writes item unless a line with the same id exists (ErrDuplicateLine).
func (s *DynamoStore) Put(ctx context.Context, item Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal cart item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                av,
		ConditionExpression: awsString("attribute_not_exists(line_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrDuplicateLine
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches a cart line by id. Returns (nil, nil) if not found.
func (s *DynamoStore) Get(ctx context.Context, lineID string) (*Item, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"line_id": &types.AttributeValueMemberS{Value: lineID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var it Item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshal cart item: %w", err)
	}
	return &it, nil
}

func awsString(s string) *string { return &s }
