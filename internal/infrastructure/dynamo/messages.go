package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-inbox-api/internal/domain"
	"github.com/go-inbox-api/internal/pkg/datetime"
	"github.com/go-inbox-api/internal/pkg/id"
)

const (
	lanIDIndexName     = "user_lan_id-cre_date-index"
	messageCounterName = "inbx_msg_id"
	lastUpdtPgm        = "inbox-api"

	// DynamoDB caps a single TransactWriteItems call at 100 items. Fan-out
	// and bulk expiry deletion both stay within that per transaction.
	transactMaxItems = 100
)

// messageRecord is the stored shape of a message. Attribute names follow the
// legacy inbox schema; priority and type persist as their storage codes.
// Task-only and Information-only attributes are omitted for the other type.
type messageRecord struct {
	ID             string  `dynamodbav:"inbx_msg_id"`
	LanID          string  `dynamodbav:"user_lan_id"`
	Summary        string  `dynamodbav:"smry"`
	CreationDate   string  `dynamodbav:"cre_date"`
	Priority       int     `dynamodbav:"prty"`
	Type           string  `dynamodbav:"type"`
	ActionLink     *string `dynamodbav:"actn_link,omitempty"`
	ActionLabel    *string `dynamodbav:"actn_lbl,omitempty"`
	Internal       bool    `dynamodbav:"innl"`
	ExpirationDate *string `dynamodbav:"exp_date,omitempty"`
	LastUpdtUser   string  `dynamodbav:"last_updt_user"`
	LastUpdtPgm    string  `dynamodbav:"last_updt_pgm"`
	LastUpdtTmsp   string  `dynamodbav:"last_updt_tmsp"`
}

func newMessageRecord(m domain.Message, msgID, nowCanonical string) messageRecord {
	prty, _ := strconv.Atoi(m.Priority.Code())
	rec := messageRecord{
		ID:           msgID,
		LanID:        m.LanID,
		Summary:      m.Summary,
		CreationDate: nowCanonical,
		Priority:     prty,
		Type:         m.Type.Code(),
		Internal:     m.Internal,
		LastUpdtUser: m.LastUpdtUser,
		LastUpdtPgm:  lastUpdtPgm,
		LastUpdtTmsp: nowCanonical,
	}
	switch m.Type {
	case domain.TypeTask:
		rec.ActionLink = aws.String(m.ActionLink)
		rec.ActionLabel = aws.String(m.ActionLabel)
	case domain.TypeInformation:
		rec.ExpirationDate = aws.String(m.ExpirationDate)
	}
	return rec
}

func (r messageRecord) toMessage() domain.Message {
	m := domain.Message{
		ID:           r.ID,
		LanID:        r.LanID,
		Summary:      r.Summary,
		CreationDate: r.CreationDate,
		Priority:     domain.PriorityFromCode(strconv.Itoa(r.Priority)),
		Type:         domain.TypeFromCode(r.Type),
		Internal:     r.Internal,
		LastUpdtUser: r.LastUpdtUser,
	}
	if r.ActionLink != nil {
		m.ActionLink = *r.ActionLink
	}
	if r.ActionLabel != nil {
		m.ActionLabel = *r.ActionLabel
	}
	if r.ExpirationDate != nil {
		m.ExpirationDate = *r.ExpirationDate
	}
	return m
}

// MessageRepo provides typed DynamoDB operations for the messages table.
type MessageRepo struct {
	client       *dynamodb.Client
	tableName    string
	counterTable string
}

func NewMessageRepo(client *dynamodb.Client, tableName, counterTable string) *MessageRepo {
	return &MessageRepo{client: client, tableName: tableName, counterTable: counterTable}
}

// InsertAll writes every message in one TransactWriteItems call: either all
// rows commit or none do. Ids come from a reserved block of the message
// counter; creation timestamps are assigned here in canonical form.
func (r *MessageRepo) InsertAll(ctx context.Context, msgs []domain.Message) ([]domain.Message, error) {
	if len(msgs) == 0 {
		return []domain.Message{}, nil
	}
	if len(msgs) > transactMaxItems {
		return nil, fmt.Errorf("cannot insert %d messages in one transaction (limit %d)", len(msgs), transactMaxItems)
	}

	firstID, err := r.reserveIDs(ctx, len(msgs))
	if err != nil {
		return nil, fmt.Errorf("reserve message ids: %w", err)
	}

	nowCanonical := datetime.Format(time.Now().UTC())
	items := make([]types.TransactWriteItem, 0, len(msgs))
	created := make([]domain.Message, 0, len(msgs))
	for i, m := range msgs {
		rec := newMessageRecord(m, strconv.FormatInt(firstID+int64(i), 10), nowCanonical)
		item, err := attributevalue.MarshalMap(rec)
		if err != nil {
			return nil, fmt.Errorf("marshal message: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(inbx_msg_id)"),
			},
		})
		created = append(created, rec.toMessage())
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(id.New()),
	})
	if err != nil {
		return nil, fmt.Errorf("insert messages: %w", err)
	}
	return created, nil
}

// reserveIDs atomically advances the message counter by n and returns the
// first id of the reserved block.
func (r *MessageRepo) reserveIDs(ctx context.Context, n int) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.counterTable),
		Key:                      strKey("counter_name", messageCounterName),
		UpdateExpression:         aws.String("ADD #s :n"),
		ExpressionAttributeNames: map[string]string{"#s": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberN{Value: strconv.Itoa(n)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	seqAttr, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("counter item has no numeric seq attribute")
	}
	last, err := strconv.ParseInt(seqAttr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter value: %w", err)
	}
	return last - int64(n) + 1, nil
}

func (r *MessageRepo) Get(ctx context.Context, msgID string) (*domain.Message, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("inbx_msg_id", msgID),
	})
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", msgID, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("message %s: %w", msgID, domain.ErrNotFound)
	}
	var rec messageRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal message %s: %w", msgID, err)
	}
	msg := rec.toMessage()
	return &msg, nil
}

// ListByRecipient queries the recipient GSI, applying the classification
// predicate as a filter expression over canonical date strings.
func (r *MessageRepo) ListByRecipient(ctx context.Context, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error) {
	expr, names, values := classificationFilter(filter, datetime.NowCanonical())
	names["#lan"] = "user_lan_id"
	values[":lan"] = &types.AttributeValueMemberS{Value: lanID}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(lanIDIndexName),
		KeyConditionExpression:    aws.String("#lan = :lan"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if expr != "" {
		input.FilterExpression = aws.String(expr)
	}

	messages := []domain.Message{}
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list messages for %s: %w", lanID, err)
		}
		var recs []messageRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &recs); err != nil {
			return nil, fmt.Errorf("unmarshal messages for %s: %w", lanID, err)
		}
		for _, rec := range recs {
			messages = append(messages, rec.toMessage())
		}
		if out.LastEvaluatedKey == nil {
			return messages, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Delete removes the message in a single conditional call and returns the
// removed row. The condition failing means there was nothing to delete, so a
// delete is never reported successful without its row actually going away.
func (r *MessageRepo) Delete(ctx context.Context, msgID string) (*domain.Message, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("inbx_msg_id", msgID),
		ConditionExpression: aws.String("attribute_exists(inbx_msg_id)"),
		ReturnValues:        types.ReturnValueAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("message %s: %w", msgID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete message %s: %w", msgID, err)
	}
	var rec messageRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal deleted message %s: %w", msgID, err)
	}
	msg := rec.toMessage()
	return &msg, nil
}

// DeleteExpired removes every Information message of the recipient whose
// expiration is strictly before now. Note the deliberate boundary difference
// from the INACTIVE read predicate: a message expiring exactly now is already
// inactive to read but not yet deletable. Zero matches is a success.
//
// Deletes are committed in transactions of at most transactMaxItems. Beyond
// that count the operation is no longer one atomic unit: a mid-run failure
// leaves later chunks undeleted, and the call must be retried. Every row it
// targets stays expired, so the retry converges.
func (r *MessageRepo) DeleteExpired(ctx context.Context, lanID string) (int, error) {
	nowCanonical := datetime.NowCanonical()
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(lanIDIndexName),
		KeyConditionExpression: aws.String("#lan = :lan"),
		FilterExpression:       aws.String("#t = :info AND exp_date < :now"),
		ExpressionAttributeNames: map[string]string{
			"#lan": "user_lan_id",
			"#t":   "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":lan":  &types.AttributeValueMemberS{Value: lanID},
			":info": &types.AttributeValueMemberS{Value: domain.TypeInformation.Code()},
			":now":  &types.AttributeValueMemberS{Value: nowCanonical},
		},
		ProjectionExpression: aws.String("inbx_msg_id"),
	}

	var msgIDs []string
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("query expired messages for %s: %w", lanID, err)
		}
		for _, item := range out.Items {
			if idAttr, ok := item["inbx_msg_id"].(*types.AttributeValueMemberS); ok {
				msgIDs = append(msgIDs, idAttr.Value)
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	if len(msgIDs) == 0 {
		return 0, nil
	}

	for start := 0; start < len(msgIDs); start += transactMaxItems {
		end := min(start+transactMaxItems, len(msgIDs))
		items := make([]types.TransactWriteItem, 0, end-start)
		for _, msgID := range msgIDs[start:end] {
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key:       strKey("inbx_msg_id", msgID),
				},
			})
		}
		if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems:      items,
			ClientRequestToken: aws.String(id.New()),
		}); err != nil {
			return 0, fmt.Errorf("delete expired messages for %s: %w", lanID, err)
		}
	}
	return len(msgIDs), nil
}

// classificationFilter translates an ExpirationFilter into a DynamoDB filter
// expression evaluated against canonical date strings:
//
//	ACTIVE:   every non-Information message, plus Information not yet expired (>)
//	INACTIVE: Information already expired (<=)
//	ALL:      no filter
//
// The returned maps always exist so callers can add their own entries.
func classificationFilter(filter domain.ExpirationFilter, nowCanonical string) (string, map[string]string, map[string]types.AttributeValue) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var expr string
	switch filter {
	case domain.FilterActive:
		expr = "#t <> :info OR (#t = :info AND exp_date > :now)"
	case domain.FilterInactive:
		expr = "#t = :info AND exp_date <= :now"
	default:
		return "", names, values
	}
	names["#t"] = "type"
	values[":info"] = &types.AttributeValueMemberS{Value: domain.TypeInformation.Code()}
	values[":now"] = &types.AttributeValueMemberS{Value: nowCanonical}
	return expr, names, values
}
