package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsDynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	memoryCacheKit "github.com/authogonal/account-service/kit/cache/memory"
	utilKit "github.com/authogonal/account-service/kit/util"
)

type accountRepo struct {
	client *awsDynamodb.Client
	table  string

	// cache gives the writing process read-your-writes while the table
	// converges. It only ever holds hashed records.
	cache *memoryCacheKit.Cache[domain.Account]
}

type Option func(*config.LoadOptions) error

func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(o *config.LoadOptions) error {
		o.Credentials = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
		return nil
	}
}

func CreateAccountRepo(ctx context.Context, region, table string, options ...Option) (domain.AccountRepo, error) {
	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(region)}
	for _, option := range options {
		loadOptions = append(loadOptions, option)
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "load default config failed")
	}

	return &accountRepo{
		client: awsDynamodb.NewFromConfig(cfg),
		table:  table,
		cache:  memoryCacheKit.CreateCache[domain.Account](),
	}, nil
}

func (a *accountRepo) Get(ctx context.Context, email string) (*domain.Account, error) {
	output, err := a.client.GetItem(ctx, &awsDynamodb.GetItemInput{
		TableName: aws.String(a.table),
		Key: map[string]types.AttributeValue{
			domain.AccountAttributeEmail: &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "get item failed")
	}

	if output.Item == nil {
		// the backing store may not have converged yet. fall back to the
		// last payload this process wrote.
		if cached, ok := a.cache.Get(email); ok {
			return &cached, nil
		}
		return nil, errors.Wrap(domain.ErrAccountNotFound, "account absent from store and cache")
	}

	var account domain.Account
	if err := attributevalue.UnmarshalMap(output.Item, &account); err != nil {
		return nil, errors.Wrap(err, "unmarshal item failed")
	}

	return &account, nil
}

func (a *accountRepo) Create(ctx context.Context, account *domain.Account, plainPassword string) (*domain.Account, error) {
	hash, err := utilKit.GetBcrypt(plainPassword)
	if err != nil {
		return nil, errors.Wrap(err, "get bcrypt failed")
	}

	record := *account
	record.PasswordHash = hash

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, errors.Wrap(err, "marshal item failed")
	}

	_, err = a.client.PutItem(ctx, &awsDynamodb.PutItemInput{
		TableName:           aws.String(a.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(Email)"),
	})
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return nil, errors.Wrap(domain.ErrAccountExists, "conditional put failed")
	} else if err != nil {
		return nil, errors.Wrap(err, "put item failed")
	}

	a.cache.Set(record.Email, record)

	return &record, nil
}

func (a *accountRepo) UpdateAttribute(ctx context.Context, email, attribute string, value any) error {
	attributeValue, err := attributevalue.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal attribute value failed")
	}

	_, err = a.client.UpdateItem(ctx, &awsDynamodb.UpdateItemInput{
		TableName: aws.String(a.table),
		Key: map[string]types.AttributeValue{
			domain.AccountAttributeEmail: &types.AttributeValueMemberS{Value: email},
		},
		ExpressionAttributeNames:  map[string]string{"#A": attribute},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": attributeValue},
		UpdateExpression:          aws.String("SET #A = :v"),
		ConditionExpression:       aws.String("attribute_exists(Email)"),
	})
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return errors.Wrap(domain.ErrAccountNotFound, "conditional update failed")
	} else if err != nil {
		return errors.Wrap(err, "update item failed")
	}

	if cached, ok := a.cache.Get(email); ok {
		applyAttribute(&cached, attribute, value)
		a.cache.Set(email, cached)
	}

	return nil
}

func (a *accountRepo) Scan(ctx context.Context, projection []string, filter *domain.ScanFilter) ([]*domain.Account, error) {
	names := make(map[string]string, len(projection)+1)
	projected := make([]string, len(projection))
	for i, attribute := range projection {
		alias := fmt.Sprintf("#p%d", i)
		names[alias] = attribute
		projected[i] = alias
	}

	input := &awsDynamodb.ScanInput{
		TableName:                aws.String(a.table),
		ProjectionExpression:     aws.String(strings.Join(projected, ", ")),
		ExpressionAttributeNames: names,
	}
	if filter != nil {
		names["#f"] = filter.Attribute
		input.FilterExpression = aws.String("#f = :v")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: filter.Value},
		}
	}

	var accounts []*domain.Account
	paginator := awsDynamodb.NewScanPaginator(a.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}

		var pageAccounts []*domain.Account
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageAccounts); err != nil {
			return nil, errors.Wrap(err, "unmarshal items failed")
		}
		accounts = append(accounts, pageAccounts...)
	}

	return accounts, nil
}

func applyAttribute(account *domain.Account, attribute string, value any) {
	switch attribute {
	case domain.AccountAttributePassword:
		if hash, ok := value.(string); ok {
			account.PasswordHash = hash
		}
	case domain.AccountAttributeIsVerified:
		if verified, ok := value.(bool); ok {
			account.IsVerified = verified
		}
	case domain.AccountAttributeVerificationString:
		if code, ok := value.(string); ok {
			account.VerificationString = code
		}
	case domain.AccountAttributeFirstName:
		if name, ok := value.(string); ok {
			account.FirstName = name
		}
	case domain.AccountAttributeLastName:
		if name, ok := value.(string); ok {
			account.LastName = name
		}
	}
}
