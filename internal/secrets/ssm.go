package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ParameterAPI is the subset of the SSM client used here.
type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMProvider reads SecureString parameters from AWS Systems Manager.
type SSMProvider struct {
	client ParameterAPI
}

// NewSSMProvider builds a provider from the default AWS credential chain.
func NewSSMProvider(ctx context.Context, region string) (*SSMProvider, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSSMProviderWithClient(ssm.NewFromConfig(awsConfig)), nil
}

// NewSSMProviderWithClient wraps an existing client.
func NewSSMProviderWithClient(client ParameterAPI) *SSMProvider {
	return &SSMProvider{client: client}
}

// Get implements Provider.
func (p *SSMProvider) Get(ctx context.Context, name string) (string, error) {
	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
