package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Get(t *testing.T) {
	s := Static{"/a": "one", "/empty": ""}

	v, err := s.Get(context.Background(), "/a")
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	_, err = s.Get(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(context.Background(), "/empty")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "SHIPCORE_EBAY_CLIENT_ID", EnvKey("/shipcore/ebay/client_id"))
	assert.Equal(t, "SHIPCORE_EBAY_RU_NAME", EnvKey("shipcore/ebay/ru-name"))
}

func TestEnvProvider_FilePrecedesProcessEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SHIPCORE_EBAY_CLIENT_ID=from-file\n"), 0o600))

	t.Setenv("SHIPCORE_EBAY_CLIENT_ID", "from-env")
	t.Setenv("SHIPCORE_EBAY_CLIENT_SECRET", "secret-from-env")

	p, err := NewEnvProvider(envFile)
	require.NoError(t, err)

	v, err := p.Get(context.Background(), "/shipcore/ebay/client_id")
	require.NoError(t, err)
	assert.Equal(t, "from-file", v)

	v, err = p.Get(context.Background(), "/shipcore/ebay/client_secret")
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", v)

	_, err = p.Get(context.Background(), "/shipcore/ebay/not_set_anywhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewEnvProvider_MissingFile(t *testing.T) {
	_, err := NewEnvProvider(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

type fakeSSM struct {
	values map[string]string
	err    error
	calls  []*ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("not found")}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
}

func TestSSMProvider_Get(t *testing.T) {
	fake := &fakeSSM{values: map[string]string{"/shipcore/ebay/client_id": "cid"}}
	p := NewSSMProviderWithClient(fake)

	v, err := p.Get(context.Background(), "/shipcore/ebay/client_id")
	require.NoError(t, err)
	assert.Equal(t, "cid", v)
	require.Len(t, fake.calls, 1)
	assert.True(t, aws.ToBool(fake.calls[0].WithDecryption))

	_, err = p.Get(context.Background(), "/shipcore/ebay/ru_name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSSMProvider_PropagatesServiceErrors(t *testing.T) {
	boom := errors.New("throttled")
	p := NewSSMProviderWithClient(&fakeSSM{err: boom})

	_, err := p.Get(context.Background(), "/x")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
