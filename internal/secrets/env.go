package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProvider maps parameter-style names onto environment variables:
// "/shipcore/ebay/client_id" is read from SHIPCORE_EBAY_CLIENT_ID. Values from
// the optional dotenv file take precedence over the process environment.
type EnvProvider struct {
	file map[string]string
}

// NewEnvProvider reads envFile when it is set. A missing file is an error.
func NewEnvProvider(envFile string) (*EnvProvider, error) {
	p := &EnvProvider{file: map[string]string{}}
	if envFile == "" {
		return p, nil
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}
	p.file = values
	return p, nil
}

// Get implements Provider.
func (p *EnvProvider) Get(_ context.Context, name string) (string, error) {
	key := EnvKey(name)
	if v, ok := p.file[key]; ok && v != "" {
		return v, nil
	}
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s (env %s)", ErrNotFound, name, key)
}

// EnvKey converts a parameter path into an environment variable name.
func EnvKey(name string) string {
	key := strings.Trim(name, "/")
	key = strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(key)
	return strings.ToUpper(key)
}
