package certtesting

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
	// Storer is only set by NewBlobTestContext
	Storer *azblob.Storer
}

type TestConfig struct {
	TestLabelPrefix string
	Container       string // can be "" defaults to TestLabelPrefix
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	logger.New("NOOP")
	return TestContext{
		T:   t,
		Log: logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
	}
}

// NewBlobTestContext additionally connects to the blob store emulator
// described by the AZURITE_* environment. Blobs are never removed, tests
// keep apart by writing below unique prefixes.
func NewBlobTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := NewTestContext(t, cfg)

	container := cfg.Container
	if container == "" {
		container = cfg.TestLabelPrefix
	}

	var err error
	c.Storer, err = azblob.NewDev(azblob.NewDevConfigFromEnv(), container)
	if err != nil {
		t.Fatalf("failed to connect to blob store emulator: %v", err)
	}
	client := c.Storer.GetServiceClient()
	// Note: we expect a 'already exists' error here and  ignore it.
	_, _ = client.CreateContainer(context.Background(), container, nil)

	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }
