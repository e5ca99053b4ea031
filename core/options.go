package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type relayBuilder struct {
	runtimeConfig     Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	commentStore      CommentReader
	transport         IngestTransport
	scheduler         Scheduler
	translator        Translator
	authorizer        Authorizer
	persistenceClient any
	repositoryFactory any
}

type Option func(*relayBuilder)

func WithLogger(logger Logger) Option {
	return func(b *relayBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *relayBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *relayBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *relayBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *relayBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *relayBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *relayBuilder) {
		b.optionsResolver = resolver
	}
}

func WithCommentStore(store CommentReader) Option {
	return func(b *relayBuilder) {
		b.commentStore = store
	}
}

func WithIngestTransport(transport IngestTransport) Option {
	return func(b *relayBuilder) {
		b.transport = transport
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(b *relayBuilder) {
		b.scheduler = scheduler
	}
}

func WithTranslator(translator Translator) Option {
	return func(b *relayBuilder) {
		b.translator = translator
	}
}

func WithAuthorizer(authorizer Authorizer) Option {
	return func(b *relayBuilder) {
		b.authorizer = authorizer
	}
}

func WithPersistenceClient(client any) Option {
	return func(b *relayBuilder) {
		b.persistenceClient = client
	}
}

func WithRepositoryFactory(factory any) Option {
	return func(b *relayBuilder) {
		b.repositoryFactory = factory
	}
}

func defaultRelayBuilder(runtime Config) relayBuilder {
	loggerProvider, logger := glog.Resolve("bouncer", nil, nil)
	return relayBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorFactory:    goerrors.New,
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(EnvRawConfigLoader{}),
		optionsResolver: GoOptionsResolver{},
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return relayErrorMapper(err)
}

// Environment keys read by EnvRawConfigLoader. The three relay settings
// mirror the host platform's plugin configuration contract.
const (
	EnvIngestionURL    = "BOUNCER_INGESTION_URL"
	EnvHandshakeToken  = "BOUNCER_HANDSHAKE_TOKEN"
	EnvAuthToken       = "BOUNCER_AUTH_TOKEN"
	EnvClientName      = "BOUNCER_CLIENT_NAME"
	EnvClientVersion   = "BOUNCER_CLIENT_VERSION"
	EnvDeliveryTimeout = "BOUNCER_DELIVERY_TIMEOUT"
)

// EnvRawConfigLoader reads relay configuration from the process environment
// once at startup. Lookup defaults to os.LookupEnv; tests inject their own.
type EnvRawConfigLoader struct {
	Lookup func(key string) (string, bool)
}

func (l EnvRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	out := map[string]any{}
	for key, env := range map[string]string{
		"ingestion_url":   EnvIngestionURL,
		"handshake_token": EnvHandshakeToken,
		"auth_token":      EnvAuthToken,
		"client_name":     EnvClientName,
		"client_version":  EnvClientVersion,
	} {
		if value, ok := lookup(env); ok && strings.TrimSpace(value) != "" {
			out[key] = strings.TrimSpace(value)
		}
	}
	if value, ok := lookup(EnvDeliveryTimeout); ok && strings.TrimSpace(value) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("core: parse %s: %w", EnvDeliveryTimeout, err)
		}
		out["delivery_timeout"] = timeout
	}
	return out, nil
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.IngestionURL) != "" {
		layer["ingestion_url"] = cfg.IngestionURL
	}
	if includeZero || strings.TrimSpace(cfg.HandshakeToken) != "" {
		layer["handshake_token"] = cfg.HandshakeToken
	}
	if includeZero || strings.TrimSpace(cfg.AuthToken) != "" {
		layer["auth_token"] = cfg.AuthToken
	}
	if includeZero || strings.TrimSpace(cfg.ClientName) != "" {
		layer["client_name"] = cfg.ClientName
	}
	if includeZero || strings.TrimSpace(cfg.ClientVersion) != "" {
		layer["client_version"] = cfg.ClientVersion
	}
	if includeZero || cfg.DeliveryTimeout != 0 {
		layer["delivery_timeout"] = cfg.DeliveryTimeout
	}
	return layer
}
