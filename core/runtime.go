package core

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Runtime carries the resolved configuration and the process-wide
// collaborators shared by every relay component. It is assembled once at
// startup and read-only afterwards.
type Runtime struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	commentStore    CommentReader
	transport       IngestTransport
	scheduler       Scheduler
	translator      Translator
	authorizer      Authorizer
}

func NewRuntime(cfg Config, options ...Option) (*Runtime, error) {
	builder := defaultRelayBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("bouncer", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("bouncer"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.commentStore == nil && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(CommentStoreFactory); ok {
			store, buildErr := storeFactory.BuildCommentStore(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			builder.commentStore = store
		}
	}

	runtime := &Runtime{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		commentStore:    builder.commentStore,
		transport:       builder.transport,
		scheduler:       builder.scheduler,
		translator:      builder.translator,
		authorizer:      builder.authorizer,
	}
	runtime.warnPartialConfiguration()
	return runtime, nil
}

// warnPartialConfiguration announces disabled mode once at startup. Partial
// configuration is never treated as a runtime error.
func (r *Runtime) warnPartialConfiguration() {
	if r == nil || r.logger == nil {
		return
	}
	if !r.config.HandshakeEnabled() {
		r.logger.Warn(
			"bouncer: relay disabled until ingestion url and handshake token are configured",
			"ingestion_url_set", r.config.IngestionURL != "",
			"handshake_token_set", r.config.HandshakeToken != "",
		)
		return
	}
	if !r.config.DeliveryEnabled() {
		r.logger.Warn("bouncer: auth token is not configured; notifications will not be delivered")
	}
}

func (r *Runtime) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.config
}

func (r *Runtime) Logger() Logger {
	if r == nil || r.logger == nil {
		return glog.Nop()
	}
	return r.logger
}

func (r *Runtime) LoggerProvider() LoggerProvider {
	if r == nil {
		return nil
	}
	return r.loggerProvider
}

func (r *Runtime) Metrics() MetricsRecorder {
	if r == nil || r.metricsRecorder == nil {
		return NopMetricsRecorder{}
	}
	return r.metricsRecorder
}

func (r *Runtime) Comments() CommentReader {
	if r == nil {
		return nil
	}
	return r.commentStore
}

func (r *Runtime) Transport() IngestTransport {
	if r == nil {
		return nil
	}
	return r.transport
}

func (r *Runtime) Scheduler() Scheduler {
	if r == nil {
		return nil
	}
	return r.scheduler
}

func (r *Runtime) Translator() Translator {
	if r == nil {
		return nil
	}
	return r.translator
}

func (r *Runtime) Authorizer() Authorizer {
	if r == nil {
		return nil
	}
	return r.authorizer
}

func (r *Runtime) MapError(err error) error {
	if err == nil {
		return nil
	}
	if r == nil || r.errorMapper == nil {
		return relayErrorMapper(err)
	}
	mapped := r.errorMapper(err)
	if mapped == nil {
		return nil
	}
	return mapped
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return relayErrorMapper(err)
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
