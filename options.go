package luajs

import (
	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/engine/lua"
	"github.com/Otixa/luajs/logging"
	"github.com/Otixa/luajs/registry"
)

type options struct {
	name         string
	engine       engine.Engine
	engineConfig engine.Config
	registry     *registry.Registry
	logger       logging.Logger
}

func defaultOptions() options {
	return options{
		engine:   lua.New(),
		registry: registry.Default(),
		logger:   logging.NoOpLogger{},
	}
}

// Option configures a State.
type Option func(*options)

// WithName requests an explicit name. Without it a name is generated.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithEngine selects the script engine. The default is Lua.
func WithEngine(e engine.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithEngineConfig sets the configuration used to create the context.
func WithEngineConfig(cfg engine.Config) Option {
	return func(o *options) {
		o.engineConfig = cfg
	}
}

// WithRegistry reserves the State's name in r instead of the process-wide
// registry.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger for lifecycle and queue events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
