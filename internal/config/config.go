// Package config loads the command line configuration with viper.
//
// Precedence, lowest first: defaults, config file (YAML or TOML, chosen by
// extension), OAVI_* environment variables, command line flags. Keys use
// snake_case; flags use kebab-case; environment variables upper-case the
// key with "." replaced by "_" (log.level → OAVI_LOG_LEVEL).
package config

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/oavi/gram"
	"github.com/katalvlaran/oavi/ideal"
	"github.com/katalvlaran/oavi/oracle"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "OAVI"

// ErrInvalidConfig indicates a value the fitter would reject.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config mirrors the fitter options plus logging.
type Config struct {
	MaxDegree    int     `mapstructure:"max_degree" yaml:"max_degree"`
	Psi          float64 `mapstructure:"psi" yaml:"psi"`
	Epsilon      float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Tau          float64 `mapstructure:"tau" yaml:"tau"` // 0 derives τ from ψ
	Lambda       float64 `mapstructure:"lambda" yaml:"lambda"`
	MaxIters     int     `mapstructure:"max_iters" yaml:"max_iters"`
	Oracle       string  `mapstructure:"oracle" yaml:"oracle"`
	Inverse      string  `mapstructure:"inverse" yaml:"inverse"`
	WeakCap      int     `mapstructure:"weak_cap" yaml:"weak_cap"`
	ConstantTerm bool    `mapstructure:"constant_term" yaml:"constant_term"`
	Log          Log     `mapstructure:"log" yaml:"log"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// key ↔ flag pairs bound by BindFlags.
var flagKeys = map[string]string{
	"max_degree":    "max-degree",
	"psi":           "psi",
	"epsilon":       "epsilon",
	"tau":           "tau",
	"lambda":        "lambda",
	"max_iters":     "max-iters",
	"oracle":        "oracle",
	"inverse":       "inverse",
	"weak_cap":      "weak-cap",
	"constant_term": "constant-term",
	"log.level":     "log-level",
	"log.json":      "log-json",
}

// SetDefaults installs the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("max_degree", ideal.DefaultMaxDegree)
	v.SetDefault("psi", ideal.DefaultPsi)
	v.SetDefault("epsilon", ideal.DefaultEpsilon)
	v.SetDefault("tau", 0.0)
	v.SetDefault("lambda", ideal.DefaultLambda)
	v.SetDefault("max_iters", ideal.DefaultMaxIters)
	v.SetDefault("oracle", oracle.KindBPCG.String())
	v.SetDefault("inverse", ideal.DefaultInverse.String())
	v.SetDefault("weak_cap", gram.DefaultWeakCap)
	v.SetDefault("constant_term", ideal.DefaultConstantTerm)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// RegisterFlags defines one flag per key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("max-degree", ideal.DefaultMaxDegree, "maximum degree of the border expansion")
	fs.Float64("psi", ideal.DefaultPsi, "vanishing threshold ψ")
	fs.Float64("epsilon", ideal.DefaultEpsilon, "oracle tolerance")
	fs.Float64("tau", 0, "L1 radius τ (0 derives it from ψ)")
	fs.Float64("lambda", ideal.DefaultLambda, "ridge weight λ")
	fs.Int("max-iters", ideal.DefaultMaxIters, "oracle iteration budget per term")
	fs.String("oracle", oracle.KindBPCG.String(), "oracle: bpcg, pcg, cg or abm")
	fs.String("inverse", ideal.DefaultInverse.String(), "inverse Gram boosting: none, weak or full")
	fs.Int("weak-cap", gram.DefaultWeakCap, "largest Gram order kept under weak boosting")
	fs.Bool("constant-term", ideal.DefaultConstantTerm, "seed the order ideal with the constant 1")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Bool("log-json", false, "log JSON instead of console lines")
}

// BindFlags binds every key to its flag on fs. Flags missing from fs are
// skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "config: bind flag %s", name)
		}
	}

	return nil
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// Load reads file (when non-empty) into v and unmarshals the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", file)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}

	return &c, nil
}

// Validate reports the first value the fitter would reject.
func (c *Config) Validate() error {
	switch {
	case c.MaxDegree < 1:
		return errors.Wrapf(ErrInvalidConfig, "max_degree=%d", c.MaxDegree)
	case !positive(c.Psi):
		return errors.Wrapf(ErrInvalidConfig, "psi=%v", c.Psi)
	case !positive(c.Epsilon):
		return errors.Wrapf(ErrInvalidConfig, "epsilon=%v", c.Epsilon)
	case c.Tau != 0 && !positive(c.Tau):
		return errors.Wrapf(ErrInvalidConfig, "tau=%v", c.Tau)
	case math.IsNaN(c.Lambda) || math.IsInf(c.Lambda, 0) || c.Lambda < 0:
		return errors.Wrapf(ErrInvalidConfig, "lambda=%v", c.Lambda)
	case c.MaxIters < 1:
		return errors.Wrapf(ErrInvalidConfig, "max_iters=%d", c.MaxIters)
	case c.WeakCap < 1:
		return errors.Wrapf(ErrInvalidConfig, "weak_cap=%d", c.WeakCap)
	}
	if _, err := oracle.ParseKind(c.Oracle); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	if _, err := gram.ParseInverseMode(c.Inverse); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}

	return nil
}

// Options translates c into fitter options. extra is appended last, so it
// can carry a logger and an observer.
func (c *Config) Options(extra ...ideal.Option) ([]ideal.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := oracle.ParseKind(c.Oracle)
	mode, _ := gram.ParseInverseMode(c.Inverse)

	opts := []ideal.Option{
		ideal.WithMaxDegree(c.MaxDegree),
		ideal.WithPsi(c.Psi),
		ideal.WithEpsilon(c.Epsilon),
		ideal.WithLambda(c.Lambda),
		ideal.WithMaxIters(c.MaxIters),
		ideal.WithOracle(oracle.Builtin(kind)),
		ideal.WithInverseBoost(mode),
		ideal.WithWeakCap(c.WeakCap),
	}
	if c.Tau != 0 {
		opts = append(opts, ideal.WithTau(c.Tau))
	}
	if c.ConstantTerm {
		opts = append(opts, ideal.WithConstantTerm())
	}

	return append(opts, extra...), nil
}

func positive(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 }
