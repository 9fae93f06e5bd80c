package raster

import (
	"github.com/cwbudde/algo-mesh/mesh/curve"
	"github.com/cwbudde/algo-mesh/mesh/deform"
)

// Option configures a rasterizer.
type Option func(*config) error

type config struct {
	deformer    *deform.Applier
	builderOpts []curve.Option
}

// WithDeformer applies table-driven deformation to every cross-section
// before the curve is built. A nil applier disables deformation.
func WithDeformer(a *deform.Applier) Option {
	return func(c *config) error {
		c.deformer = a
		return nil
	}
}

// WithBuilderOptions forwards options to the curve builder.
func WithBuilderOptions(opts ...curve.Option) Option {
	return func(c *config) error {
		c.builderOpts = append(c.builderOpts, opts...)
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}
